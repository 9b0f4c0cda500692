package models

import (
	"time"

	"github.com/angelmondragon/ssbcompass-backend/pkg/enums"
)

// Purchase is an append-only payment record. Only its status may change.
type Purchase struct {
	ID             string              `gorm:"column:id;type:varchar(64);primaryKey"`
	LearnerID      string              `gorm:"column:learner_id;type:varchar(64);not null;index"`
	CourseID       string              `gorm:"column:course_id;type:varchar(64);not null;index"`
	Amount         int64               `gorm:"column:amount;not null"`
	TransactionRef string              `gorm:"column:transaction_ref;not null"`
	Method         enums.PaymentMethod `gorm:"column:payment_method;type:varchar(16);not null"`
	Status         enums.PaymentStatus `gorm:"column:status;type:varchar(16);not null"`
	PurchasedAt    time.Time           `gorm:"column:purchased_at;not null"`
	ExpiresAt      *time.Time          `gorm:"column:expires_at"`
	CanRefund      bool                `gorm:"column:can_refund;not null"`
	RefundDeadline time.Time           `gorm:"column:refund_deadline;not null"`
	RefundedAt     *time.Time          `gorm:"column:refunded_at"`
}
