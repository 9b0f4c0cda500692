package ledger

import (
	"time"

	"github.com/angelmondragon/ssbcompass-backend/pkg/db/models"
	"github.com/angelmondragon/ssbcompass-backend/pkg/enums"
)

// PurchaseDTO is the transport shape of a purchase, with eligibility evaluated at a fixed instant.
type PurchaseDTO struct {
	ID             string              `json:"id"`
	LearnerID      string              `json:"learner_id"`
	CourseID       string              `json:"course_id"`
	Amount         int64               `json:"amount"`
	TransactionRef string              `json:"transaction_ref"`
	PaymentMethod  enums.PaymentMethod `json:"payment_method"`
	Status         enums.PaymentStatus `json:"status"`
	PurchasedAt    time.Time           `json:"purchased_at"`
	ExpiresAt      *time.Time          `json:"expires_at"`
	CanRefund      bool                `json:"can_refund"`
	RefundDeadline time.Time           `json:"refund_deadline"`
	RefundedAt     *time.Time          `json:"refunded_at,omitempty"`
	RefundEligible bool                `json:"refund_eligible"`
}

// RefundEligibility answers the learner-facing refund query.
type RefundEligibility struct {
	PurchaseID     string    `json:"purchase_id"`
	Eligible       bool      `json:"eligible"`
	RefundDeadline time.Time `json:"refund_deadline"`
	CheckedAt      time.Time `json:"checked_at"`
}

func FromModel(p models.Purchase, now time.Time) PurchaseDTO {
	return PurchaseDTO{
		ID:             p.ID,
		LearnerID:      p.LearnerID,
		CourseID:       p.CourseID,
		Amount:         p.Amount,
		TransactionRef: p.TransactionRef,
		PaymentMethod:  p.Method,
		Status:         p.Status,
		PurchasedAt:    p.PurchasedAt,
		ExpiresAt:      p.ExpiresAt,
		CanRefund:      p.CanRefund,
		RefundDeadline: p.RefundDeadline,
		RefundedAt:     p.RefundedAt,
		RefundEligible: RefundEligible(p, now),
	}
}

func FromModels(rows []models.Purchase, now time.Time) []PurchaseDTO {
	out := make([]PurchaseDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromModel(row, now))
	}
	return out
}

func NewRefundEligibility(p models.Purchase, now time.Time) RefundEligibility {
	return RefundEligibility{
		PurchaseID:     p.ID,
		Eligible:       RefundEligible(p, now),
		RefundDeadline: p.RefundDeadline,
		CheckedAt:      now,
	}
}
