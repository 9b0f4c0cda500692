package models

import "time"

// Entitlement grants a learner access to a course. The composite key keeps
// repeated grants idempotent.
type Entitlement struct {
	LearnerID  string    `gorm:"column:learner_id;type:varchar(64);primaryKey"`
	CourseID   string    `gorm:"column:course_id;type:varchar(64);primaryKey"`
	PurchaseID string    `gorm:"column:purchase_id;type:varchar(64);not null"`
	GrantedAt  time.Time `gorm:"column:granted_at;not null"`
}
