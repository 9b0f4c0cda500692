package models

import (
	"time"

	"github.com/lib/pq"

	"github.com/angelmondragon/ssbcompass-backend/pkg/enums"
)

// Admin is an operator principal keyed by its login handle.
type Admin struct {
	ID           string          `gorm:"column:id;type:varchar(64);primaryKey"`
	Email        string          `gorm:"column:email;not null"`
	FullName     string          `gorm:"column:full_name;not null"`
	PasswordHash string          `gorm:"column:password_hash;not null"`
	Role         enums.AdminRole `gorm:"column:role;type:varchar(32);not null"`
	Permissions  pq.StringArray  `gorm:"column:permissions;type:text"`
	IsActive     bool            `gorm:"column:is_active;not null;default:true"`
	LastLoginAt  *time.Time      `gorm:"column:last_login_at"`
	CreatedAt    time.Time       `gorm:"column:created_at"`
}
