package models

import (
	"time"

	"github.com/angelmondragon/ssbcompass-backend/pkg/enums"
)

type Event struct {
	ID          string            `gorm:"column:id;type:varchar(64);primaryKey"`
	Title       string            `gorm:"column:title;not null"`
	Description string            `gorm:"column:description"`
	Category    string            `gorm:"column:category;not null"`
	Date        string            `gorm:"column:event_date;type:varchar(10);not null"`
	Status      enums.EventStatus `gorm:"column:status;type:varchar(16);not null"`
	CreatedAt   time.Time         `gorm:"column:created_at"`
}
