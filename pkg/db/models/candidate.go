package models

import (
	"time"

	"github.com/lib/pq"
)

// Candidate is a showcased selection story.
type Candidate struct {
	ID            string         `gorm:"column:id;type:varchar(64);primaryKey"`
	Name          string         `gorm:"column:name;not null"`
	Position      string         `gorm:"column:position;not null"`
	Service       string         `gorm:"column:service;not null"`
	SelectionDate string         `gorm:"column:selection_date"`
	Photo         string         `gorm:"column:photo;not null"`
	Testimonial   string         `gorm:"column:testimonial"`
	Batch         string         `gorm:"column:batch"`
	Courses       pq.StringArray `gorm:"column:courses;type:text"`
	AddedAt       time.Time      `gorm:"column:added_at;not null"`
}
