package models

import "time"

// Course is a purchasable catalog item. Price is in the smallest currency unit.
type Course struct {
	ID          string    `gorm:"column:id;type:varchar(64);primaryKey"`
	Name        string    `gorm:"column:name;not null"`
	Description string    `gorm:"column:description"`
	Price       int64     `gorm:"column:price;not null"`
	Duration    string    `gorm:"column:duration"`
	Category    string    `gorm:"column:category;not null"`
	Instructor  string    `gorm:"column:instructor;not null"`
	Enrolled    int       `gorm:"column:enrolled;not null;default:0"`
	Rating      float64   `gorm:"column:rating;not null;default:0"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}
