package catalog

import (
	"time"

	"github.com/angelmondragon/ssbcompass-backend/pkg/db/models"
)

const (
	DefaultCategory   = "General"
	DefaultInstructor = "SSB COMPASS Team"
)

// CourseDTO is the public projection of a catalog entry.
type CourseDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	Duration    string    `json:"duration"`
	Category    string    `json:"category"`
	Instructor  string    `json:"instructor"`
	Enrolled    int       `json:"enrolled"`
	Rating      float64   `json:"rating"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateCourseInput is validated with struct tags before it reaches a repository.
type CreateCourseInput struct {
	ID          string  `json:"id" validate:"required,max=32"`
	Name        string  `json:"name" validate:"required,max=200"`
	Description string  `json:"description" validate:"max=2000"`
	Price       int64   `json:"price" validate:"required,gt=0"`
	Duration    string  `json:"duration" validate:"max=64"`
	Category    string  `json:"category" validate:"max=64"`
	Instructor  string  `json:"instructor" validate:"max=200"`
	Enrolled    int     `json:"enrolled" validate:"gte=0"`
	Rating      float64 `json:"rating" validate:"gte=0,lte=5"`
}

// UpdateCourseInput carries optional field changes. Nil fields are left untouched.
type UpdateCourseInput struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string  `json:"description" validate:"omitempty,max=2000"`
	Price       *int64   `json:"price" validate:"omitempty,gt=0"`
	Duration    *string  `json:"duration" validate:"omitempty,max=64"`
	Category    *string  `json:"category" validate:"omitempty,max=64"`
	Instructor  *string  `json:"instructor" validate:"omitempty,max=200"`
	Enrolled    *int     `json:"enrolled" validate:"omitempty,gte=0"`
	Rating      *float64 `json:"rating" validate:"omitempty,gte=0,lte=5"`
}

// FromModel maps a course row to its DTO.
func FromModel(c models.Course) CourseDTO {
	return CourseDTO{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Price:       c.Price,
		Duration:    c.Duration,
		Category:    c.Category,
		Instructor:  c.Instructor,
		Enrolled:    c.Enrolled,
		Rating:      c.Rating,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func FromModels(rows []models.Course) []CourseDTO {
	out := make([]CourseDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromModel(row))
	}
	return out
}

func (in CreateCourseInput) toModel(now time.Time) *models.Course {
	course := &models.Course{
		ID:          in.ID,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Duration:    in.Duration,
		Category:    in.Category,
		Instructor:  in.Instructor,
		Enrolled:    in.Enrolled,
		Rating:      in.Rating,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if course.Category == "" {
		course.Category = DefaultCategory
	}
	if course.Instructor == "" {
		course.Instructor = DefaultInstructor
	}
	return course
}

func (in UpdateCourseInput) apply(course *models.Course) {
	if in.Name != nil {
		course.Name = *in.Name
	}
	if in.Description != nil {
		course.Description = *in.Description
	}
	if in.Price != nil {
		course.Price = *in.Price
	}
	if in.Duration != nil {
		course.Duration = *in.Duration
	}
	if in.Category != nil {
		course.Category = *in.Category
	}
	if in.Instructor != nil {
		course.Instructor = *in.Instructor
	}
	if in.Enrolled != nil {
		course.Enrolled = *in.Enrolled
	}
	if in.Rating != nil {
		course.Rating = *in.Rating
	}
}
