package learners

import (
	"time"

	"github.com/angelmondragon/ssbcompass-backend/pkg/db/models"
)

// LearnerDTO is the transport shape that omits the credential hash.
type LearnerDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	IsActive  bool      `json:"is_active"`
	Courses   []string  `json:"courses"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateLearnerDTO holds the data required by the repo to persist a new learner.
type CreateLearnerDTO struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	CreatedAt    time.Time
}

// Summary is the admin directory row for one learner.
type Summary struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Courses    int       `json:"courses"`
	Purchases  int       `json:"purchases"`
	TotalSpent int64     `json:"total_spent"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

// SummaryPage is one page of the admin directory. Total counts every learner.
type SummaryPage struct {
	Count      int       `json:"count"`
	Total      int64     `json:"total"`
	Items      []Summary `json:"items"`
	NextCursor string    `json:"next_cursor,omitempty"`
}

// FromModel maps a learner row and its entitled course ids into a DTO.
func FromModel(l *models.Learner, courses []string) *LearnerDTO {
	if l == nil {
		return nil
	}
	return &LearnerDTO{
		ID:        l.ID,
		Name:      l.Name,
		Email:     l.Email,
		Phone:     l.Phone,
		IsActive:  l.IsActive,
		Courses:   append([]string{}, courses...),
		CreatedAt: l.CreatedAt,
	}
}

func (c CreateLearnerDTO) ToModel() *models.Learner {
	return &models.Learner{
		ID:           c.ID,
		Name:         c.Name,
		Email:        c.Email,
		Phone:        c.Phone,
		PasswordHash: c.PasswordHash,
		IsActive:     true,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.CreatedAt,
	}
}
