package candidates

import (
	"time"

	"github.com/angelmondragon/ssbcompass-backend/pkg/db/models"
)

const (
	DefaultService = "Armed Forces"
	DefaultPhoto   = "default-avatar.jpg"
)

// CreateCandidateInput is the admin payload for a new success story.
type CreateCandidateInput struct {
	Name          string   `json:"name" validate:"required,max=200"`
	Position      string   `json:"position" validate:"required,max=200"`
	Service       string   `json:"service" validate:"max=100"`
	SelectionDate string   `json:"selection_date" validate:"omitempty,isodate"`
	Photo         string   `json:"photo" validate:"max=255"`
	Testimonial   string   `json:"testimonial" validate:"max=4000"`
	Batch         string   `json:"batch" validate:"max=16"`
	Courses       []string `json:"courses" validate:"max=32,dive,required"`
}

type CandidateDTO struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Position      string    `json:"position"`
	Service       string    `json:"service"`
	SelectionDate string    `json:"selection_date"`
	Photo         string    `json:"photo"`
	Testimonial   string    `json:"testimonial"`
	Batch         string    `json:"batch"`
	Courses       []string  `json:"courses"`
	AddedAt       time.Time `json:"added_at"`
}

func FromModel(c models.Candidate) CandidateDTO {
	return CandidateDTO{
		ID:            c.ID,
		Name:          c.Name,
		Position:      c.Position,
		Service:       c.Service,
		SelectionDate: c.SelectionDate,
		Photo:         c.Photo,
		Testimonial:   c.Testimonial,
		Batch:         c.Batch,
		Courses:       append([]string{}, c.Courses...),
		AddedAt:       c.AddedAt,
	}
}

func FromModels(rows []models.Candidate) []CandidateDTO {
	out := make([]CandidateDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromModel(row))
	}
	return out
}
