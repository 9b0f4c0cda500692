package events

import (
	"time"

	"github.com/angelmondragon/ssbcompass-backend/pkg/db/models"
	"github.com/angelmondragon/ssbcompass-backend/pkg/enums"
)

const DefaultCategory = "Workshop"

// CreateEventInput is the admin payload for a future event. Date is YYYY-MM-DD.
type CreateEventInput struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=4000"`
	Date        string `json:"date" validate:"required,isodate"`
	Category    string `json:"category" validate:"max=64"`
}

type EventDTO struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Category    string            `json:"category"`
	Date        string            `json:"date"`
	Status      enums.EventStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
}

func FromModel(e models.Event) EventDTO {
	return EventDTO{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Category:    e.Category,
		Date:        e.Date,
		Status:      e.Status,
		CreatedAt:   e.CreatedAt,
	}
}

func FromModels(rows []models.Event) []EventDTO {
	out := make([]EventDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromModel(row))
	}
	return out
}
