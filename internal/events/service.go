package events

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/ssbcompass-backend/pkg/db/models"
	"github.com/angelmondragon/ssbcompass-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/ssbcompass-backend/pkg/errors"
	"github.com/angelmondragon/ssbcompass-backend/pkg/ids"
	"github.com/angelmondragon/ssbcompass-backend/pkg/validate"
)

// Service schedules upcoming workshops and webinars.
type Service interface {
	Create(ctx context.Context, input CreateEventInput) (*models.Event, error)
	List(ctx context.Context) ([]models.Event, error)
}

type service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store, clock func() time.Time) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("event store required")
	}
	if clock == nil {
		clock = time.Now
	}
	return &service{store: store, now: clock}, nil
}

func (s *service) Create(ctx context.Context, input CreateEventInput) (*models.Event, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Date = strings.TrimSpace(input.Date)
	if err := validate.Struct(&input); err != nil {
		return nil, err
	}
	category := strings.TrimSpace(input.Category)
	if category == "" {
		category = DefaultCategory
	}

	now := s.now().UTC()
	event := &models.Event{
		ID:          ids.Prefixed("EVT", now),
		Title:       input.Title,
		Description: strings.TrimSpace(input.Description),
		Category:    category,
		Date:        input.Date,
		Status:      enums.EventStatusScheduled,
		CreatedAt:   now,
	}
	if err := s.store.Create(ctx, event); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create event")
	}
	return event, nil
}

func (s *service) List(ctx context.Context) ([]models.Event, error) {
	rows, err := s.store.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list events")
	}
	if rows == nil {
		rows = []models.Event{}
	}
	return rows, nil
}
