package candidates

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/angelmondragon/ssbcompass-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/ssbcompass-backend/pkg/errors"
	"github.com/angelmondragon/ssbcompass-backend/pkg/ids"
	"github.com/angelmondragon/ssbcompass-backend/pkg/validate"
	"gorm.io/gorm"
)

// Service manages the selected-candidates showcase.
type Service interface {
	Create(ctx context.Context, input CreateCandidateInput) (*models.Candidate, error)
	List(ctx context.Context) ([]models.Candidate, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store, clock func() time.Time) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("candidate store required")
	}
	if clock == nil {
		clock = time.Now
	}
	return &service{store: store, now: clock}, nil
}

func (s *service) Create(ctx context.Context, input CreateCandidateInput) (*models.Candidate, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Position = strings.TrimSpace(input.Position)
	if err := validate.Struct(&input); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	candidate := &models.Candidate{
		ID:            ids.Prefixed("CAND", now),
		Name:          input.Name,
		Position:      input.Position,
		Service:       orDefault(input.Service, DefaultService),
		SelectionDate: input.SelectionDate,
		Photo:         orDefault(input.Photo, DefaultPhoto),
		Testimonial:   strings.TrimSpace(input.Testimonial),
		Batch:         orDefault(input.Batch, strconv.Itoa(now.Year())),
		Courses:       append([]string{}, input.Courses...),
		AddedAt:       now,
	}
	if err := s.store.Create(ctx, candidate); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create candidate")
	}
	return candidate, nil
}

func (s *service) List(ctx context.Context) ([]models.Candidate, error) {
	rows, err := s.store.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list candidates")
	}
	if rows == nil {
		rows = []models.Candidate{}
	}
	return rows, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, strings.TrimSpace(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "candidate not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete candidate")
	}
	return nil
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}
