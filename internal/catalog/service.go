package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/ssbcompass-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/ssbcompass-backend/pkg/errors"
	"github.com/angelmondragon/ssbcompass-backend/pkg/validate"
	"gorm.io/gorm"
)

// Service is the catalog accessor. Reads are public; writes are admin-gated at the transport.
type Service interface {
	Get(ctx context.Context, id string) (*models.Course, error)
	List(ctx context.Context) ([]models.Course, error)
	Create(ctx context.Context, input CreateCourseInput) (*models.Course, error)
	Update(ctx context.Context, id string, input UpdateCourseInput) (*models.Course, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	store Store
	now   func() time.Time
}

// NewService constructs a catalog service over the provided store.
func NewService(store Store, clock func() time.Time) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("catalog store required")
	}
	if clock == nil {
		clock = time.Now
	}
	return &service{store: store, now: clock}, nil
}

func (s *service) Get(ctx context.Context, id string) (*models.Course, error) {
	course, err := s.store.FindByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, mapStoreError(err, "load course")
	}
	return course, nil
}

func (s *service) List(ctx context.Context) ([]models.Course, error) {
	rows, err := s.store.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list courses")
	}
	if rows == nil {
		rows = []models.Course{}
	}
	return rows, nil
}

func (s *service) Create(ctx context.Context, input CreateCourseInput) (*models.Course, error) {
	input.ID = strings.TrimSpace(input.ID)
	input.Name = strings.TrimSpace(input.Name)
	input.Category = strings.TrimSpace(input.Category)
	input.Instructor = strings.TrimSpace(input.Instructor)
	if err := validate.Struct(&input); err != nil {
		return nil, err
	}

	course := input.toModel(s.now().UTC())
	if err := s.store.Create(ctx, course); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "course already exists").
				WithDetails(map[string]string{"id": course.ID})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create course")
	}
	return course, nil
}

func (s *service) Update(ctx context.Context, id string, input UpdateCourseInput) (*models.Course, error) {
	if err := validate.Struct(&input); err != nil {
		return nil, err
	}
	course, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	input.apply(course)
	course.UpdatedAt = s.now().UTC()
	if err := s.store.Update(ctx, course); err != nil {
		return nil, mapStoreError(err, "update course")
	}
	return course, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, strings.TrimSpace(id)); err != nil {
		return mapStoreError(err, "delete course")
	}
	return nil
}

func mapStoreError(err error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "course not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, op)
}
