package learners

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/angelmondragon/ssbcompass-backend/pkg/db/dbtest"
	"github.com/angelmondragon/ssbcompass-backend/pkg/db/models"
	"github.com/angelmondragon/ssbcompass-backend/pkg/pagination"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type learnerStore interface {
	Create(ctx context.Context, dto CreateLearnerDTO) (*models.Learner, error)
	FindByEmail(ctx context.Context, email string) (*models.Learner, error)
	FindByID(ctx context.Context, id string) (*models.Learner, error)
	ListAfter(ctx context.Context, cursor *pagination.Cursor, limit int) ([]models.Learner, error)
	Counts(ctx context.Context) (int64, int64, error)
}

func TestRepositories(t *testing.T) {
	backends := map[string]func(t *testing.T) learnerStore{
		"memory": func(t *testing.T) learnerStore { return NewMemoryRepository() },
		"gorm":   func(t *testing.T) learnerStore { return NewRepository(dbtest.NewSQLite(t)) },
	}
	for name, build := range backends {
		t.Run(name, func(t *testing.T) {
			exerciseLearnerStore(t, build(t))
		})
	}
}

func exerciseLearnerStore(t *testing.T, repo learnerStore) {
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	first, err := repo.Create(ctx, CreateLearnerDTO{
		ID:           "learner-1",
		Name:         "Demo User",
		Email:        "demo@ssbcompass.com",
		Phone:        "9876543210",
		PasswordHash: "hash",
		CreatedAt:    base,
	})
	require.NoError(t, err)
	require.True(t, first.IsActive)

	_, err = repo.Create(ctx, CreateLearnerDTO{ID: "learner-2", Name: "Other", Email: "demo@ssbcompass.com", PasswordHash: "hash", CreatedAt: base})
	require.True(t, errors.Is(err, gorm.ErrDuplicatedKey), "expected duplicate key, got %v", err)

	_, err = repo.Create(ctx, CreateLearnerDTO{ID: "learner-2", Name: "Case", Email: "Demo@ssbcompass.com", PasswordHash: "hash", CreatedAt: base.Add(time.Second)})
	require.NoError(t, err, "email matching is case-sensitive")

	found, err := repo.FindByEmail(ctx, "demo@ssbcompass.com")
	require.NoError(t, err)
	require.Equal(t, "learner-1", found.ID)

	_, err = repo.FindByEmail(ctx, "missing@ssbcompass.com")
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	byID, err := repo.FindByID(ctx, "learner-2")
	require.NoError(t, err)
	require.Equal(t, "Demo@ssbcompass.com", byID.Email)

	_, err = repo.FindByID(ctx, "nope")
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	rows, err := repo.ListAfter(ctx, nil, 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "learner-1", rows[0].ID)
	require.Equal(t, "learner-2", rows[1].ID)

	page, err := repo.ListAfter(ctx, nil, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	require.Equal(t, "learner-1", page[0].ID)

	rest, err := repo.ListAfter(ctx, &pagination.Cursor{CreatedAt: page[0].CreatedAt, ID: page[0].ID}, 0)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	require.Equal(t, "learner-2", rest[0].ID)

	total, active, err := repo.Counts(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.EqualValues(t, 2, active)
}

func TestMemoryRepositoryReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	_, err := repo.Create(ctx, CreateLearnerDTO{ID: "l1", Name: "A", Email: "a@x.com", PasswordHash: "h"})
	require.NoError(t, err)

	got, err := repo.FindByID(ctx, "l1")
	require.NoError(t, err)
	got.Name = "mutated"

	again, err := repo.FindByID(ctx, "l1")
	require.NoError(t, err)
	require.Equal(t, "A", again.Name)
}
