package main

import (
	"context"
	"time"

	"github.com/angelmondragon/ssbcompass-backend/internal/admins"
	"github.com/angelmondragon/ssbcompass-backend/internal/candidates"
	"github.com/angelmondragon/ssbcompass-backend/internal/catalog"
	"github.com/angelmondragon/ssbcompass-backend/internal/events"
	"github.com/angelmondragon/ssbcompass-backend/internal/learners"
	"github.com/angelmondragon/ssbcompass-backend/internal/ledger"
	"github.com/angelmondragon/ssbcompass-backend/pkg/db"
	"github.com/angelmondragon/ssbcompass-backend/pkg/db/models"
	"github.com/angelmondragon/ssbcompass-backend/pkg/pagination"
)

type learnerStore interface {
	Create(ctx context.Context, dto learners.CreateLearnerDTO) (*models.Learner, error)
	FindByEmail(ctx context.Context, email string) (*models.Learner, error)
	FindByID(ctx context.Context, id string) (*models.Learner, error)
	ListAfter(ctx context.Context, cursor *pagination.Cursor, limit int) ([]models.Learner, error)
	Counts(ctx context.Context) (total int64, active int64, err error)
}

type adminStore interface {
	Create(ctx context.Context, dto admins.CreateAdminDTO) (*models.Admin, error)
	FindByAdminID(ctx context.Context, adminID string) (*models.Admin, error)
	UpdateLastLogin(ctx context.Context, adminID string, at time.Time) error
}

// stores groups the repositories behind every service, either all in memory
// or all on the shared gorm connection.
type stores struct {
	learners   learnerStore
	admins     adminStore
	courses    catalog.Store
	purchases  ledger.Store
	candidates candidates.Store
	events     events.Store
}

func memoryStores() stores {
	return stores{
		learners:   learners.NewMemoryRepository(),
		admins:     admins.NewMemoryRepository(),
		courses:    catalog.NewMemoryRepository(),
		purchases:  ledger.NewMemoryStore(),
		candidates: candidates.NewMemoryRepository(),
		events:     events.NewMemoryRepository(),
	}
}

func gormStores(client *db.Client) stores {
	conn := client.DB()
	return stores{
		learners:   learners.NewRepository(conn),
		admins:     admins.NewRepository(conn),
		courses:    catalog.NewRepository(conn),
		purchases:  ledger.NewRepository(conn),
		candidates: candidates.NewRepository(conn),
		events:     events.NewRepository(conn),
	}
}
