package events

import (
	"context"
	"fmt"

	"github.com/angelmondragon/ssbcompass-backend/pkg/db"
	"github.com/angelmondragon/ssbcompass-backend/pkg/db/models"
	"gorm.io/gorm"
)

type Store interface {
	Create(ctx context.Context, event *models.Event) error
	List(ctx context.Context) ([]models.Event, error)
}

type Repository struct {
	db *gorm.DB
}

func NewRepository(conn *gorm.DB) *Repository {
	return &Repository{db: conn}
}

func (r *Repository) Create(ctx context.Context, event *models.Event) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		if db.IsUniqueViolation(err, "") {
			return fmt.Errorf("%w: %v", gorm.ErrDuplicatedKey, err)
		}
		return err
	}
	return nil
}

func (r *Repository) List(ctx context.Context) ([]models.Event, error) {
	var rows []models.Event
	if err := r.db.WithContext(ctx).Order("created_at ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
