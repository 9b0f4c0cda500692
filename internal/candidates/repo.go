package candidates

import (
	"context"
	"fmt"

	"github.com/angelmondragon/ssbcompass-backend/pkg/db"
	"github.com/angelmondragon/ssbcompass-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Store persists candidates. Missing rows surface as gorm.ErrRecordNotFound.
type Store interface {
	Create(ctx context.Context, candidate *models.Candidate) error
	List(ctx context.Context) ([]models.Candidate, error)
	Delete(ctx context.Context, id string) error
}

type Repository struct {
	db *gorm.DB
}

func NewRepository(conn *gorm.DB) *Repository {
	return &Repository{db: conn}
}

func (r *Repository) Create(ctx context.Context, candidate *models.Candidate) error {
	if err := r.db.WithContext(ctx).Create(candidate).Error; err != nil {
		if db.IsUniqueViolation(err, "") {
			return fmt.Errorf("%w: %v", gorm.ErrDuplicatedKey, err)
		}
		return err
	}
	return nil
}

func (r *Repository) List(ctx context.Context) ([]models.Candidate, error) {
	var rows []models.Candidate
	if err := r.db.WithContext(ctx).Order("added_at ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Candidate{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
