package learners

import (
	"context"
	"fmt"

	"github.com/angelmondragon/ssbcompass-backend/pkg/db"
	"github.com/angelmondragon/ssbcompass-backend/pkg/db/models"
	"github.com/angelmondragon/ssbcompass-backend/pkg/pagination"
	"gorm.io/gorm"
)

// Repository persists learners through gorm.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a learners repo bound to the provided GORM DB.
func NewRepository(conn *gorm.DB) *Repository {
	return &Repository{db: conn}
}

// Create inserts a new learner. A taken email surfaces as gorm.ErrDuplicatedKey.
func (r *Repository) Create(ctx context.Context, dto CreateLearnerDTO) (*models.Learner, error) {
	learner := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(learner).Error; err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, fmt.Errorf("%w: %v", gorm.ErrDuplicatedKey, err)
		}
		return nil, err
	}
	return learner, nil
}

// FindByEmail matches the email exactly, including case.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.Learner, error) {
	var learner models.Learner
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&learner).Error; err != nil {
		return nil, err
	}
	return &learner, nil
}

// FindByID loads a learner by id.
func (r *Repository) FindByID(ctx context.Context, id string) (*models.Learner, error) {
	var learner models.Learner
	if err := r.db.WithContext(ctx).First(&learner, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &learner, nil
}

// ListAfter returns up to limit learners that sort after cursor in registration
// order. A zero limit returns every remaining row.
func (r *Repository) ListAfter(ctx context.Context, cursor *pagination.Cursor, limit int) ([]models.Learner, error) {
	query := r.db.WithContext(ctx).Model(&models.Learner{})
	if cursor != nil {
		query = query.Where("created_at > ? OR (created_at = ? AND id > ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var rows []models.Learner
	if err := query.Order("created_at ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Counts returns the total and active learner counts.
func (r *Repository) Counts(ctx context.Context) (total int64, active int64, err error) {
	if err = r.db.WithContext(ctx).Model(&models.Learner{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err = r.db.WithContext(ctx).Model(&models.Learner{}).Where("is_active = ?", true).Count(&active).Error; err != nil {
		return 0, 0, err
	}
	return total, active, nil
}
