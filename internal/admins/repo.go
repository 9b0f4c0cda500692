package admins

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/ssbcompass-backend/pkg/db"
	"github.com/angelmondragon/ssbcompass-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository persists administrators through gorm.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an admins repo bound to the provided GORM DB.
func NewRepository(conn *gorm.DB) *Repository {
	return &Repository{db: conn}
}

// Create inserts an administrator. A taken admin id surfaces as gorm.ErrDuplicatedKey.
func (r *Repository) Create(ctx context.Context, dto CreateAdminDTO) (*models.Admin, error) {
	if !dto.Role.IsValid() {
		return nil, fmt.Errorf("invalid admin role %q", dto.Role)
	}
	admin := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(admin).Error; err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, fmt.Errorf("%w: %v", gorm.ErrDuplicatedKey, err)
		}
		return nil, err
	}
	return admin, nil
}

// FindByAdminID loads an administrator by login handle.
func (r *Repository) FindByAdminID(ctx context.Context, adminID string) (*models.Admin, error) {
	var admin models.Admin
	if err := r.db.WithContext(ctx).First(&admin, "id = ?", adminID).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

// UpdateLastLogin refreshes the administrator's last_login_at timestamp.
func (r *Repository) UpdateLastLogin(ctx context.Context, adminID string, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&models.Admin{}).
		Where("id = ?", adminID).
		UpdateColumn("last_login_at", at)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
