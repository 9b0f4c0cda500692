package catalog

import (
	"context"
	"fmt"

	"github.com/angelmondragon/ssbcompass-backend/pkg/db"
	"github.com/angelmondragon/ssbcompass-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Store persists catalog entries. Missing rows surface as gorm.ErrRecordNotFound
// and duplicate ids as gorm.ErrDuplicatedKey regardless of backend.
type Store interface {
	Create(ctx context.Context, course *models.Course) error
	FindByID(ctx context.Context, id string) (*models.Course, error)
	List(ctx context.Context) ([]models.Course, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id string) error
}

// Repository is the gorm-backed catalog store.
type Repository struct {
	db *gorm.DB
}

func NewRepository(conn *gorm.DB) *Repository {
	return &Repository{db: conn}
}

func (r *Repository) Create(ctx context.Context, course *models.Course) error {
	if err := r.db.WithContext(ctx).Create(course).Error; err != nil {
		if db.IsUniqueViolation(err, "") {
			return fmt.Errorf("%w: %v", gorm.ErrDuplicatedKey, err)
		}
		return err
	}
	return nil
}

func (r *Repository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	var course models.Course
	if err := r.db.WithContext(ctx).First(&course, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

// List returns courses in insertion order.
func (r *Repository) List(ctx context.Context) ([]models.Course, error) {
	var rows []models.Course
	if err := r.db.WithContext(ctx).Order("created_at ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) Update(ctx context.Context, course *models.Course) error {
	res := r.db.WithContext(ctx).Model(&models.Course{}).Where("id = ?", course.ID).Updates(map[string]any{
		"name":        course.Name,
		"description": course.Description,
		"price":       course.Price,
		"duration":    course.Duration,
		"category":    course.Category,
		"instructor":  course.Instructor,
		"enrolled":    course.Enrolled,
		"rating":      course.Rating,
		"updated_at":  course.UpdatedAt,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the course row only. Purchases referencing it are kept.
func (r *Repository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Course{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
