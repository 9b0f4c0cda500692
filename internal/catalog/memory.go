package catalog

import (
	"context"
	"sync"

	"github.com/angelmondragon/ssbcompass-backend/pkg/db/models"
	"gorm.io/gorm"
)

// MemoryRepository keeps the catalog in process memory in insertion order.
type MemoryRepository struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]models.Course
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: make(map[string]models.Course)}
}

func (r *MemoryRepository) Create(_ context.Context, course *models.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.byID[course.ID]; taken {
		return gorm.ErrDuplicatedKey
	}
	r.byID[course.ID] = *course
	r.order = append(r.order, course.ID)
	return nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id string) (*models.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	course, ok := r.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &course, nil
}

func (r *MemoryRepository) List(_ context.Context) ([]models.Course, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Course, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}

func (r *MemoryRepository) Update(_ context.Context, course *models.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.byID[course.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	updated := *course
	updated.CreatedAt = existing.CreatedAt
	r.byID[course.ID] = updated
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.byID, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
