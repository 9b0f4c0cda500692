package events

import (
	"context"
	"sync"

	"github.com/angelmondragon/ssbcompass-backend/pkg/db/models"
	"gorm.io/gorm"
)

type MemoryRepository struct {
	mu   sync.RWMutex
	rows []models.Event
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Create(_ context.Context, event *models.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.rows {
		if existing.ID == event.ID {
			return gorm.ErrDuplicatedKey
		}
	}
	r.rows = append(r.rows, *event)
	return nil
}

func (r *MemoryRepository) List(_ context.Context) ([]models.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Event{}, r.rows...), nil
}
