package candidates

import (
	"context"
	"sync"

	"github.com/angelmondragon/ssbcompass-backend/pkg/db/models"
	"gorm.io/gorm"
)

type MemoryRepository struct {
	mu   sync.RWMutex
	rows []models.Candidate
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Create(_ context.Context, candidate *models.Candidate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.rows {
		if existing.ID == candidate.ID {
			return gorm.ErrDuplicatedKey
		}
	}
	r.rows = append(r.rows, cloneCandidate(*candidate))
	return nil
}

func (r *MemoryRepository) List(_ context.Context) ([]models.Candidate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Candidate, 0, len(r.rows))
	for _, row := range r.rows {
		out = append(out, cloneCandidate(row))
	}
	return out, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, row := range r.rows {
		if row.ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func cloneCandidate(c models.Candidate) models.Candidate {
	c.Courses = append([]string(nil), c.Courses...)
	return c
}
