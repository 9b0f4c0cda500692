package learners

import (
	"context"
	"sort"
	"sync"

	"github.com/angelmondragon/ssbcompass-backend/pkg/db/models"
	"github.com/angelmondragon/ssbcompass-backend/pkg/pagination"
	"gorm.io/gorm"
)

// MemoryRepository keeps learners in process memory. It mirrors Repository's
// error contract so services need not know which backend is wired.
type MemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]models.Learner
	byEmail map[string]string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[string]models.Learner),
		byEmail: make(map[string]string),
	}
}

func (r *MemoryRepository) Create(_ context.Context, dto CreateLearnerDTO) (*models.Learner, error) {
	learner := dto.ToModel()

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.byEmail[learner.Email]; taken {
		return nil, gorm.ErrDuplicatedKey
	}
	if _, taken := r.byID[learner.ID]; taken {
		return nil, gorm.ErrDuplicatedKey
	}
	r.byID[learner.ID] = *learner
	r.byEmail[learner.Email] = learner.ID

	out := *learner
	return &out, nil
}

func (r *MemoryRepository) FindByEmail(_ context.Context, email string) (*models.Learner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	learner := r.byID[id]
	return &learner, nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id string) (*models.Learner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	learner, ok := r.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &learner, nil
}

func (r *MemoryRepository) ListAfter(_ context.Context, cursor *pagination.Cursor, limit int) ([]models.Learner, error) {
	r.mu.RLock()
	rows := make([]models.Learner, 0, len(r.byID))
	for _, learner := range r.byID {
		if cursor == nil || cursor.After(learner.CreatedAt, learner.ID) {
			rows = append(rows, learner)
		}
	}
	r.mu.RUnlock()

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].ID < rows[j].ID
		}
		return rows[i].CreatedAt.Before(rows[j].CreatedAt)
	})
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (r *MemoryRepository) Counts(_ context.Context) (int64, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var active int64
	for _, learner := range r.byID {
		if learner.IsActive {
			active++
		}
	}
	return int64(len(r.byID)), active, nil
}
