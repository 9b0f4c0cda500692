package admins

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/angelmondragon/ssbcompass-backend/pkg/db/models"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// MemoryRepository keeps administrators in process memory.
type MemoryRepository struct {
	mu   sync.RWMutex
	byID map[string]models.Admin
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: make(map[string]models.Admin)}
}

func (r *MemoryRepository) Create(_ context.Context, dto CreateAdminDTO) (*models.Admin, error) {
	if !dto.Role.IsValid() {
		return nil, fmt.Errorf("invalid admin role %q", dto.Role)
	}
	admin := dto.ToModel()

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.byID[admin.ID]; taken {
		return nil, gorm.ErrDuplicatedKey
	}
	r.byID[admin.ID] = *admin
	return cloneAdmin(*admin), nil
}

func (r *MemoryRepository) FindByAdminID(_ context.Context, adminID string) (*models.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	admin, ok := r.byID[adminID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return cloneAdmin(admin), nil
}

func (r *MemoryRepository) UpdateLastLogin(_ context.Context, adminID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	admin, ok := r.byID[adminID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	admin.LastLoginAt = &at
	r.byID[adminID] = admin
	return nil
}

func cloneAdmin(a models.Admin) *models.Admin {
	a.Permissions = append(pq.StringArray{}, a.Permissions...)
	if a.LastLoginAt != nil {
		at := *a.LastLoginAt
		a.LastLoginAt = &at
	}
	return &a
}
