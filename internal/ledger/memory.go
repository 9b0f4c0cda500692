package ledger

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/angelmondragon/ssbcompass-backend/pkg/db/models"
	"github.com/angelmondragon/ssbcompass-backend/pkg/enums"
	"gorm.io/gorm"
)

// MemoryStore keeps the ledger in process memory.
type MemoryStore struct {
	mu           sync.RWMutex
	purchases    []models.Purchase
	byID         map[string]int
	entitlements map[string]map[string]models.Entitlement
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:         make(map[string]int),
		entitlements: make(map[string]map[string]models.Entitlement),
	}
}

func (m *MemoryStore) Append(_ context.Context, purchase *models.Purchase) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byID[purchase.ID]; exists {
		return false, gorm.ErrDuplicatedKey
	}
	m.byID[purchase.ID] = len(m.purchases)
	m.purchases = append(m.purchases, clonePurchase(*purchase))

	held := m.entitlements[purchase.LearnerID]
	if held == nil {
		held = make(map[string]models.Entitlement)
		m.entitlements[purchase.LearnerID] = held
	}
	if _, ok := held[purchase.CourseID]; ok {
		return false, nil
	}
	held[purchase.CourseID] = models.Entitlement{
		LearnerID:  purchase.LearnerID,
		CourseID:   purchase.CourseID,
		PurchaseID: purchase.ID,
		GrantedAt:  purchase.PurchasedAt,
	}
	return true, nil
}

func (m *MemoryStore) FindByID(_ context.Context, id string) (*models.Purchase, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	idx, ok := m.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	p := clonePurchase(m.purchases[idx])
	return &p, nil
}

func (m *MemoryStore) ListByLearner(_ context.Context, learnerID string) ([]models.Purchase, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Purchase, 0)
	for _, p := range m.purchases {
		if p.LearnerID == learnerID {
			out = append(out, clonePurchase(p))
		}
	}
	sortByPurchasedAt(out)
	return out, nil
}

func (m *MemoryStore) List(_ context.Context) ([]models.Purchase, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Purchase, 0, len(m.purchases))
	for _, p := range m.purchases {
		out = append(out, clonePurchase(p))
	}
	sortByPurchasedAt(out)
	return out, nil
}

func (m *MemoryStore) MarkRefunded(_ context.Context, id string, at time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx, ok := m.byID[id]
	if !ok {
		return false, gorm.ErrRecordNotFound
	}
	purchase := &m.purchases[idx]
	if purchase.Status != enums.PaymentStatusCompleted {
		return false, ErrNotRefundable
	}
	refundedAt := at
	purchase.Status = enums.PaymentStatusRefunded
	purchase.CanRefund = false
	purchase.RefundedAt = &refundedAt

	for _, other := range m.purchases {
		if other.LearnerID == purchase.LearnerID && other.CourseID == purchase.CourseID && other.Status == enums.PaymentStatusCompleted {
			return false, nil
		}
	}
	held := m.entitlements[purchase.LearnerID]
	if _, ok := held[purchase.CourseID]; !ok {
		return false, nil
	}
	delete(held, purchase.CourseID)
	return true, nil
}

func (m *MemoryStore) Entitlements(_ context.Context, learnerID string) ([]models.Entitlement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	held := m.entitlements[learnerID]
	out := make([]models.Entitlement, 0, len(held))
	for _, e := range held {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CourseID < out[j].CourseID })
	return out, nil
}

func (m *MemoryStore) HasEntitlement(_ context.Context, learnerID, courseID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.entitlements[learnerID][courseID]
	return ok, nil
}

func sortByPurchasedAt(rows []models.Purchase) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].PurchasedAt.Before(rows[j].PurchasedAt)
	})
}

func clonePurchase(p models.Purchase) models.Purchase {
	if p.ExpiresAt != nil {
		at := *p.ExpiresAt
		p.ExpiresAt = &at
	}
	if p.RefundedAt != nil {
		at := *p.RefundedAt
		p.RefundedAt = &at
	}
	return p
}
