package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/angelmondragon/ssbcompass-backend/internal/admins"
	"github.com/angelmondragon/ssbcompass-backend/internal/learners"
	"github.com/angelmondragon/ssbcompass-backend/pkg/db/models"
	"github.com/angelmondragon/ssbcompass-backend/pkg/enums"
	"gorm.io/gorm"
)

type learnerStore interface {
	Create(ctx context.Context, dto learners.CreateLearnerDTO) (*models.Learner, error)
	FindByEmail(ctx context.Context, email string) (*models.Learner, error)
}

type adminStore interface {
	Create(ctx context.Context, dto admins.CreateAdminDTO) (*models.Admin, error)
}

type courseStore interface {
	Create(ctx context.Context, course *models.Course) error
}

type purchaseStore interface {
	Append(ctx context.Context, p *models.Purchase) (bool, error)
}

type candidateStore interface {
	Create(ctx context.Context, candidate *models.Candidate) error
}

type eventStore interface {
	Create(ctx context.Context, event *models.Event) error
}

type hasher interface {
	Hash(password string) (string, error)
}

// Params wires the stores the demo data is written to.
type Params struct {
	Learners    learnerStore
	Admins      adminStore
	Courses     courseStore
	Purchases   purchaseStore
	Candidates  candidateStore
	Events      eventStore
	Hasher      hasher
	GracePeriod time.Duration
}

// Load writes the demo learner, admin, catalog, purchases, candidates and events.
// It reports false without writing anything when the demo learner already exists.
func Load(ctx context.Context, p Params) (bool, error) {
	if p.Learners == nil || p.Admins == nil || p.Courses == nil || p.Purchases == nil ||
		p.Candidates == nil || p.Events == nil || p.Hasher == nil {
		return false, fmt.Errorf("seed: all stores and a hasher are required")
	}
	if p.GracePeriod <= 0 {
		return false, fmt.Errorf("seed: grace period must be positive")
	}

	if _, err := p.Learners.FindByEmail(ctx, DemoLearnerEmail); err == nil {
		return false, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("seed: check demo learner: %w", err)
	}

	for _, course := range demoCourses() {
		course := course
		if err := p.Courses.Create(ctx, &course); err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, fmt.Errorf("seed: course %s: %w", course.ID, err)
		}
	}

	learnerHash, err := p.Hasher.Hash(DemoLearnerPassword)
	if err != nil {
		return false, fmt.Errorf("seed: hash learner password: %w", err)
	}
	if _, err := p.Learners.Create(ctx, learners.CreateLearnerDTO{
		ID:           demoLearnerID,
		Name:         "Demo User",
		Email:        DemoLearnerEmail,
		Phone:        "9876543210",
		PasswordHash: learnerHash,
		CreatedAt:    day(2025, 1, 1),
	}); err != nil {
		return false, fmt.Errorf("seed: demo learner: %w", err)
	}

	adminHash, err := p.Hasher.Hash(DemoAdminPassword)
	if err != nil {
		return false, fmt.Errorf("seed: hash admin password: %w", err)
	}
	if _, err := p.Admins.Create(ctx, admins.CreateAdminDTO{
		AdminID:      DemoAdminID,
		Email:        "admin@ssbcompass.com",
		FullName:     "Ms. Vishnupriya Ahlawat",
		PasswordHash: adminHash,
		Role:         enums.AdminRoleSuperAdmin,
		Permissions:  []string{"all"},
		CreatedAt:    day(2025, 1, 1),
	}); err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		return false, fmt.Errorf("seed: demo admin: %w", err)
	}

	for _, purchase := range demoPurchases(p.GracePeriod) {
		purchase := purchase
		if _, err := p.Purchases.Append(ctx, &purchase); err != nil {
			return false, fmt.Errorf("seed: purchase %s: %w", purchase.ID, err)
		}
	}
	for _, candidate := range demoCandidates() {
		candidate := candidate
		if err := p.Candidates.Create(ctx, &candidate); err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, fmt.Errorf("seed: candidate %s: %w", candidate.ID, err)
		}
	}
	for _, event := range demoEvents() {
		event := event
		if err := p.Events.Create(ctx, &event); err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, fmt.Errorf("seed: event %s: %w", event.ID, err)
		}
	}
	return true, nil
}
