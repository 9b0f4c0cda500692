package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/ssbcompass-backend/internal/ledger"
	"github.com/angelmondragon/ssbcompass-backend/pkg/db/models"
	"github.com/angelmondragon/ssbcompass-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/ssbcompass-backend/pkg/errors"
)

// Service computes admin dashboard aggregates. It only reads.
type Service interface {
	Dashboard(ctx context.Context, now time.Time) (*Dashboard, error)
}

type learnerCounter interface {
	Counts(ctx context.Context) (total int64, active int64, err error)
}

type purchaseReader interface {
	AllPurchases(ctx context.Context) ([]models.Purchase, error)
}

type courseLister interface {
	List(ctx context.Context) ([]models.Course, error)
}

type service struct {
	learners  learnerCounter
	purchases purchaseReader
	catalog   courseLister
}

// NewService builds the dashboard service over the learner, ledger and catalog readers.
func NewService(learners learnerCounter, purchases purchaseReader, catalog courseLister) (Service, error) {
	if learners == nil {
		return nil, fmt.Errorf("learner counter required")
	}
	if purchases == nil {
		return nil, fmt.Errorf("purchase reader required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog required")
	}
	return &service{learners: learners, purchases: purchases, catalog: catalog}, nil
}

func (s *service) Dashboard(ctx context.Context, now time.Time) (*Dashboard, error) {
	total, active, err := s.learners.Counts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count learners")
	}
	purchases, err := s.purchases.AllPurchases(ctx)
	if err != nil {
		return nil, err
	}
	courses, err := s.catalog.List(ctx)
	if err != nil {
		return nil, err
	}

	out := &Dashboard{
		TotalUsers:     total,
		ActiveUsers:    active,
		TotalPurchases: len(purchases),
		TopCourse:      topCourse(courses),
		GeneratedAt:    now.UTC(),
	}
	for _, p := range purchases {
		if p.Status == enums.PaymentStatusCompleted {
			out.TotalRevenue += p.Amount
			out.CompletedPurchases++
		}
		if ledger.RefundEligible(p, now) {
			out.PendingRefunds++
		}
	}
	return out, nil
}

// topCourse keeps the first course with the highest enrollment in catalog order.
func topCourse(courses []models.Course) *TopCourse {
	var best *models.Course
	for i := range courses {
		if best == nil || courses[i].Enrolled > best.Enrolled {
			best = &courses[i]
		}
	}
	if best == nil {
		return nil
	}
	return &TopCourse{ID: best.ID, Name: best.Name, Enrolled: best.Enrolled}
}
