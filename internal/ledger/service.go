package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/angelmondragon/ssbcompass-backend/pkg/db/models"
	"github.com/angelmondragon/ssbcompass-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/ssbcompass-backend/pkg/errors"
	"github.com/angelmondragon/ssbcompass-backend/pkg/ids"
	"gorm.io/gorm"
)

// Service records purchases and answers entitlement questions.
type Service interface {
	RecordPurchase(ctx context.Context, input RecordPurchaseInput) (*models.Purchase, error)
	ListPurchases(ctx context.Context, learnerID string) ([]models.Purchase, error)
	AllPurchases(ctx context.Context) ([]models.Purchase, error)
	FindPurchase(ctx context.Context, learnerID, purchaseID string) (*models.Purchase, error)
	RequestRefund(ctx context.Context, learnerID, purchaseID string) (*models.Purchase, error)
	HasAccess(ctx context.Context, learnerID, courseID string) (bool, error)
	Entitlements(ctx context.Context, learnerID string) ([]string, error)
	RefundEligible(p models.Purchase, now time.Time) bool
}

// RecordPurchaseInput captures a claimed payment. PurchasedAt defaults to the service clock.
type RecordPurchaseInput struct {
	LearnerID      string
	CourseID       string
	Amount         int64
	TransactionRef string
	PurchasedAt    time.Time
}

type courseLookup interface {
	Get(ctx context.Context, id string) (*models.Course, error)
}

type recorder interface {
	PurchaseRecorded(amount int64, err error)
	RefundRequested(err error)
}

// ServiceParams bundles the dependencies required to build a ledger service.
type ServiceParams struct {
	Store        Store
	Catalog      courseLookup
	GracePeriod  time.Duration
	EnforcePrice bool
	Clock        func() time.Time
	Metrics      recorder
}

type service struct {
	// mu serializes the write path so concurrent purchases for one learner
	// cannot interleave their grant side effects.
	mu sync.Mutex

	store        Store
	catalog      courseLookup
	grace        time.Duration
	enforcePrice bool
	now          func() time.Time
	metrics      recorder
}

// NewService wires a ledger service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("ledger store required")
	}
	if params.Catalog == nil {
		return nil, fmt.Errorf("catalog required")
	}
	if params.GracePeriod <= 0 {
		return nil, fmt.Errorf("refund grace period must be positive")
	}
	clock := params.Clock
	if clock == nil {
		clock = time.Now
	}
	return &service{
		store:        params.Store,
		catalog:      params.Catalog,
		grace:        params.GracePeriod,
		enforcePrice: params.EnforcePrice,
		now:          clock,
		metrics:      params.Metrics,
	}, nil
}

// RefundEligible is the only refund deadline comparison in the codebase.
func RefundEligible(p models.Purchase, now time.Time) bool {
	return p.CanRefund && now.Before(p.RefundDeadline)
}

func (s *service) RefundEligible(p models.Purchase, now time.Time) bool {
	return RefundEligible(p, now)
}

func (s *service) RecordPurchase(ctx context.Context, input RecordPurchaseInput) (purchase *models.Purchase, err error) {
	defer func() {
		if s.metrics != nil {
			amount := int64(0)
			if purchase != nil {
				amount = purchase.Amount
			}
			s.metrics.PurchaseRecorded(amount, err)
		}
	}()

	if err := validatePurchaseInput(input); err != nil {
		return nil, err
	}

	course, err := s.catalog.Get(ctx, input.CourseID)
	if err != nil {
		if pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnknownCourse, fmt.Sprintf("course %s does not exist", input.CourseID)).
				WithDetails(map[string]string{"course_id": input.CourseID})
		}
		return nil, err
	}
	if s.enforcePrice && input.Amount != course.Price {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount does not match course price").
			WithDetails(map[string]any{"amount": input.Amount, "price": course.Price})
	}

	at := input.PurchasedAt
	if at.IsZero() {
		at = s.now()
	}
	at = at.UTC()

	record := &models.Purchase{
		ID:             ids.NewAt(at),
		LearnerID:      input.LearnerID,
		CourseID:       course.ID,
		Amount:         input.Amount,
		TransactionRef: strings.TrimSpace(input.TransactionRef),
		Method:         enums.PaymentMethodUPI,
		Status:         enums.PaymentStatusCompleted,
		PurchasedAt:    at,
		CanRefund:      true,
		RefundDeadline: at.Add(s.grace),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.store.Append(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "record purchase")
	}
	return record, nil
}

func validatePurchaseInput(input RecordPurchaseInput) error {
	missing := map[string]string{}
	if strings.TrimSpace(input.LearnerID) == "" {
		missing["learner_id"] = "required"
	}
	if strings.TrimSpace(input.CourseID) == "" {
		missing["course_id"] = "required"
	}
	if strings.TrimSpace(input.TransactionRef) == "" {
		missing["transaction_ref"] = "required"
	}
	if input.Amount <= 0 {
		missing["amount"] = "must be positive"
	}
	if len(missing) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid purchase").WithDetails(missing)
	}
	return nil
}

func (s *service) ListPurchases(ctx context.Context, learnerID string) ([]models.Purchase, error) {
	rows, err := s.store.ListByLearner(ctx, learnerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list purchases")
	}
	if rows == nil {
		rows = []models.Purchase{}
	}
	return rows, nil
}

func (s *service) AllPurchases(ctx context.Context) ([]models.Purchase, error) {
	rows, err := s.store.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list purchases")
	}
	return rows, nil
}

// FindPurchase hides purchases owned by other learners behind NotFound.
func (s *service) FindPurchase(ctx context.Context, learnerID, purchaseID string) (*models.Purchase, error) {
	purchase, err := s.store.FindByID(ctx, purchaseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "purchase not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load purchase")
	}
	if purchase.LearnerID != learnerID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "purchase not found")
	}
	return purchase, nil
}

func (s *service) RequestRefund(ctx context.Context, learnerID, purchaseID string) (refunded *models.Purchase, err error) {
	defer func() {
		if s.metrics != nil {
			s.metrics.RefundRequested(err)
		}
	}()

	s.mu.Lock()
	defer s.mu.Unlock()

	purchase, err := s.FindPurchase(ctx, learnerID, purchaseID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if purchase.Status != enums.PaymentStatusCompleted || !RefundEligible(*purchase, now) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "refund window closed").
			WithDetails(map[string]any{"status": purchase.Status, "refund_deadline": purchase.RefundDeadline})
	}

	if _, err := s.store.MarkRefunded(ctx, purchase.ID, now.UTC()); err != nil {
		if errors.Is(err, ErrNotRefundable) {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "purchase already refunded")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "refund purchase")
	}
	return s.store.FindByID(ctx, purchase.ID)
}

func (s *service) HasAccess(ctx context.Context, learnerID, courseID string) (bool, error) {
	ok, err := s.store.HasEntitlement(ctx, learnerID, courseID)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check entitlement")
	}
	return ok, nil
}

func (s *service) Entitlements(ctx context.Context, learnerID string) ([]string, error) {
	rows, err := s.store.Entitlements(ctx, learnerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list entitlements")
	}
	courses := make([]string, 0, len(rows))
	for _, row := range rows {
		courses = append(courses, row.CourseID)
	}
	return courses, nil
}
