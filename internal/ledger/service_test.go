package ledger

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/angelmondragon/ssbcompass-backend/pkg/db/models"
	"github.com/angelmondragon/ssbcompass-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/ssbcompass-backend/pkg/errors"
)

type stubCatalog struct {
	courses map[string]models.Course
}

func (s stubCatalog) Get(_ context.Context, id string) (*models.Course, error) {
	course, ok := s.courses[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "course not found")
	}
	return &course, nil
}

type countingRecorder struct {
	mu        sync.Mutex
	purchases int
	failures  int
	refunds   int
}

func (r *countingRecorder) PurchaseRecorded(_ int64, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.failures++
		return
	}
	r.purchases++
}

func (r *countingRecorder) RefundRequested(error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refunds++
}

type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func testCatalog() stubCatalog {
	return stubCatalog{courses: map[string]models.Course{
		"VR":  {ID: "VR", Name: "Verbal Reasoning", Price: 999},
		"TAT": {ID: "TAT", Name: "TAT Course", Price: 1499},
	}}
}

func newTestService(t *testing.T, enforcePrice bool) (Service, *MemoryStore, *fixedClock, *countingRecorder) {
	t.Helper()
	store := NewMemoryStore()
	clock := &fixedClock{now: time.Date(2025, 1, 20, 10, 0, 0, 0, time.UTC)}
	rec := &countingRecorder{}
	svc, err := NewService(ServiceParams{
		Store:        store,
		Catalog:      testCatalog(),
		GracePeriod:  72 * time.Hour,
		EnforcePrice: enforcePrice,
		Clock:        clock.Now,
		Metrics:      rec,
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, store, clock, rec
}

func TestRecordPurchaseGrantsAccess(t *testing.T) {
	ctx := context.Background()
	svc, _, clock, rec := newTestService(t, true)

	purchase, err := svc.RecordPurchase(ctx, RecordPurchaseInput{
		LearnerID:      "learner-1",
		CourseID:       "TAT",
		Amount:         1499,
		TransactionRef: "TXN1",
	})
	if err != nil {
		t.Fatalf("record purchase: %v", err)
	}
	if purchase.Status != enums.PaymentStatusCompleted {
		t.Fatalf("expected completed status, got %s", purchase.Status)
	}
	if !purchase.CanRefund {
		t.Fatal("expected purchase to be refundable")
	}
	if want := clock.Now().Add(72 * time.Hour); !purchase.RefundDeadline.Equal(want) {
		t.Fatalf("expected deadline %v, got %v", want, purchase.RefundDeadline)
	}
	if purchase.Method != enums.PaymentMethodUPI {
		t.Fatalf("expected upi method, got %s", purchase.Method)
	}

	ok, err := svc.HasAccess(ctx, "learner-1", "TAT")
	if err != nil || !ok {
		t.Fatalf("expected access after purchase, ok=%v err=%v", ok, err)
	}
	courses, err := svc.Entitlements(ctx, "learner-1")
	if err != nil {
		t.Fatalf("entitlements: %v", err)
	}
	if len(courses) != 1 || courses[0] != "TAT" {
		t.Fatalf("unexpected entitlements %v", courses)
	}

	if _, err := svc.RecordPurchase(ctx, RecordPurchaseInput{LearnerID: "learner-1", CourseID: "VR", Amount: 999, TransactionRef: "TXN2"}); err != nil {
		t.Fatalf("second purchase: %v", err)
	}
	if ok, _ := svc.HasAccess(ctx, "learner-1", "TAT"); !ok {
		t.Fatal("access must survive unrelated purchases")
	}
	if rec.purchases != 2 {
		t.Fatalf("expected 2 recorded purchases, got %d", rec.purchases)
	}
}

func TestRecordPurchaseIsIdempotentForGrant(t *testing.T) {
	ctx := context.Background()
	svc, _, clock, _ := newTestService(t, true)

	input := RecordPurchaseInput{LearnerID: "learner-1", CourseID: "VR", Amount: 999, TransactionRef: "TXN1"}
	first, err := svc.RecordPurchase(ctx, input)
	if err != nil {
		t.Fatalf("first purchase: %v", err)
	}
	clock.Advance(time.Minute)
	input.TransactionRef = "TXN2"
	second, err := svc.RecordPurchase(ctx, input)
	if err != nil {
		t.Fatalf("second purchase: %v", err)
	}
	if first.ID == second.ID {
		t.Fatal("expected distinct purchase ids")
	}

	courses, _ := svc.Entitlements(ctx, "learner-1")
	if len(courses) != 1 {
		t.Fatalf("expected a single entitlement, got %v", courses)
	}
	history, err := svc.ListPurchases(ctx, "learner-1")
	if err != nil {
		t.Fatalf("list purchases: %v", err)
	}
	if len(history) != 2 || history[0].ID != first.ID || history[1].ID != second.ID {
		t.Fatalf("expected both purchases in order, got %+v", history)
	}
}

func TestRecordPurchaseUnknownCourseLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	svc, store, _, rec := newTestService(t, true)

	_, err := svc.RecordPurchase(ctx, RecordPurchaseInput{LearnerID: "learner-1", CourseID: "NOPE", Amount: 100, TransactionRef: "TXN1"})
	if !pkgerrors.IsCode(err, pkgerrors.CodeUnknownCourse) {
		t.Fatalf("expected unknown course, got %v", err)
	}
	all, _ := store.List(ctx)
	if len(all) != 0 {
		t.Fatalf("expected no purchases, got %d", len(all))
	}
	if ok, _ := store.HasEntitlement(ctx, "learner-1", "NOPE"); ok {
		t.Fatal("unexpected entitlement")
	}
	if rec.failures != 1 {
		t.Fatalf("expected failure to be recorded, got %d", rec.failures)
	}
}

func TestRecordPurchaseValidation(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestService(t, true)

	cases := map[string]RecordPurchaseInput{
		"missing learner":  {CourseID: "VR", Amount: 999, TransactionRef: "T"},
		"missing course":   {LearnerID: "l", Amount: 999, TransactionRef: "T"},
		"missing txn":      {LearnerID: "l", CourseID: "VR", Amount: 999},
		"zero amount":      {LearnerID: "l", CourseID: "VR", TransactionRef: "T"},
		"price mismatch":   {LearnerID: "l", CourseID: "VR", Amount: 1, TransactionRef: "T"},
		"negative amount":  {LearnerID: "l", CourseID: "VR", Amount: -999, TransactionRef: "T"},
		"whitespace ident": {LearnerID: "  ", CourseID: "VR", Amount: 999, TransactionRef: "T"},
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := svc.RecordPurchase(ctx, input); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestRecordPurchaseWithoutPriceEnforcement(t *testing.T) {
	svc, _, _, _ := newTestService(t, false)
	purchase, err := svc.RecordPurchase(context.Background(), RecordPurchaseInput{LearnerID: "l", CourseID: "VR", Amount: 1, TransactionRef: "T"})
	if err != nil {
		t.Fatalf("expected looser behavior to accept amount, got %v", err)
	}
	if purchase.Amount != 1 {
		t.Fatalf("expected amount 1, got %d", purchase.Amount)
	}
}

func TestRefundEligibleIsMonotonic(t *testing.T) {
	purchasedAt := time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)
	p := models.Purchase{CanRefund: true, RefundDeadline: purchasedAt.Add(72 * time.Hour)}

	if !RefundEligible(p, purchasedAt) {
		t.Fatal("expected eligible at purchase time")
	}
	if !RefundEligible(p, p.RefundDeadline.Add(-time.Nanosecond)) {
		t.Fatal("expected eligible just before the deadline")
	}
	if RefundEligible(p, p.RefundDeadline) {
		t.Fatal("expected ineligible at the deadline")
	}

	seenIneligible := false
	for at := purchasedAt; at.Before(purchasedAt.Add(10 * 24 * time.Hour)); at = at.Add(7 * time.Hour) {
		eligible := RefundEligible(p, at)
		if seenIneligible && eligible {
			t.Fatalf("eligibility returned at %v after lapsing", at)
		}
		if !eligible {
			seenIneligible = true
		}
	}

	p.CanRefund = false
	if RefundEligible(p, purchasedAt) {
		t.Fatal("can_refund=false must never be eligible")
	}
}

func TestRequestRefund(t *testing.T) {
	ctx := context.Background()
	svc, _, clock, rec := newTestService(t, true)

	purchase, err := svc.RecordPurchase(ctx, RecordPurchaseInput{LearnerID: "learner-1", CourseID: "VR", Amount: 999, TransactionRef: "TXN1"})
	if err != nil {
		t.Fatalf("record purchase: %v", err)
	}

	if _, err := svc.RequestRefund(ctx, "learner-2", purchase.ID); !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found for another learner, got %v", err)
	}

	clock.Advance(24 * time.Hour)
	refunded, err := svc.RequestRefund(ctx, "learner-1", purchase.ID)
	if err != nil {
		t.Fatalf("request refund: %v", err)
	}
	if refunded.Status != enums.PaymentStatusRefunded || refunded.CanRefund || refunded.RefundedAt == nil {
		t.Fatalf("unexpected refunded purchase %+v", refunded)
	}
	if ok, _ := svc.HasAccess(ctx, "learner-1", "VR"); ok {
		t.Fatal("expected access to be revoked after refund")
	}

	if _, err := svc.RequestRefund(ctx, "learner-1", purchase.ID); !pkgerrors.IsCode(err, pkgerrors.CodeStateConflict) {
		t.Fatalf("expected state conflict on second refund, got %v", err)
	}
	if rec.refunds != 3 {
		t.Fatalf("expected 3 refund attempts recorded, got %d", rec.refunds)
	}
}

func TestRequestRefundKeepsAccessWhileAnotherPurchaseCompleted(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestService(t, true)

	first, err := svc.RecordPurchase(ctx, RecordPurchaseInput{LearnerID: "learner-1", CourseID: "VR", Amount: 999, TransactionRef: "TXN1"})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if _, err := svc.RecordPurchase(ctx, RecordPurchaseInput{LearnerID: "learner-1", CourseID: "VR", Amount: 999, TransactionRef: "TXN2"}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if _, err := svc.RequestRefund(ctx, "learner-1", first.ID); err != nil {
		t.Fatalf("refund: %v", err)
	}
	if ok, _ := svc.HasAccess(ctx, "learner-1", "VR"); !ok {
		t.Fatal("expected access to remain through the second purchase")
	}
}

func TestRequestRefundAfterDeadline(t *testing.T) {
	ctx := context.Background()
	svc, _, clock, _ := newTestService(t, true)

	purchase, err := svc.RecordPurchase(ctx, RecordPurchaseInput{LearnerID: "learner-1", CourseID: "TAT", Amount: 1499, TransactionRef: "TXN1"})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	clock.Advance(72 * time.Hour)
	if _, err := svc.RequestRefund(ctx, "learner-1", purchase.ID); !pkgerrors.IsCode(err, pkgerrors.CodeStateConflict) {
		t.Fatalf("expected state conflict after deadline, got %v", err)
	}
	if ok, _ := svc.HasAccess(ctx, "learner-1", "TAT"); !ok {
		t.Fatal("failed refund must not revoke access")
	}
}

func TestConcurrentPurchasesGrantOnce(t *testing.T) {
	ctx := context.Background()
	svc, store, _, _ := newTestService(t, true)

	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.RecordPurchase(ctx, RecordPurchaseInput{LearnerID: "learner-1", CourseID: "VR", Amount: 999, TransactionRef: "TXN"})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent purchase: %v", err)
		}
	}

	all, _ := store.List(ctx)
	if len(all) != workers {
		t.Fatalf("expected %d purchases, got %d", workers, len(all))
	}
	held, _ := store.Entitlements(ctx, "learner-1")
	if len(held) != 1 {
		t.Fatalf("expected exactly one entitlement, got %d", len(held))
	}
}

func TestFindPurchaseHidesOtherLearners(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newTestService(t, true)
	purchase, err := svc.RecordPurchase(ctx, RecordPurchaseInput{LearnerID: "learner-1", CourseID: "VR", Amount: 999, TransactionRef: "TXN1"})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if _, err := svc.FindPurchase(ctx, "learner-1", purchase.ID); err != nil {
		t.Fatalf("owner lookup: %v", err)
	}
	if _, err := svc.FindPurchase(ctx, "learner-2", purchase.ID); !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := svc.FindPurchase(ctx, "learner-1", "missing"); !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListPurchasesEmpty(t *testing.T) {
	svc, _, _, _ := newTestService(t, true)
	rows, err := svc.ListPurchases(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if rows == nil || len(rows) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", rows)
	}
}

func TestNewServiceRequiresDeps(t *testing.T) {
	if _, err := NewService(ServiceParams{Catalog: testCatalog(), GracePeriod: time.Hour}); err == nil {
		t.Fatal("expected error without store")
	}
	if _, err := NewService(ServiceParams{Store: NewMemoryStore(), GracePeriod: time.Hour}); err == nil {
		t.Fatal("expected error without catalog")
	}
	if _, err := NewService(ServiceParams{Store: NewMemoryStore(), Catalog: testCatalog()}); err == nil {
		t.Fatal("expected error without grace period")
	}
}
