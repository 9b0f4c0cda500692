package payments

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/ssbcompass-backend/internal/ledger"
	"github.com/angelmondragon/ssbcompass-backend/pkg/config"
	"github.com/angelmondragon/ssbcompass-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/ssbcompass-backend/pkg/errors"
	"github.com/angelmondragon/ssbcompass-backend/pkg/ids"
)

// Service drives the UPI payment flow. Verification trusts the client-supplied
// transaction id; there is no gateway callback.
type Service interface {
	Initiate(ctx context.Context, learnerID string, req InitiateRequest) (*Instructions, error)
	Verify(ctx context.Context, learnerID string, req VerifyRequest) (*models.Purchase, error)
	History(ctx context.Context, learnerID string) ([]models.Purchase, error)
}

type courseLookup interface {
	Get(ctx context.Context, id string) (*models.Course, error)
}

type purchaseRecorder interface {
	RecordPurchase(ctx context.Context, input ledger.RecordPurchaseInput) (*models.Purchase, error)
	ListPurchases(ctx context.Context, learnerID string) ([]models.Purchase, error)
}

// ServiceParams bundles the dependencies required to build a payments service.
type ServiceParams struct {
	Catalog courseLookup
	Ledger  purchaseRecorder
	Config  config.PaymentsConfig
	// EnforcePrice must match the ledger setting so Initiate never hands out a
	// link for an amount Verify would refuse.
	EnforcePrice bool
	Clock        func() time.Time
}

type service struct {
	catalog      courseLookup
	ledger       purchaseRecorder
	cfg          config.PaymentsConfig
	enforcePrice bool
	now          func() time.Time
}

func NewService(params ServiceParams) (Service, error) {
	if params.Catalog == nil {
		return nil, fmt.Errorf("catalog required")
	}
	if params.Ledger == nil {
		return nil, fmt.Errorf("ledger required")
	}
	if strings.TrimSpace(params.Config.UPIID) == "" {
		return nil, fmt.Errorf("upi id required")
	}
	clock := params.Clock
	if clock == nil {
		clock = time.Now
	}
	return &service{
		catalog:      params.Catalog,
		ledger:       params.Ledger,
		cfg:          params.Config,
		enforcePrice: params.EnforcePrice,
		now:          clock,
	}, nil
}

// Initiate builds payment instructions. Nothing is persisted until Verify.
func (s *service) Initiate(ctx context.Context, learnerID string, req InitiateRequest) (*Instructions, error) {
	if strings.TrimSpace(learnerID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "learner required")
	}
	if req.Amount <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}
	course, err := s.catalog.Get(ctx, req.CourseID)
	if err != nil {
		if pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnknownCourse, fmt.Sprintf("course %s does not exist", req.CourseID))
		}
		return nil, err
	}
	if s.enforcePrice && req.Amount != course.Price {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount does not match course price").
			WithDetails(map[string]any{"amount": req.Amount, "price": course.Price})
	}

	now := s.now().UTC()
	return &Instructions{
		PaymentID:      ids.Prefixed("PAY", now),
		TransactionRef: ids.Prefixed("UPI", now),
		CourseID:       course.ID,
		CourseName:     course.Name,
		Amount:         req.Amount,
		AmountDisplay:  FormatAmount(req.Amount),
		UPIID:          s.cfg.UPIID,
		PayeeName:      s.cfg.PayeeName,
		UPILink:        BuildUPILink(s.cfg.UPIID, s.cfg.PayeeName, req.Amount),
		CreatedAt:      now,
	}, nil
}

func (s *service) Verify(ctx context.Context, learnerID string, req VerifyRequest) (*models.Purchase, error) {
	return s.ledger.RecordPurchase(ctx, ledger.RecordPurchaseInput{
		LearnerID:      learnerID,
		CourseID:       req.CourseID,
		Amount:         req.Amount,
		TransactionRef: req.TransactionID,
		PurchasedAt:    s.now(),
	})
}

func (s *service) History(ctx context.Context, learnerID string) ([]models.Purchase, error) {
	return s.ledger.ListPurchases(ctx, learnerID)
}
