package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/ssbcompass-backend/api/middleware"
	"github.com/angelmondragon/ssbcompass-backend/api/responses"
	"github.com/angelmondragon/ssbcompass-backend/api/validators"
	"github.com/angelmondragon/ssbcompass-backend/internal/ledger"
	"github.com/angelmondragon/ssbcompass-backend/internal/payments"
	"github.com/angelmondragon/ssbcompass-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/ssbcompass-backend/pkg/errors"
	"github.com/angelmondragon/ssbcompass-backend/pkg/logger"
	"github.com/angelmondragon/ssbcompass-backend/pkg/types"
)

// Clock supplies the instant used to evaluate refund eligibility in responses.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c()
}

type purchaseFinder interface {
	FindPurchase(ctx context.Context, learnerID, purchaseID string) (*models.Purchase, error)
}

type refundRequester interface {
	RequestRefund(ctx context.Context, learnerID, purchaseID string) (*models.Purchase, error)
}

func PaymentsInitiate(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payments service unavailable"))
			return
		}

		learnerID, ok := learnerFromRequest(w, r, logg)
		if !ok {
			return
		}

		var body payments.InitiateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		instructions, err := svc.Initiate(r.Context(), learnerID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, instructions)
	}
}

// PaymentsVerify records the purchase for a completed UPI transfer and grants access.
func PaymentsVerify(svc payments.Service, clock Clock, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payments service unavailable"))
			return
		}

		learnerID, ok := learnerFromRequest(w, r, logg)
		if !ok {
			return
		}

		var body payments.VerifyRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		body.TransactionID = strings.TrimSpace(body.TransactionID)
		if body.TransactionID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "transaction_id is required").
				WithDetails(map[string]any{"field": "transaction_id"}))
			return
		}

		purchase, err := svc.Verify(r.Context(), learnerID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, ledger.FromModel(*purchase, clock.now()))
	}
}

func PaymentsHistory(svc payments.Service, clock Clock, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payments service unavailable"))
			return
		}

		learnerID, ok := learnerFromRequest(w, r, logg)
		if !ok {
			return
		}

		rows, err := svc.History(r.Context(), learnerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, types.NewList(ledger.FromModels(rows, clock.now())))
	}
}

func RefundEligibility(svc purchaseFinder, clock Clock, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ledger service unavailable"))
			return
		}

		learnerID, ok := learnerFromRequest(w, r, logg)
		if !ok {
			return
		}

		purchaseID, err := purchaseIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		purchase, err := svc.FindPurchase(r.Context(), learnerID, purchaseID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, ledger.NewRefundEligibility(*purchase, clock.now()))
	}
}

func RequestRefund(svc refundRequester, clock Clock, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ledger service unavailable"))
			return
		}

		learnerID, ok := learnerFromRequest(w, r, logg)
		if !ok {
			return
		}

		purchaseID, err := purchaseIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		purchase, err := svc.RequestRefund(r.Context(), learnerID, purchaseID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, ledger.FromModel(*purchase, clock.now()))
	}
}

func learnerFromRequest(w http.ResponseWriter, r *http.Request, logg *logger.Logger) (string, bool) {
	learnerID := middleware.PrincipalIDFromContext(r.Context())
	if learnerID == "" {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
		return "", false
	}
	return learnerID, true
}

func purchaseIDParam(r *http.Request) (string, error) {
	purchaseID := strings.TrimSpace(chi.URLParam(r, "purchaseId"))
	if purchaseID == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "purchase id is required")
	}
	return purchaseID, nil
}
