package learners

import (
	"context"
	"fmt"

	"github.com/angelmondragon/ssbcompass-backend/pkg/db/models"
	"github.com/angelmondragon/ssbcompass-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/ssbcompass-backend/pkg/errors"
	"github.com/angelmondragon/ssbcompass-backend/pkg/pagination"
)

// Directory serves the admin view of registered learners.
type Directory interface {
	ListSummaries(ctx context.Context, params pagination.Params) (*SummaryPage, error)
}

type learnerLister interface {
	ListAfter(ctx context.Context, cursor *pagination.Cursor, limit int) ([]models.Learner, error)
	Counts(ctx context.Context) (total int64, active int64, err error)
}

type ledgerReader interface {
	ListPurchases(ctx context.Context, learnerID string) ([]models.Purchase, error)
	Entitlements(ctx context.Context, learnerID string) ([]string, error)
}

type directory struct {
	learners learnerLister
	ledger   ledgerReader
}

// NewDirectory wires the learner directory.
func NewDirectory(learners learnerLister, ledger ledgerReader) (Directory, error) {
	if learners == nil {
		return nil, fmt.Errorf("learner repository required")
	}
	if ledger == nil {
		return nil, fmt.Errorf("ledger reader required")
	}
	return &directory{learners: learners, ledger: ledger}, nil
}

// ListSummaries pages through learners in registration order. A zero limit
// returns every learner after the cursor.
func (d *directory) ListSummaries(ctx context.Context, params pagination.Params) (*SummaryPage, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	rows, err := d.learners.ListAfter(ctx, cursor, pagination.LimitWithBuffer(params.Limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list learners")
	}
	total, _, err := d.learners.Counts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count learners")
	}

	nextCursor := ""
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
		last := rows[limit-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}

	summaries := make([]Summary, 0, len(rows))
	for _, row := range rows {
		courses, err := d.ledger.Entitlements(ctx, row.ID)
		if err != nil {
			return nil, err
		}
		purchases, err := d.ledger.ListPurchases(ctx, row.ID)
		if err != nil {
			return nil, err
		}
		var spent int64
		for _, p := range purchases {
			if p.Status == enums.PaymentStatusCompleted {
				spent += p.Amount
			}
		}
		summaries = append(summaries, Summary{
			ID:         row.ID,
			Name:       row.Name,
			Email:      row.Email,
			Phone:      row.Phone,
			Courses:    len(courses),
			Purchases:  len(purchases),
			TotalSpent: spent,
			IsActive:   row.IsActive,
			CreatedAt:  row.CreatedAt,
		})
	}
	return &SummaryPage{
		Count:      len(summaries),
		Total:      total,
		Items:      summaries,
		NextCursor: nextCursor,
	}, nil
}
