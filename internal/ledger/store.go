package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/angelmondragon/ssbcompass-backend/pkg/db/models"
)

// ErrNotRefundable is returned by MarkRefunded when the purchase is no longer completed.
var ErrNotRefundable = errors.New("purchase is not in a refundable state")

// Store is the ledger's single persistence boundary. Implementations must make
// Append and MarkRefunded atomic with respect to the entitlement table.
type Store interface {
	// Append inserts the purchase and grants its course to the learner. granted
	// is false when the learner already held the course.
	Append(ctx context.Context, purchase *models.Purchase) (granted bool, err error)
	FindByID(ctx context.Context, id string) (*models.Purchase, error)
	ListByLearner(ctx context.Context, learnerID string) ([]models.Purchase, error)
	List(ctx context.Context) ([]models.Purchase, error)
	// MarkRefunded moves a completed purchase to refunded and revokes the
	// entitlement when no other completed purchase of the course remains.
	MarkRefunded(ctx context.Context, id string, at time.Time) (revoked bool, err error)
	Entitlements(ctx context.Context, learnerID string) ([]models.Entitlement, error)
	HasEntitlement(ctx context.Context, learnerID, courseID string) (bool, error)
}
