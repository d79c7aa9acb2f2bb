package bargain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/furnikart/FurniBargain/models"
)

// ActivityStore is durable storage for activity records: immutable terms
// plus a mutable status. No business rules live behind it; status writes
// only ever come from inside the service's per-activity boundary.
type ActivityStore interface {
	Create(ctx context.Context, a *models.BargainActivity) error
	// Get returns ErrNotFound for an unknown id.
	Get(ctx context.Context, id uuid.UUID) (*models.BargainActivity, error)
	// UpdateStatus moves an activity from one status to another. The from
	// status guards against racing writers outside the boundary; a
	// mismatch returns ErrNotActive.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.ActivityStatus) error
	// ListDueForExpiry returns ACTIVE activities whose deadline is at or
	// before the given instant.
	ListDueForExpiry(ctx context.Context, now time.Time) ([]models.BargainActivity, error)
	// List returns a page of activities matching the filter plus the total
	// match count.
	List(ctx context.Context, filter ActivityFilter) ([]models.BargainActivity, int64, error)
}

// ActivityFilter narrows and pages List results. Zero values mean "no
// constraint" (and a zero Limit falls back to the store's default page).
type ActivityFilter struct {
	CreatedBy string
	Status    models.ActivityStatus
	Limit     int
	Offset    int
}

// ContributionLedger is the append-only record of accepted cuts. It knows
// nothing about activity status or the target save; enforcing those needs a
// consistent view of record and ledger together, which is the service's job.
type ContributionLedger interface {
	Append(ctx context.Context, c *models.Contribution) error
	SumFor(ctx context.Context, activityID uuid.UUID) (decimal.Decimal, error)
	// ListFor returns contributions ordered by ContributedAt ascending.
	ListFor(ctx context.Context, activityID uuid.UUID, limit, offset int) ([]models.Contribution, int64, error)
	// CountForParticipant backs the one-help-per-participant rule.
	CountForParticipant(ctx context.Context, activityID uuid.UUID, participantID string) (int64, error)
}

// Catalog is the external product catalog boundary, consulted exactly once
// per activity at creation time to snapshot the product terms.
type Catalog interface {
	GetProduct(ctx context.Context, productID uint) (*models.Product, error)
}
