package bargain

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/furnikart/FurniBargain/metrics"
	"github.com/furnikart/FurniBargain/models"
)

// DefaultActivityDuration applies when creation does not override the
// lifetime of a new activity.
const DefaultActivityDuration = 24 * time.Hour

// ActivityView pairs an activity record with its derived pricing snapshot.
type ActivityView struct {
	Activity *models.BargainActivity `json:"activity"`
	Snapshot Snapshot                `json:"snapshot"`
}

// ContributeResult is the outcome of an accepted contribution.
type ContributeResult struct {
	ActivityView
	Accepted *models.Contribution `json:"accepted"`
}

// ServiceConfig wires a Service. Now and ActivityDuration are optional.
type ServiceConfig struct {
	Activities       ActivityStore
	Ledger           ContributionLedger
	Catalog          Catalog
	Policy           CutPolicy
	ActivityDuration time.Duration
	Now              func() time.Time
}

// Service coordinates all mutation of bargain activities. Every write path
// (contribute, deal, cancel, expiry) runs inside a per-activity boundary so
// one activity's state changes are serialized while unrelated activities
// proceed in parallel. Nothing outside this type writes activity status or
// appends contributions.
type Service struct {
	activities ActivityStore
	ledger     ContributionLedger
	catalog    Catalog
	policy     CutPolicy
	duration   time.Duration
	now        func() time.Time
	locks      *activityLocks
}

// NewService builds a Service from cfg.
func NewService(cfg ServiceConfig) *Service {
	s := &Service{
		activities: cfg.Activities,
		ledger:     cfg.Ledger,
		catalog:    cfg.Catalog,
		policy:     cfg.Policy,
		duration:   cfg.ActivityDuration,
		now:        cfg.Now,
		locks:      newActivityLocks(),
	}
	if s.duration <= 0 {
		s.duration = DefaultActivityDuration
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// CreateActivity snapshots the product from the catalog and opens a new
// ACTIVE activity owned by the participant. A non-positive duration falls
// back to the configured default.
func (s *Service) CreateActivity(ctx context.Context, participantID string, productID uint, thresholdPercent int, duration time.Duration) (*ActivityView, error) {
	if thresholdPercent < 0 || thresholdPercent > 100 {
		return nil, ErrInvalidTerms
	}
	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.BargainFloorPrice.GreaterThan(product.Price) {
		return nil, ErrInvalidTerms
	}
	if duration <= 0 {
		duration = s.duration
	}

	now := s.now()
	activity := &models.BargainActivity{
		ID:                   uuid.New(),
		ProductID:            product.ID,
		ProductName:          product.Name,
		ProductThumbnail:     product.ThumbnailURL,
		OriginPrice:          product.Price,
		TargetPrice:          product.BargainFloorPrice,
		DealThresholdPercent: thresholdPercent,
		CreatedBy:            participantID,
		Status:               models.ActivityActive,
		CreatedAt:            now,
		ExpiresAt:            now.Add(duration),
	}
	if err := s.activities.Create(ctx, activity); err != nil {
		return nil, err
	}
	metrics.ActivitiesCreated.Inc()
	return &ActivityView{Activity: activity, Snapshot: Derive(activity, decimalZero)}, nil
}

// Contribute applies one cut from the participant to the activity. The full
// read-validate-append sequence runs inside the activity's boundary; the
// wait for the boundary honors ctx, so a caller timeout aborts cleanly with
// nothing applied.
func (s *Service) Contribute(ctx context.Context, activityID uuid.UUID, participantID string) (*ContributeResult, error) {
	release, err := s.locks.acquire(ctx, activityID)
	if err != nil {
		return nil, err
	}
	defer release()

	activity, err := s.loadForUpdate(ctx, activityID)
	if err != nil {
		metrics.ContributionsRejected.WithLabelValues(rejectReason(err)).Inc()
		return nil, err
	}

	if participantID != activity.CreatedBy {
		prior, err := s.ledger.CountForParticipant(ctx, activityID, participantID)
		if err != nil {
			return nil, err
		}
		if prior > 0 {
			metrics.ContributionsRejected.WithLabelValues("already_contributed").Inc()
			return nil, ErrAlreadyContributed
		}
	}

	sum, err := s.ledger.SumFor(ctx, activityID)
	if err != nil {
		return nil, err
	}

	amount := ClampIncrement(activity, sum, s.policy.Propose())
	if !amount.IsPositive() {
		metrics.ContributionsRejected.WithLabelValues("invalid_amount").Inc()
		return nil, ErrInvalidAmount
	}

	contribution := &models.Contribution{
		ID:            uuid.New(),
		ActivityID:    activityID,
		ParticipantID: participantID,
		Amount:        amount,
		ContributedAt: s.now(),
	}
	if err := s.ledger.Append(ctx, contribution); err != nil {
		return nil, err
	}
	metrics.ContributionsAccepted.Inc()

	newSum := sum.Add(amount)
	if newSum.Equal(TargetSave(activity)) {
		// Status transition and ledger append commit under the same
		// boundary; no reader sees a capped sum with status still ACTIVE.
		if err := s.activities.UpdateStatus(ctx, activityID, models.ActivityActive, models.ActivityFullyCut); err != nil {
			return nil, err
		}
		activity.Status = models.ActivityFullyCut
		metrics.ActivitiesClosed.WithLabelValues(string(models.ActivityFullyCut)).Inc()
	}

	return &ContributeResult{
		ActivityView: ActivityView{Activity: activity, Snapshot: Derive(activity, newSum)},
		Accepted:     contribution,
	}, nil
}

// Deal locks in the purchase at the current price. Creator only; the
// progress must have crossed the activity's deal threshold.
func (s *Service) Deal(ctx context.Context, activityID uuid.UUID, actorID string) (*ActivityView, error) {
	release, err := s.locks.acquire(ctx, activityID)
	if err != nil {
		return nil, err
	}
	defer release()

	activity, err := s.loadForUpdate(ctx, activityID)
	if err != nil {
		return nil, err
	}
	if actorID != activity.CreatedBy {
		return nil, ErrForbidden
	}
	sum, err := s.ledger.SumFor(ctx, activityID)
	if err != nil {
		return nil, err
	}
	snapshot := Derive(activity, sum)
	if !snapshot.CanDeal {
		return nil, ErrThresholdNotMet
	}
	if err := s.activities.UpdateStatus(ctx, activityID, models.ActivityActive, models.ActivityDealt); err != nil {
		return nil, err
	}
	activity.Status = models.ActivityDealt
	metrics.ActivitiesClosed.WithLabelValues(string(models.ActivityDealt)).Inc()
	return &ActivityView{Activity: activity, Snapshot: snapshot}, nil
}

// Cancel closes an activity before its deadline. Creator only.
func (s *Service) Cancel(ctx context.Context, activityID uuid.UUID, actorID string) (*ActivityView, error) {
	release, err := s.locks.acquire(ctx, activityID)
	if err != nil {
		return nil, err
	}
	defer release()

	activity, err := s.loadForUpdate(ctx, activityID)
	if err != nil {
		return nil, err
	}
	if actorID != activity.CreatedBy {
		return nil, ErrForbidden
	}
	sum, err := s.ledger.SumFor(ctx, activityID)
	if err != nil {
		return nil, err
	}
	if err := s.activities.UpdateStatus(ctx, activityID, models.ActivityActive, models.ActivityCancelled); err != nil {
		return nil, err
	}
	activity.Status = models.ActivityCancelled
	metrics.ActivitiesClosed.WithLabelValues(string(models.ActivityCancelled)).Inc()
	return &ActivityView{Activity: activity, Snapshot: Derive(activity, sum)}, nil
}

// Get returns the activity with a freshly derived snapshot. It takes the
// boundary because the read doubles as the lazy expiry check, which may
// transition status, and because status and ledger sum must come from one
// consistent view.
func (s *Service) Get(ctx context.Context, activityID uuid.UUID) (*ActivityView, error) {
	release, err := s.locks.acquire(ctx, activityID)
	if err != nil {
		return nil, err
	}
	defer release()

	activity, err := s.activities.Get(ctx, activityID)
	if err != nil {
		return nil, err
	}
	s.expireIfDue(ctx, activity)
	sum, err := s.ledger.SumFor(ctx, activityID)
	if err != nil {
		return nil, err
	}
	return &ActivityView{Activity: activity, Snapshot: Derive(activity, sum)}, nil
}

// ListContributions pages an activity's accepted cuts, acceptance order.
func (s *Service) ListContributions(ctx context.Context, activityID uuid.UUID, limit, offset int) ([]models.Contribution, int64, error) {
	if _, err := s.activities.Get(ctx, activityID); err != nil {
		return nil, 0, err
	}
	return s.ledger.ListFor(ctx, activityID, limit, offset)
}

// ListActivities pages activity records matching the filter.
func (s *Service) ListActivities(ctx context.Context, filter ActivityFilter) ([]models.BargainActivity, int64, error) {
	return s.activities.List(ctx, filter)
}

// ExpireDue transitions every ACTIVE activity past its deadline to EXPIRED,
// each under its own boundary. Idempotent: activities already swept are
// skipped by the re-read inside the boundary. Returns how many transitioned.
func (s *Service) ExpireDue(ctx context.Context) (int, error) {
	due, err := s.activities.ListDueForExpiry(ctx, s.now())
	if err != nil {
		return 0, err
	}
	expired := 0
	for i := range due {
		release, err := s.locks.acquire(ctx, due[i].ID)
		if err != nil {
			return expired, err
		}
		activity, err := s.activities.Get(ctx, due[i].ID)
		if err == nil && s.expireIfDue(ctx, activity) {
			expired++
			metrics.SweepExpired.Inc()
		}
		release()
	}
	return expired, nil
}

// loadForUpdate fetches the activity inside the boundary and rejects any
// state that cannot accept a mutation, expiring a stale ACTIVE record as a
// side effect.
func (s *Service) loadForUpdate(ctx context.Context, activityID uuid.UUID) (*models.BargainActivity, error) {
	activity, err := s.activities.Get(ctx, activityID)
	if err != nil {
		return nil, err
	}
	s.expireIfDue(ctx, activity)
	switch {
	case activity.Status == models.ActivityExpired:
		return nil, ErrExpired
	case activity.Status.Terminal():
		return nil, ErrNotActive
	}
	return activity, nil
}

// expireIfDue performs the lazy deadline check. Caller holds the boundary.
func (s *Service) expireIfDue(ctx context.Context, activity *models.BargainActivity) bool {
	if activity.Status != models.ActivityActive || !s.now().After(activity.ExpiresAt) {
		return false
	}
	if err := s.activities.UpdateStatus(ctx, activity.ID, models.ActivityActive, models.ActivityExpired); err != nil {
		return false
	}
	activity.Status = models.ActivityExpired
	metrics.ActivitiesClosed.WithLabelValues(string(models.ActivityExpired)).Inc()
	return true
}

func rejectReason(err error) string {
	switch err {
	case ErrNotFound:
		return "not_found"
	case ErrExpired:
		return "expired"
	case ErrNotActive:
		return "not_active"
	default:
		return "error"
	}
}
