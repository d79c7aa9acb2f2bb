package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/furnikart/FurniBargain/bargain"
	"github.com/furnikart/FurniBargain/models"
)

// MemoryActivityStore is a map-backed activity store. It mirrors the
// Postgres repository's semantics (guarded status transitions included) and
// backs the test suite and local runs without a database.
type MemoryActivityStore struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]models.BargainActivity
}

func NewMemoryActivityStore() *MemoryActivityStore {
	return &MemoryActivityStore{byID: make(map[uuid.UUID]models.BargainActivity)}
}

func (s *MemoryActivityStore) Create(ctx context.Context, a *models.BargainActivity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[a.ID] = *a
	return nil
}

func (s *MemoryActivityStore) Get(ctx context.Context, id uuid.UUID) (*models.BargainActivity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	activity, ok := s.byID[id]
	if !ok {
		return nil, bargain.ErrNotFound
	}
	return &activity, nil
}

func (s *MemoryActivityStore) UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.ActivityStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	activity, ok := s.byID[id]
	if !ok {
		return bargain.ErrNotFound
	}
	if activity.Status != from {
		return bargain.ErrNotActive
	}
	activity.Status = to
	activity.UpdatedAt = time.Now()
	s.byID[id] = activity
	return nil
}

func (s *MemoryActivityStore) ListDueForExpiry(ctx context.Context, now time.Time) ([]models.BargainActivity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var due []models.BargainActivity
	for _, activity := range s.byID {
		if activity.Status == models.ActivityActive && !activity.ExpiresAt.After(now) {
			due = append(due, activity)
		}
	}
	return due, nil
}

func (s *MemoryActivityStore) List(ctx context.Context, filter bargain.ActivityFilter) ([]models.BargainActivity, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var matched []models.BargainActivity
	for _, activity := range s.byID {
		if filter.CreatedBy != "" && activity.CreatedBy != filter.CreatedBy {
			continue
		}
		if filter.Status != "" && activity.Status != filter.Status {
			continue
		}
		matched = append(matched, activity)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	if filter.Offset >= len(matched) {
		return nil, total, nil
	}
	end := filter.Offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[filter.Offset:end], total, nil
}

// MemoryLedger is a map-backed append-only contribution ledger.
type MemoryLedger struct {
	mu         sync.RWMutex
	byActivity map[uuid.UUID][]models.Contribution
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{byActivity: make(map[uuid.UUID][]models.Contribution)}
}

func (l *MemoryLedger) Append(ctx context.Context, c *models.Contribution) error {
	if !c.Amount.IsPositive() {
		return bargain.ErrInvalidAmount
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.byActivity[c.ActivityID] = append(l.byActivity[c.ActivityID], *c)
	return nil
}

func (l *MemoryLedger) SumFor(ctx context.Context, activityID uuid.UUID) (decimal.Decimal, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	sum := decimal.Zero
	for _, c := range l.byActivity[activityID] {
		sum = sum.Add(c.Amount)
	}
	return sum, nil
}

func (l *MemoryLedger) ListFor(ctx context.Context, activityID uuid.UUID, limit, offset int) ([]models.Contribution, int64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	entries := l.byActivity[activityID]
	ordered := make([]models.Contribution, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ContributedAt.Before(ordered[j].ContributedAt)
	})

	total := int64(len(ordered))
	if limit <= 0 {
		limit = 10
	}
	if offset >= len(ordered) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(ordered) {
		end = len(ordered)
	}
	return ordered[offset:end], total, nil
}

func (l *MemoryLedger) CountForParticipant(ctx context.Context, activityID uuid.UUID, participantID string) (int64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var count int64
	for _, c := range l.byActivity[activityID] {
		if c.ParticipantID == participantID {
			count++
		}
	}
	return count, nil
}

// MemoryCatalog serves a fixed product set for tests and local runs.
type MemoryCatalog struct {
	mu       sync.RWMutex
	products map[uint]models.Product
}

func NewMemoryCatalog(products ...models.Product) *MemoryCatalog {
	c := &MemoryCatalog{products: make(map[uint]models.Product)}
	for _, p := range products {
		c.products[p.ID] = p
	}
	return c
}

func (c *MemoryCatalog) GetProduct(ctx context.Context, productID uint) (*models.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	product, ok := c.products[productID]
	if !ok || !product.BargainEnabled {
		return nil, bargain.ErrNotFound
	}
	return &product, nil
}
