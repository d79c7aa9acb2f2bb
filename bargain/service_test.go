package bargain_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/furnikart/FurniBargain/bargain"
	"github.com/furnikart/FurniBargain/models"
	"github.com/furnikart/FurniBargain/repository"
)

// fakeClock is a mutable clock shared by the service under test.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

// settablePolicy lets a test change the proposed cut between calls.
type settablePolicy struct {
	mu     sync.Mutex
	amount decimal.Decimal
}

func (p *settablePolicy) Propose() decimal.Decimal {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.amount
}

func (p *settablePolicy) Set(amount decimal.Decimal) {
	p.mu.Lock()
	p.amount = amount
	p.mu.Unlock()
}

type fixture struct {
	service *bargain.Service
	clock   *fakeClock
	policy  *settablePolicy
	ledger  *repository.MemoryLedger
}

// sofaProduct mirrors scenario pricing: origin 3999, floor 2199.
func sofaProduct() models.Product {
	return models.Product{
		ID:                42,
		Name:              "Walnut Lounge Sofa",
		ThumbnailURL:      "https://cdn.furnikart.com/p/42.jpg",
		Price:             decimal.NewFromInt(3999),
		BargainFloorPrice: decimal.NewFromInt(2199),
		BargainEnabled:    true,
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clock := newFakeClock()
	policy := &settablePolicy{amount: decimal.NewFromInt(10)}
	ledger := repository.NewMemoryLedger()
	service := bargain.NewService(bargain.ServiceConfig{
		Activities: repository.NewMemoryActivityStore(),
		Ledger:     ledger,
		Catalog:    repository.NewMemoryCatalog(sofaProduct()),
		Policy:     policy,
		Now:        clock.Now,
	})
	return &fixture{service: service, clock: clock, policy: policy, ledger: ledger}
}

func (f *fixture) openActivity(t *testing.T, creator string) uuid.UUID {
	t.Helper()
	view, err := f.service.CreateActivity(context.Background(), creator, 42, 70, 0)
	require.NoError(t, err)
	return view.Activity.ID
}

func TestCreateActivity(t *testing.T) {
	f := newFixture(t)

	view, err := f.service.CreateActivity(context.Background(), "creator", 42, 70, 0)
	require.NoError(t, err)

	activity := view.Activity
	assert.Equal(t, models.ActivityActive, activity.Status)
	assert.Equal(t, "creator", activity.CreatedBy)
	assert.Equal(t, "Walnut Lounge Sofa", activity.ProductName)
	assert.True(t, activity.OriginPrice.Equal(decimal.NewFromInt(3999)))
	assert.True(t, activity.TargetPrice.Equal(decimal.NewFromInt(2199)))
	assert.Equal(t, f.clock.Now().Add(bargain.DefaultActivityDuration), activity.ExpiresAt)
	assert.Equal(t, 0, view.Snapshot.ProgressPercent)
	assert.True(t, view.Snapshot.CurrentPrice.Equal(decimal.NewFromInt(3999)))
}

func TestCreateActivityRejectsBadTerms(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.CreateActivity(context.Background(), "creator", 42, 101, 0)
	assert.ErrorIs(t, err, bargain.ErrInvalidTerms)

	_, err = f.service.CreateActivity(context.Background(), "creator", 42, -1, 0)
	assert.ErrorIs(t, err, bargain.ErrInvalidTerms)

	_, err = f.service.CreateActivity(context.Background(), "creator", 999, 70, 0)
	assert.ErrorIs(t, err, bargain.ErrNotFound)
}

func TestContributeSingleCut(t *testing.T) {
	f := newFixture(t)
	id := f.openActivity(t, "creator")
	f.policy.Set(decimal.NewFromInt(1300))

	result, err := f.service.Contribute(context.Background(), id, "helper-1")
	require.NoError(t, err)

	assert.True(t, result.Snapshot.CutAmount.Equal(decimal.NewFromInt(1300)))
	assert.True(t, result.Snapshot.CurrentPrice.Equal(decimal.NewFromInt(2699)))
	assert.Equal(t, 72, result.Snapshot.ProgressPercent)
	assert.True(t, result.Snapshot.CanDeal)
	assert.True(t, result.Accepted.Amount.Equal(decimal.NewFromInt(1300)))
	assert.Equal(t, models.ActivityActive, result.Activity.Status)
	assert.Equal(t, f.clock.Now(), result.Accepted.ContributedAt)
}

func TestContributeClampsFinalCutAndFullyCuts(t *testing.T) {
	f := newFixture(t)
	id := f.openActivity(t, "creator")

	f.policy.Set(decimal.NewFromInt(1300))
	_, err := f.service.Contribute(context.Background(), id, "helper-1")
	require.NoError(t, err)

	// 2000 proposed with only 500 of saving left: accepted amount clamps.
	f.policy.Set(decimal.NewFromInt(2000))
	result, err := f.service.Contribute(context.Background(), id, "helper-2")
	require.NoError(t, err)

	assert.True(t, result.Accepted.Amount.Equal(decimal.NewFromInt(500)))
	assert.True(t, result.Snapshot.CutAmount.Equal(decimal.NewFromInt(1800)))
	assert.True(t, result.Snapshot.CurrentPrice.Equal(decimal.NewFromInt(2199)))
	assert.Equal(t, models.ActivityFullyCut, result.Activity.Status)

	// The ledger is closed from here on.
	_, err = f.service.Contribute(context.Background(), id, "helper-3")
	assert.ErrorIs(t, err, bargain.ErrNotActive)
}

func TestContributeExpiredActivity(t *testing.T) {
	f := newFixture(t)
	id := f.openActivity(t, "creator")

	f.clock.Advance(25 * time.Hour)

	_, err := f.service.Contribute(context.Background(), id, "helper-1")
	assert.ErrorIs(t, err, bargain.ErrExpired)

	view, err := f.service.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, models.ActivityExpired, view.Activity.Status)

	// Terminal means terminal: the ledger sum never moves again.
	_, err = f.service.Contribute(context.Background(), id, "helper-2")
	assert.ErrorIs(t, err, bargain.ErrExpired)
	sum, err := f.ledger.SumFor(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, sum.IsZero())
}

func TestContributeUnknownActivity(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Contribute(context.Background(), uuid.New(), "helper-1")
	assert.ErrorIs(t, err, bargain.ErrNotFound)
}

func TestSelfCutAllowance(t *testing.T) {
	f := newFixture(t)
	id := f.openActivity(t, "creator")
	f.policy.Set(decimal.NewFromInt(100))

	// The creator may keep cutting their own activity.
	_, err := f.service.Contribute(context.Background(), id, "creator")
	require.NoError(t, err)
	_, err = f.service.Contribute(context.Background(), id, "creator")
	require.NoError(t, err)

	// Everyone else helps exactly once.
	_, err = f.service.Contribute(context.Background(), id, "helper-1")
	require.NoError(t, err)
	_, err = f.service.Contribute(context.Background(), id, "helper-1")
	assert.ErrorIs(t, err, bargain.ErrAlreadyContributed)

	sum, err := f.ledger.SumFor(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, sum.Equal(decimal.NewFromInt(300)))
}

func TestConcurrentDuplicateContributor(t *testing.T) {
	f := newFixture(t)
	id := f.openActivity(t, "creator")
	f.policy.Set(decimal.NewFromInt(10))

	const attempts = 20
	var wg sync.WaitGroup
	var mu sync.Mutex
	accepted, duplicates := 0, 0

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.service.Contribute(context.Background(), id, "helper-1")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				accepted++
			case assert.ErrorIs(t, err, bargain.ErrAlreadyContributed):
				duplicates++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, accepted)
	assert.Equal(t, attempts-1, duplicates)

	count, err := f.ledger.CountForParticipant(context.Background(), id, "helper-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestConcurrentContributionsBoundedBySave(t *testing.T) {
	f := newFixture(t)
	id := f.openActivity(t, "creator")
	f.policy.Set(decimal.NewFromInt(500))

	// Target save is 1800 and ten participants propose 500 each: three
	// full cuts, one clamped to 300, six rejected after the cap.
	const participants = 10
	var wg sync.WaitGroup
	var mu sync.Mutex
	accepted, closed := 0, 0

	for i := 0; i < participants; i++ {
		participant := string(rune('a' + i))
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.service.Contribute(context.Background(), id, "helper-"+participant)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				accepted++
			case assert.ErrorIs(t, err, bargain.ErrNotActive):
				closed++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 4, accepted)
	assert.Equal(t, participants-4, closed)

	sum, err := f.ledger.SumFor(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, sum.Equal(decimal.NewFromInt(1800)), "sum = %s", sum)

	view, err := f.service.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, models.ActivityFullyCut, view.Activity.Status)
	assert.True(t, view.Snapshot.CurrentPrice.Equal(decimal.NewFromInt(2199)))

	// No single accepted amount may overshoot the remaining saving.
	contributions, _, err := f.ledger.ListFor(context.Background(), id, 100, 0)
	require.NoError(t, err)
	running := decimal.Zero
	for _, c := range contributions {
		running = running.Add(c.Amount)
		assert.True(t, running.LessThanOrEqual(decimal.NewFromInt(1800)))
	}
}

func TestCurrentPriceMonotonicallyNonIncreasing(t *testing.T) {
	f := newFixture(t)
	id := f.openActivity(t, "creator")
	f.policy.Set(decimal.NewFromInt(250))

	previous := decimal.NewFromInt(3999)
	for i := 0; i < 8; i++ {
		f.clock.Advance(time.Minute)
		result, err := f.service.Contribute(context.Background(), id, "creator")
		if err != nil {
			assert.ErrorIs(t, err, bargain.ErrNotActive)
			break
		}
		assert.True(t, result.Snapshot.CurrentPrice.LessThanOrEqual(previous),
			"price went up: %s after %s", result.Snapshot.CurrentPrice, previous)
		previous = result.Snapshot.CurrentPrice
	}
}

func TestDealLifecycle(t *testing.T) {
	f := newFixture(t)
	id := f.openActivity(t, "creator")
	f.policy.Set(decimal.NewFromInt(1300))

	// Below threshold: no deal yet.
	_, err := f.service.Deal(context.Background(), id, "creator")
	assert.ErrorIs(t, err, bargain.ErrThresholdNotMet)

	_, err = f.service.Contribute(context.Background(), id, "helper-1")
	require.NoError(t, err)

	// Only the creator may deal.
	_, err = f.service.Deal(context.Background(), id, "helper-1")
	assert.ErrorIs(t, err, bargain.ErrForbidden)

	view, err := f.service.Deal(context.Background(), id, "creator")
	require.NoError(t, err)
	assert.Equal(t, models.ActivityDealt, view.Activity.Status)
	assert.True(t, view.Snapshot.DealPrice.Equal(decimal.NewFromInt(2699)))

	// Terminal: no more contributions, no second deal.
	_, err = f.service.Contribute(context.Background(), id, "helper-2")
	assert.ErrorIs(t, err, bargain.ErrNotActive)
	_, err = f.service.Deal(context.Background(), id, "creator")
	assert.ErrorIs(t, err, bargain.ErrNotActive)
}

func TestCancelLifecycle(t *testing.T) {
	f := newFixture(t)
	id := f.openActivity(t, "creator")

	_, err := f.service.Cancel(context.Background(), id, "helper-1")
	assert.ErrorIs(t, err, bargain.ErrForbidden)

	view, err := f.service.Cancel(context.Background(), id, "creator")
	require.NoError(t, err)
	assert.Equal(t, models.ActivityCancelled, view.Activity.Status)

	_, err = f.service.Contribute(context.Background(), id, "helper-1")
	assert.ErrorIs(t, err, bargain.ErrNotActive)
	_, err = f.service.Cancel(context.Background(), id, "creator")
	assert.ErrorIs(t, err, bargain.ErrNotActive)
}

func TestContributeAbortsOnCallerTimeout(t *testing.T) {
	f := newFixture(t)
	id := f.openActivity(t, "creator")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.service.Contribute(ctx, id, "helper-1")
	assert.ErrorIs(t, err, context.Canceled)

	// The aborted call held nothing and changed nothing.
	sum, err := f.ledger.SumFor(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, sum.IsZero())
	_, err = f.service.Contribute(context.Background(), id, "helper-1")
	assert.NoError(t, err)
}

func TestListContributionsOrdered(t *testing.T) {
	f := newFixture(t)
	id := f.openActivity(t, "creator")
	f.policy.Set(decimal.NewFromInt(50))

	for i := 0; i < 5; i++ {
		f.clock.Advance(time.Minute)
		_, err := f.service.Contribute(context.Background(), id, "creator")
		require.NoError(t, err)
	}

	contributions, total, err := f.service.ListContributions(context.Background(), id, 3, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, contributions, 3)
	for i := 1; i < len(contributions); i++ {
		assert.False(t, contributions[i].ContributedAt.Before(contributions[i-1].ContributedAt))
	}

	_, _, err = f.service.ListContributions(context.Background(), uuid.New(), 10, 0)
	assert.ErrorIs(t, err, bargain.ErrNotFound)
}
