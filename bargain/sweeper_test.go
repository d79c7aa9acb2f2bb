package bargain_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/furnikart/FurniBargain/bargain"
	"github.com/furnikart/FurniBargain/models"
)

func TestSweepExpiresOverdueActivities(t *testing.T) {
	f := newFixture(t)
	overdue := f.openActivity(t, "creator")

	f.clock.Advance(12 * time.Hour)
	fresh := f.openActivity(t, "creator")

	// 13 hours later the first activity is past its 24h deadline, the
	// second is not.
	f.clock.Advance(13 * time.Hour)

	sweeper := bargain.NewSweeper(f.service, time.Minute)
	expired, err := sweeper.SweepOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, expired)

	view, err := f.service.Get(context.Background(), overdue)
	require.NoError(t, err)
	assert.Equal(t, models.ActivityExpired, view.Activity.Status)

	view, err = f.service.Get(context.Background(), fresh)
	require.NoError(t, err)
	assert.Equal(t, models.ActivityActive, view.Activity.Status)
}

func TestSweepIsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.openActivity(t, "creator")
	f.clock.Advance(25 * time.Hour)

	sweeper := bargain.NewSweeper(f.service, time.Minute)

	expired, err := sweeper.SweepOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, expired)

	expired, err = sweeper.SweepOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, expired)
}

func TestSweepSkipsTerminalActivities(t *testing.T) {
	f := newFixture(t)
	id := f.openActivity(t, "creator")
	f.policy.Set(decimal.NewFromInt(1800))

	// Fully cut before the deadline, then let the deadline pass.
	result, err := f.service.Contribute(context.Background(), id, "helper-1")
	require.NoError(t, err)
	require.Equal(t, models.ActivityFullyCut, result.Activity.Status)

	f.clock.Advance(25 * time.Hour)

	sweeper := bargain.NewSweeper(f.service, time.Minute)
	expired, err := sweeper.SweepOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, expired)

	view, err := f.service.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, models.ActivityFullyCut, view.Activity.Status)
}

func TestSweeperRunStopsOnContextCancel(t *testing.T) {
	f := newFixture(t)
	sweeper := bargain.NewSweeper(f.service, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sweeper.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after context cancel")
	}
}
