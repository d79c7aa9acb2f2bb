package bargain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/furnikart/FurniBargain/models"
)

func activityWithTerms(origin, target int64, threshold int) *models.BargainActivity {
	return &models.BargainActivity{
		OriginPrice:          decimal.NewFromInt(origin),
		TargetPrice:          decimal.NewFromInt(target),
		DealThresholdPercent: threshold,
		Status:               models.ActivityActive,
	}
}

func TestDeriveSingleContribution(t *testing.T) {
	activity := activityWithTerms(3999, 2199, 70)

	snapshot := Derive(activity, decimal.NewFromInt(1300))

	assert.True(t, snapshot.CutAmount.Equal(decimal.NewFromInt(1300)), "cut = %s", snapshot.CutAmount)
	assert.True(t, snapshot.CurrentPrice.Equal(decimal.NewFromInt(2699)), "current = %s", snapshot.CurrentPrice)
	assert.Equal(t, 72, snapshot.ProgressPercent)
	assert.True(t, snapshot.CanDeal)
	assert.True(t, snapshot.DealPrice.Equal(snapshot.CurrentPrice), "deal = %s current = %s", snapshot.DealPrice, snapshot.CurrentPrice)
}

func TestDeriveClampsLedgerSum(t *testing.T) {
	activity := activityWithTerms(3999, 2199, 70)

	// A corrupted ledger sum above the target save must not push the
	// price below the floor.
	snapshot := Derive(activity, decimal.NewFromInt(5000))

	assert.True(t, snapshot.CutAmount.Equal(decimal.NewFromInt(1800)))
	assert.True(t, snapshot.CurrentPrice.Equal(decimal.NewFromInt(2199)))
	assert.Equal(t, 100, snapshot.ProgressPercent)
}

func TestDeriveZeroTargetSave(t *testing.T) {
	activity := activityWithTerms(2199, 2199, 70)

	snapshot := Derive(activity, decimal.Zero)

	assert.Equal(t, 100, snapshot.ProgressPercent)
	assert.True(t, snapshot.CanDeal)
	assert.True(t, snapshot.CurrentPrice.Equal(decimal.NewFromInt(2199)))
	assert.True(t, snapshot.DealPrice.Equal(decimal.NewFromInt(2199)))
}

func TestDeriveDealPriceMatchesCurrentPrice(t *testing.T) {
	activity := activityWithTerms(3999, 2199, 70)
	sums := []int64{0, 1, 499, 500, 1300, 1799, 1800}

	for _, sum := range sums {
		snapshot := Derive(activity, decimal.NewFromInt(sum))
		assert.True(t, snapshot.DealPrice.Equal(snapshot.CurrentPrice),
			"sum %d: deal %s vs current %s", sum, snapshot.DealPrice, snapshot.CurrentPrice)
	}
}

func TestProgressPercentRounds(t *testing.T) {
	activity := activityWithTerms(100, 0, 50)

	cases := []struct {
		sum  string
		want int
	}{
		{"0", 0},
		{"0.4", 0},
		{"0.5", 1},
		{"49.4", 49},
		{"49.5", 50},
		{"100", 100},
	}
	for _, tc := range cases {
		sum, err := decimal.NewFromString(tc.sum)
		assert.NoError(t, err)
		assert.Equal(t, tc.want, ProgressPercent(activity, sum), "sum %s", tc.sum)
	}
}

func TestClampIncrement(t *testing.T) {
	activity := activityWithTerms(3999, 2199, 70)

	// Plenty of headroom left: proposal passes through.
	got := ClampIncrement(activity, decimal.NewFromInt(1000), decimal.NewFromInt(25))
	assert.True(t, got.Equal(decimal.NewFromInt(25)))

	// Only 500 left: a 2000 proposal shrinks to the remainder.
	got = ClampIncrement(activity, decimal.NewFromInt(1300), decimal.NewFromInt(2000))
	assert.True(t, got.Equal(decimal.NewFromInt(500)))

	// Nothing left: clamps to zero.
	got = ClampIncrement(activity, decimal.NewFromInt(1800), decimal.NewFromInt(5))
	assert.True(t, got.IsZero())
}
