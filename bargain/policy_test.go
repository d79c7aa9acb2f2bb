package bargain

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRangePolicyStaysInBounds(t *testing.T) {
	min := decimal.NewFromInt(5)
	max := decimal.NewFromInt(25)
	policy := NewRangePolicy(min, max, rand.NewSource(1))

	for i := 0; i < 1000; i++ {
		amount := policy.Propose()
		assert.True(t, amount.GreaterThanOrEqual(min), "amount %s below min", amount)
		assert.True(t, amount.LessThanOrEqual(max), "amount %s above max", amount)
	}
}

func TestRangePolicyDegenerateRange(t *testing.T) {
	five := decimal.NewFromInt(5)
	policy := NewRangePolicy(five, five, rand.NewSource(1))

	for i := 0; i < 10; i++ {
		assert.True(t, policy.Propose().Equal(five))
	}
}

func TestFixedPolicy(t *testing.T) {
	policy := FixedPolicy{Amount: decimal.NewFromInt(500)}
	assert.True(t, policy.Propose().Equal(decimal.NewFromInt(500)))
}
