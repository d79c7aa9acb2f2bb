package bargain

import (
	"math/rand"
	"sync"

	"github.com/shopspring/decimal"
)

// CutPolicy decides the nominal size of the next contribution. The service
// clamps whatever the policy proposes so the activity can never cut below
// its floor; the policy only sets the pace.
type CutPolicy interface {
	Propose() decimal.Decimal
}

// RangePolicy proposes a uniformly random amount in [Min, Max] with two
// decimal places. It replaces the hardcoded inline random range the
// storefront clients used, so the spread is configuration, not a constant.
type RangePolicy struct {
	Min decimal.Decimal
	Max decimal.Decimal

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewRangePolicy builds a RangePolicy seeded from src. A nil src falls back
// to a time-seeded source.
func NewRangePolicy(min, max decimal.Decimal, src rand.Source) *RangePolicy {
	if src == nil {
		src = rand.NewSource(rand.Int63())
	}
	return &RangePolicy{Min: min, Max: max, rnd: rand.New(src)}
}

// Propose returns a random amount in [Min, Max].
func (p *RangePolicy) Propose() decimal.Decimal {
	spread := p.Max.Sub(p.Min).Mul(decimal.NewFromInt(100)).IntPart()
	if spread <= 0 {
		return p.Min
	}
	p.mu.Lock()
	cents := p.rnd.Int63n(spread + 1)
	p.mu.Unlock()
	return p.Min.Add(decimal.New(cents, -2))
}

// FixedPolicy always proposes the same amount. Used by tests and by
// deployments that want a predictable pace.
type FixedPolicy struct {
	Amount decimal.Decimal
}

func (p FixedPolicy) Propose() decimal.Decimal { return p.Amount }
