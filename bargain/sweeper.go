package bargain

import (
	"context"
	"time"

	"github.com/furnikart/FurniBargain/metrics"
	"github.com/furnikart/FurniBargain/utils"
)

// Sweeper periodically expires activities nobody reads anymore. The
// contribute and read paths already expire lazily; the sweeper is the
// cleanup pass behind them, and re-sweeping is a no-op.
type Sweeper struct {
	service  *Service
	interval time.Duration
}

// NewSweeper builds a sweeper over svc. A non-positive interval defaults to
// one minute.
func NewSweeper(svc *Service, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Sweeper{service: svc, interval: interval}
}

// Run sweeps on the configured interval until ctx is done. Sweep failures
// are logged and retried on the next tick; every transition is idempotent
// so an unconditional retry is safe.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.SweepOnce(ctx); err != nil {
				utils.LogError("Expiry sweep failed: %v", err)
			}
		}
	}
}

// SweepOnce runs a single pass and returns how many activities it expired.
func (s *Sweeper) SweepOnce(ctx context.Context) (int, error) {
	expired, err := s.service.ExpireDue(ctx)
	metrics.SweepsRun.Inc()
	if expired > 0 {
		utils.LogInfo("Expiry sweep transitioned %d activities", expired)
	}
	return expired, err
}
