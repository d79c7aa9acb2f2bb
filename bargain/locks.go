package bargain

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// activityLocks hands out one serialization boundary per activity id, so
// contributions to different activities never contend with each other.
// Channel-backed rather than sync.Mutex so a caller's context can abort the
// wait without corrupting anything: an aborted acquire simply never held
// the boundary.
type activityLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]chan struct{}
}

func newActivityLocks() *activityLocks {
	return &activityLocks{locks: make(map[uuid.UUID]chan struct{})}
}

func (l *activityLocks) lockFor(id uuid.UUID) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	ch, ok := l.locks[id]
	if !ok {
		ch = make(chan struct{}, 1)
		l.locks[id] = ch
	}
	return ch
}

// acquire blocks until the activity's boundary is held or ctx is done.
// The returned release must be called exactly once.
func (l *activityLocks) acquire(ctx context.Context, id uuid.UUID) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ch := l.lockFor(id)
	select {
	case ch <- struct{}{}:
		return func() { <-ch }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
