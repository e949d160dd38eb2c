package cooldown

import (
	"context"
	"math"
	"sync"
	"time"
)

// MemoryTracker keeps last-sent timestamps in process memory. Good enough
// for a single instance; multi-instance deployments should use the Redis
// tracker so all replicas see the same clock.
type MemoryTracker struct {
	mu       sync.Mutex
	window   time.Duration
	lastSent map[string]time.Time
	now      func() time.Time
}

func NewMemoryTracker(window time.Duration) *MemoryTracker {
	return &MemoryTracker{
		window:   window,
		lastSent: make(map[string]time.Time),
		now:      time.Now,
	}
}

func (t *MemoryTracker) MarkSent(_ context.Context, identifier string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastSent[identifier] = t.now()
	return nil
}

func (t *MemoryTracker) SecondsRemaining(_ context.Context, identifier string) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	sent, ok := t.lastSent[identifier]
	if !ok {
		return 0, nil
	}
	elapsed := t.now().Sub(sent)
	if elapsed >= t.window {
		delete(t.lastSent, identifier)
		return 0, nil
	}
	return int(math.Ceil((t.window - elapsed).Seconds())), nil
}
