package service

import (
	"context"
	"time"

	"github.com/vexora-shop/accounts/internal/logger"
)

// ExpiredRecordStore defines the database operations needed by the janitor.
type ExpiredRecordStore interface {
	DeleteExpiredCodes(now time.Time) (int64, error)
	DeleteExpiredGrants(now time.Time) (int64, error)
}

// Janitor periodically removes expired one-time codes and reset grants.
// Expiry is always re-checked on read, so the janitor only reclaims space;
// correctness never depends on it running.
type Janitor struct {
	store ExpiredRecordStore
}

func NewJanitor(store ExpiredRecordStore) *Janitor {
	return &Janitor{store: store}
}

// StartBackgroundCleanup starts a goroutine that runs cleanup periodically
// until ctx is cancelled.
func (j *Janitor) StartBackgroundCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	logger.Log.Info("started background cleanup", "interval", interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				j.RunCleanup()
			case <-ctx.Done():
				logger.Log.Info("background cleanup shutting down")
				return
			}
		}
	}()
}

// RunCleanup executes a single cleanup cycle. It can be called manually for
// maintenance.
func (j *Janitor) RunCleanup() {
	now := time.Now().UTC()

	codes, err := j.store.DeleteExpiredCodes(now)
	if err != nil {
		logger.Log.Error("failed to delete expired codes", "error", err)
	}
	grants, err := j.store.DeleteExpiredGrants(now)
	if err != nil {
		logger.Log.Error("failed to delete expired grants", "error", err)
	}

	if codes > 0 || grants > 0 {
		logger.Log.Info("cleanup cycle completed", "codes_deleted", codes, "grants_deleted", grants)
	}
}
