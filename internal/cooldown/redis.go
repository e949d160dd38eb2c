package cooldown

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "cooldown:"

// RedisTracker stores last-sent markers as keys with a TTL equal to the
// cooldown window, so expiry is handled by Redis and the remaining wait is
// just the key's PTTL.
type RedisTracker struct {
	redis  redis.UniversalClient
	window time.Duration
}

func NewRedisTracker(client redis.UniversalClient, window time.Duration) *RedisTracker {
	return &RedisTracker{redis: client, window: window}
}

func (t *RedisTracker) MarkSent(ctx context.Context, identifier string) error {
	if err := t.redis.Set(ctx, keyPrefix+identifier, 1, t.window).Err(); err != nil {
		return fmt.Errorf("failed to mark cooldown: %w", err)
	}
	return nil
}

func (t *RedisTracker) SecondsRemaining(ctx context.Context, identifier string) (int, error) {
	ttl, err := t.redis.PTTL(ctx, keyPrefix+identifier).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to read cooldown: %w", err)
	}
	// PTTL returns a negative duration when the key is missing or persistent
	if ttl <= 0 {
		return 0, nil
	}
	return int(math.Ceil(ttl.Seconds())), nil
}
