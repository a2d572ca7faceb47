// Package presence keeps a best-effort online marker per user in Redis.
// Presence here is a local simulation, not a multi-device signal; an
// unreachable Redis degrades the tracker to a no-op.
package presence

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "presence:online:"

// Tracker marks users online with a TTL.
type Tracker struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// New connects to Redis; when the ping fails the tracker still works but
// every operation is a no-op.
func New(addr string, ttl time.Duration, log *zap.Logger) *Tracker {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("redis unavailable, presence tracking disabled", zap.Error(err))
		client = nil
	}
	return &Tracker{client: client, ttl: ttl, log: log}
}

// MarkOnline records the user as online until the TTL lapses.
func (t *Tracker) MarkOnline(ctx context.Context, userID string) {
	if t == nil || t.client == nil {
		return
	}
	if err := t.client.Set(ctx, keyPrefix+userID, "1", t.ttl).Err(); err != nil {
		t.log.Warn("presence mark failed", zap.String("user_id", userID), zap.Error(err))
	}
}

// Online reports whether the user has a live presence marker.
func (t *Tracker) Online(ctx context.Context, userID string) bool {
	if t == nil || t.client == nil {
		return false
	}
	n, err := t.client.Exists(ctx, keyPrefix+userID).Result()
	if err != nil {
		return false
	}
	return n > 0
}
