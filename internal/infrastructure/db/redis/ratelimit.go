package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const limiterWindow = time.Minute

// LoginLimiter provides fixed-window login throttling backed by Redis.
// Key format: login:<client_ip>
type LoginLimiter struct {
	client *redis.Client
	limit  int64
}

// NewLoginLimiter creates a LoginLimiter allowing limit attempts per minute
// per key.
func NewLoginLimiter(client *redis.Client, limit int) *LoginLimiter {
	if limit <= 0 {
		limit = 10
	}
	return &LoginLimiter{client: client, limit: int64(limit)}
}

// Allow increments the attempt counter for key and reports whether the
// attempt is within the window's limit. The first attempt of a window sets
// the expiry.
func (l *LoginLimiter) Allow(ctx context.Context, key string) (bool, int, error) {
	k := l.key(key)

	count, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return false, 0, fmt.Errorf("rate limit incr: %w", err)
	}
	if count == 1 {
		if err := l.client.Expire(ctx, k, limiterWindow).Err(); err != nil {
			return false, 0, fmt.Errorf("rate limit expire: %w", err)
		}
	}
	if count <= l.limit {
		return true, 0, nil
	}

	ttl, err := l.client.TTL(ctx, k).Result()
	if err != nil || ttl < 0 {
		ttl = limiterWindow
	}
	return false, int(ttl.Seconds()), nil
}

func (l *LoginLimiter) key(key string) string {
	return fmt.Sprintf("login:%s", key)
}
