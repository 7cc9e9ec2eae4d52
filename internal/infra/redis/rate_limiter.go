package redis

import (
	"context"
	"fmt"
	"time"
)

// RateLimiter is a fixed-window counter shared by every server instance
// pointed at the same redis.
type RateLimiter struct {
	client RedisClient
	limit  int
	window time.Duration
	now    func() time.Time
}

func NewRateLimiter(client RedisClient, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{client: client, limit: limit, window: window, now: time.Now}
}

// Allow counts one hit for key in the current window. A limit of zero or
// less disables limiting.
func (r *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if r.limit <= 0 {
		return true, nil
	}
	bucket := windowKey(key, r.now(), r.window)
	count, err := r.client.Incr(ctx, bucket)
	if err != nil {
		return false, err
	}

	if count == 1 {
		// twice the window so a slow clock never drops a live bucket
		if err := r.client.Expire(ctx, bucket, 2*r.window); err != nil {
			return false, err
		}
	}

	return count <= int64(r.limit), nil
}

func (r *RateLimiter) Limit() int { return r.limit }

func windowKey(key string, now time.Time, window time.Duration) string {
	secs := int64(window / time.Second)
	if secs <= 0 {
		secs = 1
	}
	return fmt.Sprintf("rate_limit:%s:%d", key, now.Unix()/secs)
}

func ClientKey(ip string) string { return "http:" + ip }
