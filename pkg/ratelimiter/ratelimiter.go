package ratelimiter

import (
	"context"
	"fmt"
	"time"

	"anoa.com/storerating/pkg/apperror"
	"github.com/redis/go-redis/v9"
)

// RateLimitError is returned once a key has used up its window.
type RateLimitError struct {
	Message    string
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return e.Message
}

func (e *RateLimitError) Unwrap() error {
	return apperror.ErrRateLimitExceeded
}

// Limiter is a fixed-window counter stored in redis. A Limiter with a nil
// client allows everything.
type Limiter struct {
	rdb    *redis.Client
	prefix string
	limit  int
	window time.Duration
}

func New(rdb *redis.Client, prefix string, limit int, window time.Duration) *Limiter {
	return &Limiter{rdb: rdb, prefix: prefix, limit: limit, window: window}
}

func (l *Limiter) key(id string) string {
	return fmt.Sprintf("rate_limit:%s:%s", l.prefix, id)
}

// Allow counts one hit for id and reports a *RateLimitError when the window is full.
func (l *Limiter) Allow(ctx context.Context, id string) error {
	if l == nil || l.rdb == nil || l.limit <= 0 {
		return nil
	}

	key := l.key(id)
	count, err := l.rdb.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to check rate limit in redis: %w", err)
	}
	if count == 1 {
		if err := l.rdb.Expire(ctx, key, l.window).Err(); err != nil {
			return fmt.Errorf("failed to set rate limit window: %w", err)
		}
	}

	if count <= int64(l.limit) {
		return nil
	}

	ttl, err := l.rdb.TTL(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to read rate limit ttl: %w", err)
	}
	// A counter that lost its expiry would block forever.
	if ttl < 0 {
		_ = l.rdb.Expire(ctx, key, l.window).Err()
		ttl = l.window
	}

	return &RateLimitError{
		Message:    "Too many requests, please try again later",
		RetryAfter: ttl,
	}
}

func (l *Limiter) Reset(ctx context.Context, id string) error {
	if l == nil || l.rdb == nil {
		return nil
	}
	return l.rdb.Del(ctx, l.key(id)).Err()
}
