package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	loginFailKeyPrefix = "login:fail:"
	maxLoginFailures   = 5
	loginFailWindow    = 5 * time.Minute
)

// LoginLimiter throttles repeated failed logins per source.
type LoginLimiter interface {
	// Allow reports whether the source is still under its failure budget.
	Allow(ctx context.Context, source string) (bool, error)
	// RecordFailure charges one failed attempt against the source.
	RecordFailure(ctx context.Context, source string) error
	// Reset clears the source's failure count after a successful login.
	Reset(ctx context.Context, source string) error
}

type loginLimiter struct {
	client *redis.Client
}

// NewLoginLimiter creates a Redis-backed login limiter allowing
// maxLoginFailures failed attempts per source per window.
func NewLoginLimiter(client *redis.Client) LoginLimiter {
	return &loginLimiter{client: client}
}

func (l *loginLimiter) Allow(ctx context.Context, source string) (bool, error) {
	count, err := l.client.Get(ctx, loginFailKeyPrefix+source).Int()
	if err == redis.Nil {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return count < maxLoginFailures, nil
}

func (l *loginLimiter) RecordFailure(ctx context.Context, source string) error {
	key := loginFailKeyPrefix + source
	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return err
	}
	if count == 1 {
		return l.client.Expire(ctx, key, loginFailWindow).Err()
	}
	return nil
}

func (l *loginLimiter) Reset(ctx context.Context, source string) error {
	return l.client.Del(ctx, loginFailKeyPrefix+source).Err()
}
