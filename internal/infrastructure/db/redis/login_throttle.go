package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginThrottle counts failed logins per username in Redis.
// Key format: login:fail:<username>
type LoginThrottle struct {
	client      *redis.Client
	maxAttempts int64
	window      time.Duration
}

// NewLoginThrottle locks a username after maxAttempts failures within window.
func NewLoginThrottle(client *redis.Client, maxAttempts int, window time.Duration) *LoginThrottle {
	return &LoginThrottle{client: client, maxAttempts: int64(maxAttempts), window: window}
}

// Locked reports whether the username reached the failure limit.
func (l *LoginThrottle) Locked(ctx context.Context, username string) (bool, error) {
	n, err := l.client.Get(ctx, throttleKey(username)).Int64()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("login throttle check: %w", err)
	}
	return n >= l.maxAttempts, nil
}

// RecordFailure bumps the counter. The window starts at the first failure
// and is not extended by later ones.
func (l *LoginThrottle) RecordFailure(ctx context.Context, username string) error {
	key := throttleKey(username)
	pipe := l.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("login throttle record: %w", err)
	}
	return nil
}

// Reset clears the counter after a successful login.
func (l *LoginThrottle) Reset(ctx context.Context, username string) error {
	return l.client.Del(ctx, throttleKey(username)).Err()
}

func throttleKey(username string) string {
	return "login:fail:" + username
}
