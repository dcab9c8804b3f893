// Package ratelimit throttles unauthenticated endpoints. The payment
// webhook and the login/register routes are the protected surfaces.
package ratelimit

import (
	"context"
	"time"
)

type Config struct {
	RequestsPerMinute int
	RequestsPerHour   int
}

type RateLimiter interface {
	// Allow records one request under key and reports whether it fits the
	// configured windows.
	Allow(ctx context.Context, key string, config Config) (bool, error)
	GetRemaining(ctx context.Context, key string, window time.Duration) (int64, error)
	Reset(ctx context.Context, key string) error
}
