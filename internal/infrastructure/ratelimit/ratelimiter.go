// Package ratelimit throttles the anonymous code endpoints. Limits live
// in Redis so every engine instance counts against the same budget.
package ratelimit

import "context"

// RateLimitConfig is the per-key request budget. A zero limit disables
// the corresponding window.
type RateLimitConfig struct {
	RequestsPerMinute int
	RequestsPerHour   int
}

type RateLimiter interface {
	Allow(ctx context.Context, key string, config RateLimitConfig) (bool, error)
}
