// Package ratelimit throttles callers by key using Redis counters.
package ratelimit

import (
	"context"
	"time"
)

// RateLimitConfig caps requests per window. A zero limit disables that window.
type RateLimitConfig struct {
	RequestsPerMinute int
	RequestsPerHour   int
	RequestsPerDay    int
}

func (c RateLimitConfig) windows() []window {
	return []window{
		{time.Minute, c.RequestsPerMinute},
		{time.Hour, c.RequestsPerHour},
		{24 * time.Hour, c.RequestsPerDay},
	}
}

type window struct {
	duration time.Duration
	limit    int
}

// Limiter decides whether one more request for key fits its budget.
// Callers treat an error as "allow" so a Redis outage never blocks traffic.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
