package concurrency

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultMaxConcurrent and DefaultMinInterval keep public endpoints from
	// throttling the gateway: one call in flight, one dispatch per second.
	DefaultMaxConcurrent = 1
	DefaultMinInterval   = time.Second
)

// RateLimiter schedules operations so that at most maxConcurrent run at once
// and consecutive dispatches are at least minInterval apart. Waiting
// operations are dispatched in the order they were scheduled. It never
// retries and never alters the error returned by the scheduled operation.
type RateLimiter struct {
	slots       *ConcurrencyLimiter
	pacer       *rate.Limiter
	minInterval time.Duration
}

// NewRateLimiter returns a RateLimiter. A non-positive minInterval disables
// pacing; a non-positive maxConcurrent admits one operation at a time.
func NewRateLimiter(maxConcurrent int, minInterval time.Duration) *RateLimiter {
	limit := rate.Inf
	if minInterval > 0 {
		limit = rate.Every(minInterval)
	}

	return &RateLimiter{
		slots:       NewConcurrencyLimiter(maxConcurrent),
		pacer:       rate.NewLimiter(limit, 1),
		minInterval: minInterval,
	}
}

// NewDefaultRateLimiter returns a limiter using DefaultMaxConcurrent and
// DefaultMinInterval.
func NewDefaultRateLimiter() *RateLimiter {
	return NewRateLimiter(DefaultMaxConcurrent, DefaultMinInterval)
}

// Schedule waits for a slot and for the pacing interval, then runs fn. If ctx
// ends while waiting, fn is not run and ctx.Err() is returned.
func (rl *RateLimiter) Schedule(ctx context.Context, fn func(context.Context) error) error {
	if !rl.slots.Acquire(ctx) {
		return ctx.Err()
	}
	defer rl.slots.Release()

	if err := rl.pacer.Wait(ctx); err != nil {
		return err
	}

	return fn(ctx)
}

// Pending returns the number of operations currently holding a slot.
func (rl *RateLimiter) Pending() int64 {
	return rl.slots.ActiveRequests()
}

// MinInterval returns the configured dispatch spacing.
func (rl *RateLimiter) MinInterval() time.Duration {
	return rl.minInterval
}
