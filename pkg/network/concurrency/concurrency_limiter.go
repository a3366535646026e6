// Package concurrency holds the admission primitives used in front of remote
// chain endpoints: a semaphore bounding in-flight calls and a rate limiter
// pacing their dispatch.
package concurrency

import (
	"context"
	"sync/atomic"
)

const defaultMaxConcurrent = 1

// ConcurrencyLimiter bounds concurrent operations with a buffered-channel
// semaphore. Blocked callers are admitted in the order they started waiting.
type ConcurrencyLimiter struct {
	semaphore      chan struct{}
	maxConcurrent  int
	activeRequests atomic.Int64
}

// NewConcurrencyLimiter returns a limiter admitting at most maxConcurrent
// holders at a time. Non-positive values admit a single holder.
func NewConcurrencyLimiter(maxConcurrent int) *ConcurrencyLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrent
	}

	return &ConcurrencyLimiter{
		semaphore:     make(chan struct{}, maxConcurrent),
		maxConcurrent: maxConcurrent,
	}
}

// Acquire blocks until a slot is free or ctx is done. It returns false if ctx
// ended first, in which case Release MUST NOT be called.
func (cl *ConcurrencyLimiter) Acquire(ctx context.Context) bool {
	select {
	case cl.semaphore <- struct{}{}:
		cl.activeRequests.Add(1)
		return true
	case <-ctx.Done():
		return false
	}
}

// Release returns a slot obtained by a successful Acquire.
func (cl *ConcurrencyLimiter) Release() {
	select {
	case <-cl.semaphore:
		cl.activeRequests.Add(-1)
	default:
	}
}

// ActiveRequests returns the number of slots currently held.
func (cl *ConcurrencyLimiter) ActiveRequests() int64 {
	return cl.activeRequests.Load()
}

// MaxConcurrent returns the configured slot count.
func (cl *ConcurrencyLimiter) MaxConcurrent() int {
	return cl.maxConcurrent
}
