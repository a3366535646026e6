package cache

import (
	"context"
	"time"
)

// KeyValueCache is an in-process key/value cache for values of a single type.
// Each key indexes the most recently set value for that key.
type KeyValueCache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	// SetWithTTL overrides the configured TTL for this entry only.
	SetWithTTL(key string, value T, ttl time.Duration)
	Has(key string) bool
	Delete(key string)
	Clear()
}

// Store is the backend-agnostic text cache consumed by the chain clients. It
// MAY be backed by process memory or by a networked cache, so every method
// takes a context and returns an error.
type Store interface {
	// Get returns ErrCacheMiss if the key is absent or expired.
	Get(ctx context.Context, key string) (string, error)
	// Set stores value under key. A zero ttl selects the backend default.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Has(ctx context.Context, key string) (bool, error)
	// Clear drops every entry held by the backend.
	Clear(ctx context.Context) error
}
