package memory

import (
	"sync"
	"time"

	"github.com/pokt-network/chaingate/pkg/cache"
)

var _ cache.KeyValueCache[any] = (*keyValueCache[any])(nil)

// keyValueCache is a concurrency-safe in-memory key/value cache with per-entry
// expiry and an optional bound on the number of keys.
type keyValueCache[T any] struct {
	config keyValueCacheConfig

	valuesMu sync.RWMutex
	values   map[string]cacheValue[T]

	// now is swapped in tests.
	now func() time.Time
}

type cacheValue[T any] struct {
	value    T
	cachedAt time.Time
	// expiresAt is zero for entries which never expire.
	expiresAt time.Time
}

func (v cacheValue[T]) expired(now time.Time) bool {
	return !v.expiresAt.IsZero() && now.After(v.expiresAt)
}

// NewKeyValueCache creates a keyValueCache configured by opts on top of
// DefaultKeyValueCacheConfig.
func NewKeyValueCache[T any](opts ...KeyValueCacheOptionFn) (*keyValueCache[T], error) {
	config := DefaultKeyValueCacheConfig
	for _, opt := range opts {
		if err := opt(&config); err != nil {
			return nil, err
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &keyValueCache[T]{
		config: config,
		values: make(map[string]cacheValue[T]),
		now:    time.Now,
	}, nil
}

// Get returns the value stored under key, if present and not expired.
func (c *keyValueCache[T]) Get(key string) (T, bool) {
	var zero T
	c.valuesMu.RLock()
	defer c.valuesMu.RUnlock()

	cachedValue, exists := c.values[key]
	if !exists || cachedValue.expired(c.now()) {
		// Expired entries are left for the next Set or eviction to prune,
		// a read lock is not enough to delete them here.
		return zero, false
	}

	return cachedValue.value, true
}

func (c *keyValueCache[T]) Has(key string) bool {
	_, ok := c.Get(key)
	return ok
}

// Set stores value under key using the configured TTL.
func (c *keyValueCache[T]) Set(key string, value T) {
	c.SetWithTTL(key, value, c.config.ttl)
}

// SetWithTTL stores value under key, expiring it after ttl. A non-positive
// ttl stores the value without expiry.
func (c *keyValueCache[T]) SetWithTTL(key string, value T, ttl time.Duration) {
	c.valuesMu.Lock()
	defer c.valuesMu.Unlock()

	now := c.now()
	entry := cacheValue[T]{value: value, cachedAt: now}
	if ttl > 0 {
		entry.expiresAt = now.Add(ttl)
	}
	c.values[key] = entry

	c.evict(now)
}

func (c *keyValueCache[T]) Delete(key string) {
	c.valuesMu.Lock()
	defer c.valuesMu.Unlock()

	delete(c.values, key)
}

func (c *keyValueCache[T]) Clear() {
	c.valuesMu.Lock()
	defer c.valuesMu.Unlock()

	c.values = make(map[string]cacheValue[T])
}

// evict prunes expired entries, then drops the oldest entries until the cache
// is within maxKeys. Callers MUST hold valuesMu.
func (c *keyValueCache[T]) evict(now time.Time) {
	for key, value := range c.values {
		if value.expired(now) {
			delete(c.values, key)
		}
	}

	if c.config.maxKeys <= 0 {
		return
	}

	for int64(len(c.values)) > c.config.maxKeys {
		var (
			first      = true
			oldestKey  string
			oldestTime time.Time
		)
		for key, value := range c.values {
			if first || value.cachedAt.Before(oldestTime) {
				oldestKey = key
				oldestTime = value.cachedAt
			}
			first = false
		}
		delete(c.values, oldestKey)
	}
}
