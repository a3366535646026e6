package memory

import (
	"time"

	"github.com/pokt-network/chaingate/pkg/cache"
)

// EvictionPolicy selects which entry is dropped once maxKeys is exceeded.
type EvictionPolicy int64

const (
	FirstInFirstOut = EvictionPolicy(iota)
	LeastRecentlyUsed
	LeastFrequentlyUsed
)

// DefaultKeyValueCacheConfig expires entries after 30 minutes and does not
// bound the number of keys.
var DefaultKeyValueCacheConfig = keyValueCacheConfig{
	ttl:            1800 * time.Second,
	evictionPolicy: FirstInFirstOut,
}

type keyValueCacheConfig struct {
	// ttl is applied to entries set without an explicit TTL. Zero disables expiry.
	ttl            time.Duration
	// maxKeys bounds the number of entries. Zero disables the bound.
	maxKeys        int64
	evictionPolicy EvictionPolicy
}

// Validate only accepts FIFO eviction, the only policy implemented.
func (cfg *keyValueCacheConfig) Validate() error {
	if cfg.ttl < 0 {
		return cache.ErrKeyValueCacheConfigValidation.Wrapf("negative ttl: %s", cfg.ttl)
	}
	if cfg.maxKeys < 0 {
		return cache.ErrKeyValueCacheConfigValidation.Wrapf("negative maxKeys: %d", cfg.maxKeys)
	}
	if cfg.evictionPolicy != FirstInFirstOut {
		return cache.ErrKeyValueCacheConfigValidation.Wrapf("eviction policy %d not supported", cfg.evictionPolicy)
	}
	return nil
}
