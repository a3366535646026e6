package memory

import "time"

// KeyValueCacheOptionFn mutates the cache config before validation.
type KeyValueCacheOptionFn func(*keyValueCacheConfig) error

func WithTTL(ttl time.Duration) KeyValueCacheOptionFn {
	return func(cfg *keyValueCacheConfig) error {
		cfg.ttl = ttl
		return nil
	}
}

func WithMaxKeys(maxKeys int64) KeyValueCacheOptionFn {
	return func(cfg *keyValueCacheConfig) error {
		cfg.maxKeys = maxKeys
		return nil
	}
}

func WithEvictionPolicy(policy EvictionPolicy) KeyValueCacheOptionFn {
	return func(cfg *keyValueCacheConfig) error {
		cfg.evictionPolicy = policy
		return nil
	}
}
