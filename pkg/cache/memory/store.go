package memory

import (
	"context"
	"time"

	"github.com/pokt-network/chaingate/pkg/cache"
)

var _ cache.Store = (*Store)(nil)

// Store adapts an in-process keyValueCache to the cache.Store contract.
type Store struct {
	values *keyValueCache[string]
}

// NewStore returns an in-process cache.Store. Entries set with a zero TTL use
// cache.DefaultTTL.
func NewStore(opts ...KeyValueCacheOptionFn) (*Store, error) {
	opts = append([]KeyValueCacheOptionFn{WithTTL(cache.DefaultTTL)}, opts...)
	values, err := NewKeyValueCache[string](opts...)
	if err != nil {
		return nil, err
	}
	return &Store{values: values}, nil
}

func (s *Store) Get(_ context.Context, key string) (string, error) {
	value, ok := s.values.Get(key)
	if !ok {
		return "", cache.ErrCacheMiss.Wrapf("key: %s", key)
	}
	return value, nil
}

func (s *Store) Set(_ context.Context, key, value string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = s.values.config.ttl
	}
	s.values.SetWithTTL(key, value, ttl)
	return nil
}

func (s *Store) Has(_ context.Context, key string) (bool, error) {
	return s.values.Has(key), nil
}

func (s *Store) Clear(_ context.Context) error {
	s.values.Clear()
	return nil
}
