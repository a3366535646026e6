// Package redis implements cache.Store on top of a Redis server, so that
// several gateway processes can share one transaction cache.
package redis

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/pokt-network/chaingate/pkg/cache"
	"github.com/pokt-network/chaingate/pkg/polylog"
)

var _ cache.Store = (*Store)(nil)

// Store is a cache.Store backed by a go-redis client.
type Store struct {
	logger     polylog.Logger
	client     goredis.UniversalClient
	defaultTTL time.Duration
}

// Config holds the connection settings used by NewClient.
type Config struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// NewClient dials nothing; go-redis connects lazily on the first command.
func NewClient(cfg Config) *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// NewStore wraps client. Entries set with a zero TTL expire after defaultTTL,
// or cache.DefaultTTL when defaultTTL is zero.
func NewStore(logger polylog.Logger, client goredis.UniversalClient, defaultTTL time.Duration) *Store {
	if defaultTTL <= 0 {
		defaultTTL = cache.DefaultTTL
	}
	return &Store{
		logger:     logger.With(polylog.FieldComponent, "redis_cache"),
		client:     client,
		defaultTTL: defaultTTL,
	}
}

// Ping verifies that the server is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return cache.ErrCacheInternal.Wrapf("redis ping: %v", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, key).Result()
	switch {
	case errors.Is(err, goredis.Nil):
		return "", cache.ErrCacheMiss.Wrapf("key: %s", key)
	case err != nil:
		return "", cache.ErrCacheInternal.Wrapf("redis GET %s: %v", key, err)
	}
	s.logger.Debug().Str("key", key).Msg("cache hit")
	return value, nil
}

func (s *Store) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return cache.ErrCacheInternal.Wrapf("redis SET %s: %v", key, err)
	}
	return nil
}

func (s *Store) Has(ctx context.Context, key string) (bool, error) {
	count, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return false, cache.ErrCacheInternal.Wrapf("redis EXISTS %s: %v", key, err)
	}
	return count > 0, nil
}

// Clear flushes the selected database, not the whole server.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.client.FlushDB(ctx).Err(); err != nil {
		return cache.ErrCacheInternal.Wrapf("redis FLUSHDB: %v", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.client.Close()
}
