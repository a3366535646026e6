package gateway

import (
	"context"

	"github.com/pokt-network/chaingate/pkg/assets"
	"github.com/pokt-network/chaingate/pkg/cache"
	"github.com/pokt-network/chaingate/pkg/cache/memory"
	"github.com/pokt-network/chaingate/pkg/cache/redis"
	"github.com/pokt-network/chaingate/pkg/client/cosmos"
	"github.com/pokt-network/chaingate/pkg/crypto/passphrase"
	"github.com/pokt-network/chaingate/pkg/crypto/vault"
	"github.com/pokt-network/chaingate/pkg/network/concurrency"
	"github.com/pokt-network/chaingate/pkg/polylog"
	"github.com/pokt-network/chaingate/pkg/wallet"
)

// Deps are the collaborators shared by every chain client of a gateway.
type Deps struct {
	Cache      cache.Store
	Crypto     vault.CryptoProvider
	Passphrase passphrase.Provider
	Wallets    *wallet.FileStore
	Fetcher    assets.Fetcher
}

// NewCacheStore builds the cache backend selected by cfg. The returned
// close function releases its connections.
func NewCacheStore(
	ctx context.Context,
	logger polylog.Logger,
	cfg CacheConfig,
) (_ cache.Store, closeFn func() error, _ error) {
	switch cfg.Backend {
	case CacheBackendRedis:
		store := redis.NewStore(logger, redis.NewClient(cfg.Redis), cfg.TTL)
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, nil, err
		}
		return store, store.Close, nil

	case CacheBackendMemory, "":
		opts := []memory.KeyValueCacheOptionFn{memory.WithMaxKeys(cfg.MaxKeys)}
		if cfg.TTL > 0 {
			opts = append(opts, memory.WithTTL(cfg.TTL))
		}
		store, err := memory.NewStore(opts...)
		if err != nil {
			return nil, nil, err
		}
		return store, func() error { return nil }, nil

	default:
		return nil, nil, ErrGatewayConfig.Wrapf("unknown cache backend %q", cfg.Backend)
	}
}

// NewChainFactory returns a cosmos.ChainFactory building chains from cfg.
// Each chain network gets its own rate limiter. opts are applied after the
// options derived from deps.
func NewChainFactory(
	logger polylog.Logger,
	cfg *Config,
	deps Deps,
	opts ...cosmos.ChainOptionFn,
) cosmos.ChainFactory {
	return func(chain, network string) (*cosmos.Chain, error) {
		chainCfg, err := cfg.ChainConfig(chain, network)
		if err != nil {
			return nil, err
		}

		chainOpts := []cosmos.ChainOptionFn{
			cosmos.WithRateLimiter(concurrency.NewRateLimiter(
				cfg.RateLimit.MaxConcurrent,
				cfg.RateLimit.MinInterval,
			)),
		}
		if deps.Cache != nil {
			chainOpts = append(chainOpts, cosmos.WithCache(deps.Cache))
		}
		if deps.Crypto != nil {
			chainOpts = append(chainOpts, cosmos.WithCryptoProvider(deps.Crypto))
		}
		if deps.Passphrase != nil {
			chainOpts = append(chainOpts, cosmos.WithPassphraseProvider(deps.Passphrase))
		}
		if deps.Wallets != nil {
			chainOpts = append(chainOpts, cosmos.WithWalletStore(deps.Wallets))
		}
		if deps.Fetcher != nil {
			chainOpts = append(chainOpts, cosmos.WithAssetFetcher(deps.Fetcher))
		}

		return cosmos.NewChain(logger, chainCfg, append(chainOpts, opts...)...)
	}
}
