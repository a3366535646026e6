package cosmos

import (
	"github.com/pokt-network/chaingate/pkg/assets"
	"github.com/pokt-network/chaingate/pkg/cache"
	"github.com/pokt-network/chaingate/pkg/client/rpc"
	"github.com/pokt-network/chaingate/pkg/crypto/passphrase"
	"github.com/pokt-network/chaingate/pkg/crypto/vault"
	"github.com/pokt-network/chaingate/pkg/store"
)

// ChainOptionFn customizes a Chain built by NewChain.
type ChainOptionFn func(*Chain)

// WithDialer replaces the CometBFT HTTP dialer, e.g. with a mock in tests.
func WithDialer(dial Dialer) ChainOptionFn {
	return func(c *Chain) {
		c.dial = dial
	}
}

// WithRateLimiter paces RPC calls with limiter instead of a private default
// limiter (one call per second). Chains sharing a limiter share its budget.
func WithRateLimiter(limiter rpc.Limiter) ChainOptionFn {
	return func(c *Chain) {
		c.limiter = limiter
	}
}

// WithCache sets the store backing the transaction cache.
func WithCache(store cache.Store) ChainOptionFn {
	return func(c *Chain) {
		c.cacheStore = store
	}
}

// WithBankQuerier bypasses the bank query client built on Init.
func WithBankQuerier(querier BalanceQuerier) ChainOptionFn {
	return func(c *Chain) {
		c.bankOverride = querier
	}
}

// WithContractQuerier bypasses the contract query client built on Init.
func WithContractQuerier(querier ContractQuerier) ChainOptionFn {
	return func(c *Chain) {
		c.contractOverride = querier
	}
}

func WithCryptoProvider(provider vault.CryptoProvider) ChainOptionFn {
	return func(c *Chain) {
		c.crypto = provider
	}
}

func WithPassphraseProvider(provider passphrase.Provider) ChainOptionFn {
	return func(c *Chain) {
		c.passphrase = provider
	}
}

func WithWalletStore(wallets WalletStore) ChainOptionFn {
	return func(c *Chain) {
		c.wallets = wallets
	}
}

// WithAssetFetcher sets the HTTP fetcher used for URL asset lists.
func WithAssetFetcher(fetcher assets.Fetcher) ChainOptionFn {
	return func(c *Chain) {
		c.fetcher = fetcher
	}
}

// WithStoragePool acquires the tx-history handle from pool rather than the
// process-wide pool.
func WithStoragePool(pool *store.Pool) ChainOptionFn {
	return func(c *Chain) {
		c.storagePool = pool
	}
}
