// Package txcache looks up committed transactions by hash, serving repeat
// lookups from a shared text cache scoped per chain and network.
package txcache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	coretypes "github.com/cometbft/cometbft/rpc/core/types"

	"github.com/pokt-network/chaingate/pkg/cache"
	"github.com/pokt-network/chaingate/pkg/polylog"
)

const (
	cacheEntity = "cosmos"

	// DefaultTTL is how long a fetched transaction stays cached.
	DefaultTTL = 3600 * time.Second
)

// TxSearcher is the subset of the CometBFT RPC client used for hash lookups.
type TxSearcher interface {
	TxSearch(
		ctx context.Context,
		query string,
		prove bool,
		page, perPage *int,
		orderBy string,
	) (*coretypes.ResultTxSearch, error)
}

// Cache resolves transactions through store first and client second.
type Cache struct {
	logger    polylog.Logger
	store     cache.Store
	client    TxSearcher
	keyPrefix string
	ttl       time.Duration
}

// NewCache returns a Cache whose keys are prefixed for chain and network.
func NewCache(
	logger polylog.Logger,
	store cache.Store,
	client TxSearcher,
	chain, network string,
) *Cache {
	return &Cache{
		logger: logger.With(
			polylog.FieldComponent, "tx_cache",
			polylog.FieldChain, chain,
			polylog.FieldNetwork, network,
		),
		store:     store,
		client:    client,
		keyPrefix: cache.UniversalKeyPrefix(cacheEntity, chain, network, cache.DataTypeTransaction),
		ttl:       DefaultTTL,
	}
}

// Key returns the cache key of hash.
func (c *Cache) Key(hash string) string {
	return c.keyPrefix + hash
}

// GetTransaction returns the cached record of hash or fetches, caches and
// returns it. A hash unknown to the node yields ErrTransactionNotFound and
// nothing is cached.
func (c *Cache) GetTransaction(ctx context.Context, hash string) (*TxRecord, error) {
	logger := c.logger.With(polylog.FieldTxHash, hash)

	record, err := c.RetrieveTransaction(ctx, hash)
	switch {
	case err == nil:
		logger.Debug().Msg("transaction served from cache")
		return record, nil
	case errors.Is(err, cache.ErrCacheMiss):
	default:
		logger.Warn().Err(err).Msg("unable to read cached transaction, fetching from node")
	}

	record, err = c.fetch(ctx, hash)
	if err != nil {
		return nil, err
	}

	if err := c.CacheTransaction(ctx, record); err != nil {
		logger.Warn().Err(err).Msg("unable to cache transaction")
	}
	return record, nil
}

// GetTransactionStatus maps the result code of hash to a TxStatus.
func (c *Cache) GetTransactionStatus(ctx context.Context, hash string) (TxStatus, error) {
	record, err := c.GetTransaction(ctx, hash)
	if err != nil {
		return TxStatusFailure, err
	}
	return record.Status(), nil
}

// CacheTransaction stores record under the key of its hash.
func (c *Cache) CacheTransaction(ctx context.Context, record *TxRecord) error {
	value, err := EncodeTxRecord(record)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, c.Key(record.Hash), value, c.ttl)
}

// RetrieveTransaction reads hash from the cache only. It returns
// cache.ErrCacheMiss if hash is not cached.
func (c *Cache) RetrieveTransaction(ctx context.Context, hash string) (*TxRecord, error) {
	value, err := c.store.Get(ctx, c.Key(hash))
	if err != nil {
		return nil, err
	}
	return DecodeTxRecord(value)
}

func (c *Cache) fetch(ctx context.Context, hash string) (*TxRecord, error) {
	res, err := c.client.TxSearch(ctx, TxHashQuery(hash), false, nil, nil, "")
	if err != nil {
		return nil, err
	}
	if res == nil || len(res.Txs) == 0 {
		return nil, ErrTransactionNotFound.Wrapf("hash %s", hash)
	}

	record := NewTxRecord(res.Txs[0])
	// Records are keyed by the hash the caller asked for, not the node's
	// canonical upper-case form.
	record.Hash = hash
	return record, nil
}

// TxHashQuery builds the tx_search query matching hash. Node indexes store
// hashes as upper-case hex without a 0x prefix.
func TxHashQuery(hash string) string {
	hash = strings.TrimPrefix(strings.TrimPrefix(hash, "0x"), "0X")
	return fmt.Sprintf("tx.hash='%s'", strings.ToUpper(hash))
}
