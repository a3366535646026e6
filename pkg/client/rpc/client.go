// Package rpc wraps a CometBFT RPC client so that every request/response call
// goes through a rate limiter, while event subscriptions go straight to the
// underlying client.
package rpc

import (
	"context"
	"sync/atomic"

	cmtbytes "github.com/cometbft/cometbft/libs/bytes"
	rpcclient "github.com/cometbft/cometbft/rpc/client"
	coretypes "github.com/cometbft/cometbft/rpc/core/types"
	cmttypes "github.com/cometbft/cometbft/types"
)

var _ rpcclient.Client = (*RateLimitedClient)(nil)

// Limiter schedules fn, blocking until the caller is allowed to run it. It
// MUST return fn's error unchanged.
type Limiter interface {
	Schedule(ctx context.Context, fn func(context.Context) error) error
}

// RateLimitedClient is a rpcclient.Client whose request/response methods are
// scheduled through a Limiter. Subscribe, Unsubscribe, UnsubscribeAll and the
// service lifecycle methods are promoted from the embedded client untouched.
type RateLimitedClient struct {
	rpcclient.Client

	limiter  Limiter
	label    string
	requests atomic.Uint64
}

// NewRateLimitedClient wraps client. label identifies the client in metrics,
// typically "<chain>_<network>".
func NewRateLimitedClient(client rpcclient.Client, limiter Limiter, label string) *RateLimitedClient {
	return &RateLimitedClient{
		Client:  client,
		limiter: limiter,
		label:   label,
	}
}

// RequestCount returns the number of rate-limited calls dispatched so far.
func (c *RateLimitedClient) RequestCount() uint64 {
	return c.requests.Load()
}

// schedule runs call through the limiter and records it. Errors from call are
// returned as-is.
func schedule[T any](
	ctx context.Context,
	c *RateLimitedClient,
	method string,
	call func(context.Context) (T, error),
) (T, error) {
	var result T
	err := c.limiter.Schedule(ctx, func(ctx context.Context) error {
		c.requests.Add(1)
		RPCRequestsTotal.With(labelClient, c.label, labelMethod, method).Add(1)

		var callErr error
		result, callErr = call(ctx)
		if callErr != nil {
			RPCRequestErrorsTotal.With(labelClient, c.label, labelMethod, method).Add(1)
		}
		return callErr
	})
	return result, err
}

func (c *RateLimitedClient) ABCIInfo(ctx context.Context) (*coretypes.ResultABCIInfo, error) {
	return schedule(ctx, c, "abci_info", c.Client.ABCIInfo)
}

func (c *RateLimitedClient) ABCIQuery(
	ctx context.Context,
	path string,
	data cmtbytes.HexBytes,
) (*coretypes.ResultABCIQuery, error) {
	return schedule(ctx, c, "abci_query", func(ctx context.Context) (*coretypes.ResultABCIQuery, error) {
		return c.Client.ABCIQuery(ctx, path, data)
	})
}

func (c *RateLimitedClient) ABCIQueryWithOptions(
	ctx context.Context,
	path string,
	data cmtbytes.HexBytes,
	opts rpcclient.ABCIQueryOptions,
) (*coretypes.ResultABCIQuery, error) {
	return schedule(ctx, c, "abci_query", func(ctx context.Context) (*coretypes.ResultABCIQuery, error) {
		return c.Client.ABCIQueryWithOptions(ctx, path, data, opts)
	})
}

func (c *RateLimitedClient) BroadcastTxCommit(ctx context.Context, tx cmttypes.Tx) (*coretypes.ResultBroadcastTxCommit, error) {
	return schedule(ctx, c, "broadcast_tx_commit", func(ctx context.Context) (*coretypes.ResultBroadcastTxCommit, error) {
		return c.Client.BroadcastTxCommit(ctx, tx)
	})
}

func (c *RateLimitedClient) BroadcastTxAsync(ctx context.Context, tx cmttypes.Tx) (*coretypes.ResultBroadcastTx, error) {
	return schedule(ctx, c, "broadcast_tx_async", func(ctx context.Context) (*coretypes.ResultBroadcastTx, error) {
		return c.Client.BroadcastTxAsync(ctx, tx)
	})
}

func (c *RateLimitedClient) BroadcastTxSync(ctx context.Context, tx cmttypes.Tx) (*coretypes.ResultBroadcastTx, error) {
	return schedule(ctx, c, "broadcast_tx_sync", func(ctx context.Context) (*coretypes.ResultBroadcastTx, error) {
		return c.Client.BroadcastTxSync(ctx, tx)
	})
}

func (c *RateLimitedClient) Genesis(ctx context.Context) (*coretypes.ResultGenesis, error) {
	return schedule(ctx, c, "genesis", c.Client.Genesis)
}

func (c *RateLimitedClient) GenesisChunked(ctx context.Context, chunk uint) (*coretypes.ResultGenesisChunk, error) {
	return schedule(ctx, c, "genesis_chunked", func(ctx context.Context) (*coretypes.ResultGenesisChunk, error) {
		return c.Client.GenesisChunked(ctx, chunk)
	})
}

func (c *RateLimitedClient) BlockchainInfo(ctx context.Context, minHeight, maxHeight int64) (*coretypes.ResultBlockchainInfo, error) {
	return schedule(ctx, c, "blockchain", func(ctx context.Context) (*coretypes.ResultBlockchainInfo, error) {
		return c.Client.BlockchainInfo(ctx, minHeight, maxHeight)
	})
}

func (c *RateLimitedClient) NetInfo(ctx context.Context) (*coretypes.ResultNetInfo, error) {
	return schedule(ctx, c, "net_info", c.Client.NetInfo)
}

func (c *RateLimitedClient) DumpConsensusState(ctx context.Context) (*coretypes.ResultDumpConsensusState, error) {
	return schedule(ctx, c, "dump_consensus_state", c.Client.DumpConsensusState)
}

func (c *RateLimitedClient) ConsensusState(ctx context.Context) (*coretypes.ResultConsensusState, error) {
	return schedule(ctx, c, "consensus_state", c.Client.ConsensusState)
}

func (c *RateLimitedClient) ConsensusParams(ctx context.Context, height *int64) (*coretypes.ResultConsensusParams, error) {
	return schedule(ctx, c, "consensus_params", func(ctx context.Context) (*coretypes.ResultConsensusParams, error) {
		return c.Client.ConsensusParams(ctx, height)
	})
}

func (c *RateLimitedClient) Health(ctx context.Context) (*coretypes.ResultHealth, error) {
	return schedule(ctx, c, "health", c.Client.Health)
}

func (c *RateLimitedClient) Status(ctx context.Context) (*coretypes.ResultStatus, error) {
	return schedule(ctx, c, "status", c.Client.Status)
}

func (c *RateLimitedClient) Block(ctx context.Context, height *int64) (*coretypes.ResultBlock, error) {
	return schedule(ctx, c, "block", func(ctx context.Context) (*coretypes.ResultBlock, error) {
		return c.Client.Block(ctx, height)
	})
}

func (c *RateLimitedClient) BlockByHash(ctx context.Context, hash []byte) (*coretypes.ResultBlock, error) {
	return schedule(ctx, c, "block_by_hash", func(ctx context.Context) (*coretypes.ResultBlock, error) {
		return c.Client.BlockByHash(ctx, hash)
	})
}

func (c *RateLimitedClient) BlockResults(ctx context.Context, height *int64) (*coretypes.ResultBlockResults, error) {
	return schedule(ctx, c, "block_results", func(ctx context.Context) (*coretypes.ResultBlockResults, error) {
		return c.Client.BlockResults(ctx, height)
	})
}

func (c *RateLimitedClient) Header(ctx context.Context, height *int64) (*coretypes.ResultHeader, error) {
	return schedule(ctx, c, "header", func(ctx context.Context) (*coretypes.ResultHeader, error) {
		return c.Client.Header(ctx, height)
	})
}

func (c *RateLimitedClient) HeaderByHash(ctx context.Context, hash cmtbytes.HexBytes) (*coretypes.ResultHeader, error) {
	return schedule(ctx, c, "header_by_hash", func(ctx context.Context) (*coretypes.ResultHeader, error) {
		return c.Client.HeaderByHash(ctx, hash)
	})
}

func (c *RateLimitedClient) Commit(ctx context.Context, height *int64) (*coretypes.ResultCommit, error) {
	return schedule(ctx, c, "commit", func(ctx context.Context) (*coretypes.ResultCommit, error) {
		return c.Client.Commit(ctx, height)
	})
}

func (c *RateLimitedClient) Validators(ctx context.Context, height *int64, page, perPage *int) (*coretypes.ResultValidators, error) {
	return schedule(ctx, c, "validators", func(ctx context.Context) (*coretypes.ResultValidators, error) {
		return c.Client.Validators(ctx, height, page, perPage)
	})
}

func (c *RateLimitedClient) Tx(ctx context.Context, hash []byte, prove bool) (*coretypes.ResultTx, error) {
	return schedule(ctx, c, "tx", func(ctx context.Context) (*coretypes.ResultTx, error) {
		return c.Client.Tx(ctx, hash, prove)
	})
}

func (c *RateLimitedClient) TxSearch(
	ctx context.Context,
	query string,
	prove bool,
	page, perPage *int,
	orderBy string,
) (*coretypes.ResultTxSearch, error) {
	return schedule(ctx, c, "tx_search", func(ctx context.Context) (*coretypes.ResultTxSearch, error) {
		return c.Client.TxSearch(ctx, query, prove, page, perPage, orderBy)
	})
}

func (c *RateLimitedClient) BlockSearch(
	ctx context.Context,
	query string,
	page, perPage *int,
	orderBy string,
) (*coretypes.ResultBlockSearch, error) {
	return schedule(ctx, c, "block_search", func(ctx context.Context) (*coretypes.ResultBlockSearch, error) {
		return c.Client.BlockSearch(ctx, query, page, perPage, orderBy)
	})
}

func (c *RateLimitedClient) BroadcastEvidence(ctx context.Context, ev cmttypes.Evidence) (*coretypes.ResultBroadcastEvidence, error) {
	return schedule(ctx, c, "broadcast_evidence", func(ctx context.Context) (*coretypes.ResultBroadcastEvidence, error) {
		return c.Client.BroadcastEvidence(ctx, ev)
	})
}

func (c *RateLimitedClient) UnconfirmedTxs(ctx context.Context, limit *int) (*coretypes.ResultUnconfirmedTxs, error) {
	return schedule(ctx, c, "unconfirmed_txs", func(ctx context.Context) (*coretypes.ResultUnconfirmedTxs, error) {
		return c.Client.UnconfirmedTxs(ctx, limit)
	})
}

func (c *RateLimitedClient) NumUnconfirmedTxs(ctx context.Context) (*coretypes.ResultUnconfirmedTxs, error) {
	return schedule(ctx, c, "num_unconfirmed_txs", c.Client.NumUnconfirmedTxs)
}

func (c *RateLimitedClient) CheckTx(ctx context.Context, tx cmttypes.Tx) (*coretypes.ResultCheckTx, error) {
	return schedule(ctx, c, "check_tx", func(ctx context.Context) (*coretypes.ResultCheckTx, error) {
		return c.Client.CheckTx(ctx, tx)
	})
}
