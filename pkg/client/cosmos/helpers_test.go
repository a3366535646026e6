package cosmos_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cometbft/cometbft/p2p"
	rpcclient "github.com/cometbft/cometbft/rpc/client"
	coretypes "github.com/cometbft/cometbft/rpc/core/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pokt-network/chaingate/pkg/assets"
	"github.com/pokt-network/chaingate/pkg/client/cosmos"
	"github.com/pokt-network/chaingate/pkg/crypto/passphrase"
	"github.com/pokt-network/chaingate/pkg/crypto/vault"
	"github.com/pokt-network/chaingate/pkg/network/concurrency"
	"github.com/pokt-network/chaingate/pkg/polylog"
	"github.com/pokt-network/chaingate/pkg/polylog/polyzero"
	"github.com/pokt-network/chaingate/pkg/store"
	"github.com/pokt-network/chaingate/pkg/wallet"
	"github.com/pokt-network/chaingate/testutil/testrpc"
)

const (
	testChainID       = "cosmoshub-4"
	testPassphrase    = "correct horse battery staple"
	testPrivateKeyHex = "0101010101010101010101010101010101010101010101010101010101010101"
	testAssetList     = `{
  "chain_name": "cosmoshub",
  "assets": [
    {
      "base": "uatom",
      "symbol": "ATOM",
      "name": "Cosmos Hub Atom",
      "denom_units": [{"denom": "uatom", "exponent": 0}, {"denom": "atom", "exponent": 6}]
    },
    {
      "base": "ibc/27394FB092D2ECCD56123C74F36E4C1F926001CEADA9CA97EA622B25F41E5EB2",
      "symbol": "OSMO",
      "name": "Osmosis",
      "denom_units": [{"denom": "uosmo", "exponent": 0}, {"denom": "osmo", "exponent": 6}]
    }
  ]
}`
)

func newTestLogger() polylog.Logger {
	return polyzero.NewLogger(polyzero.WithLevel(polyzero.ErrorLevel))
}

// fakeBank serves a fixed set of balances for any address.
type fakeBank struct {
	coins sdk.Coins
	err   error
	calls atomic.Int32
}

func (b *fakeBank) AllBalances(context.Context, string) (sdk.Coins, error) {
	b.calls.Add(1)
	return b.coins, b.err
}

// countingDialer hands out client and counts dial attempts. Dials fail while
// failures is positive or once ctx is done.
type countingDialer struct {
	client   *testrpc.MockCometClient
	delay    time.Duration
	failures atomic.Int32
	dials    atomic.Int32
}

func (d *countingDialer) Dial(ctx context.Context, _ string) (rpcclient.Client, error) {
	d.dials.Add(1)
	time.Sleep(d.delay)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if d.failures.Add(-1) >= 0 {
		return nil, context.DeadlineExceeded
	}
	return d.client, nil
}

func newNodeStatus(network string, height int64) *coretypes.ResultStatus {
	return &coretypes.ResultStatus{
		NodeInfo: p2p.DefaultNodeInfo{Network: network, Version: "0.38.17"},
		SyncInfo: coretypes.SyncInfo{LatestBlockHeight: height},
	}
}

func newMockNode(t *testing.T) *testrpc.MockCometClient {
	t.Helper()
	client := &testrpc.MockCometClient{}
	client.On("Status", mock.Anything).Return(newNodeStatus(testChainID, 100), nil).Maybe()
	client.On("IsRunning").Return(false).Maybe()
	return client
}

func writeTestAssetList(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "assetlist.json")
	require.NoError(t, os.WriteFile(path, []byte(testAssetList), 0o600))
	return path
}

func newTestConfig(t *testing.T) cosmos.ChainConfig {
	t.Helper()
	return cosmos.ChainConfig{
		Chain:                cosmos.ChainCosmos,
		Network:              cosmos.NetworkMainnet,
		NodeURL:              "http://localhost:26657",
		TokenListType:        assets.SourceTypeFile,
		TokenListSource:      writeTestAssetList(t),
		NativeCurrencySymbol: "ATOM",
		ManualGasPrice:       0.025,
		MetricsLogInterval:   -1,
	}
}

type testChain struct {
	*cosmos.Chain
	node   *testrpc.MockCometClient
	dialer *countingDialer
	bank   *fakeBank
	pool   *store.Pool
}

func newTestChain(t *testing.T, cfg cosmos.ChainConfig, opts ...cosmos.ChainOptionFn) *testChain {
	t.Helper()

	tc := &testChain{
		node: newMockNode(t),
		bank: &fakeBank{},
		pool: store.NewPool(),
	}
	tc.dialer = &countingDialer{client: tc.node}

	defaults := []cosmos.ChainOptionFn{
		cosmos.WithDialer(tc.dialer.Dial),
		cosmos.WithRateLimiter(concurrency.NewRateLimiter(1, 0)),
		cosmos.WithBankQuerier(tc.bank),
		cosmos.WithCryptoProvider(vault.NewVault(vault.WithIterations(1_000))),
		cosmos.WithPassphraseProvider(passphrase.Static(testPassphrase)),
		cosmos.WithWalletStore(wallet.NewFileStore(newTestLogger(), t.TempDir())),
		cosmos.WithStoragePool(tc.pool),
	}

	chain, err := cosmos.NewChain(newTestLogger(), cfg, append(defaults, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = chain.Close() })

	tc.Chain = chain
	return tc
}

func newReadyTestChain(t *testing.T, opts ...cosmos.ChainOptionFn) *testChain {
	t.Helper()
	tc := newTestChain(t, newTestConfig(t), opts...)
	require.NoError(t, tc.Init(context.Background()))
	return tc
}

// runConcurrently calls fn from n goroutines released at the same time.
func runConcurrently(n int, fn func()) {
	var (
		start sync.WaitGroup
		done  sync.WaitGroup
	)
	start.Add(1)
	for i := 0; i < n; i++ {
		done.Add(1)
		go func() {
			defer done.Done()
			start.Wait()
			fn()
		}()
	}
	start.Done()
	done.Wait()
}
