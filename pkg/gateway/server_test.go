package gateway_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"cosmossdk.io/math"
	abci "github.com/cometbft/cometbft/abci/types"
	"github.com/cometbft/cometbft/p2p"
	rpcclient "github.com/cometbft/cometbft/rpc/client"
	coretypes "github.com/cometbft/cometbft/rpc/core/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pokt-network/chaingate/pkg/client/cosmos"
	"github.com/pokt-network/chaingate/pkg/crypto/passphrase"
	"github.com/pokt-network/chaingate/pkg/crypto/vault"
	"github.com/pokt-network/chaingate/pkg/gateway"
	"github.com/pokt-network/chaingate/pkg/polylog"
	"github.com/pokt-network/chaingate/pkg/polylog/polyzero"
	"github.com/pokt-network/chaingate/pkg/store"
	"github.com/pokt-network/chaingate/pkg/txcache"
	"github.com/pokt-network/chaingate/pkg/wallet"
	"github.com/pokt-network/chaingate/testutil/testrpc"
)

const (
	testTxHash        = "9F86D081884C7D659A2FEAA0C55AD015A3BF4F1B2B0B822CD15D6C15B0F00A08"
	testPrivateKeyHex = "0101010101010101010101010101010101010101010101010101010101010101"
	testAssetList     = `{
  "chain_name": "cosmoshub",
  "assets": [
    {
      "base": "uatom",
      "symbol": "ATOM",
      "denom_units": [{"denom": "uatom", "exponent": 0}, {"denom": "atom", "exponent": 6}]
    },
    {
      "base": "ibc/27394FB092D2ECCD56123C74F36E4C1F926001CEADA9CA97EA622B25F41E5EB2",
      "symbol": "OSMO",
      "denom_units": [{"denom": "uosmo", "exponent": 0}, {"denom": "osmo", "exponent": 6}]
    }
  ]
}`
)

type fakeBank struct {
	coins sdk.Coins
}

func (b *fakeBank) AllBalances(context.Context, string) (sdk.Coins, error) {
	return b.coins, nil
}

type testGateway struct {
	handler http.Handler
	node    *testrpc.MockCometClient
	bank    *fakeBank
	wallets *wallet.FileStore
	dir     string
}

func newTestLogger() polylog.Logger {
	return polyzero.NewLogger(polyzero.WithLevel(polyzero.ErrorLevel))
}

func newTestGatewayConfig(t *testing.T, dir string) *gateway.Config {
	t.Helper()

	assetListPath := filepath.Join(dir, "assetlist.json")
	require.NoError(t, os.WriteFile(assetListPath, []byte(testAssetList), 0o600))

	return &gateway.Config{
		ListenAddress: "127.0.0.1:0",
		Log:           gateway.LogConfig{Level: "error", Backend: gateway.LogBackendZerolog},
		Wallets:       gateway.WalletsConfig{Dir: filepath.Join(dir, "wallets")},
		TxStorage:     gateway.TxStorageConfig{Path: filepath.Join(dir, "tx-history")},
		Cache:         gateway.CacheConfig{Backend: gateway.CacheBackendMemory},
		RateLimit:     gateway.RateLimitConfig{MaxConcurrent: 4},
		Chains: map[string]gateway.ChainConfig{
			cosmos.ChainCosmos: {
				NativeCurrencySymbol: "ATOM",
				ManualGasPrice:       0.025,
				Networks: map[string]gateway.NetworkConfig{
					cosmos.NetworkMainnet: {
						NodeURL:         "http://localhost:26657",
						TokenListType:   "FILE",
						TokenListSource: assetListPath,
					},
				},
			},
		},
	}
}

func newTestGateway(t *testing.T) *testGateway {
	t.Helper()
	logger := newTestLogger()
	dir := t.TempDir()
	cfg := newTestGatewayConfig(t, dir)
	require.NoError(t, cfg.Validate())

	node := &testrpc.MockCometClient{}
	node.On("Status", mock.Anything).Return(&coretypes.ResultStatus{
		NodeInfo: p2p.DefaultNodeInfo{Network: "cosmoshub-4", Version: "0.38.17"},
		SyncInfo: coretypes.SyncInfo{LatestBlockHeight: 100},
	}, nil).Maybe()
	node.On("IsRunning").Return(false).Maybe()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	cacheStore, closeCache, err := gateway.NewCacheStore(ctx, logger, cfg.Cache)
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeCache() })

	tg := &testGateway{
		node:    node,
		bank:    &fakeBank{},
		wallets: wallet.NewFileStore(logger, cfg.Wallets.Dir),
		dir:     dir,
	}
	deps := gateway.Deps{
		Cache:      cacheStore,
		Crypto:     vault.NewVault(vault.WithIterations(1_000)),
		Passphrase: passphrase.Static("correct horse battery staple"),
		Wallets:    tg.wallets,
	}
	factory := gateway.NewChainFactory(logger, cfg, deps,
		cosmos.WithDialer(func(context.Context, string) (rpcclient.Client, error) { return node, nil }),
		cosmos.WithBankQuerier(tg.bank),
		cosmos.WithStoragePool(store.NewPool()),
	)
	registry := cosmos.NewRegistry(logger, factory)
	t.Cleanup(func() { _ = registry.CloseAll() })

	tg.handler = gateway.NewServer(logger, registry, tg.wallets).Handler()
	return tg
}

func (tg *testGateway) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&reqBody).Encode(body))
	}
	req := httptest.NewRequest(method, path, &reqBody)
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	tg.handler.ServeHTTP(res, req)
	return res
}

func decodeResponse[T any](t *testing.T, res *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(res.Body).Decode(&out))
	return out
}

func TestServer_Health(t *testing.T) {
	tg := newTestGateway(t)

	res := tg.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, res.Code)
	require.Equal(t, "ok", decodeResponse[map[string]any](t, res)["status"])
}

func TestServer_Balances(t *testing.T) {
	tg := newTestGateway(t)
	tg.bank.coins = sdk.NewCoins(sdk.NewCoin("uatom", math.NewInt(2_250_000)))

	res := tg.do(t, http.MethodPost, "/cosmos/balances", map[string]any{
		"chain":        "cosmos",
		"network":      "mainnet",
		"address":      "cosmos1xyz",
		"tokenSymbols": []string{"ATOM", "OSMO"},
	})
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())

	body := decodeResponse[struct {
		Network  string            `json:"network"`
		Balances map[string]string `json:"balances"`
	}](t, res)
	require.Equal(t, "mainnet", body.Network)
	require.Equal(t, map[string]string{"ATOM": "2.25", "OSMO": "0.0"}, body.Balances)
}

func TestServer_BalancesDefaultsToEveryListedToken(t *testing.T) {
	tg := newTestGateway(t)

	res := tg.do(t, http.MethodPost, "/cosmos/balances", map[string]any{
		"chain":   "cosmos",
		"network": "mainnet",
		"address": "cosmos1xyz",
	})
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())

	body := decodeResponse[struct {
		Balances map[string]string `json:"balances"`
	}](t, res)
	require.Equal(t, map[string]string{"ATOM": "0.0", "OSMO": "0.0"}, body.Balances)
}

func TestServer_BalancesErrors(t *testing.T) {
	tests := []struct {
		desc         string
		body         any
		expectedCode int
	}{
		{
			desc:         "unknown token",
			body:         map[string]any{"chain": "cosmos", "network": "mainnet", "address": "cosmos1xyz", "tokenSymbols": []string{"FOO"}},
			expectedCode: http.StatusBadRequest,
		},
		{
			desc:         "unsupported chain",
			body:         map[string]any{"chain": "ethereum", "network": "mainnet", "address": "0xabc"},
			expectedCode: http.StatusBadRequest,
		},
		{
			desc:         "missing address",
			body:         map[string]any{"chain": "cosmos", "network": "mainnet"},
			expectedCode: http.StatusBadRequest,
		},
		{
			desc:         "unknown field",
			body:         map[string]any{"chain": "cosmos", "network": "mainnet", "address": "cosmos1xyz", "extra": 1},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			tg := newTestGateway(t)
			res := tg.do(t, http.MethodPost, "/cosmos/balances", test.body)
			require.Equal(t, test.expectedCode, res.Code, res.Body.String())
			require.NotEmpty(t, decodeResponse[map[string]string](t, res)["error"])
		})
	}
}

func TestServer_Poll(t *testing.T) {
	tg := newTestGateway(t)
	tg.node.On("TxSearch",
		mock.Anything, txcache.TxHashQuery(testTxHash), false, (*int)(nil), (*int)(nil), "",
	).Return(&coretypes.ResultTxSearch{
		Txs: []*coretypes.ResultTx{{
			Height:   90,
			TxResult: abci.ExecTxResult{GasUsed: 81_000, GasWanted: 200_000},
		}},
		TotalCount: 1,
	}, nil).Once()

	res := tg.do(t, http.MethodPost, "/cosmos/poll", map[string]any{
		"chain":   "cosmos",
		"network": "mainnet",
		"txHash":  testTxHash,
	})
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())

	body := decodeResponse[cosmos.PollResult](t, res)
	require.Equal(t, txcache.TxStatusSuccess, body.Status)
	require.Equal(t, int64(100), body.CurrentBlock)
	require.Equal(t, int64(90), body.TxBlock)
	require.Equal(t, int64(81_000), body.GasUsed)
	require.InDelta(t, time.Now().UnixMilli(), body.Timestamp, float64(time.Minute.Milliseconds()))

	// The second poll is served from the cache.
	res = tg.do(t, http.MethodPost, "/cosmos/poll", map[string]any{
		"chain":   "cosmos",
		"network": "mainnet",
		"txHash":  testTxHash,
	})
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())
	tg.node.AssertNumberOfCalls(t, "TxSearch", 1)
}

func TestServer_PollUnknownTransaction(t *testing.T) {
	tg := newTestGateway(t)
	tg.node.On("TxSearch",
		mock.Anything, mock.Anything, false, (*int)(nil), (*int)(nil), "",
	).Return(&coretypes.ResultTxSearch{}, nil)

	res := tg.do(t, http.MethodPost, "/cosmos/poll", map[string]any{
		"chain":   "cosmos",
		"network": "mainnet",
		"txHash":  testTxHash,
	})
	require.Equal(t, http.StatusNotFound, res.Code, res.Body.String())
}

func TestServer_WalletLifecycle(t *testing.T) {
	tg := newTestGateway(t)

	res := tg.do(t, http.MethodPost, "/wallet/add", map[string]any{
		"chain":      "cosmos",
		"network":    "mainnet",
		"privateKey": testPrivateKeyHex,
	})
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())
	address := decodeResponse[map[string]string](t, res)["address"]
	require.Contains(t, address, "cosmos1")

	res = tg.do(t, http.MethodGet, "/wallet?chain=cosmos", nil)
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())
	listed := decodeResponse[struct {
		Addresses []string `json:"addresses"`
	}](t, res)
	require.Equal(t, []string{address}, listed.Addresses)

	res = tg.do(t, http.MethodDelete, "/wallet", map[string]any{"chain": "cosmos", "address": address})
	require.Equal(t, http.StatusNoContent, res.Code, res.Body.String())

	addresses, err := tg.wallets.List(cosmos.ChainCosmos)
	require.NoError(t, err)
	require.Empty(t, addresses)
}

func TestServer_AddWalletRejectsInvalidKey(t *testing.T) {
	tg := newTestGateway(t)

	res := tg.do(t, http.MethodPost, "/wallet/add", map[string]any{
		"chain":      "cosmos",
		"network":    "mainnet",
		"privateKey": "not-a-key",
	})
	require.Equal(t, http.StatusBadRequest, res.Code, res.Body.String())
}

func TestServer_ListWalletsRejectsUnsupportedChain(t *testing.T) {
	tg := newTestGateway(t)

	res := tg.do(t, http.MethodGet, "/wallet?chain=bitcoin", nil)
	require.Equal(t, http.StatusBadRequest, res.Code, res.Body.String())
}

func TestServeMetrics(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	require.NoError(t, gateway.ServeMetrics(ctx, newTestLogger(), "127.0.0.1:0"))
	require.Error(t, gateway.ServeMetrics(ctx, newTestLogger(), "not-an-address"))
}

func TestServer_ServeStopsOnCancel(t *testing.T) {
	logger := newTestLogger()
	registry := cosmos.NewRegistry(logger, func(string, string) (*cosmos.Chain, error) {
		return nil, cosmos.ErrUnsupportedChain
	})
	srv := gateway.NewServer(logger, registry, wallet.NewFileStore(logger, t.TempDir()),
		gateway.WithListenAddress("127.0.0.1:0"),
	)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ctx) }()

	cancel()
	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
