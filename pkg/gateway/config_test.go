package gateway_test

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/pokt-network/chaingate/pkg/assets"
	"github.com/pokt-network/chaingate/pkg/cache"
	"github.com/pokt-network/chaingate/pkg/client/cosmos"
	"github.com/pokt-network/chaingate/pkg/crypto/passphrase"
	"github.com/pokt-network/chaingate/pkg/crypto/vault"
	"github.com/pokt-network/chaingate/pkg/gateway"
	"github.com/pokt-network/chaingate/pkg/txcache"
	"github.com/pokt-network/chaingate/pkg/wallet"
)

const testConfigYAML = `
listen_address: 0.0.0.0:8585
cache:
  ttl: 10m
rate_limit:
  max_concurrent: 3
  min_interval: 250ms
metrics:
  enabled: true
chains:
  cosmos:
    native_currency_symbol: ATOM
    manual_gas_price: 0.025
    networks:
      mainnet:
        node_url: https://rpc.cosmos.example
        token_list_type: URL
        token_list_source: https://assets.example/cosmoshub.json
        chain_id: cosmoshub-4
  juno:
    native_currency_symbol: JUNO
    networks:
      testnet:
        node_url: https://rpc.juno.example
        token_list_type: file
        token_list_source: ./conf/juno.json
`

func newTestViper(t *testing.T, yaml string) *viper.Viper {
	t.Helper()
	v := viper.New()
	v.SetEnvPrefix("CHAINGATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	gateway.SetDefaults(v)
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(yaml)))
	return v
}

func TestLoadConfig(t *testing.T) {
	cfg, err := gateway.LoadConfig(newTestViper(t, testConfigYAML))
	require.NoError(t, err)

	require.Equal(t, "0.0.0.0:8585", cfg.ListenAddress)
	require.Equal(t, gateway.CacheBackendMemory, cfg.Cache.Backend)
	require.Equal(t, 10*time.Minute, cfg.Cache.TTL)
	require.Equal(t, 3, cfg.RateLimit.MaxConcurrent)
	require.Equal(t, 250*time.Millisecond, cfg.RateLimit.MinInterval)
	require.Equal(t, []string{"cosmos_mainnet", "juno_testnet"}, cfg.ChainNetworks())

	chainCfg, err := cfg.ChainConfig("cosmos", "mainnet")
	require.NoError(t, err)
	require.Equal(t, cosmos.ChainConfig{
		Chain:                "cosmos",
		Network:              "mainnet",
		NodeURL:              "https://rpc.cosmos.example",
		ChainID:              "cosmoshub-4",
		TokenListType:        assets.SourceTypeURL,
		TokenListSource:      "https://assets.example/cosmoshub.json",
		NativeCurrencySymbol: "ATOM",
		ManualGasPrice:       0.025,
		MetricsLogInterval:   cosmos.DefaultMetricsLogInterval,
		TxStoragePath:        "./db/tx-history",
	}, chainCfg)

	chainCfg, err = cfg.ChainConfig("JUNO", "Testnet")
	require.NoError(t, err)
	require.Equal(t, assets.SourceTypeFile, chainCfg.TokenListType)

	_, err = cfg.ChainConfig("cosmos", "testnet")
	require.ErrorIs(t, err, cosmos.ErrUnsupportedChain)
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("CHAINGATE_LISTEN_ADDRESS", "127.0.0.1:9999")
	t.Setenv("CHAINGATE_CACHE_BACKEND", gateway.CacheBackendRedis)

	cfg, err := gateway.LoadConfig(newTestViper(t, testConfigYAML))
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:9999", cfg.ListenAddress)
	require.Equal(t, gateway.CacheBackendRedis, cfg.Cache.Backend)
	require.Equal(t, "127.0.0.1:6379", cfg.Cache.Redis.Address)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		desc string
		yaml string
	}{
		{
			desc: "listen address without port",
			yaml: "listen_address: localhost\n",
		},
		{
			desc: "unknown cache backend",
			yaml: "cache:\n  backend: memcached\n",
		},
		{
			desc: "unknown log backend",
			yaml: "log:\n  backend: logrus\n",
		},
		{
			desc: "unknown token list type",
			yaml: "chains:\n  cosmos:\n    networks:\n      mainnet:\n        node_url: http://x\n        token_list_type: ftp\n        token_list_source: x\n",
		},
		{
			desc: "missing node url",
			yaml: "chains:\n  cosmos:\n    networks:\n      mainnet:\n        token_list_type: url\n        token_list_source: http://x\n",
		},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			_, err := gateway.LoadConfig(newTestViper(t, test.yaml))
			require.ErrorIs(t, err, gateway.ErrGatewayConfig)
		})
	}
}

func TestNewCacheStore_Redis(t *testing.T) {
	srv := miniredis.RunT(t)
	ctx := context.Background()

	cfg := gateway.CacheConfig{Backend: gateway.CacheBackendRedis, TTL: time.Minute}
	cfg.Redis.Address = srv.Addr()

	store, closeFn, err := gateway.NewCacheStore(ctx, newTestLogger(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, closeFn()) })

	require.NoError(t, store.Set(ctx, "k", "v", 0))
	value, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "v", value)
	require.True(t, srv.Exists("k"))
}

func TestNewCacheStore_RedisUnreachable(t *testing.T) {
	srv := miniredis.RunT(t)
	addr := srv.Addr()
	srv.Close()

	cfg := gateway.CacheConfig{Backend: gateway.CacheBackendRedis}
	cfg.Redis.Address = addr

	_, _, err := gateway.NewCacheStore(context.Background(), newTestLogger(), cfg)
	require.ErrorIs(t, err, cache.ErrCacheInternal)
}

func TestStatusForError(t *testing.T) {
	tests := []struct {
		err          error
		expectedCode int
	}{
		{err: txcache.ErrTransactionNotFound.Wrap("abc"), expectedCode: http.StatusNotFound},
		{err: wallet.ErrWalletNotFound, expectedCode: http.StatusNotFound},
		{err: passphrase.ErrMissingPassphrase, expectedCode: http.StatusServiceUnavailable},
		{err: cosmos.ErrProviderNotInitialized.Wrap("cosmos_mainnet"), expectedCode: http.StatusServiceUnavailable},
		{err: vault.ErrDecryption, expectedCode: http.StatusUnauthorized},
		{err: gateway.ErrBadRequest, expectedCode: http.StatusBadRequest},
		{err: assets.ErrTokenNotSupported.Wrap("FOO"), expectedCode: http.StatusBadRequest},
		{err: vault.ErrInvalidMnemonic, expectedCode: http.StatusBadRequest},
		{err: context.DeadlineExceeded, expectedCode: http.StatusInternalServerError},
	}

	for _, test := range tests {
		t.Run(test.err.Error(), func(t *testing.T) {
			require.Equal(t, test.expectedCode, gateway.StatusForError(test.err))
		})
	}
}
