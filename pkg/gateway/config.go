package gateway

import (
	"net"
	"sort"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/pokt-network/chaingate/pkg/assets"
	"github.com/pokt-network/chaingate/pkg/cache"
	"github.com/pokt-network/chaingate/pkg/cache/redis"
	"github.com/pokt-network/chaingate/pkg/client/cosmos"
	"github.com/pokt-network/chaingate/pkg/network/concurrency"
)

const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"

	LogBackendZerolog = "zerolog"
	LogBackendZap     = "zap"
)

// Config is the gateway configuration. It is loaded by viper, so every key
// may come from the config file or from a CHAINGATE_ prefixed environment
// variable (e.g. CHAINGATE_CACHE_BACKEND).
type Config struct {
	// ListenAddress is the "host:port" of the HTTP API.
	ListenAddress string `mapstructure:"listen_address"`

	Log       LogConfig              `mapstructure:"log"`
	Wallets   WalletsConfig          `mapstructure:"wallets"`
	TxStorage TxStorageConfig        `mapstructure:"tx_storage"`
	Cache     CacheConfig            `mapstructure:"cache"`
	RateLimit RateLimitConfig        `mapstructure:"rate_limit"`
	Metrics   MetricsConfig          `mapstructure:"metrics"`
	Chains    map[string]ChainConfig `mapstructure:"chains"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	// Backend is "zerolog" or "zap".
	Backend string `mapstructure:"backend"`
	// Output is "stderr", "stdout" or a file path.
	Output string `mapstructure:"output"`
}

type WalletsConfig struct {
	Dir string `mapstructure:"dir"`
}

type TxStorageConfig struct {
	Path string `mapstructure:"path"`
}

type CacheConfig struct {
	// Backend is "memory" or "redis".
	Backend string        `mapstructure:"backend"`
	TTL     time.Duration `mapstructure:"ttl"`
	MaxKeys int64         `mapstructure:"max_keys"`
	Redis   redis.Config  `mapstructure:"redis"`
}

// RateLimitConfig paces the RPC calls of each chain network.
type RateLimitConfig struct {
	MaxConcurrent int           `mapstructure:"max_concurrent"`
	MinInterval   time.Duration `mapstructure:"min_interval"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
	// LogInterval is how often each ready chain logs its RPC request count.
	LogInterval time.Duration `mapstructure:"log_interval"`
}

// ChainConfig is keyed by chain name in Config.Chains.
type ChainConfig struct {
	NativeCurrencySymbol string                   `mapstructure:"native_currency_symbol"`
	ManualGasPrice       float64                  `mapstructure:"manual_gas_price"`
	Networks             map[string]NetworkConfig `mapstructure:"networks"`
}

// NetworkConfig is keyed by network name in ChainConfig.Networks.
type NetworkConfig struct {
	NodeURL         string `mapstructure:"node_url"`
	TokenListType   string `mapstructure:"token_list_type"`
	TokenListSource string `mapstructure:"token_list_source"`
	ChainID         string `mapstructure:"chain_id"`
	Bech32Prefix    string `mapstructure:"bech32_prefix"`
}

// SetDefaults registers the default of every scalar key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("listen_address", "127.0.0.1:8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.backend", LogBackendZerolog)
	v.SetDefault("log.output", "stderr")
	v.SetDefault("wallets.dir", "./conf/wallets")
	v.SetDefault("tx_storage.path", "./db/tx-history")
	v.SetDefault("cache.backend", CacheBackendMemory)
	v.SetDefault("cache.ttl", cache.DefaultTTL)
	v.SetDefault("cache.max_keys", 0)
	v.SetDefault("cache.redis.address", "127.0.0.1:6379")
	v.SetDefault("cache.redis.db", 0)
	v.SetDefault("rate_limit.max_concurrent", concurrency.DefaultMaxConcurrent)
	v.SetDefault("rate_limit.min_interval", concurrency.DefaultMinInterval)
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.addr", "127.0.0.1:9090")
	v.SetDefault("metrics.log_interval", cosmos.DefaultMetricsLogInterval)
}

// LoadConfig decodes v into a Config and validates it.
func LoadConfig(v *viper.Viper) (*Config, error) {
	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, ErrGatewayConfig.Wrapf("decoding: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the listen address, backends and every configured chain
// network.
func (cfg *Config) Validate() error {
	if _, _, err := net.SplitHostPort(cfg.ListenAddress); err != nil {
		return ErrGatewayConfig.Wrapf("listen address MUST be in the form of host:port, got %q", cfg.ListenAddress)
	}

	switch cfg.Log.Backend {
	case LogBackendZerolog, LogBackendZap:
	default:
		return ErrGatewayConfig.Wrapf("unknown log backend %q", cfg.Log.Backend)
	}

	switch cfg.Cache.Backend {
	case CacheBackendMemory:
	case CacheBackendRedis:
		if cfg.Cache.Redis.Address == "" {
			return ErrGatewayConfig.Wrap("redis cache requires cache.redis.address")
		}
	default:
		return ErrGatewayConfig.Wrapf("unknown cache backend %q", cfg.Cache.Backend)
	}

	if cfg.RateLimit.MinInterval < 0 {
		return ErrGatewayConfig.Wrapf("negative rate_limit.min_interval %s", cfg.RateLimit.MinInterval)
	}

	for _, key := range cfg.ChainNetworks() {
		chain, network, _ := strings.Cut(key, "_")
		chainCfg, err := cfg.ChainConfig(chain, network)
		if err != nil {
			return err
		}
		if err := chainCfg.Validate(); err != nil {
			return ErrGatewayConfig.Wrapf("chains.%s.networks.%s: %v", chain, network, err)
		}
	}
	return nil
}

// ChainNetworks lists the "<chain>_<network>" keys of every configured chain
// network in sorted order.
func (cfg *Config) ChainNetworks() []string {
	var keys []string
	for chain, chainCfg := range cfg.Chains {
		for network := range chainCfg.Networks {
			keys = append(keys, cosmos.Key(chain, network))
		}
	}
	sort.Strings(keys)
	return keys
}

// ChainConfig resolves the client config of chain and network.
func (cfg *Config) ChainConfig(chain, network string) (cosmos.ChainConfig, error) {
	chainCfg, ok := cfg.Chains[strings.ToLower(chain)]
	if !ok {
		return cosmos.ChainConfig{}, cosmos.ErrUnsupportedChain.Wrapf("chain %q is not configured", chain)
	}
	networkCfg, ok := chainCfg.Networks[strings.ToLower(network)]
	if !ok {
		return cosmos.ChainConfig{}, cosmos.ErrUnsupportedChain.Wrapf("network %q of %q is not configured", network, chain)
	}

	sourceType, err := assets.ParseSourceType(networkCfg.TokenListType)
	if err != nil {
		return cosmos.ChainConfig{}, ErrGatewayConfig.Wrapf("chains.%s.networks.%s: %v", chain, network, err)
	}

	return cosmos.ChainConfig{
		Chain:                chain,
		Network:              network,
		NodeURL:              networkCfg.NodeURL,
		ChainID:              networkCfg.ChainID,
		Bech32Prefix:         networkCfg.Bech32Prefix,
		TokenListType:        sourceType,
		TokenListSource:      networkCfg.TokenListSource,
		NativeCurrencySymbol: chainCfg.NativeCurrencySymbol,
		ManualGasPrice:       chainCfg.ManualGasPrice,
		MetricsLogInterval:   cfg.metricsLogInterval(),
		TxStoragePath:        cfg.TxStorage.Path,
	}, nil
}

func (cfg *Config) metricsLogInterval() time.Duration {
	if !cfg.Metrics.Enabled {
		return -1
	}
	return cfg.Metrics.LogInterval
}
