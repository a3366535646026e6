package cosmos

import (
	"strings"
	"time"

	"github.com/pokt-network/chaingate/pkg/assets"
)

const (
	// DefaultMetricsLogInterval is how often a ready chain logs its RPC
	// request count.
	DefaultMetricsLogInterval = 5 * time.Minute
)

// ChainConfig describes one chain network served by a Chain.
type ChainConfig struct {
	Chain   string
	Network string
	NodeURL string
	// ChainID is optional. When empty it is read from the node on Init.
	ChainID string
	// Bech32Prefix defaults to the catalog prefix of Chain.
	Bech32Prefix         string
	TokenListType        assets.SourceType
	TokenListSource      string
	NativeCurrencySymbol string
	ManualGasPrice       float64
	// MetricsLogInterval disables the periodic request log when negative.
	MetricsLogInterval time.Duration
	// TxStoragePath is the tx-history database directory. Empty disables
	// tx history.
	TxStoragePath string
}

// withDefaults fills in catalog-derived fields.
func (cfg ChainConfig) withDefaults() ChainConfig {
	cfg.Chain = strings.ToLower(cfg.Chain)
	cfg.Network = strings.ToLower(cfg.Network)
	if cfg.Bech32Prefix == "" {
		cfg.Bech32Prefix, _ = Bech32PrefixForChain(cfg.Chain)
	}
	if cfg.MetricsLogInterval == 0 {
		cfg.MetricsLogInterval = DefaultMetricsLogInterval
	}
	return cfg
}

// Validate checks cfg is usable by NewChain.
func (cfg ChainConfig) Validate() error {
	if !IsSupportedChain(cfg.Chain) || !IsSupportedNetwork(cfg.Network) {
		return ErrUnsupportedChain.Wrapf("%s/%s", cfg.Chain, cfg.Network)
	}
	if cfg.NodeURL == "" {
		return ErrInvalidConfig.Wrapf("%s/%s: node url is required", cfg.Chain, cfg.Network)
	}
	switch cfg.TokenListType {
	case assets.SourceTypeURL, assets.SourceTypeFile:
	default:
		return ErrInvalidConfig.Wrapf("%s/%s: unknown token list type %q", cfg.Chain, cfg.Network, cfg.TokenListType)
	}
	if cfg.TokenListSource == "" {
		return ErrInvalidConfig.Wrapf("%s/%s: token list source is required", cfg.Chain, cfg.Network)
	}
	return nil
}
