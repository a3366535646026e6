package cosmos

import "github.com/pokt-network/chaingate/pkg/assets"

// GetTokenForSymbol resolves symbol case-insensitively in the asset list.
func (c *Chain) GetTokenForSymbol(symbol string) (*assets.Asset, error) {
	asset, ok := c.assets.AssetBySymbol(symbol)
	if !ok {
		return nil, assets.ErrTokenNotSupported.Wrapf("%s on %s", symbol, c.label)
	}
	return asset, nil
}

// GetTokenForBase resolves an on-chain denom in the asset list.
func (c *Chain) GetTokenForBase(base string) (*assets.Asset, bool) {
	return c.assets.AssetByBase(base)
}

// StoredTokenList is the loaded asset list as TokenInfo entries.
func (c *Chain) StoredTokenList() []assets.TokenInfo {
	return c.assets.TokenList(c.cfg.Network)
}

func (c *Chain) NativeTokenSymbol() string {
	return c.cfg.NativeCurrencySymbol
}

func (c *Chain) ManualGasPrice() float64 {
	return c.cfg.ManualGasPrice
}

func (c *Chain) Bech32Prefix() string {
	return c.cfg.Bech32Prefix
}
