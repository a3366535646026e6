package cosmos

import (
	"context"

	"github.com/pokt-network/chaingate/pkg/assets"
	"github.com/pokt-network/chaingate/pkg/crypto/vault"
	"github.com/pokt-network/chaingate/pkg/polylog"
)

// GetBalances returns the balances of the primary account of w keyed by
// asset symbol. Balances in denoms missing from the asset list are dropped;
// IBC denoms are not traced back to their origin chain.
func (c *Chain) GetBalances(ctx context.Context, w vault.Wallet) (map[string]assets.TokenValue, error) {
	address, err := vault.PrimaryAddress(w)
	if err != nil {
		return nil, err
	}
	return c.balancesByAddress(ctx, address)
}

func (c *Chain) balancesByAddress(ctx context.Context, address string) (map[string]assets.TokenValue, error) {
	conn, err := c.readyConn()
	if err != nil {
		return nil, err
	}

	coins, err := conn.bank.AllBalances(ctx, address)
	if err != nil {
		return nil, err
	}

	balances := make(map[string]assets.TokenValue, len(coins))
	for _, coin := range coins {
		asset, ok := c.assets.AssetByBase(coin.Denom)
		if !ok {
			c.logger.Debug().
				Str(polylog.FieldAddress, address).
				Str("denom", coin.Denom).
				Msg("dropping balance in unregistered denom")
			continue
		}
		balances[asset.Symbol] = assets.TokenValue{
			Value:    coin.Amount,
			Decimals: assets.Decimals(asset),
		}
	}
	return balances, nil
}

// Balances returns the display-unit balance of address for each of
// tokenSymbols, "0.0" when address holds none. Every symbol must be in the
// asset list, otherwise assets.ErrTokenNotSupported is returned.
func (c *Chain) Balances(ctx context.Context, address string, tokenSymbols []string) (map[string]string, error) {
	requested := make([]*assets.Asset, 0, len(tokenSymbols))
	for _, symbol := range tokenSymbols {
		asset, err := c.GetTokenForSymbol(symbol)
		if err != nil {
			return nil, err
		}
		requested = append(requested, asset)
	}

	held, err := c.balancesByAddress(ctx, address)
	if err != nil {
		return nil, err
	}

	balances := make(map[string]string, len(requested))
	for _, asset := range requested {
		balance, ok := held[asset.Symbol]
		if !ok {
			balances[asset.Symbol] = "0.0"
			continue
		}
		balances[asset.Symbol] = balance.String()
	}
	return balances, nil
}
