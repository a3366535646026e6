package assets

import (
	"strings"

	"cosmossdk.io/math"
	"github.com/shopspring/decimal"
)

const (
	mainnetTokenChainID = 1
	otherTokenChainID   = 2
)

// TokenInfo is the flattened token description returned to API clients.
type TokenInfo struct {
	ChainID  int    `json:"chainId"`
	Address  string `json:"address"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals int    `json:"decimals"`
}

// TokenValue is an integer amount in base denom units with its precision.
type TokenValue struct {
	Value    math.Int `json:"value"`
	Decimals int      `json:"decimals"`
}

// String renders the amount in display units, e.g. 1500000 with 6 decimals
// as "1.5". Zero renders as "0.0".
func (tv TokenValue) String() string {
	if tv.Value.IsNil() || tv.Value.IsZero() {
		return "0.0"
	}
	amount := decimal.NewFromBigInt(tv.Value.BigInt(), -int32(tv.Decimals))
	if amount.IsInteger() {
		return amount.StringFixed(1)
	}
	return amount.String()
}

// TokenList converts the loaded assets to TokenInfo entries. Tokens on
// mainnet get chain ID 1, every other network 2.
func (r *Registry) TokenList(network string) []TokenInfo {
	chainID := otherTokenChainID
	if strings.EqualFold(network, "mainnet") {
		chainID = mainnetTokenChainID
	}

	assets := r.Assets()
	tokens := make([]TokenInfo, 0, len(assets))
	for i := range assets {
		tokens = append(tokens, TokenInfo{
			ChainID:  chainID,
			Address:  assets[i].Address,
			Name:     assets[i].Name,
			Symbol:   assets[i].Symbol,
			Decimals: Decimals(&assets[i]),
		})
	}
	return tokens
}
