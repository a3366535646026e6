package vault

import (
	"github.com/cosmos/cosmos-sdk/crypto/hd"
)

// DefaultCoinType is the SLIP-44 coin type used for unmapped prefixes.
const DefaultCoinType = 118

// coinTypeByPrefix maps bech32 account prefixes to their SLIP-44 coin type.
var coinTypeByPrefix = map[string]uint32{
	"cosmos":    118,
	"juno":      118,
	"chihuahua": 118,
	"terra":     330,
}

// CoinTypeForPrefix returns the coin type for prefix, or DefaultCoinType.
func CoinTypeForPrefix(prefix string) uint32 {
	if coinType, ok := coinTypeByPrefix[prefix]; ok {
		return coinType
	}
	return DefaultCoinType
}

// HDPathForPrefix returns the BIP-44 path of the first account for prefix,
// e.g. "m/44'/330'/0'/0/0" for "terra".
func HDPathForPrefix(prefix string) string {
	return hd.CreateHDPath(CoinTypeForPrefix(prefix), 0, 0).String()
}
