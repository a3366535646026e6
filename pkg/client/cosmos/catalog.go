package cosmos

import "strings"

const (
	ChainTerra2    = "terra2"
	ChainJuno      = "juno"
	ChainChihuahua = "chihuahua"
	ChainCosmos    = "cosmos"

	NetworkMainnet = "mainnet"
	NetworkTestnet = "testnet"
)

// bech32PrefixByChain is the account address prefix of every supported chain.
var bech32PrefixByChain = map[string]string{
	ChainTerra2:    "terra",
	ChainJuno:      "juno",
	ChainChihuahua: "chihuahua",
	ChainCosmos:    "cosmos",
}

// IsSupportedChain reports whether chain is in the catalog.
func IsSupportedChain(chain string) bool {
	_, ok := bech32PrefixByChain[strings.ToLower(chain)]
	return ok
}

// IsSupportedNetwork reports whether network is mainnet or testnet.
func IsSupportedNetwork(network string) bool {
	switch strings.ToLower(network) {
	case NetworkMainnet, NetworkTestnet:
		return true
	default:
		return false
	}
}

// Bech32PrefixForChain returns the account address prefix of chain.
func Bech32PrefixForChain(chain string) (string, bool) {
	prefix, ok := bech32PrefixByChain[strings.ToLower(chain)]
	return prefix, ok
}

// SupportedChains lists the catalog's chain names.
func SupportedChains() []string {
	return []string{ChainCosmos, ChainJuno, ChainChihuahua, ChainTerra2}
}

// Key is the registry key of a chain network.
func Key(chain, network string) string {
	return strings.ToLower(chain) + "_" + strings.ToLower(network)
}
