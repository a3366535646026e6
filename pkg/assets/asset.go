package assets

// DefaultDecimals is the display precision assumed when an asset is unknown,
// matching the micro-denominations used by most Cosmos chains.
const DefaultDecimals = 6

// AssetList is the chain-registry assetlist.json document.
type AssetList struct {
	ChainName string  `json:"chain_name,omitempty"`
	Assets    []Asset `json:"assets"`
}

// Asset is one fungible denomination on a chain.
type Asset struct {
	Description string      `json:"description,omitempty"`
	DenomUnits  []DenomUnit `json:"denom_units"`
	// Base is the on-chain denom, e.g. "uatom" or an "ibc/..." hash denom.
	Base    string `json:"base"`
	Name    string `json:"name,omitempty"`
	Display string `json:"display,omitempty"`
	Symbol  string `json:"symbol"`
	// Address is the contract address of non-native (e.g. CW20) tokens.
	Address     string    `json:"address,omitempty"`
	LogoURIs    *LogoURIs `json:"logo_URIs,omitempty"`
	CoingeckoID string    `json:"coingecko_id,omitempty"`
	TypeAsset   string    `json:"type_asset,omitempty"`
}

// DenomUnit is one representation of an asset and its power-of-ten exponent
// relative to the base denom.
type DenomUnit struct {
	Denom    string   `json:"denom"`
	Exponent uint32   `json:"exponent"`
	Aliases  []string `json:"aliases,omitempty"`
}

type LogoURIs struct {
	PNG string `json:"png,omitempty"`
	SVG string `json:"svg,omitempty"`
}

// Decimals returns the exponent of the last denom unit of asset, or
// DefaultDecimals when asset is nil or has no denom units.
func Decimals(asset *Asset) int {
	if asset == nil || len(asset.DenomUnits) == 0 {
		return DefaultDecimals
	}
	return int(asset.DenomUnits[len(asset.DenomUnits)-1].Exponent)
}
