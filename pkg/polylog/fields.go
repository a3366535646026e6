package polylog

// Standard field names shared by every component so that log queries stay
// consistent across packages.
const (
	FieldComponent = "component"
	FieldChain     = "chain"
	FieldNetwork   = "network"
	FieldTxHash    = "tx_hash"
	FieldAddress   = "address"
	FieldMethod    = "method"
	FieldNodeURL   = "node_url"
	FieldPath      = "path"
)
