package flags

const (
	FlagConfig      = "config"
	FlagConfigUsage = "path to the gateway config file; chaingate.yaml is searched in ./conf, $HOME/.chaingate and . when empty"

	FlagLogLevel      = "log-level"
	FlagLogLevelUsage = "The logging level (debug|info|warn|error)"
	DefaultLogLevel   = "info"

	FlagLogOutput      = "log-output"
	FlagLogOutputUsage = "The logging output (stderr|stdout|file path)"
	DefaultLogOutput   = "stderr"

	FlagLogBackend      = "log-backend"
	FlagLogBackendUsage = "The logging backend (zerolog|zap)"

	FlagListenAddress      = "listen-address"
	FlagListenAddressUsage = "host:port of the gateway HTTP API"

	FlagPassphrase      = "passphrase"
	FlagPassphraseShort = "p"
	FlagPassphraseUsage = "the passphrase protecting stored wallets; read from CHAINGATE_PASSPHRASE or prompted for when empty"

	FlagChain      = "chain"
	FlagChainUsage = "chain name (cosmos|juno|chihuahua|terra2)"

	FlagNetwork      = "network"
	FlagNetworkUsage = "network name (mainnet|testnet)"
	DefaultNetwork   = "mainnet"

	FlagSymbols      = "symbols"
	FlagSymbolsUsage = "comma separated token symbols; every listed token when empty"
)
