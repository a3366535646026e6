package cosmos

import sdkerrors "cosmossdk.io/errors"

var (
	codespace                 = "cosmos"
	ErrProviderNotInitialized = sdkerrors.Register(codespace, 1, "chain client provider not initialized")
	ErrUnsupportedChain       = sdkerrors.Register(codespace, 2, "unsupported chain or network")
	ErrInvalidConfig          = sdkerrors.Register(codespace, 3, "invalid chain client config")
	ErrChainClosed            = sdkerrors.Register(codespace, 4, "chain client closed")
)
