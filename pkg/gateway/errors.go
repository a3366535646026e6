package gateway

import sdkerrors "cosmossdk.io/errors"

var (
	codespace        = "gateway"
	ErrGatewayConfig = sdkerrors.Register(codespace, 1, "invalid gateway config")
	ErrBadRequest    = sdkerrors.Register(codespace, 2, "bad request")
)
