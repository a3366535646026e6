package store

import sdkerrors "cosmossdk.io/errors"

const codespace = "txhistory"

var (
	ErrTxStorage      = sdkerrors.Register(codespace, 1, "transaction history storage error")
	ErrHandleReleased = sdkerrors.Register(codespace, 2, "transaction history handle already released")
)
