package txcache

import sdkerrors "cosmossdk.io/errors"

const codespace = "txcache"

var (
	ErrTransactionNotFound = sdkerrors.Register(codespace, 1, "transaction not found")
	ErrTxRecordCodec       = sdkerrors.Register(codespace, 2, "unable to encode or decode transaction record")
)
