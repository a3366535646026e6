package wallet

import sdkerrors "cosmossdk.io/errors"

const codespace = "wallet"

var (
	ErrWalletNotFound = sdkerrors.Register(codespace, 1, "wallet not found")
	ErrWalletStore    = sdkerrors.Register(codespace, 2, "wallet store error")
	ErrInvalidAddress = sdkerrors.Register(codespace, 3, "invalid wallet address")
)
