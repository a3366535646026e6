package vault

import sdkerrors "cosmossdk.io/errors"

const codespace = "vault"

var (
	ErrDecryption           = sdkerrors.Register(codespace, 1, "unable to decrypt private key")
	ErrEncryption           = sdkerrors.Register(codespace, 2, "unable to encrypt private key")
	ErrInvalidPrivateKey    = sdkerrors.Register(codespace, 3, "invalid private key")
	ErrInvalidMnemonic      = sdkerrors.Register(codespace, 4, "invalid mnemonic")
	ErrUnsupportedAlgorithm = sdkerrors.Register(codespace, 5, "unsupported algorithm")
	ErrSignerMismatch       = sdkerrors.Register(codespace, 6, "signer address does not belong to wallet")
)
