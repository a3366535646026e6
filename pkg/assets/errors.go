package assets

import sdkerrors "cosmossdk.io/errors"

const codespace = "assets"

var (
	ErrAssetListLoad         = sdkerrors.Register(codespace, 1, "unable to load asset list")
	ErrUnsupportedSourceType = sdkerrors.Register(codespace, 2, "unsupported asset list source type")
	ErrTokenNotSupported     = sdkerrors.Register(codespace, 3, "token not supported")
)
