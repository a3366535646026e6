package flags

import cosmoserrors "cosmossdk.io/errors"

var (
	namespace = "flags"

	ErrFlagNotRegistered = cosmoserrors.Register(namespace, 1, "flag not registered")
	ErrFlagInvalidValue  = cosmoserrors.Register(namespace, 2, "flag value is invalid")
)
