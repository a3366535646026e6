package retry

import (
	sdkerrors "cosmossdk.io/errors"
)

var (
	codespace = "retry"

	// ErrNonRetryable marks an error which Call returns without retrying.
	ErrNonRetryable = sdkerrors.Register(codespace, 1, "non-retryable error")
)
