package query

import sdkerrors "cosmossdk.io/errors"

var (
	codespace                = "query"
	ErrQueryBalances         = sdkerrors.Register(codespace, 1, "unable to query balances")
	ErrQueryContract         = sdkerrors.Register(codespace, 2, "unable to query contract state")
	ErrQueryContractResponse = sdkerrors.Register(codespace, 3, "malformed contract state response")
	ErrQueryInvalidAddress   = sdkerrors.Register(codespace, 4, "invalid address")
)
