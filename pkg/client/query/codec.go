package query

import (
	"github.com/cosmos/cosmos-sdk/codec"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	cryptocodec "github.com/cosmos/cosmos-sdk/crypto/codec"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
)

var (
	// InterfaceRegistry resolves the Any types found in auth and bank query
	// responses.
	InterfaceRegistry codectypes.InterfaceRegistry

	// QueryCodec marshals query requests and responses sent over the
	// gRPC-over-ABCI bridge.
	QueryCodec *codec.ProtoCodec
)

func init() {
	InterfaceRegistry = codectypes.NewInterfaceRegistry()
	authtypes.RegisterInterfaces(InterfaceRegistry)
	cryptocodec.RegisterInterfaces(InterfaceRegistry)
	banktypes.RegisterInterfaces(InterfaceRegistry)
	QueryCodec = codec.NewProtoCodec(InterfaceRegistry)
}
