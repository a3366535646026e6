package query

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkquery "github.com/cosmos/cosmos-sdk/types/query"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
	grpc "github.com/cosmos/gogoproto/grpc"

	"github.com/pokt-network/chaingate/pkg/polylog"
)

// balancesPageLimit is the page size requested from the bank module.
const balancesPageLimit = 100

// BankQuerier is a wrapper around the banktypes.QueryClient that pages
// through every balance held by an address.
type BankQuerier struct {
	logger      polylog.Logger
	bankQuerier banktypes.QueryClient
}

// NewBankQuerier returns a BankQuerier issuing its requests over clientConn,
// typically a cosmos-sdk client.Context bridging gRPC to ABCI queries.
func NewBankQuerier(logger polylog.Logger, clientConn grpc.ClientConn) *BankQuerier {
	return &BankQuerier{
		logger:      logger.With(polylog.FieldComponent, "bank_querier"),
		bankQuerier: banktypes.NewQueryClient(clientConn),
	}
}

// AllBalances returns every non-zero balance of address across all pages.
func (bq *BankQuerier) AllBalances(ctx context.Context, address string) (sdk.Coins, error) {
	if address == "" {
		return nil, ErrQueryInvalidAddress.Wrap("empty address")
	}

	var (
		balances sdk.Coins
		nextKey  []byte
		pages    int
	)
	for {
		req := &banktypes.QueryAllBalancesRequest{
			Address: address,
			Pagination: &sdkquery.PageRequest{
				Key:   nextKey,
				Limit: balancesPageLimit,
			},
		}
		res, err := bq.bankQuerier.AllBalances(ctx, req)
		if err != nil {
			return nil, ErrQueryBalances.Wrapf("address: %s [%v]", address, err)
		}
		balances = append(balances, res.Balances...)
		pages++

		if res.Pagination == nil || len(res.Pagination.NextKey) == 0 {
			break
		}
		nextKey = res.Pagination.NextKey
	}

	bq.logger.Debug().
		Str(polylog.FieldAddress, address).
		Int("pages", pages).
		Int("num_balances", len(balances)).
		Msg("queried all balances")
	return balances, nil
}
