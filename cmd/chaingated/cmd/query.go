package cmd

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pokt-network/chaingate/cmd/flags"
	"github.com/pokt-network/chaingate/pkg/client/cosmos"
)

var (
	queryChain   string
	queryNetwork string
	querySymbols string
)

func QueryCmd() *cobra.Command {
	queryCmd := &cobra.Command{
		Use:   "query",
		Short: "Query a chain network directly, bypassing the HTTP API.",
	}

	queryCmd.PersistentFlags().StringVar(&queryChain, flags.FlagChain, cosmos.ChainCosmos, flags.FlagChainUsage)
	queryCmd.PersistentFlags().StringVar(&queryNetwork, flags.FlagNetwork, flags.DefaultNetwork, flags.FlagNetworkUsage)

	balancesCmd := &cobra.Command{
		Use:   "balances <address>",
		Short: "Print the balances of address.",
		Args:  cobra.ExactArgs(1),
		RunE:  runQueryBalances,
	}
	balancesCmd.Flags().StringVar(&querySymbols, flags.FlagSymbols, "", flags.FlagSymbolsUsage)

	queryCmd.AddCommand(balancesCmd)
	queryCmd.AddCommand(&cobra.Command{
		Use:   "tx <hash>",
		Short: "Print the poll result of a transaction.",
		Args:  cobra.ExactArgs(1),
		RunE:  runQueryTx,
	})
	queryCmd.AddCommand(&cobra.Command{
		Use:   "height",
		Short: "Print the latest block height.",
		Args:  cobra.NoArgs,
		RunE:  runQueryHeight,
	})
	queryCmd.AddCommand(&cobra.Command{
		Use:   "history",
		Short: "Print the recorded successful transactions of the chain network.",
		Args:  cobra.NoArgs,
		RunE:  runQueryHistory,
	})
	return queryCmd
}

// withChain runs fn against the initialized chain selected by the flags and
// prints its result as indented JSON.
func withChain(cmd *cobra.Command, fn func(*cosmos.Chain) (any, error)) error {
	registry, _, closeAll, err := newRegistry(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer closeAll()

	chain, err := readyChain(cmd.Context(), registry, queryChain, queryNetwork)
	if err != nil {
		return err
	}
	result, err := fn(chain)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func runQueryBalances(cmd *cobra.Command, args []string) error {
	return withChain(cmd, func(chain *cosmos.Chain) (any, error) {
		var symbols []string
		if querySymbols != "" {
			symbols = strings.Split(querySymbols, ",")
		} else {
			for _, token := range chain.StoredTokenList() {
				symbols = append(symbols, token.Symbol)
			}
		}
		return chain.Balances(cmd.Context(), args[0], symbols)
	})
}

func runQueryTx(cmd *cobra.Command, args []string) error {
	return withChain(cmd, func(chain *cosmos.Chain) (any, error) {
		return chain.Poll(cmd.Context(), args[0])
	})
}

func runQueryHeight(cmd *cobra.Command, _ []string) error {
	return withChain(cmd, func(chain *cosmos.Chain) (any, error) {
		return chain.GetCurrentBlockNumber(cmd.Context())
	})
}

func runQueryHistory(cmd *cobra.Command, _ []string) error {
	return withChain(cmd, func(chain *cosmos.Chain) (any, error) {
		return chain.TxHistory(cmd.Context())
	})
}
