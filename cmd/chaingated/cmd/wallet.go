package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pokt-network/chaingate/cmd/flags"
	"github.com/pokt-network/chaingate/pkg/client/cosmos"
	"github.com/pokt-network/chaingate/pkg/crypto/vault"
)

var (
	walletChain   string
	walletNetwork string
)

func WalletCmd() *cobra.Command {
	walletCmd := &cobra.Command{
		Use:   "wallet",
		Short: "Manage the encrypted wallets of the gateway.",
	}

	walletCmd.PersistentFlags().StringVar(&walletChain, flags.FlagChain, cosmos.ChainCosmos, flags.FlagChainUsage)
	walletCmd.PersistentFlags().StringVar(&walletNetwork, flags.FlagNetwork, flags.DefaultNetwork, flags.FlagNetworkUsage)

	walletCmd.AddCommand(walletAddCmd())
	walletCmd.AddCommand(walletNewCmd())
	walletCmd.AddCommand(walletListCmd())
	walletCmd.AddCommand(walletRemoveCmd())
	return walletCmd
}

func walletAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add [private-key-or-mnemonic]",
		Short: "Import a hex private key or a mnemonic; read from stdin when omitted.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			secret := ""
			if len(args) == 1 {
				secret = args[0]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return err
				}
				secret = strings.TrimSpace(line)
			}
			return addWallet(cmd, secret)
		},
	}
}

func walletNewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Generate a mnemonic, store its wallet and print the mnemonic once.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mnemonic, err := vault.NewMnemonic()
			if err != nil {
				return err
			}
			if err := addWallet(cmd, mnemonic); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "mnemonic: %s\n", mnemonic)
			return nil
		},
	}
}

func addWallet(cmd *cobra.Command, secret string) error {
	registry, _, closeAll, err := newRegistry(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer closeAll()

	chain, err := registry.Get(walletChain, walletNetwork)
	if err != nil {
		return err
	}
	address, err := chain.AddWallet(cmd.Context(), secret)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), address)
	return nil
}

func walletListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the stored wallet addresses of --chain.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, wallets, closeAll, err := newRegistry(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer closeAll()

			addresses, err := wallets.List(walletChain)
			if err != nil {
				return err
			}
			for _, address := range addresses {
				fmt.Fprintln(cmd.OutOrStdout(), address)
			}
			return nil
		},
	}
}

func walletRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <address>",
		Short: "Delete the stored wallet of address.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, wallets, closeAll, err := newRegistry(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer closeAll()

			return wallets.Remove(walletChain, args[0])
		},
	}
}
