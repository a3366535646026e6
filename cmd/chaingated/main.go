package main

import (
	"fmt"
	"os"

	"github.com/pokt-network/chaingate/cmd/chaingated/cmd"
)

func main() {
	rootCmd := cmd.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}
