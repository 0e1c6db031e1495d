package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "infotheory",
		Short: "Compute Shannon entropy and mutual information of numeric datasets",
		Long: `Compute Shannon entropy, joint entropy and mutual information.

Datasets are read as numbers separated by commas or whitespace, either from
arguments, a file, or standard input. A dataset is treated as a probability
distribution (PB) or as raw samples whose value frequencies are counted (DS).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(entropyCmd())
	rootCmd.AddCommand(jointCmd())
	rootCmd.AddCommand(mutualCmd())
	rootCmd.AddCommand(serveCmd())

	return rootCmd
}
