package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/dianti/internal/presentation/tui"
	"github.com/aretw0/dianti/pkg/strategy"
)

var strategiesCmd = &cobra.Command{
	Use:   "strategies",
	Short: "List the built-in strategies",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		r := strategy.Default()
		tui.PrintStrategies(cmd.OutOrStdout(), r.Names(), r.Description)
	},
}

func init() {
	rootCmd.AddCommand(strategiesCmd)
}
