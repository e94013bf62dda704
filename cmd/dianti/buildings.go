package main

import (
	"github.com/spf13/cobra"

	"github.com/aretw0/dianti/internal/presentation/tui"
	"github.com/aretw0/dianti/pkg/domain"
)

var buildingsCmd = &cobra.Command{
	Use:   "buildings",
	Short: "List the buildings the simulator knows",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		tui.PrintBuildings(cmd.OutOrStdout(), domain.Buildings())
	},
}

func init() {
	rootCmd.AddCommand(buildingsCmd)
}
