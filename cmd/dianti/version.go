package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/dianti"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of dianti",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "dianti version %s\n", strings.TrimSpace(dianti.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
