package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/aretw0/dianti/internal/cli"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Play one simulation (default command)",
	Long: `Bootstraps a session, advances it with the chosen strategy until the
simulator reports the end, then prints the score and the replay URL.

Configuration is read from the built-in defaults, then --config, then
DIANTI_* environment variables, then flags.`,
	Args: cobra.NoArgs,
	RunE: runSimulation,
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	debug, _ := cmd.Flags().GetBool("debug")
	quiet, _ := cmd.Flags().GetBool("quiet")
	noBanner, _ := cmd.Flags().GetBool("no-banner")

	ctx := cli.NewSignalContext(context.Background())
	defer ctx.Cancel()

	_, err = cli.Execute(ctx, cli.RunOptions{
		Config:   cfg,
		Debug:    debug,
		Quiet:    quiet,
		NoBanner: noBanner,
		Stdout:   cmd.OutOrStdout(),
		Stderr:   cmd.ErrOrStderr(),
	})
	return err
}

func init() {
	rootCmd.AddCommand(runCmd)

	for _, c := range []*cobra.Command{rootCmd, runCmd} {
		addRunFlags(c.Flags())
		c.Flags().BoolP("quiet", "q", false, "Only print errors and the final result")
		c.Flags().Bool("no-banner", false, "Do not print the banner")
	}

	// Make 'run' the default if no command is provided
	rootCmd.RunE = runCmd.RunE
	rootCmd.Args = cobra.NoArgs
}
