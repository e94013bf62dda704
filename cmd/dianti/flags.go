package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/aretw0/dianti/internal/config"
)

// addRunFlags registers the flags mirroring config.Config. Defaults shown in
// help are the built-in ones; unset flags never override file or environment.
func addRunFlags(fs *pflag.FlagSet) {
	d := config.Default()
	fs.String("endpoint", d.Endpoint, "Simulator URL")
	fs.String("event", d.Event, "Event name")
	fs.StringP("building", "b", d.Building, "Building to simulate")
	fs.String("bot", d.Bot, "Bot name shown on the leaderboard")
	fs.String("email", d.Email, "Contact email")
	fs.Bool("sandbox", d.Sandbox, "Play in sandbox mode")
	fs.StringP("strategy", "s", d.Strategy, "Strategy choosing the commands")
	fs.Uint64("seed", d.Seed, "Seed for random strategies (0 = random)")
	fs.Duration("timeout", d.RequestTimeout, "Per-request timeout (0 = none)")
	fs.Int("max-turns", d.MaxTurns, "Stop after this many turns (0 = until the simulation ends)")
	fs.String("metrics-addr", d.MetricsAddr, "Serve /metrics and /session on this address")
	fs.String("log-level", d.LogLevel, "Log level: debug, info, warn, error")
	fs.String("log-format", d.LogFormat, "Log format: text or json")
	fs.Bool("json", false, "Write NDJSON events instead of text")
}

// loadConfig merges defaults, the config file, the environment and the
// flags that were set explicitly, in that order.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	fs := cmd.Flags()
	var ferr error
	fs.Visit(func(f *pflag.Flag) {
		if ferr != nil {
			return
		}
		switch f.Name {
		case "endpoint":
			cfg.Endpoint, ferr = fs.GetString(f.Name)
		case "event":
			cfg.Event, ferr = fs.GetString(f.Name)
		case "building":
			cfg.Building, ferr = fs.GetString(f.Name)
		case "bot":
			cfg.Bot, ferr = fs.GetString(f.Name)
		case "email":
			cfg.Email, ferr = fs.GetString(f.Name)
		case "sandbox":
			cfg.Sandbox, ferr = fs.GetBool(f.Name)
		case "strategy":
			cfg.Strategy, ferr = fs.GetString(f.Name)
		case "seed":
			cfg.Seed, ferr = fs.GetUint64(f.Name)
		case "timeout":
			cfg.RequestTimeout, ferr = fs.GetDuration(f.Name)
		case "max-turns":
			cfg.MaxTurns, ferr = fs.GetInt(f.Name)
		case "metrics-addr":
			cfg.MetricsAddr, ferr = fs.GetString(f.Name)
		case "log-level":
			cfg.LogLevel, ferr = fs.GetString(f.Name)
		case "log-format":
			cfg.LogFormat, ferr = fs.GetString(f.Name)
		case "json":
			var on bool
			if on, ferr = fs.GetBool(f.Name); on {
				cfg.Output = config.OutputJSON
			}
		}
	})
	return cfg, ferr
}
