package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/dianti/internal/logging"
	"github.com/aretw0/dianti/pkg/domain"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "DIANTI_"

// Output modes for the run command.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Config is the application configuration.
// Precedence: defaults < YAML file < environment < command line flags.
type Config struct {
	Endpoint string `yaml:"endpoint" env:"ENDPOINT"`

	Event    string `yaml:"event" env:"EVENT"`
	Building string `yaml:"building" env:"BUILDING"`
	Bot      string `yaml:"bot" env:"BOT"`
	Email    string `yaml:"email" env:"EMAIL"`
	Sandbox  bool   `yaml:"sandbox" env:"SANDBOX"`

	Strategy string `yaml:"strategy" env:"STRATEGY"`
	Seed     uint64 `yaml:"seed" env:"SEED"`

	RequestTimeout time.Duration `yaml:"request_timeout" env:"REQUEST_TIMEOUT"`
	MaxTurns       int           `yaml:"max_turns" env:"MAX_TURNS"`

	MetricsAddr string `yaml:"metrics_addr" env:"METRICS_ADDR"`
	LogLevel    string `yaml:"log_level" env:"LOG_LEVEL"`
	LogFormat   string `yaml:"log_format" env:"LOG_FORMAT"`
	Output      string `yaml:"output" env:"OUTPUT"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Endpoint:  domain.DefaultEndpoint,
		Event:     "secondspace2025",
		Building:  domain.BuildingTinyRandom,
		Bot:       "dianti-go-bot",
		Sandbox:   true,
		Strategy:  "updown",
		LogLevel:  "info",
		LogFormat: string(logging.FormatText),
		Output:    OutputText,
	}
}

// Load applies the YAML file at path (when not empty) and then the
// environment on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return cfg, err
		}
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// SessionConfig extracts what is sent at bootstrap.
func (c Config) SessionConfig() domain.SessionConfig {
	return domain.SessionConfig{
		Event:    c.Event,
		Building: c.Building,
		Bot:      c.Bot,
		Email:    c.Email,
		Sandbox:  c.Sandbox,
	}
}

// Validate reports every problem at once. knownStrategy is consulted for
// the strategy name; pass nil to skip that check.
func (c Config) Validate(knownStrategy func(string) bool) error {
	var result *multierror.Error

	if u, err := url.Parse(c.Endpoint); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		result = multierror.Append(result, fmt.Errorf("endpoint %q must be an http(s) URL", c.Endpoint))
	}
	if c.Event == "" {
		result = multierror.Append(result, errors.New("event is required"))
	}
	if c.Bot == "" {
		result = multierror.Append(result, errors.New("bot is required"))
	}
	if _, ok := domain.LookupBuilding(c.Building); !ok {
		result = multierror.Append(result, fmt.Errorf("unknown building %q", c.Building))
	}
	if knownStrategy != nil && !knownStrategy(c.Strategy) {
		result = multierror.Append(result, fmt.Errorf("unknown strategy %q", c.Strategy))
	}
	if c.RequestTimeout < 0 {
		result = multierror.Append(result, errors.New("request_timeout must not be negative"))
	}
	if c.MaxTurns < 0 {
		result = multierror.Append(result, errors.New("max_turns must not be negative"))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		result = multierror.Append(result, err)
	}
	if _, err := logging.ParseFormat(c.LogFormat); err != nil {
		result = multierror.Append(result, err)
	}
	if c.Output != OutputText && c.Output != OutputJSON {
		result = multierror.Append(result, fmt.Errorf("output must be %q or %q, got %q", OutputText, OutputJSON, c.Output))
	}

	return result.ErrorOrNil()
}
