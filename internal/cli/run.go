package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"

	"github.com/google/uuid"

	"github.com/aretw0/dianti"
	statusServer "github.com/aretw0/dianti/internal/adapters/http"
	"github.com/aretw0/dianti/internal/config"
	"github.com/aretw0/dianti/internal/presentation/tui"
	"github.com/aretw0/dianti/pkg/observability"
	"github.com/aretw0/dianti/pkg/ports"
	"github.com/aretw0/dianti/pkg/runner"
	"github.com/aretw0/dianti/pkg/session"
	"github.com/aretw0/dianti/pkg/strategy"
)

// RunOptions contains all the configuration for the run command.
type RunOptions struct {
	// Config is already merged from defaults, file, environment and flags.
	Config config.Config
	Debug  bool
	// Quiet hides the per-turn lines in text mode.
	Quiet    bool
	NoBanner bool

	Stdout io.Writer
	Stderr io.Writer

	// Transport overrides the HTTP client, for tests.
	Transport ports.Transport
	// Strategies overrides strategy.Default().
	Strategies *strategy.Registry
}

// Execute plays one simulation. An interruption is not an error: the
// partial result is reported and nil is returned.
func Execute(ctx context.Context, opts RunOptions) (*runner.Result, error) {
	stdout, stderr := opts.Stdout, opts.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	registry := opts.Strategies
	if registry == nil {
		registry = strategy.Default()
	}

	cfg := opts.Config
	if err := cfg.Validate(registry.Has); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := createLogger(stderr, cfg.LogLevel, cfg.LogFormat, opts.Debug)
	if err != nil {
		return nil, err
	}
	logger = logger.With("run_id", uuid.NewString())

	strat, err := registry.New(cfg.Strategy, strategy.Options{Seed: cfg.Seed, Logger: logger})
	if err != nil {
		return nil, err
	}

	metrics := observability.NewMetrics()
	jsonMode := cfg.Output == config.OutputJSON
	interactive := isTerminal(stdout)

	engineOpts := []dianti.Option{
		dianti.WithEndpoint(cfg.Endpoint),
		dianti.WithLogger(logger),
		dianti.WithStrategy(strat),
		dianti.WithHandler(newHandler(stdout, jsonMode, interactive, opts.Quiet)),
		dianti.WithLifecycleHooks(metrics.Hooks(cfg.Building)),
		dianti.WithLifecycleHooks(observability.AuditHooks(logger)),
		dianti.WithMaxTurns(cfg.MaxTurns),
		dianti.WithRequestTimeout(cfg.RequestTimeout),
	}
	if opts.Transport != nil {
		engineOpts = append(engineOpts, dianti.WithTransport(opts.Transport))
	}
	eng := dianti.New(engineOpts...)
	client := eng.NewSession()

	if cfg.MetricsAddr != "" {
		_, stop, err := startStatusServer(ctx, cfg, metrics, client, logger)
		if err != nil {
			return nil, err
		}
		defer stop()
	}

	if !jsonMode && interactive && !opts.NoBanner {
		tui.PrintBanner(stdout, dianti.Version)
	}

	res, err := eng.Run(ctx, client, cfg.SessionConfig())
	if res != nil && res.Reason == runner.StopCanceled && isInterrupted(err) {
		if !jsonMode {
			var sig os.Signal
			if sc, ok := ctx.(*SignalContext); ok {
				sig = sc.Signal()
			}
			logInterruption(stderr, res.Turns, sig)
		}
		return res, nil
	}
	return res, err
}

func newHandler(w io.Writer, jsonMode, interactive, quiet bool) runner.IOHandler {
	if jsonMode {
		return runner.NewJSONHandler(w)
	}
	opts := []runner.TextHandlerOption{runner.WithTextHandlerQuiet(quiet)}
	if interactive {
		opts = append(opts, runner.WithTextHandlerRenderer(tui.NewRenderer()))
	}
	return runner.NewTextHandler(w, opts...)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && tui.IsTerminal(f)
}

// startStatusServer serves metrics and the live session until stop is called.
// It returns the bound address once the listener is up.
func startStatusServer(ctx context.Context, cfg config.Config, metrics *observability.Metrics, client *session.Client, logger *slog.Logger) (addr net.Addr, stop func(), err error) {
	srv := &statusServer.Server{
		Metrics: metrics.Handler(),
		Logger:  logger,
		Status: func() statusServer.SessionStatus {
			return statusServer.SessionStatus{
				Status:    client.Status(),
				Turn:      client.Turn(),
				NumFloors: client.NumFloors(),
				Building:  cfg.Building,
				Warnings:  len(client.Warnings()),
			}
		},
	}

	srvCtx, cancel := context.WithCancel(ctx)
	ready := make(chan net.Addr, 1)
	done := make(chan error, 1)
	go func() {
		done <- srv.Serve(srvCtx, cfg.MetricsAddr, func(a net.Addr) { ready <- a })
	}()

	select {
	case addr = <-ready:
	case err := <-done:
		cancel()
		return nil, nil, fmt.Errorf("status server: %w", err)
	}

	return addr, func() {
		cancel()
		if err := <-done; err != nil {
			logger.Error("status server failed", "error", err)
		}
	}, nil
}
