package dianti

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/dianti/internal/logging"
	httpAdapter "github.com/aretw0/dianti/pkg/adapters/http"
	"github.com/aretw0/dianti/pkg/domain"
	"github.com/aretw0/dianti/pkg/ports"
	"github.com/aretw0/dianti/pkg/runner"
	"github.com/aretw0/dianti/pkg/session"
	"github.com/aretw0/dianti/pkg/strategy"
)

// Engine is the high-level entry point for the library.
// It wires a transport, a session and a runner so a caller can play a whole
// simulation with one call.
type Engine struct {
	transport ports.Transport
	endpoint  string
	strategy  ports.Strategy
	handler   runner.IOHandler
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	maxTurns  int
	timeout   time.Duration
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithTransport replaces the default HTTP transport.
func WithTransport(t ports.Transport) Option {
	return func(e *Engine) {
		e.transport = t
	}
}

// WithEndpoint overrides domain.DefaultEndpoint.
func WithEndpoint(endpoint string) Option {
	return func(e *Engine) {
		e.endpoint = endpoint
	}
}

// WithStrategy sets the strategy that picks commands each turn.
// Defaults to the up-and-down sweep.
func WithStrategy(s ports.Strategy) Option {
	return func(e *Engine) {
		e.strategy = s
	}
}

// WithHandler sets how progress is reported. Defaults to no output.
func WithHandler(h runner.IOHandler) Option {
	return func(e *Engine) {
		e.handler = h
	}
}

// WithLifecycleHooks registers observability hooks. Repeated calls are merged.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMaxTurns stops a run after n turns. Zero means no limit.
func WithMaxTurns(n int) Option {
	return func(e *Engine) {
		e.maxTurns = n
	}
}

// WithRequestTimeout bounds each HTTP exchange of the default transport.
// Ignored when WithTransport is used.
func WithRequestTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.timeout = d
	}
}

// New initializes an Engine.
func New(opts ...Option) *Engine {
	eng := &Engine{endpoint: domain.DefaultEndpoint}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.transport == nil {
		eng.transport = httpAdapter.NewClient(
			httpAdapter.WithTimeout(eng.timeout),
			httpAdapter.WithLogger(eng.logger),
		)
	}
	if eng.strategy == nil {
		eng.strategy = strategy.NewUpDown(strategy.Options{Logger: eng.logger})
	}
	if eng.handler == nil {
		eng.handler = runner.NopHandler{}
	}
	return eng
}

// NewSession creates an uninitialized session client wired with the
// engine's transport, endpoint, logger and hooks. It lets a caller observe
// the client before Run bootstraps it.
func (e *Engine) NewSession() *session.Client {
	return session.NewClient(e.transport,
		session.WithEndpoint(e.endpoint),
		session.WithLogger(e.logger),
		session.WithHooks(e.hooks),
	)
}

// Run bootstraps client with cfg and advances it until the simulator ends
// it. A failed bootstrap returns a nil Result; any later failure returns the
// partial Result alongside the error.
func (e *Engine) Run(ctx context.Context, client *session.Client, cfg domain.SessionConfig) (*runner.Result, error) {
	if _, err := client.Bootstrap(ctx, cfg); err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}

	r := runner.NewRunner(
		runner.WithLogger(e.logger),
		runner.WithHandler(e.handler),
		runner.WithHooks(e.hooks),
		runner.WithMaxTurns(e.maxTurns),
	)
	return r.Run(ctx, client, e.strategy)
}

// Play runs a fresh session with cfg.
func (e *Engine) Play(ctx context.Context, cfg domain.SessionConfig) (*runner.Result, error) {
	return e.Run(ctx, e.NewSession(), cfg)
}
