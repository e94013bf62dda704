package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/dianti/internal/logging"
	"github.com/aretw0/dianti/pkg/domain"
	"github.com/aretw0/dianti/pkg/ports"
)

// state is owned by the Client and only replaced as a whole.
type state struct {
	config    domain.SessionConfig
	token     string
	numFloors int
	turn      int
	snapshot  domain.Snapshot
	warnings  Warnings
}

// Client drives one simulation session over a Transport.
// Bootstrap and Advance must not overlap; a second concurrent call fails
// with domain.ErrTurnInFlight instead of queueing. Accessors are safe to
// call at any time and never touch the network.
type Client struct {
	transport ports.Transport
	endpoint  string
	logger    *slog.Logger
	hooks     domain.LifecycleHooks

	inflight sync.Mutex // held for the duration of one exchange

	mu    sync.RWMutex
	state state
}

// NewClient creates an uninitialized client. Call Bootstrap before Advance.
func NewClient(transport ports.Transport, opts ...Option) *Client {
	c := &Client{
		transport: transport,
		endpoint:  domain.DefaultEndpoint,
		logger:    logging.NewNop(), // Default to no-op
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start creates a client and bootstraps it with cfg.
func Start(ctx context.Context, transport ports.Transport, cfg domain.SessionConfig, opts ...Option) (*Client, *Turn, error) {
	c := NewClient(transport, opts...)
	turn, err := c.Bootstrap(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return c, turn, nil
}

// Bootstrap opens the session. The response must carry a token and the
// floor count; when either is missing the call fails even if the response
// also lists errors. A client can be bootstrapped only once, but a failed
// Bootstrap may be retried.
func (c *Client) Bootstrap(ctx context.Context, cfg domain.SessionConfig) (*Turn, error) {
	if !c.inflight.TryLock() {
		return nil, domain.ErrTurnInFlight
	}
	defer c.inflight.Unlock()

	c.mu.RLock()
	bootstrapped := c.state.token != ""
	c.mu.RUnlock()
	if bootstrapped {
		return nil, domain.ErrAlreadyBootstrapped
	}

	logger := c.logger.With("bot", cfg.Bot, "building", cfg.Building)
	logger.Debug("bootstrapping session", "event", cfg.Event, "sandbox", cfg.Sandbox, "endpoint", c.endpoint)

	doc, err := c.transport.Post(ctx, c.endpoint, cfg.BootstrapRequest())
	if err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	snap := domain.NewSnapshot(doc)
	token, ok := snap.Token()
	if !ok {
		return nil, &domain.ProtocolError{Op: "bootstrap", Reason: "response has no token"}
	}
	numFloors, ok := snap.NumFloors()
	if !ok {
		return nil, &domain.ProtocolError{Op: "bootstrap", Reason: "response has no integer num_floors"}
	}
	msgs, err := snap.Errors()
	if err != nil {
		return nil, &domain.ProtocolError{Op: "bootstrap", Reason: "malformed errors field", Err: err}
	}
	warnings := toWarnings(0, msgs)

	c.mu.Lock()
	c.state = state{
		config:    cfg,
		token:     token,
		numFloors: numFloors,
		turn:      0,
		snapshot:  snap,
		warnings:  append(Warnings(nil), warnings...),
	}
	c.logger = logger
	c.mu.Unlock()

	logger.Info("session started", "num_floors", numFloors, "running", snap.Running())
	if c.hooks.OnBootstrap != nil {
		c.hooks.OnBootstrap(ctx, &domain.BootstrapEvent{
			EventBase: c.event(domain.EventBootstrap, token),
			Config:    cfg,
			NumFloors: numFloors,
		})
	}
	c.reportWarnings(ctx, token, warnings)

	return &Turn{Number: 0, Snapshot: snap, Warnings: warnings}, nil
}

// Advance submits one turn. Commands are sent in the given order without
// validation. The turn counter and snapshot change only when the response
// is well formed; errors listed in the response are returned as warnings
// on the Turn, not as a failure.
func (c *Client) Advance(ctx context.Context, commands []domain.Command) (*Turn, error) {
	if !c.inflight.TryLock() {
		return nil, domain.ErrTurnInFlight
	}
	defer c.inflight.Unlock()

	c.mu.RLock()
	token, next := c.state.token, c.state.turn+1
	c.mu.RUnlock()
	if token == "" {
		return nil, domain.ErrNotBootstrapped
	}

	start := time.Now()
	doc, err := c.transport.Post(ctx, c.endpoint, domain.NewTurnRequest(token, commands))
	if err != nil {
		c.logger.Debug("turn failed", "turn", next, "error", err)
		return nil, fmt.Errorf("advance turn %d: %w", next, err)
	}

	snap := domain.NewSnapshot(doc)
	if _, ok := doc[domain.KeyRunning].(bool); !ok {
		return nil, &domain.ProtocolError{Op: "advance", Reason: "response has no boolean running flag"}
	}
	msgs, err := snap.Errors()
	if err != nil {
		return nil, &domain.ProtocolError{Op: "advance", Reason: "malformed errors field", Err: err}
	}
	warnings := toWarnings(next, msgs)

	c.mu.Lock()
	c.state.turn = next
	c.state.snapshot = snap
	c.state.warnings = append(c.state.warnings, warnings...)
	c.mu.Unlock()

	elapsed := time.Since(start)
	c.logger.Debug("turn", "turn", next, "commands", len(commands), "running", snap.Running(), "warnings", len(warnings), "duration", elapsed)
	c.reportWarnings(ctx, token, warnings)
	if c.hooks.OnTurn != nil {
		c.hooks.OnTurn(ctx, &domain.TurnEvent{
			EventBase: c.event(domain.EventTurn, token),
			Turn:      next,
			Commands:  len(commands),
			Running:   snap.Running(),
			Duration:  elapsed,
		})
	}

	return &Turn{Number: next, Snapshot: snap, Warnings: warnings}, nil
}

func (c *Client) reportWarnings(ctx context.Context, token string, warnings Warnings) {
	for _, w := range warnings {
		c.logger.Warn("simulator reported an error", "turn", w.Turn, "message", w.Message)
		if c.hooks.OnAPIError != nil {
			c.hooks.OnAPIError(ctx, &domain.APIErrorEvent{
				EventBase: c.event(domain.EventAPIError, token),
				Err:       w,
			})
		}
	}
}

func (c *Client) event(t domain.EventType, token string) domain.EventBase {
	return domain.EventBase{Timestamp: time.Now(), Type: t, Token: token}
}

// Token returns the session token, empty before Bootstrap succeeds.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.token
}

// Turn returns the number of successful Advance calls.
func (c *Client) Turn() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.turn
}

// NumFloors returns the floor count fixed at bootstrap.
func (c *Client) NumFloors() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.numFloors
}

// Snapshot returns the latest successfully received world document.
func (c *Client) Snapshot() domain.Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.snapshot
}

// World decodes the latest snapshot for a strategy.
func (c *Client) World() (*domain.World, error) {
	c.mu.RLock()
	snap, floors := c.state.snapshot, c.state.numFloors
	c.mu.RUnlock()
	if snap.IsZero() {
		return nil, domain.ErrNotBootstrapped
	}
	return snap.World(floors)
}

// Config returns the configuration the session was bootstrapped with.
func (c *Client) Config() domain.SessionConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.config
}

// Warnings returns every warning received so far, oldest first.
func (c *Client) Warnings() Warnings {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append(Warnings(nil), c.state.warnings...)
}

// Status derives the lifecycle stage from the stored state.
func (c *Client) Status() domain.Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	switch {
	case c.state.token == "":
		return domain.StatusUninitialized
	case c.state.snapshot.Has(domain.KeyRunning) && !c.state.snapshot.Running():
		return domain.StatusEnded
	}
	return domain.StatusReady
}
