package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/dianti/internal/logging"
	"github.com/aretw0/dianti/pkg/domain"
	"github.com/aretw0/dianti/pkg/ports"
	"github.com/aretw0/dianti/pkg/session"
)

// Runner drives a bootstrapped session until the simulator ends it.
// It uses an IOHandler strategy to abstract the reporting mode (Text vs JSON).
type Runner struct {
	// Handler reports progress. If nil, a TextHandler on Stdout is used.
	Handler IOHandler

	// Logger is used for internal debug logging.
	// If nil, a no-op logger is used.
	Logger *slog.Logger

	// Hooks receive the end-of-run event.
	Hooks domain.LifecycleHooks

	// MaxTurns stops the loop after that many turns. Zero means no limit.
	MaxTurns int
}

// NewRunner creates a new Runner.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		Logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run asks the strategy for commands and advances the session until the
// latest snapshot reports running == false, MaxTurns is reached, ctx is
// canceled or a call fails. The returned Result is never nil; on failure it
// holds the last good snapshot alongside the error.
func (r *Runner) Run(ctx context.Context, client *session.Client, strategy ports.Strategy) (*Result, error) {
	handler := r.resolveHandler()
	logger := r.resolveLogger()

	if client.Status() == domain.StatusUninitialized {
		return r.finish(ctx, handler, client, StopError, domain.ErrNotBootstrapped)
	}

	start := Start{
		Config:    client.Config(),
		NumFloors: client.NumFloors(),
		Running:   client.Snapshot().Running(),
		Warnings:  client.Warnings(),
	}
	if err := handler.Begin(ctx, start); err != nil {
		return r.finish(ctx, handler, client, StopError, fmt.Errorf("output error: %w", err))
	}

	world, err := client.World()
	if err != nil {
		return r.finish(ctx, handler, client, StopError, decodeError(err))
	}

	for client.Status() == domain.StatusReady {
		if r.MaxTurns > 0 && client.Turn() >= r.MaxTurns {
			logger.Info("turn limit reached", "max_turns", r.MaxTurns)
			return r.finish(ctx, handler, client, StopMaxTurns, nil)
		}
		if err := ctx.Err(); err != nil {
			return r.finish(ctx, handler, client, StopCanceled, err)
		}

		cmds, err := strategy.Decide(ctx, world)
		if err != nil {
			return r.finish(ctx, handler, client, StopError, fmt.Errorf("strategy: %w", err))
		}

		started := time.Now()
		turn, err := client.Advance(ctx, cmds)
		if err != nil {
			if errors.Is(err, context.Canceled) && ctx.Err() != nil {
				return r.finish(ctx, handler, client, StopCanceled, err)
			}
			return r.finish(ctx, handler, client, StopError, err)
		}

		next, err := turn.Snapshot.World(client.NumFloors())
		if err != nil {
			return r.finish(ctx, handler, client, StopError, decodeError(err))
		}

		report := TurnReport{
			Number:   turn.Number,
			Commands: cmds,
			Running:  turn.Running(),
			Warnings: turn.Warnings,
			Diff:     domain.Diff(turn.Number, world, next),
		}
		if err := handler.Turn(ctx, report); err != nil {
			return r.finish(ctx, handler, client, StopError, fmt.Errorf("output error: %w", err))
		}
		logger.Debug("turn completed", "turn", turn.Number, "running", report.Running, "elapsed", time.Since(started))

		world = next
	}

	return r.finish(ctx, handler, client, StopEnded, nil)
}

func (r *Runner) finish(ctx context.Context, handler IOHandler, client *session.Client, reason StopReason, cause error) (*Result, error) {
	final := client.Snapshot()
	res := &Result{
		Turns:    client.Turn(),
		Final:    final,
		Ended:    client.Status() == domain.StatusEnded,
		Reason:   reason,
		Warnings: client.Warnings(),
		Err:      cause,
	}
	if res.Ended {
		if score, ok := final.Score(); ok {
			res.Score = &score
		}
		res.ReplayURL, _ = final.ReplayURL()
	}

	logger := r.resolveLogger()
	if cause != nil {
		logger.Error("run stopped", "reason", reason, "turns", res.Turns, "error", cause)
	} else {
		logger.Info("run finished", "reason", reason, "turns", res.Turns, "ended", res.Ended)
	}

	if r.Hooks.OnEnd != nil {
		r.Hooks.OnEnd(ctx, &domain.EndEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventEnd, Token: client.Token()},
			Turns:     res.Turns,
			Ended:     res.Ended,
			Score:     res.Score,
			Err:       cause,
		})
	}

	// Finish still reports after a canceled context.
	if err := handler.Finish(context.WithoutCancel(ctx), res); err != nil && cause == nil {
		cause = fmt.Errorf("output error: %w", err)
		res.Err = cause
	}
	return res, cause
}

func decodeError(err error) error {
	return &domain.ProtocolError{Op: "decode", Reason: "snapshot does not describe a world", Err: err}
}

// resolveHandler ensures a valid IOHandler is set.
func (r *Runner) resolveHandler() IOHandler {
	if r.Handler == nil {
		r.Handler = NewTextHandler(nil)
	}
	return r.Handler
}

func (r *Runner) resolveLogger() *slog.Logger {
	if r.Logger == nil {
		return logging.NewNop()
	}
	return r.Logger
}
