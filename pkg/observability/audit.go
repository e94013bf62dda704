package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/dianti/pkg/domain"
)

// AuditHooks logs every lifecycle event at debug level, and failures at error level.
func AuditHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnBootstrap: func(ctx context.Context, e *domain.BootstrapEvent) {
			logger.DebugContext(ctx, string(e.Type),
				"building", e.Config.Building,
				"bot", e.Config.Bot,
				"num_floors", e.NumFloors,
			)
		},
		OnTurn: func(ctx context.Context, e *domain.TurnEvent) {
			logger.DebugContext(ctx, string(e.Type),
				"turn", e.Turn,
				"commands", e.Commands,
				"running", e.Running,
				"duration", e.Duration,
			)
		},
		OnAPIError: func(ctx context.Context, e *domain.APIErrorEvent) {
			logger.DebugContext(ctx, string(e.Type), "turn", e.Err.Turn, "message", e.Err.Message)
		},
		OnEnd: func(ctx context.Context, e *domain.EndEvent) {
			if e.Err != nil {
				logger.ErrorContext(ctx, string(e.Type), "turns", e.Turns, "error", e.Err)
				return
			}
			attrs := []any{"turns", e.Turns, "ended", e.Ended}
			if e.Score != nil {
				attrs = append(attrs, "score", *e.Score)
			}
			logger.DebugContext(ctx, string(e.Type), attrs...)
		},
	}
}
