package ports

import (
	"context"

	"github.com/aretw0/dianti/pkg/domain"
)

// Strategy decides the commands for the next turn.
// The session client passes the batch through unmodified, in order.
type Strategy interface {
	Decide(ctx context.Context, world *domain.World) ([]domain.Command, error)
}

// StrategyFunc adapts a plain function to the Strategy interface.
type StrategyFunc func(ctx context.Context, world *domain.World) ([]domain.Command, error)

// Decide calls f.
func (f StrategyFunc) Decide(ctx context.Context, world *domain.World) ([]domain.Command, error) {
	return f(ctx, world)
}
