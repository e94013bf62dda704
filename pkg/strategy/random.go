package strategy

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"

	"github.com/aretw0/dianti/pkg/domain"
)

// Random picks a direction and an action at random for every elevator.
type Random struct {
	mu     sync.Mutex
	rng    *rand.Rand
	logger *slog.Logger
}

// NewRandom creates a Random strategy.
func NewRandom(opts Options) *Random {
	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &Random{
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		logger: opts.logger().With("strategy", NameRandom, "seed", seed),
	}
}

// Decide returns one command per elevator, in snapshot order.
func (r *Random) Decide(ctx context.Context, world *domain.World) ([]domain.Command, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cmds := make([]domain.Command, 0, len(world.Elevators))
	for _, e := range world.Elevators {
		cmds = append(cmds, domain.NewCommand(
			e.ID,
			domain.Direction(r.rng.IntN(2) == 0),
			domain.Action(r.rng.IntN(2) == 0),
		))
	}
	r.logger.Debug("decided", "turn", world.CurTurn, "commands", len(cmds))
	return cmds, nil
}
