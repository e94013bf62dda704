package strategy

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aretw0/dianti/pkg/domain"
)

// UpDown sweeps every elevator between floor 1 and the top floor.
// It remembers each elevator's direction across turns, starting up.
type UpDown struct {
	mu         sync.Mutex
	directions map[string]domain.Direction
	logger     *slog.Logger
}

// NewUpDown creates an UpDown strategy.
func NewUpDown(opts Options) *UpDown {
	return &UpDown{
		directions: make(map[string]domain.Direction),
		logger:     opts.logger().With("strategy", NameUpDown),
	}
}

// Decide flips direction at the top and bottom floors and stops when a
// passenger inside wants this floor or a hall call here matches the
// direction of travel.
func (u *UpDown) Decide(ctx context.Context, world *domain.World) ([]domain.Command, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	cmds := make([]domain.Command, 0, len(world.Elevators))
	for _, e := range world.Elevators {
		dir, seen := u.directions[e.ID]
		if !seen {
			// Ground floor start, so the first sweep goes up.
			dir = domain.Up
		}
		switch {
		case dir == domain.Up && e.Floor >= world.NumFloors:
			dir = domain.Down
		case dir == domain.Down && e.Floor <= 1:
			dir = domain.Up
		}
		u.directions[e.ID] = dir

		act := domain.Move
		if e.HasButton(e.Floor) {
			act = domain.Stop
		} else {
			for _, r := range world.RequestsAt(e.Floor) {
				if r.Direction == dir {
					act = domain.Stop
					break
				}
			}
		}
		cmds = append(cmds, domain.NewCommand(e.ID, dir, act))
	}
	u.logger.Debug("decided", "turn", world.CurTurn, "commands", len(cmds))
	return cmds, nil
}
