package runner

import (
	"context"

	"github.com/aretw0/dianti/pkg/domain"
	"github.com/aretw0/dianti/pkg/session"
)

// Start describes the session the runner is about to drive.
type Start struct {
	Config    domain.SessionConfig `json:"config"`
	NumFloors int                  `json:"num_floors"`
	Running   bool                 `json:"running"`
	// Warnings are the errors listed in the bootstrap response.
	Warnings session.Warnings `json:"warnings,omitempty"`
}

// TurnReport describes one completed turn.
type TurnReport struct {
	Number   int              `json:"turn"`
	Commands []domain.Command `json:"commands"`
	Running  bool             `json:"running"`
	Warnings session.Warnings `json:"warnings,omitempty"`
	// Diff is nil when either world could not be decoded.
	Diff *domain.WorldDiff `json:"diff,omitempty"`
}

// IOHandler defines how the driving loop reports progress.
// This allows switching between Text (CLI) and JSON (Structured) modes.
type IOHandler interface {
	// Begin is called once, before the first turn.
	Begin(ctx context.Context, start Start) error

	// Turn is called after every successful Advance.
	Turn(ctx context.Context, report TurnReport) error

	// Finish is called once with the final result, including on failure.
	Finish(ctx context.Context, result *Result) error
}

// NopHandler discards everything.
type NopHandler struct{}

func (NopHandler) Begin(context.Context, Start) error     { return nil }
func (NopHandler) Turn(context.Context, TurnReport) error { return nil }
func (NopHandler) Finish(context.Context, *Result) error  { return nil }
