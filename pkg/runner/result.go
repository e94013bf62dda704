package runner

import (
	"github.com/aretw0/dianti/pkg/domain"
	"github.com/aretw0/dianti/pkg/session"
)

// StopReason tells why the loop stopped.
type StopReason string

const (
	StopEnded    StopReason = "ended"     // Simulator reported running == false
	StopMaxTurns StopReason = "max_turns" // Local turn limit reached
	StopCanceled StopReason = "canceled"  // Context canceled between turns
	StopError    StopReason = "error"     // Fatal transport, protocol or strategy error
)

// Result summarizes a run. Score and ReplayURL are only set when the
// simulator reported the end of the simulation; a run cut short never
// reports a score.
type Result struct {
	Turns     int              `json:"turns"`
	Final     domain.Snapshot  `json:"final"`
	Ended     bool             `json:"ended"`
	Reason    StopReason       `json:"reason"`
	Score     *float64         `json:"score,omitempty"`
	ReplayURL string           `json:"replay_url,omitempty"`
	Warnings  session.Warnings `json:"warnings,omitempty"`
	Err       error            `json:"-"`
}
