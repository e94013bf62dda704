package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventBootstrap EventType = "bootstrap"
	EventTurn      EventType = "turn"
	EventAPIError  EventType = "api_error"
	EventEnd       EventType = "end"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	// Token identifies the session, empty before bootstrap succeeds.
	Token string `json:"token,omitempty"`
}

// BootstrapEvent is emitted once the session has a token.
type BootstrapEvent struct {
	EventBase
	Config    SessionConfig `json:"config"`
	NumFloors int           `json:"num_floors"`
}

// TurnEvent is emitted after every successful exchange with the simulator.
type TurnEvent struct {
	EventBase
	Turn     int           `json:"turn"`
	Commands int           `json:"commands"`
	Running  bool          `json:"running"`
	Duration time.Duration `json:"duration"`
}

// APIErrorEvent carries one entry of a response's errors list.
type APIErrorEvent struct {
	EventBase
	Err APIError `json:"error"`
}

// EndEvent is emitted when the driving loop stops, for any reason.
type EndEvent struct {
	EventBase
	Turns int `json:"turns"`
	// Ended is true when the simulator reported running == false.
	Ended bool     `json:"ended"`
	Score *float64 `json:"score,omitempty"`
	Err   error    `json:"-"`
}

// LifecycleHooks defines callbacks for session observability.
type LifecycleHooks struct {
	OnBootstrap func(context.Context, *BootstrapEvent)
	OnTurn      func(context.Context, *TurnEvent)
	OnAPIError  func(context.Context, *APIErrorEvent)
	OnEnd       func(context.Context, *EndEvent)
}

// Merge returns hooks that call h first, then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnBootstrap: chain(h.OnBootstrap, other.OnBootstrap),
		OnTurn:      chain(h.OnTurn, other.OnTurn),
		OnAPIError:  chain(h.OnAPIError, other.OnAPIError),
		OnEnd:       chain(h.OnEnd, other.OnEnd),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
