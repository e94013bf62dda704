package domain

// WorldDiff represents the changes between two consecutive worlds.
// It is designed to be serialized to JSON for compact turn logs.
type WorldDiff struct {
	Turn int `json:"turn"`

	// Moves maps an elevator id to its floor delta. Idle elevators are omitted.
	Moves map[string]int `json:"moves,omitempty"`

	// Boarded maps an elevator id to the number of new destination buttons.
	Boarded map[string]int `json:"boarded,omitempty"`

	// RequestsDelta is the change in pending hall calls.
	RequestsDelta int `json:"requests_delta,omitempty"`

	// Running is set only when the flag flipped.
	Running *bool `json:"running,omitempty"`

	// Score is set only when it changed.
	Score *float64 `json:"score,omitempty"`
}

// Diff calculates the difference between prev and next.
// If prev is nil, every elevator is reported at its absolute floor.
func Diff(turn int, prev, next *World) *WorldDiff {
	if next == nil {
		return nil
	}

	diff := &WorldDiff{Turn: turn}
	diff.Moves, diff.Boarded = diffElevators(prev, next)

	if prev == nil {
		diff.RequestsDelta = len(next.Requests)
		if !next.Running {
			diff.Running = &next.Running
		}
		if next.Score != 0 {
			diff.Score = &next.Score
		}
		return diff
	}

	diff.RequestsDelta = len(next.Requests) - len(prev.Requests)
	if prev.Running != next.Running {
		diff.Running = &next.Running
	}
	if prev.Score != next.Score {
		diff.Score = &next.Score
	}
	return diff
}

func diffElevators(prev, next *World) (map[string]int, map[string]int) {
	before := make(map[string]Elevator)
	if prev != nil {
		for _, e := range prev.Elevators {
			before[e.ID] = e
		}
	}

	moves := make(map[string]int)
	boarded := make(map[string]int)
	for _, e := range next.Elevators {
		old, seen := before[e.ID]
		if dy := e.Floor - old.Floor; dy != 0 {
			moves[e.ID] = dy
		}
		added := 0
		for _, f := range e.ButtonsPressed {
			if !seen || !old.HasButton(f) {
				added++
			}
		}
		if added > 0 {
			boarded[e.ID] = added
		}
	}

	// Return nil so omitempty can remove the key
	if len(moves) == 0 {
		moves = nil
	}
	if len(boarded) == 0 {
		boarded = nil
	}
	return moves, boarded
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *WorldDiff) IsEmpty() bool {
	return len(d.Moves) == 0 &&
		len(d.Boarded) == 0 &&
		d.RequestsDelta == 0 &&
		d.Running == nil &&
		d.Score == nil
}
