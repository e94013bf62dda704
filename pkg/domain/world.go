package domain

import (
	"fmt"
	"slices"

	"github.com/mitchellh/mapstructure"
)

// Elevator is the state of one car as reported by the simulator.
type Elevator struct {
	ID    string `json:"id" mapstructure:"id"`
	Floor int    `json:"floor" mapstructure:"floor"`
	// ButtonsPressed lists the destination floors of the passengers inside.
	ButtonsPressed []int `json:"buttons_pressed" mapstructure:"buttons_pressed"`
}

// HasButton reports whether a passenger inside wants to leave at floor.
func (e Elevator) HasButton(floor int) bool {
	return slices.Contains(e.ButtonsPressed, floor)
}

// Request is a pending hall call.
type Request struct {
	Floor     int       `json:"floor" mapstructure:"floor"`
	Direction Direction `json:"direction" mapstructure:"direction"`
}

// World is the typed, read-only view a strategy decides from.
// Floors are numbered from 1 to NumFloors.
type World struct {
	NumFloors int        `json:"num_floors" mapstructure:"num_floors"`
	Running   bool       `json:"running" mapstructure:"running"`
	CurTurn   int        `json:"cur_turn" mapstructure:"cur_turn"`
	NumTurns  int        `json:"num_turns" mapstructure:"num_turns"`
	Elevators []Elevator `json:"elevators" mapstructure:"elevators"`
	Requests  []Request  `json:"requests" mapstructure:"requests"`
	Score     float64    `json:"score" mapstructure:"score"`
	ReplayURL string     `json:"replay_url" mapstructure:"replay_url"`
}

// RequestsAt returns the hall calls waiting at floor.
func (w *World) RequestsAt(floor int) []Request {
	var out []Request
	for _, r := range w.Requests {
		if r.Floor == floor {
			out = append(out, r)
		}
	}
	return out
}

// World decodes the snapshot into a typed view. Turn responses do not repeat
// num_floors, so the value fixed at bootstrap is passed in and used when the
// document lacks it.
func (s Snapshot) World(numFloors int) (*World, error) {
	w := &World{}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           w,
		WeaklyTypedInput: true,
		ZeroFields:       true,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(map[string]any(s.doc)); err != nil {
		return nil, fmt.Errorf("decode world: %w", err)
	}
	if w.NumFloors == 0 {
		w.NumFloors = numFloors
	}
	return w, nil
}
