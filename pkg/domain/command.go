package domain

// Direction of travel requested for an elevator. On the wire: true is up.
type Direction bool

const (
	Up   Direction = true
	Down Direction = false
)

func (d Direction) String() string {
	if d == Up {
		return "up"
	}
	return "down"
}

// Action requested for an elevator. On the wire: true is move.
type Action bool

const (
	Move Action = true
	Stop Action = false
)

func (a Action) String() string {
	if a == Move {
		return "move"
	}
	return "stop"
}

// Command instructs one elevator for one turn. It is sent verbatim.
type Command struct {
	ElevatorID string    `json:"elevator_id"`
	Direction  Direction `json:"direction"`
	Action     Action    `json:"action"`
}

// NewCommand builds a Command.
func NewCommand(elevatorID string, dir Direction, act Action) Command {
	return Command{ElevatorID: elevatorID, Direction: dir, Action: act}
}
