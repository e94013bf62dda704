package domain

// SessionConfig identifies a play-through. It is sent once, at bootstrap.
type SessionConfig struct {
	// Event selects the high score board.
	Event string `json:"event"`
	// Building is the scenario name, see Buildings.
	Building string `json:"building_name"`
	// Bot is the name shown in the high scores.
	Bot string `json:"bot"`
	// Email is used for the Gravatar next to the score.
	Email string `json:"email"`
	// Sandbox runs are excluded from high scores and replays.
	Sandbox bool `json:"sandbox"`
}

// BootstrapRequest returns the wire document for the session start call.
func (c SessionConfig) BootstrapRequest() map[string]any {
	return map[string]any{
		KeyBot:          c.Bot,
		KeyBuildingName: c.Building,
		KeyEmail:        c.Email,
		KeyEvent:        c.Event,
		KeySandbox:      c.Sandbox,
	}
}

// TurnRequest is the wire document for one turn.
type TurnRequest struct {
	Token    string    `json:"token"`
	Commands []Command `json:"commands"`
}

// NewTurnRequest keeps the caller's command order. A nil batch is sent as [].
func NewTurnRequest(token string, commands []Command) TurnRequest {
	batch := make([]Command, len(commands))
	copy(batch, commands)
	return TurnRequest{Token: token, Commands: batch}
}
