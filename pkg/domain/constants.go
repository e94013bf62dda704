package domain

// Wire field names shared by the request builders and the snapshot accessors.
const (
	KeyBot          = "bot"
	KeyBuildingName = "building_name"
	KeyEmail        = "email"
	KeyEvent        = "event"
	KeySandbox      = "sandbox"

	KeyToken    = "token"
	KeyCommands = "commands"

	KeyNumFloors = "num_floors"
	KeyRunning   = "running"
	KeyElevators = "elevators"
	KeyRequests  = "requests"
	KeyErrors    = "errors"
	KeyScore     = "score"
	KeyReplayURL = "replay_url"
	KeyCurTurn   = "cur_turn"
	KeyNumTurns  = "num_turns"
)

// DefaultEndpoint is the public simulator API.
const DefaultEndpoint = "https://dianti.secondspace.dev/api"
