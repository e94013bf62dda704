package domain

// Status is the lifecycle stage of a session.
type Status string

const (
	StatusUninitialized Status = "uninitialized" // No token yet
	StatusReady         Status = "ready"         // Token known, turns may be submitted
	StatusEnded         Status = "ended"         // Latest snapshot reported running == false
)
