package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport matches any *TransportError via errors.Is.
	ErrTransport = errors.New("transport failure")

	// ErrProtocol matches any *ProtocolError via errors.Is.
	ErrProtocol = errors.New("protocol violation")

	// ErrNotBootstrapped is returned when a turn is submitted before the session has a token.
	ErrNotBootstrapped = errors.New("session not bootstrapped")

	// ErrAlreadyBootstrapped is returned when Bootstrap is called on a session that already has a token.
	ErrAlreadyBootstrapped = errors.New("session already bootstrapped")

	// ErrTurnInFlight is returned when a second request is issued while one is outstanding.
	ErrTurnInFlight = errors.New("a request is already in flight for this session")
)

// TransportError reports a failed HTTP exchange: connection refused, DNS,
// timeouts, cancellation. The response, if any, was never read.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport: post %s: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// ProtocolError reports a response that cannot be used: invalid JSON, or a
// document missing the fields the protocol requires.
type ProtocolError struct {
	// Op is the protocol step that failed ("bootstrap", "advance", "decode").
	Op     string
	Reason string
	// Status is the HTTP status code when known.
	Status int
	Err    error
}

func (e *ProtocolError) Error() string {
	msg := fmt.Sprintf("protocol: %s: %s", e.Op, e.Reason)
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ProtocolError) Unwrap() error { return e.Err }

func (e *ProtocolError) Is(target error) bool { return target == ErrProtocol }

// APIError is one entry of a response's "errors" list. It is a warning: the
// response it came with is still used.
type APIError struct {
	// Turn is the turn number of the response that carried it (0 for bootstrap).
	Turn    int    `json:"turn"`
	Message string `json:"message"`
}

func (e APIError) Error() string {
	return fmt.Sprintf("api (turn %d): %s", e.Turn, e.Message)
}
