package runner

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"sync"
)

// Event types written by the JSONHandler, one JSON object per line.
const (
	JSONEventBegin  = "begin"
	JSONEventTurn   = "turn"
	JSONEventFinish = "finish"
)

// JSONHandler implements the IOHandler interface for structured JSON-Lines output.
type JSONHandler struct {
	mu      sync.Mutex
	Writer  io.Writer
	Encoder *json.Encoder
}

// NewJSONHandler creates a handler for JSON output to w, or Stdout when w is nil.
func NewJSONHandler(w io.Writer) *JSONHandler {
	if w == nil {
		w = os.Stdout
	}
	return &JSONHandler{
		Writer:  w,
		Encoder: json.NewEncoder(w),
	}
}

type beginEvent struct {
	Type string `json:"type"`
	Start
}

type turnEvent struct {
	Type string `json:"type"`
	TurnReport
}

type finishEvent struct {
	Type string `json:"type"`
	*Result
	Error string `json:"error,omitempty"`
}

func (h *JSONHandler) Begin(ctx context.Context, start Start) error {
	return h.emit(beginEvent{Type: JSONEventBegin, Start: start})
}

func (h *JSONHandler) Turn(ctx context.Context, report TurnReport) error {
	return h.emit(turnEvent{Type: JSONEventTurn, TurnReport: report})
}

func (h *JSONHandler) Finish(ctx context.Context, result *Result) error {
	ev := finishEvent{Type: JSONEventFinish, Result: result}
	if result.Err != nil {
		ev.Error = result.Err.Error()
	}
	return h.emit(ev)
}

func (h *JSONHandler) emit(ev any) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.Encoder.Encode(ev)
}
