package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/aretw0/dianti/pkg/session"
)

// ContentRenderer is a function that transforms the final report before outputting it.
// This allows for TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)

// TextHandler prints the classic client output: one "Turn: N" line per turn,
// one "Error: ..." line per warning, then the score and replay link.
type TextHandler struct {
	Writer   io.Writer
	Renderer ContentRenderer
	// Quiet suppresses the per-turn lines.
	Quiet bool
}

// TextHandlerOption defines configuration for TextHandler.
type TextHandlerOption func(*TextHandler)

// WithTextHandlerRenderer configures the report renderer.
func WithTextHandlerRenderer(renderer ContentRenderer) TextHandlerOption {
	return func(h *TextHandler) {
		h.Renderer = renderer
	}
}

// WithTextHandlerQuiet only prints warnings and the final report.
func WithTextHandlerQuiet(quiet bool) TextHandlerOption {
	return func(h *TextHandler) {
		h.Quiet = quiet
	}
}

// NewTextHandler creates a handler writing to w, or Stdout when w is nil.
func NewTextHandler(w io.Writer, opts ...TextHandlerOption) *TextHandler {
	if w == nil {
		w = os.Stdout
	}
	h := &TextHandler{Writer: w}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *TextHandler) Begin(ctx context.Context, start Start) error {
	return h.printWarnings(start.Warnings)
}

func (h *TextHandler) Turn(ctx context.Context, report TurnReport) error {
	if !h.Quiet {
		if _, err := fmt.Fprintf(h.Writer, "Turn: %d\n", report.Number); err != nil {
			return err
		}
	}
	return h.printWarnings(report.Warnings)
}

func (h *TextHandler) Finish(ctx context.Context, result *Result) error {
	if h.Renderer != nil {
		rendered, err := h.Renderer(Report(result))
		if err == nil {
			_, err = fmt.Fprint(h.Writer, rendered)
			return err
		}
	}

	if !result.Ended {
		_, err := fmt.Fprintf(h.Writer, "Simulation stopped after %d turns (%s), no score\n", result.Turns, result.Reason)
		return err
	}
	score := "n/a"
	if result.Score != nil {
		score = strconv.FormatFloat(*result.Score, 'f', -1, 64)
	}
	if _, err := fmt.Fprintf(h.Writer, "Score: %s\n", score); err != nil {
		return err
	}
	_, err := fmt.Fprintf(h.Writer, "Replay URL: %s\n", SanitizeMessage(result.ReplayURL))
	return err
}

func (h *TextHandler) printWarnings(ws session.Warnings) error {
	for _, w := range ws {
		if _, err := fmt.Fprintf(h.Writer, "Error: %s\n", SanitizeMessage(w.Message)); err != nil {
			return err
		}
	}
	return nil
}
