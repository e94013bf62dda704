package runner

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aretw0/dianti/pkg/domain"
	"github.com/aretw0/dianti/pkg/session"
)

func TestTextHandler_Turn(t *testing.T) {
	outBuf := &bytes.Buffer{}
	handler := NewTextHandler(outBuf)

	err := handler.Turn(context.Background(), TurnReport{
		Number:   3,
		Warnings: session.Warnings{{Turn: 3, Message: "Unknown elevator ID: \x1b[31melevator-X"}},
	})
	if err != nil {
		t.Fatalf("Turn failed: %v", err)
	}

	expected := "Turn: 3\nError: Unknown elevator ID: [31melevator-X\n"
	if outBuf.String() != expected {
		t.Errorf("Expected %q, got %q", expected, outBuf.String())
	}
}

func TestTextHandler_Quiet(t *testing.T) {
	outBuf := &bytes.Buffer{}
	handler := NewTextHandler(outBuf, WithTextHandlerQuiet(true))

	_ = handler.Turn(context.Background(), TurnReport{Number: 1})
	_ = handler.Turn(context.Background(), TurnReport{Number: 2, Warnings: session.Warnings{{Turn: 2, Message: "oops"}}})

	if outBuf.String() != "Error: oops\n" {
		t.Errorf("Expected only the warning, got %q", outBuf.String())
	}
}

func TestTextHandler_BeginPrintsBootstrapWarnings(t *testing.T) {
	outBuf := &bytes.Buffer{}
	handler := NewTextHandler(outBuf)

	_ = handler.Begin(context.Background(), Start{Warnings: session.Warnings{{Message: "sandbox"}}})
	if outBuf.String() != "Error: sandbox\n" {
		t.Errorf("Unexpected output %q", outBuf.String())
	}
}

func TestTextHandler_FinishWithoutScore(t *testing.T) {
	outBuf := &bytes.Buffer{}
	handler := NewTextHandler(outBuf)

	_ = handler.Finish(context.Background(), &Result{Turns: 4, Reason: StopError, Err: errors.New("boom")})
	if strings.Contains(outBuf.String(), "Score:") {
		t.Errorf("A run that did not end must not print a score, got %q", outBuf.String())
	}
}

func TestTextHandler_Renderer(t *testing.T) {
	outBuf := &bytes.Buffer{}
	handler := NewTextHandler(outBuf, WithTextHandlerRenderer(func(s string) (string, error) {
		return "Rendered: " + s, nil
	}))

	score := 1090.0
	_ = handler.Finish(context.Background(), &Result{
		Turns:     30,
		Ended:     true,
		Reason:    StopEnded,
		Score:     &score,
		ReplayURL: "https://dianti.secondspace.dev/replay/abc123",
		Final:     domain.NewSnapshot(domain.Document{"running": false}),
	})

	output := outBuf.String()
	if !strings.HasPrefix(output, "Rendered: # Simulation report") {
		t.Errorf("Expected rendered report, got %q", output)
	}
	if !strings.Contains(output, "**Score:** 1090") {
		t.Errorf("Expected score in report, got %q", output)
	}
}

func TestTextHandler_RendererFailureFallsBack(t *testing.T) {
	outBuf := &bytes.Buffer{}
	handler := NewTextHandler(outBuf, WithTextHandlerRenderer(func(string) (string, error) {
		return "", errors.New("no tty")
	}))

	score := 42.0
	_ = handler.Finish(context.Background(), &Result{Ended: true, Score: &score, ReplayURL: "http://x/y"})
	if outBuf.String() != "Score: 42\nReplay URL: http://x/y\n" {
		t.Errorf("Unexpected output %q", outBuf.String())
	}
}
