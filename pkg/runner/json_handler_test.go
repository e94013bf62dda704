package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/aretw0/dianti/pkg/domain"
	"github.com/aretw0/dianti/pkg/session"
)

func TestJSONHandler_Lines(t *testing.T) {
	buf := &bytes.Buffer{}
	handler := NewJSONHandler(buf)
	ctx := context.Background()

	_ = handler.Begin(ctx, Start{Config: domain.SessionConfig{Bot: "b", Building: "tiny_random"}, NumFloors: 10, Running: true})
	_ = handler.Turn(ctx, TurnReport{
		Number:   1,
		Commands: []domain.Command{domain.NewCommand("elevator-0", domain.Up, domain.Move)},
		Running:  true,
		Warnings: session.Warnings{{Turn: 1, Message: "bad command"}},
	})
	score := 42.0
	_ = handler.Finish(ctx, &Result{
		Turns:  1,
		Ended:  true,
		Reason: StopEnded,
		Score:  &score,
		Final:  domain.NewSnapshot(domain.Document{"running": false, "score": json.Number("42")}),
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines of output, got %d: %s", len(lines), buf.String())
	}

	var begin map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &begin); err != nil {
		t.Fatalf("Failed to decode JSON: %v", err)
	}
	if begin["type"] != JSONEventBegin || begin["num_floors"] != 10.0 {
		t.Errorf("Unexpected begin event: %v", begin)
	}

	var turn map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &turn); err != nil {
		t.Fatalf("Failed to decode JSON: %v", err)
	}
	if turn["type"] != JSONEventTurn || turn["turn"] != 1.0 || turn["running"] != true {
		t.Errorf("Unexpected turn event: %v", turn)
	}
	cmds, _ := turn["commands"].([]any)
	if len(cmds) != 1 {
		t.Errorf("Expected 1 command, got %v", turn["commands"])
	}

	var finish map[string]any
	if err := json.Unmarshal([]byte(lines[2]), &finish); err != nil {
		t.Fatalf("Failed to decode JSON: %v", err)
	}
	if finish["type"] != JSONEventFinish || finish["score"] != 42.0 || finish["reason"] != string(StopEnded) {
		t.Errorf("Unexpected finish event: %v", finish)
	}
	if final, ok := finish["final"].(map[string]any); !ok || final["running"] != false {
		t.Errorf("Expected the final snapshot verbatim, got %v", finish["final"])
	}
}

func TestJSONHandler_FinishWithError(t *testing.T) {
	buf := &bytes.Buffer{}
	handler := NewJSONHandler(buf)

	_ = handler.Finish(context.Background(), &Result{Reason: StopError, Err: errors.New("transport: boom")})

	var finish map[string]any
	if err := json.Unmarshal(buf.Bytes(), &finish); err != nil {
		t.Fatalf("Failed to decode JSON: %v", err)
	}
	if finish["error"] != "transport: boom" {
		t.Errorf("Expected error message, got %v", finish["error"])
	}
	if _, ok := finish["score"]; ok {
		t.Error("No score expected for a failed run")
	}
}
