package runner_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/dianti/pkg/adapters/memory"
	"github.com/aretw0/dianti/pkg/domain"
	"github.com/aretw0/dianti/pkg/ports"
	"github.com/aretw0/dianti/pkg/runner"
	"github.com/aretw0/dianti/pkg/session"
	"github.com/aretw0/dianti/pkg/strategy"
)

const bootstrapBody = `{"token": "T1", "num_floors": 5, "running": true,
	"elevators": [{"id": "elevator-0", "floor": 1, "buttons_pressed": []}], "requests": []}`

func startSession(t *testing.T, replies ...string) (*session.Client, *memory.Transport) {
	t.Helper()
	tr := memory.NewTransport(memory.Reply{Body: bootstrapBody})
	for _, r := range replies {
		tr.Queue(memory.Reply{Body: r})
	}
	cfg := domain.SessionConfig{Bot: "b", Building: "tiny", Email: "e@x.com", Event: "evt", Sandbox: true}
	c, _, err := session.Start(context.Background(), tr, cfg)
	require.NoError(t, err)
	return c, tr
}

func moveAll() ports.Strategy {
	return ports.StrategyFunc(func(_ context.Context, w *domain.World) ([]domain.Command, error) {
		cmds := make([]domain.Command, 0, len(w.Elevators))
		for _, e := range w.Elevators {
			cmds = append(cmds, domain.NewCommand(e.ID, domain.Up, domain.Move))
		}
		return cmds, nil
	})
}

func TestRunner_StopsWhenSimulationEnds(t *testing.T) {
	c, tr := startSession(t,
		`{"running": true, "elevators": [{"id": "elevator-0", "floor": 2, "buttons_pressed": []}]}`,
		`{"running": false, "score": 42, "replay_url": "http://x/y", "elevators": [{"id": "elevator-0", "floor": 3, "buttons_pressed": []}]}`,
	)
	out := &bytes.Buffer{}

	res, err := runner.NewRunner(runner.WithHandler(runner.NewTextHandler(out))).Run(context.Background(), c, moveAll())
	require.NoError(t, err)

	assert.Equal(t, 2, res.Turns)
	assert.True(t, res.Ended)
	assert.Equal(t, runner.StopEnded, res.Reason)
	require.NotNil(t, res.Score)
	assert.Equal(t, 42.0, *res.Score)
	assert.Equal(t, "http://x/y", res.ReplayURL)
	assert.Equal(t, c.Snapshot(), res.Final, "the terminal snapshot is returned unchanged")

	assert.Equal(t, 3, tr.Calls(), "no advance after running == false")
	assert.Equal(t, "Turn: 1\nTurn: 2\nScore: 42\nReplay URL: http://x/y\n", out.String())
}

func TestRunner_NoTurnsWhenBootstrapAlreadyEnded(t *testing.T) {
	tr := memory.NewTransport(memory.Reply{Body: `{"token": "T1", "num_floors": 5, "running": false, "score": 0}`})
	c, _, err := session.Start(context.Background(), tr, domain.SessionConfig{Bot: "b"})
	require.NoError(t, err)

	res, err := runner.NewRunner(runner.WithHandler(runner.NopHandler{})).Run(context.Background(), c, moveAll())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Turns)
	assert.True(t, res.Ended)
	assert.Equal(t, 1, tr.Calls())
}

func TestRunner_WarningsDoNotStopTheLoop(t *testing.T) {
	c, _ := startSession(t,
		`{"running": true, "errors": ["bad command for E1"]}`,
		`{"running": false, "score": 7}`,
	)
	out := &bytes.Buffer{}

	res, err := runner.NewRunner(runner.WithHandler(runner.NewTextHandler(out))).Run(context.Background(), c, moveAll())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Turns)
	assert.Equal(t, session.Warnings{{Turn: 1, Message: "bad command for E1"}}, res.Warnings)
	assert.Contains(t, out.String(), "Turn: 1\nError: bad command for E1\nTurn: 2\n")
}

func TestRunner_FatalErrorKeepsLastSnapshot(t *testing.T) {
	c, _ := startSession(t,
		`{"running": true, "score": 12}`,
		`not json`,
	)
	out := &bytes.Buffer{}

	res, err := runner.NewRunner(runner.WithHandler(runner.NewTextHandler(out))).Run(context.Background(), c, moveAll())
	require.ErrorIs(t, err, domain.ErrProtocol)
	require.NotNil(t, res)

	assert.Equal(t, runner.StopError, res.Reason)
	assert.Equal(t, 1, res.Turns)
	assert.False(t, res.Ended)
	assert.Nil(t, res.Score, "a score is only reported from a terminal snapshot")
	assert.True(t, res.Final.Running())
	assert.Contains(t, out.String(), "no score")
}

func TestRunner_StrategyError(t *testing.T) {
	c, tr := startSession(t)
	boom := errors.New("no idea")

	res, err := runner.NewRunner(runner.WithHandler(runner.NopHandler{})).Run(context.Background(), c,
		ports.StrategyFunc(func(context.Context, *domain.World) ([]domain.Command, error) { return nil, boom }))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, runner.StopError, res.Reason)
	assert.Equal(t, 1, tr.Calls())
}

func TestRunner_MaxTurns(t *testing.T) {
	c, tr := startSession(t,
		`{"running": true}`, `{"running": true}`, `{"running": true}`, `{"running": true}`,
	)

	res, err := runner.NewRunner(runner.WithHandler(runner.NopHandler{}), runner.WithMaxTurns(2)).Run(context.Background(), c, moveAll())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Turns)
	assert.Equal(t, runner.StopMaxTurns, res.Reason)
	assert.Nil(t, res.Score)
	assert.Equal(t, 3, tr.Calls())
}

func TestRunner_CanceledBetweenTurns(t *testing.T) {
	c, tr := startSession(t, `{"running": true}`, `{"running": true}`)
	ctx, cancel := context.WithCancel(context.Background())

	hooks := domain.LifecycleHooks{}
	var ended *domain.EndEvent
	hooks.OnEnd = func(_ context.Context, e *domain.EndEvent) { ended = e }

	handler := &recordingHandler{onTurn: func(runner.TurnReport) { cancel() }}
	res, err := runner.NewRunner(runner.WithHandler(handler), runner.WithHooks(hooks)).Run(ctx, c, moveAll())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, runner.StopCanceled, res.Reason)
	assert.Equal(t, 1, res.Turns)
	assert.Equal(t, 2, tr.Calls())

	require.NotNil(t, ended)
	assert.Equal(t, 1, ended.Turns)
	assert.False(t, ended.Ended)
	assert.True(t, handler.finished, "Finish is called even after cancellation")
}

func TestRunner_NotBootstrapped(t *testing.T) {
	c := session.NewClient(memory.NewTransport())

	res, err := runner.NewRunner(runner.WithHandler(runner.NopHandler{})).Run(context.Background(), c, moveAll())
	assert.ErrorIs(t, err, domain.ErrNotBootstrapped)
	assert.Equal(t, 0, res.Turns)
}

func TestRunner_UpDownEndToEnd(t *testing.T) {
	// Elevator parked at the top floor: the first batch must already go down.
	tr := memory.NewTransport(memory.Reply{Body: `{"token": "T1", "num_floors": 5, "running": true,
		"elevators": [{"id": "elevator-0", "floor": 5, "buttons_pressed": []}], "requests": []}`})
	tr.Queue(memory.Reply{Body: `{"running": false, "score": 1}`})
	c, _, err := session.Start(context.Background(), tr, domain.SessionConfig{Bot: "updown"})
	require.NoError(t, err)

	_, err = runner.NewRunner(runner.WithHandler(runner.NopHandler{})).Run(context.Background(), c, strategy.NewUpDown(strategy.Options{}))
	require.NoError(t, err)

	assert.JSONEq(t, `{"token":"T1","commands":[{"elevator_id":"elevator-0","direction":false,"action":true}]}`,
		string(tr.Exchanges()[1].Raw))
}

type recordingHandler struct {
	runner.NopHandler
	onTurn   func(runner.TurnReport)
	turns    []runner.TurnReport
	finished bool
}

func (h *recordingHandler) Turn(_ context.Context, r runner.TurnReport) error {
	h.turns = append(h.turns, r)
	if h.onTurn != nil {
		h.onTurn(r)
	}
	return nil
}

func (h *recordingHandler) Finish(context.Context, *runner.Result) error {
	h.finished = true
	return nil
}

func TestRunner_TurnReportCarriesDiff(t *testing.T) {
	c, _ := startSession(t,
		`{"running": false, "score": 5, "elevators": [{"id": "elevator-0", "floor": 2, "buttons_pressed": [4]}], "requests": []}`,
	)
	h := &recordingHandler{}

	_, err := runner.NewRunner(runner.WithHandler(h)).Run(context.Background(), c, moveAll())
	require.NoError(t, err)

	require.Len(t, h.turns, 1)
	report := h.turns[0]
	assert.Equal(t, 1, report.Number)
	assert.Equal(t, []domain.Command{domain.NewCommand("elevator-0", domain.Up, domain.Move)}, report.Commands)
	require.NotNil(t, report.Diff)
	assert.Equal(t, map[string]int{"elevator-0": 1}, report.Diff.Moves)
	assert.Equal(t, map[string]int{"elevator-0": 1}, report.Diff.Boarded)
}
