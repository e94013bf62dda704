package observability_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/dianti/internal/logging"
	"github.com/aretw0/dianti/pkg/domain"
	"github.com/aretw0/dianti/pkg/observability"
)

func TestMetrics_Hooks(t *testing.T) {
	m := observability.NewMetrics()
	hooks := m.Hooks("tiny_random")
	ctx := context.Background()

	hooks.OnBootstrap(ctx, &domain.BootstrapEvent{Config: domain.SessionConfig{Bot: "updown"}, NumFloors: 10})
	hooks.OnTurn(ctx, &domain.TurnEvent{Turn: 1, Duration: 20 * time.Millisecond})
	hooks.OnTurn(ctx, &domain.TurnEvent{Turn: 2, Duration: 30 * time.Millisecond})
	hooks.OnAPIError(ctx, &domain.APIErrorEvent{Err: domain.APIError{Turn: 2, Message: "bad"}})
	score := 1090.0
	hooks.OnEnd(ctx, &domain.EndEvent{Turns: 2, Ended: true, Score: &score})

	expected := `
# HELP dianti_turns_total Total number of successfully submitted turns
# TYPE dianti_turns_total counter
dianti_turns_total{building="tiny_random"} 2
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), bytes.NewBufferString(expected), "dianti_turns_total"))

	n, err := testutil.GatherAndCount(m.Registry(), "dianti_api_errors_total", "dianti_last_score", "dianti_runs_total", "dianti_sessions_started_total")
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestMetrics_Handler(t *testing.T) {
	m := observability.NewMetrics()
	m.Hooks("big_random").OnEnd(context.Background(), &domain.EndEvent{Err: errors.New("boom")})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `dianti_runs_total{building="big_random",outcome="failed"} 1`)
}

func TestAuditHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, slog.LevelDebug, logging.FormatText)
	hooks := observability.AuditHooks(logger)
	ctx := context.Background()

	hooks.OnTurn(ctx, &domain.TurnEvent{EventBase: domain.EventBase{Type: domain.EventTurn}, Turn: 4, Running: true})
	hooks.OnEnd(ctx, &domain.EndEvent{EventBase: domain.EventBase{Type: domain.EventEnd}, Err: errors.New("boom")})

	out := buf.String()
	assert.Contains(t, out, "msg=turn")
	assert.Contains(t, out, "turn=4")
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "err=boom")
}
