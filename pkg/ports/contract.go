package ports

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aretw0/dianti/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Responder produces the raw reply body for a request as the peer decoded it.
type Responder func(req domain.Document) []byte

// TransportFactory builds a transport and the endpoint of a peer that answers
// every request with respond.
type TransportFactory func(t *testing.T, respond Responder) (Transport, string)

// RunTransportContract runs a suite of tests to verify that a Transport implementation
// adheres to the defined interface contract.
func RunTransportContract(t *testing.T, newTransport TransportFactory) {
	t.Run("Round Trip", func(t *testing.T) {
		var got domain.Document
		tr, endpoint := newTransport(t, func(req domain.Document) []byte {
			got = req
			return []byte(`{"token": "T1", "num_floors": 5, "running": true}`)
		})

		cfg := domain.SessionConfig{Event: "evt", Building: "tiny", Bot: "b", Email: "e@x.com", Sandbox: true}
		doc, err := tr.Post(context.Background(), endpoint, cfg.BootstrapRequest())
		require.NoError(t, err)

		assert.Equal(t, "b", got[domain.KeyBot])
		assert.Equal(t, "tiny", got[domain.KeyBuildingName])
		assert.Equal(t, "e@x.com", got[domain.KeyEmail])
		assert.Equal(t, "evt", got[domain.KeyEvent])
		assert.Equal(t, true, got[domain.KeySandbox])

		assert.Equal(t, "T1", doc[domain.KeyToken])
		// Numbers are kept verbatim
		assert.Equal(t, json.Number("5"), doc[domain.KeyNumFloors])
	})

	t.Run("Commands Keep Caller Order", func(t *testing.T) {
		var got domain.Document
		tr, endpoint := newTransport(t, func(req domain.Document) []byte {
			got = req
			return []byte(`{"running": true}`)
		})

		req := domain.NewTurnRequest("T1", []domain.Command{
			domain.NewCommand("elevator-1", domain.Down, domain.Stop),
			domain.NewCommand("elevator-0", domain.Up, domain.Move),
			domain.NewCommand("elevator-1", domain.Up, domain.Move),
		})
		_, err := tr.Post(context.Background(), endpoint, req)
		require.NoError(t, err)

		assert.Equal(t, "T1", got[domain.KeyToken])
		cmds, ok := got[domain.KeyCommands].([]any)
		require.True(t, ok, "commands should be a list, got %T", got[domain.KeyCommands])
		require.Len(t, cmds, 3)
		assert.Equal(t, map[string]any{"elevator_id": "elevator-1", "direction": false, "action": false}, cmds[0])
		assert.Equal(t, map[string]any{"elevator_id": "elevator-0", "direction": true, "action": true}, cmds[1])
		assert.Equal(t, map[string]any{"elevator_id": "elevator-1", "direction": true, "action": true}, cmds[2])
	})

	t.Run("Application Errors Passed Through", func(t *testing.T) {
		tr, endpoint := newTransport(t, func(domain.Document) []byte {
			return []byte(`{"running": true, "errors": ["bad command for E1"]}`)
		})

		doc, err := tr.Post(context.Background(), endpoint, domain.NewTurnRequest("T1", nil))
		require.NoError(t, err, "the errors field is not a transport concern")
		assert.Equal(t, []any{"bad command for E1"}, doc[domain.KeyErrors])
	})

	t.Run("Invalid JSON", func(t *testing.T) {
		tr, endpoint := newTransport(t, func(domain.Document) []byte {
			return []byte(`<html>Bad Gateway</html>`)
		})

		_, err := tr.Post(context.Background(), endpoint, domain.NewTurnRequest("T1", nil))
		assert.ErrorIs(t, err, domain.ErrProtocol)
		assert.NotErrorIs(t, err, domain.ErrTransport)
	})

	t.Run("Not An Object", func(t *testing.T) {
		tr, endpoint := newTransport(t, func(domain.Document) []byte {
			return []byte(`["running", true]`)
		})

		_, err := tr.Post(context.Background(), endpoint, domain.NewTurnRequest("T1", nil))
		assert.ErrorIs(t, err, domain.ErrProtocol)
	})

	t.Run("Canceled Context", func(t *testing.T) {
		called := false
		tr, endpoint := newTransport(t, func(domain.Document) []byte {
			called = true
			return []byte(`{"running": true}`)
		})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := tr.Post(ctx, endpoint, domain.NewTurnRequest("T1", nil))
		require.ErrorIs(t, err, domain.ErrTransport)
		assert.True(t, errors.Is(err, context.Canceled), "cause should be preserved: %v", err)

		var terr *domain.TransportError
		require.ErrorAs(t, err, &terr)
		assert.Equal(t, endpoint, terr.Endpoint)
		assert.False(t, called, "peer should not see a canceled request")
	})
}
