package dianti_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/dianti"
	"github.com/aretw0/dianti/pkg/adapters/memory"
	"github.com/aretw0/dianti/pkg/domain"
	"github.com/aretw0/dianti/pkg/runner"
)

var testConfig = domain.SessionConfig{
	Event:    "secondspace2025",
	Building: domain.BuildingTinyRandom,
	Bot:      "test-bot",
	Sandbox:  true,
}

func TestEngine_Play(t *testing.T) {
	tr := memory.NewTransport(
		memory.Reply{Body: `{"token":"T","num_floors":5,"running":true,"elevators":[{"id":"elevator-0","floor":1,"buttons_pressed":[]}]}`},
		memory.Reply{Body: `{"running":true,"elevators":[{"id":"elevator-0","floor":2,"buttons_pressed":[]}],"errors":["slow down"]}`},
		memory.Reply{Body: `{"running":false,"score":12.5,"replay_url":"https://replay/T"}`},
	)
	var out bytes.Buffer

	var ended *domain.EndEvent
	eng := dianti.New(
		dianti.WithTransport(tr),
		dianti.WithEndpoint("memory://sim"),
		dianti.WithHandler(runner.NewTextHandler(&out)),
		dianti.WithLifecycleHooks(domain.LifecycleHooks{
			OnEnd: func(_ context.Context, e *domain.EndEvent) { ended = e },
		}),
	)

	res, err := eng.Play(context.Background(), testConfig)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Turns)
	assert.True(t, res.Ended)
	require.NotNil(t, res.Score)
	assert.Equal(t, 12.5, *res.Score)
	assert.Equal(t, "https://replay/T", res.ReplayURL)
	assert.Equal(t, "Turn: 1\nError: slow down\nTurn: 2\nScore: 12.5\nReplay URL: https://replay/T\n", out.String())

	require.NotNil(t, ended)
	assert.Equal(t, "T", ended.Token)

	ex := tr.Exchanges()
	require.Len(t, ex, 3)
	for _, e := range ex {
		assert.Equal(t, "memory://sim", e.Endpoint)
	}
	assert.Equal(t, "T", ex[1].Request[domain.KeyToken])
}

func TestEngine_PlayBootstrapFailure(t *testing.T) {
	tr := memory.NewTransport(memory.Reply{Body: `{"errors":["unknown building"]}`})

	res, err := dianti.New(dianti.WithTransport(tr)).Play(context.Background(), testConfig)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, domain.ErrProtocol)
	assert.ErrorContains(t, err, "start session")
}

func TestEngine_MaxTurns(t *testing.T) {
	tr := memory.NewResponderTransport(func(req domain.Document) []byte {
		if _, ok := req[domain.KeyToken]; !ok {
			return []byte(`{"token":"T","num_floors":3,"running":true,"elevators":[]}`)
		}
		return []byte(`{"running":true,"elevators":[]}`)
	})

	res, err := dianti.New(dianti.WithTransport(tr), dianti.WithMaxTurns(4)).Play(context.Background(), testConfig)
	require.NoError(t, err)
	assert.Equal(t, 4, res.Turns)
	assert.Equal(t, runner.StopMaxTurns, res.Reason)
	assert.False(t, res.Ended)
	assert.Nil(t, res.Score)
}

func TestEngine_NewSessionThenRun(t *testing.T) {
	tr := memory.NewTransport(
		memory.Reply{Body: `{"token":"T","num_floors":5,"running":true,"elevators":[]}`},
		memory.Reply{Body: `{"running":false,"score":1}`},
	)
	eng := dianti.New(dianti.WithTransport(tr))

	client := eng.NewSession()
	assert.Equal(t, domain.StatusUninitialized, client.Status())
	assert.Zero(t, tr.Calls())

	res, err := eng.Run(context.Background(), client, testConfig)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Turns)
	assert.Equal(t, domain.StatusEnded, client.Status())
	assert.Equal(t, "T", client.Token())
}
