package observability

import (
	"context"
	"net/http"

	"github.com/aretw0/dianti/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics records session activity in its own Prometheus registry.
type Metrics struct {
	registry *prometheus.Registry

	sessions     *prometheus.CounterVec
	turns        *prometheus.CounterVec
	apiErrors    *prometheus.CounterVec
	turnDuration *prometheus.HistogramVec
	score        *prometheus.GaugeVec
	runs         *prometheus.CounterVec
}

// NewMetrics creates and registers the dianti collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		sessions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dianti_sessions_started_total",
				Help: "Total number of bootstrapped sessions",
			},
			[]string{"building", "bot"},
		),
		turns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dianti_turns_total",
				Help: "Total number of successfully submitted turns",
			},
			[]string{"building"},
		),
		apiErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dianti_api_errors_total",
				Help: "Total number of errors reported by the simulator",
			},
			[]string{"building"},
		),
		turnDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dianti_turn_duration_seconds",
				Help:    "Round trip time of a turn request",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"building"},
		),
		score: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "dianti_last_score",
				Help: "Score of the last finished simulation",
			},
			[]string{"building"},
		),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dianti_runs_total",
				Help: "Total number of runs by outcome",
			},
			[]string{"building", "outcome"},
		),
	}
	m.registry.MustRegister(m.sessions, m.turns, m.apiErrors, m.turnDuration, m.score, m.runs)
	return m
}

// Registry exposes the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the metrics in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Hooks returns lifecycle callbacks that record metrics for one building.
// Events only carry the token, so the building label is bound here.
func (m *Metrics) Hooks(building string) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnBootstrap: func(_ context.Context, e *domain.BootstrapEvent) {
			m.sessions.WithLabelValues(building, e.Config.Bot).Inc()
		},
		OnTurn: func(_ context.Context, e *domain.TurnEvent) {
			m.turns.WithLabelValues(building).Inc()
			m.turnDuration.WithLabelValues(building).Observe(e.Duration.Seconds())
		},
		OnAPIError: func(_ context.Context, _ *domain.APIErrorEvent) {
			m.apiErrors.WithLabelValues(building).Inc()
		},
		OnEnd: func(_ context.Context, e *domain.EndEvent) {
			outcome := "ended"
			switch {
			case e.Err != nil:
				outcome = "failed"
			case !e.Ended:
				outcome = "stopped"
			}
			m.runs.WithLabelValues(building, outcome).Inc()
			if e.Score != nil {
				m.score.WithLabelValues(building).Set(*e.Score)
			}
		},
	}
}
