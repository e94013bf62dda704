package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aretw0/dianti"
	"github.com/aretw0/dianti/internal/logging"
	"github.com/aretw0/dianti/pkg/domain"
)

const shutdownTimeout = 5 * time.Second

// SessionStatus is the live view served on GET /session.
// The session token is a credential and is never part of it.
type SessionStatus struct {
	Status    domain.Status `json:"status"`
	Turn      int           `json:"turn"`
	NumFloors int           `json:"num_floors,omitempty"`
	Building  string        `json:"building,omitempty"`
	Warnings  int           `json:"warnings"`
}

// StatusFunc reads the current session state. It must be safe for
// concurrent use.
type StatusFunc func() SessionStatus

// Server exposes health, build info, Prometheus metrics and the live
// session status while a run is in progress.
type Server struct {
	Metrics http.Handler
	Status  StatusFunc
	Logger  *slog.Logger
}

// NewHandler creates the router. A nil metrics handler or status func
// leaves the matching route answering 404.
func NewHandler(metrics http.Handler, status StatusFunc) http.Handler {
	s := &Server{Metrics: metrics, Status: status, Logger: logging.NewNop()}
	return s.Routes()
}

// Routes builds the chi router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics)
	}
	if s.Status != nil {
		r.Get("/session", s.GetSession)
	}
	return r
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"app":     "dianti",
		"version": strings.TrimSpace(dianti.Version),
	})
}

// GetSession handles the GET /session request.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, s.Status())
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger().Error("response encode failed", "error", err)
	}
}

func (s *Server) logger() *slog.Logger {
	if s.Logger == nil {
		return logging.NewNop()
	}
	return s.Logger
}

// Serve listens on addr until ctx is done, then shuts down gracefully.
// ready, when not nil, receives the bound address once listening.
func (s *Server) Serve(ctx context.Context, addr string, ready func(net.Addr)) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	if ready != nil {
		ready(ln.Addr())
	}

	srv := &http.Server{
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger().Info("status server listening", "addr", ln.Addr().String())
		serverErrors <- srv.Serve(ln)
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger().Warn("graceful shutdown did not complete", "timeout", shutdownTimeout, "error", err)
		return srv.Close()
	}
	s.logger().Info("status server stopped")
	return nil
}
