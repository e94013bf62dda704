package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/dianti/internal/logging"
	"github.com/aretw0/dianti/pkg/domain"
	"github.com/aretw0/dianti/pkg/ports"
)

// Client implements ports.Transport over HTTP POST.
// It keeps no state between calls and never retries.
type Client struct {
	httpClient *http.Client
	timeout    time.Duration
	logger     *slog.Logger
}

// Ensure Client implements ports.Transport
var _ ports.Transport = (*Client)(nil)

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.httpClient = c
		}
	}
}

// WithTimeout bounds every exchange. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		cl.timeout = d
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(cl *Client) {
		if logger != nil {
			cl.logger = logger
		}
	}
}

// NewClient creates an HTTP transport.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Post sends body as JSON to endpoint and parses the reply.
func (c *Client) Post(ctx context.Context, endpoint string, body any) (domain.Document, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, &domain.ProtocolError{Op: "encode", Reason: "request body is not serializable", Err: err}
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, &domain.TransportError{Endpoint: endpoint, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("post failed", "endpoint", endpoint, "duration", time.Since(start), "error", err)
		return nil, &domain.TransportError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.TransportError{Endpoint: endpoint, Err: fmt.Errorf("read response: %w", err)}
	}

	c.logger.Debug("post",
		"endpoint", endpoint,
		"status", resp.StatusCode,
		"bytes", len(raw),
		"duration", time.Since(start),
	)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("simulator answered with a non-2xx status", "endpoint", endpoint, "status", resp.StatusCode)
	}

	doc, err := domain.ParseDocument(raw)
	if err != nil {
		var perr *domain.ProtocolError
		if errors.As(err, &perr) {
			perr.Status = resp.StatusCode
		}
		return nil, err
	}
	return doc, nil
}
