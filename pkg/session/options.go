package session

import (
	"log/slog"

	"github.com/aretw0/dianti/pkg/domain"
)

// Option configures the Client.
type Option func(*Client)

// WithEndpoint overrides domain.DefaultEndpoint.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		if endpoint != "" {
			c.endpoint = endpoint
		}
	}
}

// WithLogger configures a logger for the Client.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHooks registers lifecycle callbacks. Repeated calls are merged.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Client) {
		c.hooks = c.hooks.Merge(hooks)
	}
}
