package ports

import (
	"context"

	"github.com/aretw0/dianti/pkg/domain"
)

// Transport performs exactly one request/response exchange per call.
// Implementations hold no session state and never retry.
type Transport interface {
	// Post serializes body to JSON, sends it to endpoint and parses the reply.
	// Network failures are *domain.TransportError; a reply that is not a JSON
	// object is *domain.ProtocolError. The reply content is not inspected.
	Post(ctx context.Context, endpoint string, body any) (domain.Document, error)
}

// TransportFunc adapts a plain function to the Transport interface.
type TransportFunc func(ctx context.Context, endpoint string, body any) (domain.Document, error)

// Post calls f.
func (f TransportFunc) Post(ctx context.Context, endpoint string, body any) (domain.Document, error) {
	return f(ctx, endpoint, body)
}
