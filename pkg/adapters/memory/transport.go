package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/aretw0/dianti/pkg/domain"
	"github.com/aretw0/dianti/pkg/ports"
)

// ErrScriptExhausted is returned when more requests arrive than replies were queued.
var ErrScriptExhausted = errors.New("memory transport: no reply queued")

// Reply is one scripted answer. Exactly one of Body or Err is used.
type Reply struct {
	// Body is the raw response text, parsed like a real HTTP body.
	Body string
	// Err is returned wrapped in a *domain.TransportError.
	Err error
}

// Exchange is one recorded request/response pair.
type Exchange struct {
	Endpoint string
	// Request is the body as the peer would decode it from the wire.
	Request domain.Document
	// Raw is the serialized request body.
	Raw []byte
}

// Transport implements ports.Transport in memory.
// Requests go through a real JSON round trip so tests observe wire types.
// Safe for concurrent use.
type Transport struct {
	mu        sync.Mutex
	replies   []Reply
	responder func(domain.Document) []byte
	exchanges []Exchange
}

// Ensure Transport implements ports.Transport
var _ ports.Transport = (*Transport)(nil)

// NewTransport creates a transport that answers with replies, in order.
func NewTransport(replies ...Reply) *Transport {
	return &Transport{replies: replies}
}

// NewResponderTransport creates a transport that computes every reply.
func NewResponderTransport(respond func(req domain.Document) []byte) *Transport {
	return &Transport{responder: respond}
}

// Queue appends replies to the script.
func (t *Transport) Queue(replies ...Reply) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.replies = append(t.replies, replies...)
}

// QueueJSON appends one reply per document, serialized with encoding/json.
func (t *Transport) QueueJSON(docs ...any) error {
	for _, d := range docs {
		data, err := json.Marshal(d)
		if err != nil {
			return err
		}
		t.Queue(Reply{Body: string(data)})
	}
	return nil
}

// Post records the request and returns the next scripted reply.
func (t *Transport) Post(ctx context.Context, endpoint string, body any) (domain.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, &domain.TransportError{Endpoint: endpoint, Err: err}
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return nil, &domain.ProtocolError{Op: "encode", Reason: "request body is not serializable", Err: err}
	}
	req, err := domain.ParseDocument(raw)
	if err != nil {
		return nil, fmt.Errorf("memory transport: request is not a JSON object: %w", err)
	}

	t.mu.Lock()
	t.exchanges = append(t.exchanges, Exchange{Endpoint: endpoint, Request: req, Raw: raw})

	var reply Reply
	switch {
	case t.responder != nil:
		respond := t.responder
		t.mu.Unlock()
		reply = Reply{Body: string(respond(req))}
	case len(t.replies) == 0:
		t.mu.Unlock()
		return nil, &domain.TransportError{Endpoint: endpoint, Err: ErrScriptExhausted}
	default:
		reply = t.replies[0]
		t.replies = t.replies[1:]
		t.mu.Unlock()
	}

	if reply.Err != nil {
		return nil, &domain.TransportError{Endpoint: endpoint, Err: reply.Err}
	}
	return domain.ParseDocument([]byte(reply.Body))
}

// Exchanges returns a copy of the recorded requests, oldest first.
func (t *Transport) Exchanges() []Exchange {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Exchange, len(t.exchanges))
	copy(out, t.exchanges)
	return out
}

// Calls returns the number of requests received.
func (t *Transport) Calls() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.exchanges)
}

// Pending returns the number of replies not yet consumed.
func (t *Transport) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.replies)
}
