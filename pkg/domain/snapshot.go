package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Document is a parsed JSON object as returned by a Transport.
// Numbers are json.Number when decoded from the wire.
type Document map[string]any

// Snapshot is the world state returned by the simulator for one turn.
// The underlying document is kept verbatim and never modified.
type Snapshot struct {
	doc Document
}

// NewSnapshot wraps a document. The caller must not modify doc afterwards.
func NewSnapshot(doc Document) Snapshot {
	return Snapshot{doc: doc}
}

// IsZero reports whether no document has been received yet.
func (s Snapshot) IsZero() bool { return s.doc == nil }

// Raw returns a shallow copy of the document.
func (s Snapshot) Raw() Document {
	if s.doc == nil {
		return nil
	}
	out := make(Document, len(s.doc))
	for k, v := range s.doc {
		out[k] = v
	}
	return out
}

// MarshalJSON writes the document as received.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	if s.doc == nil {
		return []byte("null"), nil
	}
	return json.Marshal(s.doc)
}

// Has reports whether a top-level field is present.
func (s Snapshot) Has(key string) bool {
	_, ok := s.doc[key]
	return ok
}

// Running reports the "running" flag. A missing flag reads as false.
func (s Snapshot) Running() bool {
	b, _ := s.doc[KeyRunning].(bool)
	return b
}

// Token returns the session token carried by a bootstrap response.
func (s Snapshot) Token() (string, bool) {
	tok, ok := s.doc[KeyToken].(string)
	return tok, ok && tok != ""
}

// NumFloors returns the floor count carried by a bootstrap response.
func (s Snapshot) NumFloors() (int, bool) {
	return AsInt(s.doc[KeyNumFloors])
}

// Score is only meaningful once the simulation has ended.
func (s Snapshot) Score() (float64, bool) {
	return AsFloat(s.doc[KeyScore])
}

// ReplayURL is only present on the final turn.
func (s Snapshot) ReplayURL() (string, bool) {
	u, ok := s.doc[KeyReplayURL].(string)
	return u, ok && u != ""
}

// Errors returns the application-level warnings carried by the response.
// A missing or null field yields nil. Any other non-list value is an error.
func (s Snapshot) Errors() ([]string, error) {
	raw, ok := s.doc[KeyErrors]
	if !ok || raw == nil {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		switch v := raw.(type) {
		case []string:
			return append([]string(nil), v...), nil
		case string:
			// A bare message is a one-entry list.
			if v == "" {
				return nil, nil
			}
			return []string{v}, nil
		}
		return nil, fmt.Errorf("%q is %T, want a list", KeyErrors, raw)
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if str, ok := item.(string); ok {
			out = append(out, str)
			continue
		}
		out = append(out, fmt.Sprint(item))
	}
	return out, nil
}

// AsInt converts a decoded JSON number to int. Fractional values are rejected.
func AsInt(v any) (int, bool) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return floatToInt(f)
	case float64:
		return floatToInt(n)
	case int:
		return n, true
	case int64:
		return int(n), true
	case string:
		i, err := strconv.Atoi(n)
		return i, err == nil
	}
	return 0, false
}

// AsFloat converts a decoded JSON number to float64.
func AsFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func floatToInt(f float64) (int, bool) {
	if f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// ParseDocument decodes a response body. Anything other than a single JSON
// object is a ProtocolError.
func ParseDocument(data []byte) (Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, &ProtocolError{Op: "decode", Reason: "response is not valid JSON", Err: err}
	}
	if dec.More() {
		return nil, &ProtocolError{Op: "decode", Reason: "trailing data after JSON document"}
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, &ProtocolError{Op: "decode", Reason: fmt.Sprintf("response is %s, want a JSON object", jsonKind(v))}
	}
	return Document(obj), nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "an array"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	case json.Number:
		return "a number"
	}
	return fmt.Sprintf("%T", v)
}
