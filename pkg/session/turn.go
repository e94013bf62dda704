package session

import (
	"strings"

	"github.com/aretw0/dianti/pkg/domain"
	"github.com/hashicorp/go-multierror"
)

// Turn is the result of a successful exchange: the new snapshot plus any
// application errors the simulator reported alongside it.
type Turn struct {
	// Number is 0 for the bootstrap response, then 1, 2, ...
	Number   int
	Snapshot domain.Snapshot
	Warnings Warnings
}

// Running reports whether the simulation continues after this turn.
func (t *Turn) Running() bool { return t.Snapshot.Running() }

// Warnings are the non-fatal errors of one or more responses.
type Warnings []domain.APIError

// Err aggregates the warnings into a single error, or nil when there are none.
func (w Warnings) Err() error {
	var merr *multierror.Error
	for _, e := range w {
		merr = multierror.Append(merr, e)
	}
	if merr != nil {
		merr.ErrorFormat = formatWarnings
	}
	return merr.ErrorOrNil()
}

// Messages returns the raw message of each warning.
func (w Warnings) Messages() []string {
	out := make([]string, len(w))
	for i, e := range w {
		out[i] = e.Message
	}
	return out
}

func formatWarnings(es []error) string {
	if len(es) == 1 {
		return es[0].Error()
	}
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "; ")
}

func toWarnings(turn int, msgs []string) Warnings {
	if len(msgs) == 0 {
		return nil
	}
	out := make(Warnings, len(msgs))
	for i, m := range msgs {
		out[i] = domain.APIError{Turn: turn, Message: m}
	}
	return out
}
