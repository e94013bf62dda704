package strategy

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/aretw0/dianti/internal/logging"
	"github.com/aretw0/dianti/pkg/ports"
)

// Options are passed to every Factory.
type Options struct {
	// Seed makes random choices reproducible. Zero picks a random seed.
	Seed   uint64
	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return logging.NewNop()
	}
	return o.Logger
}

// Factory builds a fresh strategy. Strategies may keep per-session memory,
// so each session needs its own instance.
type Factory func(opts Options) ports.Strategy

// Registry manages the available strategies.
type Registry struct {
	mu           sync.RWMutex
	factories    map[string]Factory
	descriptions map[string]string
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories:    make(map[string]Factory),
		descriptions: make(map[string]string),
	}
}

// Register adds a strategy to the registry.
// If a strategy with the same name exists, it is overwritten.
func (r *Registry) Register(name string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = f
}

// New looks up a strategy by name and builds it.
// Returns an error if the strategy is not found.
func (r *Registry) New(name string, opts Options) (ports.Strategy, error) {
	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("strategy not found: %s", name)
	}
	return f(opts), nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[name]
	return ok
}

// Describe attaches a one-line description shown by the CLI.
func (r *Registry) Describe(name, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.descriptions[name] = text
}

// Description returns the text set with Describe, or an empty string.
func (r *Registry) Description(name string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.descriptions[name]
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

const (
	NameRandom = "random"
	NameUpDown = "updown"
)

// Default returns a registry holding the built-in strategies.
func Default() *Registry {
	r := NewRegistry()
	r.Register(NameRandom, func(opts Options) ports.Strategy { return NewRandom(opts) })
	r.Register(NameUpDown, func(opts Options) ports.Strategy { return NewUpDown(opts) })
	r.Describe(NameRandom, "random direction and action for every elevator")
	r.Describe(NameUpDown, "sweep between ground and top floor, stopping for matching calls")
	return r
}
