package models

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rickchristie/duet"
)

// Registry maps stable names to Generator instances so session inputs can
// reference generators by name ("openai", "anthropic") instead of carrying
// clients around. Safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	generators map[string]duet.Generator
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		generators: make(map[string]duet.Generator),
	}
}

// Register adds a generator under the given name, replacing any previous
// registration. Returns the registry for chaining.
func (r *Registry) Register(name string, gen duet.Generator) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.generators[name] = gen
	return r
}

// Resolve returns the generator registered under name, or
// duet.ErrUnknownGenerator when there is none.
func (r *Registry) Resolve(name string) (duet.Generator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	gen, ok := r.generators[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", duet.ErrUnknownGenerator, name)
	}
	return gen, nil
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.generators))
	for name := range r.generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
