package effect

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"
)

// ErrUnknownEffect is returned by Create for an unregistered name
var ErrUnknownEffect = errors.New("unknown effect")

// Registry maps effect names to factories, remembering registration order
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	order     []string
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// NewDefaultRegistry registers the full catalog in display order
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NameClassic, NewClassic)
	r.Register(NameBinary, NewBinary)
	r.Register(NameCascade, NewCascade)
	r.Register(NamePulse, NewPulse)
	r.Register(NameGlitch, NewGlitch)
	r.Register(NameFire, NewFire)
	r.Register(NameOcean, NewOcean)
	r.Register(NameParallax, NewParallax)
	return r
}

// Register adds a factory; re-registering a name replaces it in place
func (r *Registry) Register(name string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.factories[name]; !ok {
		r.order = append(r.order, name)
	}
	r.factories[name] = factory
}

// Has reports whether name is registered
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[name]
	return ok
}

// Create builds a new instance of the named effect
func (r *Registry) Create(name string, rng *rand.Rand) (Effect, error) {
	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEffect, name)
	}
	return f(rng), nil
}

// Names returns registered names in registration order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.order)
}

// Random picks a registered name uniformly; empty when nothing is registered
func (r *Registry) Random(rng *rand.Rand) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.order) == 0 {
		return ""
	}
	return r.order[rng.IntN(len(r.order))]
}

// Next returns the name after current in registration order, wrapping
// An unknown current yields the first name
func (r *Registry) Next(current string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.order) == 0 {
		return ""
	}
	i := slices.Index(r.order, current)
	return r.order[(i+1)%len(r.order)]
}
