package provider

import (
	"fmt"
	"sync"
)

// Factory creates a provider instance.
type Factory func() Provider

// Registry owns one instance per provider, created on first use.
type Registry struct {
	mu        sync.Mutex
	order     []string
	factories map[string]Factory
	instances map[string]Provider
}

// NewRegistry returns a registry holding the built-in providers,
// tried in the order youtube, vimeo, generic.
func NewRegistry() *Registry {
	r := &Registry{
		factories: make(map[string]Factory),
		instances: make(map[string]Provider),
	}
	r.mustRegister("youtube", NewYouTube)
	r.mustRegister("vimeo", NewVimeo)
	r.mustRegister("generic", NewGeneric)
	return r
}

// Register adds a provider factory. Providers registered later are tried
// later by Classify.
func (r *Registry) Register(name string, fn Factory) error {
	name = NormalizeName(name)
	if name == "" {
		return fmt.Errorf("provider name cannot be empty")
	}
	if fn == nil {
		return fmt.Errorf("provider %q: nil factory", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.factories[name]; ok {
		return fmt.Errorf("provider %q already registered", name)
	}
	r.factories[name] = fn
	r.order = append(r.order, name)
	return nil
}

func (r *Registry) mustRegister(name string, fn Factory) {
	if err := r.Register(name, fn); err != nil {
		panic(err)
	}
}

// Get returns the provider registered under name.
// The lookup is case-insensitive.
func (r *Registry) Get(name string) (Provider, error) {
	name = NormalizeName(name)

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.get(name)
}

// get must be called with r.mu held.
func (r *Registry) get(name string) (Provider, error) {
	if p, ok := r.instances[name]; ok {
		return p, nil
	}
	fn, ok := r.factories[name]
	if !ok {
		return nil, &UnknownProviderError{Name: name}
	}
	p := fn()
	r.instances[name] = p
	return p, nil
}

// Names lists registered providers in classification order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Providers returns every registered provider in classification order.
func (r *Registry) Providers() []Provider {
	r.mu.Lock()
	defer r.mu.Unlock()

	ps := make([]Provider, 0, len(r.order))
	for _, name := range r.order {
		p, _ := r.get(name)
		ps = append(ps, p)
	}
	return ps
}

// Classify returns the first provider match for input.
// No match is not an error: callers treat the input as a raw id.
func (r *Registry) Classify(input string) (Match, bool) {
	for _, p := range r.Providers() {
		if m, ok := p.Match(input); ok {
			return m, true
		}
	}
	return Match{}, false
}
