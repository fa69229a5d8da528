package cookie

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry maps cookie policy identifiers to Spec factories. Identifiers are
// case-insensitive. A Registry is safe for concurrent use; it is normally
// filled once at startup and only read afterwards.
// The zero value is not usable; use NewRegistry to create one.
type Registry struct {
	mu     sync.RWMutex
	routes map[string]Factory
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		routes: make(map[string]Factory),
	}
}

// Register adds or replaces the factory for the given policy identifier.
// It panics on an empty name or a nil factory.
func (r *Registry) Register(name string, factory Factory) {
	if name == "" {
		panic("cookie: Register called with empty policy name")
	}
	if factory == nil {
		panic("cookie: Register called with nil factory for " + name)
	}
	r.mu.Lock()
	r.routes[strings.ToLower(name)] = factory
	r.mu.Unlock()
}

// Unregister removes the factory for the given policy identifier.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	delete(r.routes, strings.ToLower(name))
	r.mu.Unlock()
}

// Lookup returns the factory registered for name.
// Returns an error wrapping ErrUnknownPolicy if there is none.
func (r *Registry) Lookup(name string) (Factory, error) {
	r.mu.RLock()
	factory, ok := r.routes[strings.ToLower(name)]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf(
			"%w %q (supported: %s)",
			ErrUnknownPolicy,
			name,
			strings.Join(r.Names(), ", "),
		)
	}
	return factory, nil
}

// NewSpec creates a Spec for the given policy identifier.
func (r *Registry) NewSpec(name string, params Params) (Spec, error) {
	factory, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	return factory(params), nil
}

// Names returns a sorted list of all registered policy identifiers.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.routes))
	for n := range r.routes {
		names = append(names, n)
	}
	r.mu.RUnlock()
	sort.Strings(names)
	return names
}
