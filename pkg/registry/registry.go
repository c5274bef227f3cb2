package registry

import (
	"fmt"
	"sync"

	"github.com/aretw0/depsnap/pkg/filters"
)

// Factory creates a fresh filter instance.
type Factory func() filters.Filter

// Registry manages the filters available to a pipeline, in registration order.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	order     []string
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Default returns a registry holding the built-in filters in default chain order.
func Default() *Registry {
	r := NewRegistry()
	r.Register(filters.SdkAndPackagesName, func() filters.Filter { return filters.NewSdkAndPackages() })
	r.Register(filters.DuplicatedDependenciesName, func() filters.Filter { return filters.NewDuplicatedDependencies() })
	return r
}

// Register adds a filter factory to the registry.
// If a filter with the same name exists, it is overwritten and keeps its position.
func (r *Registry) Register(name string, fn Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[name]; !exists {
		r.order = append(r.order, name)
	}
	r.factories[name] = fn
}

// Names returns the registered filter names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Build instantiates the named filters in the given order.
// With no names, every registered filter is built in registration order.
// Returns an error if a filter is not found.
func (r *Registry) Build(names ...string) ([]filters.Filter, error) {
	if len(names) == 0 {
		names = r.Names()
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	chain := make([]filters.Filter, 0, len(names))
	for _, name := range names {
		fn, ok := r.factories[name]
		if !ok {
			return nil, fmt.Errorf("filter not found: %s", name)
		}
		chain = append(chain, fn())
	}
	return chain, nil
}
