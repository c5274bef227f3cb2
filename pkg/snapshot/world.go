package snapshot

import (
	"maps"
	"slices"

	"github.com/aretw0/depsnap/pkg/domain"
)

// WorldBuilder is the mutable id to Dependency map of an in-flight update.
type WorldBuilder struct {
	items map[string]domain.Dependency
	rev   uint64
}

// NewWorldBuilder returns a builder seeded with deps. Later entries win on duplicate ids.
func NewWorldBuilder(deps ...domain.Dependency) *WorldBuilder {
	w := &WorldBuilder{items: make(map[string]domain.Dependency, len(deps))}
	for _, d := range deps {
		w.Set(d)
	}
	return w
}

// Get returns the dependency stored under id.
func (w *WorldBuilder) Get(id string) (domain.Dependency, bool) {
	d, ok := w.items[id]
	return d, ok
}

// Contains reports whether id is present.
func (w *WorldBuilder) Contains(id string) bool {
	_, ok := w.items[id]
	return ok
}

// Set stores d under d.ID, replacing any previous entry.
func (w *WorldBuilder) Set(d domain.Dependency) {
	w.items[d.ID] = d
	w.rev++
}

// Remove deletes id and reports whether it was present.
func (w *WorldBuilder) Remove(id string) bool {
	if _, ok := w.items[id]; !ok {
		return false
	}
	delete(w.items, id)
	w.rev++
	return true
}

// Revision counts mutations since the builder was created.
func (w *WorldBuilder) Revision() uint64 {
	return w.rev
}

// Len returns the number of entries.
func (w *WorldBuilder) Len() int {
	return len(w.items)
}

// IDs returns the ids sorted ascending.
func (w *WorldBuilder) IDs() []string {
	return slices.Sorted(maps.Keys(w.items))
}

// Values returns the dependencies ordered by id.
func (w *WorldBuilder) Values() []domain.Dependency {
	return sortedValues(w.items)
}

func sortedValues(items map[string]domain.Dependency) []domain.Dependency {
	out := make([]domain.Dependency, 0, len(items))
	for _, id := range slices.Sorted(maps.Keys(items)) {
		out = append(out, items[id])
	}
	return out
}
