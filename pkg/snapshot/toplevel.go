package snapshot

import (
	"maps"
	"slices"

	"github.com/aretw0/depsnap/pkg/domain"
)

// TopLevelBuilder is the mutable set of root-visible dependencies of an in-flight update.
// Members are identified by Id: adding a dependency whose Id is already present replaces it.
type TopLevelBuilder struct {
	items map[string]domain.Dependency
	rev   uint64
}

// NewTopLevelBuilder returns a set holding deps.
func NewTopLevelBuilder(deps ...domain.Dependency) *TopLevelBuilder {
	t := &TopLevelBuilder{items: make(map[string]domain.Dependency, len(deps))}
	for _, d := range deps {
		t.Add(d)
	}
	return t
}

// Add inserts d, replacing a member with the same Id.
func (t *TopLevelBuilder) Add(d domain.Dependency) {
	t.items[d.ID] = d
	t.rev++
}

// Remove drops the member with d's Id and reports whether one was present.
func (t *TopLevelBuilder) Remove(d domain.Dependency) bool {
	return t.RemoveID(d.ID)
}

// RemoveID drops the member with the given Id.
func (t *TopLevelBuilder) RemoveID(id string) bool {
	if _, ok := t.items[id]; !ok {
		return false
	}
	delete(t.items, id)
	t.rev++
	return true
}

// Contains reports whether a member equal in value to d is present.
func (t *TopLevelBuilder) Contains(d domain.Dependency) bool {
	member, ok := t.items[d.ID]
	return ok && member.Equal(d)
}

// ContainsID reports whether a member with the given Id is present.
func (t *TopLevelBuilder) ContainsID(id string) bool {
	_, ok := t.items[id]
	return ok
}

// Get returns the member with the given Id.
func (t *TopLevelBuilder) Get(id string) (domain.Dependency, bool) {
	d, ok := t.items[id]
	return d, ok
}

// First returns the member with the smallest Id.
func (t *TopLevelBuilder) First() (domain.Dependency, bool) {
	if len(t.items) == 0 {
		return domain.Dependency{}, false
	}
	return t.items[slices.Min(slices.Collect(maps.Keys(t.items)))], true
}

// Revision counts mutations since the builder was created.
func (t *TopLevelBuilder) Revision() uint64 {
	return t.rev
}

// Len returns the number of members.
func (t *TopLevelBuilder) Len() int {
	return len(t.items)
}

// Values returns the members ordered by Id.
func (t *TopLevelBuilder) Values() []domain.Dependency {
	return sortedValues(t.items)
}
