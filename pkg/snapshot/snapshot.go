package snapshot

import (
	"fmt"
	"maps"
	"slices"

	"github.com/aretw0/depsnap/pkg/domain"
)

// Snapshot is the frozen dependency state of one project and target framework.
type Snapshot struct {
	projectPath     string
	targetFramework domain.TargetFramework
	world           map[string]domain.Dependency
	topLevel        map[string]domain.Dependency
}

// Empty returns a snapshot with no dependencies.
func Empty(projectPath string, tf domain.TargetFramework) *Snapshot {
	return &Snapshot{
		projectPath:     projectPath,
		targetFramework: tf,
		world:           map[string]domain.Dependency{},
		topLevel:        map[string]domain.Dependency{},
	}
}

// Freeze copies the builders into a new Snapshot after checking Consistent.
func Freeze(projectPath string, tf domain.TargetFramework, world *WorldBuilder, topLevel *TopLevelBuilder) (*Snapshot, error) {
	if err := Consistent(world, topLevel); err != nil {
		return nil, err
	}
	return &Snapshot{
		projectPath:     projectPath,
		targetFramework: tf,
		world:           maps.Clone(world.items),
		topLevel:        maps.Clone(topLevel.items),
	}, nil
}

// Consistent checks that every top-level member is present in the world.
func Consistent(world *WorldBuilder, topLevel *TopLevelBuilder) error {
	if world == nil || topLevel == nil {
		return domain.ErrNilBuilder
	}
	for _, id := range slices.Sorted(maps.Keys(topLevel.items)) {
		if !world.Contains(id) {
			return fmt.Errorf("%w: top-level dependency %q is not in the world", domain.ErrInconsistentSnapshot, id)
		}
	}
	return nil
}

// Builders returns fresh builders seeded with the snapshot content.
// Mutating them never affects s.
func (s *Snapshot) Builders() (*WorldBuilder, *TopLevelBuilder) {
	return &WorldBuilder{items: maps.Clone(s.world)}, &TopLevelBuilder{items: maps.Clone(s.topLevel)}
}

func (s *Snapshot) ProjectPath() string {
	return s.projectPath
}

func (s *Snapshot) TargetFramework() domain.TargetFramework {
	return s.targetFramework
}

// Get returns the world entry for id.
func (s *Snapshot) Get(id string) (domain.Dependency, bool) {
	d, ok := s.world[id]
	return d, ok
}

// IsTopLevel reports whether id is a top-level member.
func (s *Snapshot) IsTopLevel(id string) bool {
	_, ok := s.topLevel[id]
	return ok
}

// World returns all dependencies ordered by id.
func (s *Snapshot) World() []domain.Dependency {
	return sortedValues(s.world)
}

// TopLevel returns the top-level dependencies ordered by id.
func (s *Snapshot) TopLevel() []domain.Dependency {
	return sortedValues(s.topLevel)
}

// Children returns the world entries listed in the DependencyIDs of id, in declared order.
// Ids with no world entry are skipped.
func (s *Snapshot) Children(id string) []domain.Dependency {
	parent, ok := s.world[id]
	if !ok {
		return nil
	}
	out := make([]domain.Dependency, 0, len(parent.DependencyIDs))
	for _, childID := range parent.DependencyIDs {
		if child, ok := s.world[childID]; ok {
			out = append(out, child)
		}
	}
	return out
}

// Len returns the world size.
func (s *Snapshot) Len() int {
	return len(s.world)
}
