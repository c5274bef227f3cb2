package filters

import (
	"github.com/aretw0/depsnap/pkg/domain"
	"github.com/aretw0/depsnap/pkg/snapshot"
)

// Filter is one stage of the snapshot pipeline.
type Filter interface {
	// Name identifies the filter in logs, metrics and configuration.
	Name() string

	// BeforeAdd is called before dep is inserted. world and topLevel hold the
	// prior state and do not contain dep yet. The returned dependency is the one
	// that gets inserted; dep itself must not be modified.
	BeforeAdd(projectPath string, tf domain.TargetFramework, dep domain.Dependency, world *snapshot.WorldBuilder, topLevel *snapshot.TopLevelBuilder) (domain.Dependency, error)

	// BeforeRemove is called before dep is deleted from world and topLevel.
	BeforeRemove(projectPath string, tf domain.TargetFramework, dep domain.Dependency, world *snapshot.WorldBuilder, topLevel *snapshot.TopLevelBuilder) error
}

// Describer is implemented by filters that document themselves in markdown.
type Describer interface {
	Description() string
}

// Describe returns f's markdown description, or "" if it has none.
func Describe(f Filter) string {
	if d, ok := f.(Describer); ok {
		return d.Description()
	}
	return ""
}

// Base implements Filter hooks as pass-through. Embed it to override only one hook.
type Base struct{}

func (Base) BeforeAdd(_ string, _ domain.TargetFramework, dep domain.Dependency, _ *snapshot.WorldBuilder, _ *snapshot.TopLevelBuilder) (domain.Dependency, error) {
	return dep, nil
}

func (Base) BeforeRemove(_ string, _ domain.TargetFramework, _ domain.Dependency, _ *snapshot.WorldBuilder, _ *snapshot.TopLevelBuilder) error {
	return nil
}

// Default returns the standard chain in execution order.
func Default() []Filter {
	return []Filter{
		NewSdkAndPackages(),
		NewDuplicatedDependencies(),
	}
}
