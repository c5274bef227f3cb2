package filters

import (
	"fmt"

	"github.com/aretw0/depsnap/pkg/domain"
	"github.com/aretw0/depsnap/pkg/snapshot"
)

// DuplicatedDependenciesName is the registry name of DuplicatedDependencies.
const DuplicatedDependenciesName = "duplicated-dependencies"

// DuplicatedDependencies keeps two visible nodes of the same provider from sharing a caption.
//
// When the incoming dependency's caption matches another visible node of the same
// provider type, both switch to their EffectiveAlias. When the other node already
// carries its alias ("{caption} ({itemSpec})"), only the incoming one is renamed.
// Nodes renamed by an earlier call still match on their original caption.
// Comparison is exact and case-sensitive.
type DuplicatedDependencies struct {
	Base
}

func NewDuplicatedDependencies() *DuplicatedDependencies {
	return &DuplicatedDependencies{}
}

func (f *DuplicatedDependencies) Name() string {
	return DuplicatedDependenciesName
}

func (f *DuplicatedDependencies) Description() string {
	return `Disambiguates **visible** nodes of the same provider whose captions collide.

- Every colliding node is renamed to its alias, by default ` + "`Caption (ItemSpec)`" + `.
- The incoming node takes its alias as well.
- A node already showing the incoming node's alias only renames the incoming node.
- Hidden nodes never collide.`
}

func (f *DuplicatedDependencies) BeforeAdd(_ string, _ domain.TargetFramework, dep domain.Dependency, world *snapshot.WorldBuilder, topLevel *snapshot.TopLevelBuilder) (domain.Dependency, error) {
	if world == nil || topLevel == nil {
		return dep, fmt.Errorf("%s: %w", f.Name(), domain.ErrNilBuilder)
	}

	base := dep.BaseCaption()
	var matches []domain.Dependency
	aliasApplied := false
	for _, other := range candidates(dep, world, topLevel) {
		switch {
		case other.BaseCaption() == base:
			matches = append(matches, other)
		case other.Caption == domain.CaptionWithItemSpec(base, other.OriginalItemSpec):
			aliasApplied = true
		}
	}

	if len(matches) == 0 && !aliasApplied {
		return dep, nil
	}

	for _, other := range matches {
		renamed := other.Disambiguated()
		if renamed.Equal(other) {
			continue
		}
		world.Set(renamed)
		if topLevel.ContainsID(other.ID) {
			topLevel.Add(renamed)
		}
	}

	return dep.Disambiguated(), nil
}

// candidates returns the visible nodes dep may collide with: top-level members
// first, then every other world entry that is not hidden. Each Id appears once.
func candidates(dep domain.Dependency, world *snapshot.WorldBuilder, topLevel *snapshot.TopLevelBuilder) []domain.Dependency {
	seen := make(map[string]bool)
	var out []domain.Dependency
	add := func(other domain.Dependency) {
		if seen[other.ID] || other.ID == dep.ID || other.ProviderType != dep.ProviderType {
			return
		}
		seen[other.ID] = true
		out = append(out, other)
	}

	for _, other := range topLevel.Values() {
		add(other)
	}
	for _, other := range world.Values() {
		if !other.Hidden {
			add(other)
		}
	}
	return out
}
