package snapshot

import (
	"fmt"

	"github.com/aretw0/depsnap/pkg/domain"
)

// View is the serializable form of a Snapshot.
type View struct {
	ProjectPath     string              `json:"project_path" yaml:"project_path"`
	TargetFramework string              `json:"target_framework" yaml:"target_framework"`
	TopLevel        []string            `json:"top_level" yaml:"top_level"`
	World           []domain.Dependency `json:"world" yaml:"world"`
}

// View returns the serializable form of s.
func (s *Snapshot) View() View {
	top := s.TopLevel()
	ids := make([]string, 0, len(top))
	for _, d := range top {
		ids = append(ids, d.ID)
	}
	return View{
		ProjectPath:     s.projectPath,
		TargetFramework: s.targetFramework.Moniker,
		TopLevel:        ids,
		World:           s.World(),
	}
}

// FromView rebuilds a Snapshot from its serializable form.
func FromView(v View) (*Snapshot, error) {
	world := NewWorldBuilder(v.World...)
	topLevel := NewTopLevelBuilder()
	for _, id := range v.TopLevel {
		dep, ok := world.Get(id)
		if !ok {
			return nil, fmt.Errorf("%w: top-level dependency %q is not in the world", domain.ErrInconsistentSnapshot, id)
		}
		topLevel.Add(dep)
	}
	return Freeze(v.ProjectPath, domain.NewTargetFramework(v.TargetFramework), world, topLevel)
}
