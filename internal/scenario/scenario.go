package scenario

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/depsnap/pkg/domain"
	"github.com/aretw0/depsnap/pkg/dsl"
	"gopkg.in/yaml.v3"
)

// Scenario is a scripted sequence of snapshot updates for one project and target framework.
type Scenario struct {
	Project         string `yaml:"project"`
	TargetFramework string `yaml:"target_framework"`
	Steps           []Step `yaml:"steps"`
}

// Step is one batch of changes, optionally followed by expectations on the result.
type Step struct {
	Name   string  `yaml:"name"`
	Add    []Node  `yaml:"add,omitempty"`
	Remove []Ref   `yaml:"remove,omitempty"`
	Expect *Expect `yaml:"expect,omitempty"`
}

// Ref points at a dependency either by id or by provider type and name.
// In YAML a bare string is read as an id.
type Ref struct {
	ID       string `yaml:"id,omitempty"`
	Provider string `yaml:"provider,omitempty"`
	Name     string `yaml:"name,omitempty"`
}

func (r *Ref) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		r.ID = value.Value
		return nil
	}
	type plain Ref
	return value.Decode((*plain)(r))
}

// Resolve returns the id r designates within tf.
func (r Ref) Resolve(tf domain.TargetFramework) (string, error) {
	if r.ID != "" {
		return r.ID, nil
	}
	return domain.DependencyID(tf, r.Provider, r.Name)
}

// Node describes a dependency to add.
type Node struct {
	ID       string       `yaml:"id,omitempty"`
	Provider string       `yaml:"provider"`
	Name     string       `yaml:"name"`
	Caption  string       `yaml:"caption,omitempty"`
	Alias    string       `yaml:"alias,omitempty"`
	ItemSpec string       `yaml:"item_spec,omitempty"`
	Version  string       `yaml:"version,omitempty"`
	Flags    domain.Flags `yaml:"flags,omitempty"`
	Resolved bool         `yaml:"resolved,omitempty"`
	TopLevel bool         `yaml:"top_level,omitempty"`
	Implicit bool         `yaml:"implicit,omitempty"`
	Hidden   bool         `yaml:"hidden,omitempty"`
	Children []Ref        `yaml:"children,omitempty"`
}

// Dependency builds the domain value for n within tf.
func (n Node) Dependency(tf domain.TargetFramework) (domain.Dependency, error) {
	var nb *dsl.NodeBuilder
	switch n.Provider {
	case domain.ProviderTypePackage:
		nb = dsl.NewPackage(tf, n.Name)
	case domain.ProviderTypeSdk:
		nb = dsl.NewSdk(tf, n.Name)
	default:
		nb = dsl.NewNode(tf, n.Provider, n.Name)
	}

	if n.ID != "" {
		nb.ID(n.ID)
	}
	if n.Caption != "" {
		nb.Caption(n.Caption)
	}
	nb.Alias(n.Alias).ItemSpec(n.ItemSpec).Version(n.Version).Flags(n.Flags)
	if n.Resolved {
		nb.Resolved()
	}
	if n.TopLevel {
		nb.TopLevel()
	}
	if n.Implicit {
		nb.Implicit()
	}
	if n.Hidden {
		nb.Hidden()
	}
	for i, child := range n.Children {
		id, err := child.Resolve(tf)
		if err != nil {
			return domain.Dependency{}, fmt.Errorf("child %d: %w", i, err)
		}
		nb.Children(id)
	}
	return nb.Dependency()
}

// Expect lists assertions checked after a step. Unset fields are not checked.
type Expect struct {
	TopLevel  []Ref        `yaml:"top_level,omitempty"`
	WorldSize *int         `yaml:"world_size,omitempty"`
	Nodes     []NodeExpect `yaml:"nodes,omitempty"`
	Valid     bool         `yaml:"valid,omitempty"`
}

// NodeExpect asserts the state of one dependency.
type NodeExpect struct {
	ID       string   `yaml:"id,omitempty"`
	Provider string   `yaml:"provider,omitempty"`
	Name     string   `yaml:"name,omitempty"`
	Absent   bool     `yaml:"absent,omitempty"`
	Caption  *string  `yaml:"caption,omitempty"`
	Resolved *bool    `yaml:"resolved,omitempty"`
	Hidden   *bool    `yaml:"hidden,omitempty"`
	Flags    []string `yaml:"flags,omitempty"`
	Children []Ref    `yaml:"children,omitempty"`
	// Version is a semver constraint the node's version must satisfy.
	Version string `yaml:"version,omitempty"`
}

// Ref returns the dependency the expectation targets.
func (e NodeExpect) Ref() Ref {
	return Ref{ID: e.ID, Provider: e.Provider, Name: e.Name}
}

// Parse decodes and validates a scenario. Unknown fields are rejected.
func Parse(r io.Reader) (*Scenario, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var sc Scenario
	if err := dec.Decode(&sc); err != nil {
		if err == io.EOF {
			return nil, &ValidationError{Path: At("steps"), Reason: "scenario is empty"}
		}
		return nil, fmt.Errorf("failed to decode scenario: %w", err)
	}
	if err := Validate(&sc); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Load reads a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	sc, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}
