package dsl

import (
	"fmt"

	"github.com/aretw0/depsnap/pkg/domain"
	"github.com/aretw0/depsnap/pkg/snapshot"
)

// Builder collects the dependencies of one target framework.
type Builder struct {
	tf    domain.TargetFramework
	nodes []*NodeBuilder
	index map[string]*NodeBuilder
}

// New creates a builder for tf.
func New(tf domain.TargetFramework) *Builder {
	return &Builder{
		tf:    tf,
		index: make(map[string]*NodeBuilder),
	}
}

// Add starts a node of the given provider type.
// If a node with the same provider type and name exists, it returns the existing builder.
func (b *Builder) Add(providerType, name string) *NodeBuilder {
	return b.add(providerType, name, func() *NodeBuilder { return NewNode(b.tf, providerType, name) })
}

// Package starts a package node.
func (b *Builder) Package(name string) *NodeBuilder {
	return b.add(domain.ProviderTypePackage, name, func() *NodeBuilder { return NewPackage(b.tf, name) })
}

// Sdk starts an SDK node.
func (b *Builder) Sdk(name string) *NodeBuilder {
	return b.add(domain.ProviderTypeSdk, name, func() *NodeBuilder { return NewSdk(b.tf, name) })
}

func (b *Builder) add(providerType, name string, create func() *NodeBuilder) *NodeBuilder {
	key := providerType + "/" + name
	if nb, ok := b.index[key]; ok {
		return nb
	}
	nb := create()
	b.index[key] = nb
	b.nodes = append(b.nodes, nb)
	return nb
}

// Build returns the dependencies in insertion order.
func (b *Builder) Build() ([]domain.Dependency, error) {
	deps := make([]domain.Dependency, 0, len(b.nodes))
	for _, nb := range b.nodes {
		dep, err := nb.Dependency()
		if err != nil {
			return nil, fmt.Errorf("failed to build dependency %q: %w", nb.dep.Name, err)
		}
		deps = append(deps, dep)
	}
	return deps, nil
}

// Builders returns world and top-level builders holding the dependencies.
// Visible top-level nodes go into the top-level set.
func (b *Builder) Builders() (*snapshot.WorldBuilder, *snapshot.TopLevelBuilder, error) {
	deps, err := b.Build()
	if err != nil {
		return nil, nil, err
	}
	world := snapshot.NewWorldBuilder(deps...)
	top := snapshot.NewTopLevelBuilder()
	for _, d := range deps {
		if d.TopLevel && !d.Hidden {
			top.Add(d)
		}
	}
	return world, top, nil
}

// Snapshot freezes the dependencies into a snapshot without running any filter.
func (b *Builder) Snapshot(projectPath string) (*snapshot.Snapshot, error) {
	world, top, err := b.Builders()
	if err != nil {
		return nil, err
	}
	return snapshot.Freeze(projectPath, b.tf, world, top)
}
