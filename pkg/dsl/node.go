package dsl

import (
	"github.com/aretw0/depsnap/pkg/domain"
)

// NodeBuilder provides a fluent API for configuring a dependency.
type NodeBuilder struct {
	tf  domain.TargetFramework
	dep domain.Dependency
	id  string
}

// NewNode starts a dependency of the given provider type. Caption defaults to name.
func NewNode(tf domain.TargetFramework, providerType, name string) *NodeBuilder {
	return &NodeBuilder{
		tf: tf,
		dep: domain.Dependency{
			Name:         name,
			Caption:      name,
			ProviderType: providerType,
			Flags:        domain.DependencyFlag | domain.UnresolvedFlags,
		},
	}
}

// NewPackage starts a package node.
func NewPackage(tf domain.TargetFramework, name string) *NodeBuilder {
	return NewNode(tf, domain.ProviderTypePackage, name).Flags(domain.PackageNodeFlags)
}

// NewSdk starts an SDK node.
func NewSdk(tf domain.TargetFramework, name string) *NodeBuilder {
	return NewNode(tf, domain.ProviderTypeSdk, name).Flags(domain.SdkSubTreeNodeFlags)
}

// ID overrides the computed "{moniker}\{providerType}\{name}" Id.
func (n *NodeBuilder) ID(id string) *NodeBuilder {
	n.id = id
	return n
}

// Caption sets the display caption.
func (n *NodeBuilder) Caption(caption string) *NodeBuilder {
	n.dep.Caption = caption
	return n
}

// Alias sets the caption used once the node collides with another.
func (n *NodeBuilder) Alias(alias string) *NodeBuilder {
	n.dep.Alias = alias
	return n
}

// ItemSpec sets the original item spec.
func (n *NodeBuilder) ItemSpec(spec string) *NodeBuilder {
	n.dep.OriginalItemSpec = spec
	return n
}

// Version sets the reported version.
func (n *NodeBuilder) Version(version string) *NodeBuilder {
	n.dep.Version = version
	return n
}

// Flags adds flags on top of the current ones.
func (n *NodeBuilder) Flags(flags domain.Flags) *NodeBuilder {
	n.dep.Flags = n.dep.Flags.Union(flags)
	return n
}

// Resolved marks the node resolved.
func (n *NodeBuilder) Resolved() *NodeBuilder {
	n.dep.Resolved = true
	n.dep.Flags = n.dep.Flags.Union(domain.ResolvedFlags).Except(domain.UnresolvedFlags)
	return n
}

// Unresolved marks the node unresolved.
func (n *NodeBuilder) Unresolved() *NodeBuilder {
	n.dep.Resolved = false
	n.dep.Flags = n.dep.Flags.Union(domain.UnresolvedFlags).Except(domain.ResolvedFlags)
	return n
}

// TopLevel marks the node as a root of the tree.
func (n *NodeBuilder) TopLevel() *NodeBuilder {
	n.dep.TopLevel = true
	return n
}

// Implicit marks the node as brought in implicitly.
func (n *NodeBuilder) Implicit() *NodeBuilder {
	n.dep.Implicit = true
	return n
}

// Hidden keeps the node out of the top-level set.
func (n *NodeBuilder) Hidden() *NodeBuilder {
	n.dep.Hidden = true
	return n
}

// Children appends child dependency ids.
func (n *NodeBuilder) Children(ids ...string) *NodeBuilder {
	n.dep.DependencyIDs = append(n.dep.DependencyIDs, ids...)
	return n
}

// Dependency returns the configured dependency.
func (n *NodeBuilder) Dependency() (domain.Dependency, error) {
	dep := n.dep.Clone()
	if n.id != "" {
		dep.ID = n.id
		return dep, nil
	}
	id, err := domain.DependencyID(n.tf, dep.ProviderType, dep.Name)
	if err != nil {
		return domain.Dependency{}, err
	}
	dep.ID = id
	return dep, nil
}

// MustDependency is like Dependency but panics on error. Intended for tests.
func (n *NodeBuilder) MustDependency() domain.Dependency {
	dep, err := n.Dependency()
	if err != nil {
		panic(err)
	}
	return dep
}
