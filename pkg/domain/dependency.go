package domain

import (
	"fmt"
	"slices"
)

// Dependency is one node of a project's dependency tree as reported by a provider.
//
// Values are treated as immutable: filters never modify a Dependency in place,
// they derive a copy through SetProperties.
type Dependency struct {
	// ID is unique within a snapshot; conventionally "{moniker}\{providerType}\{name}".
	ID           string `json:"id" yaml:"id"`
	Name         string `json:"name" yaml:"name"`
	Caption      string `json:"caption" yaml:"caption"`
	ProviderType string `json:"provider_type" yaml:"provider_type"`
	Version      string `json:"version,omitempty" yaml:"version,omitempty"`

	// Alias overrides the caption once two nodes collide. See EffectiveAlias.
	Alias string `json:"alias,omitempty" yaml:"alias,omitempty"`

	// OriginalItemSpec is the item spec the provider saw, used to disambiguate captions.
	OriginalItemSpec string `json:"original_item_spec,omitempty" yaml:"original_item_spec,omitempty"`

	// OriginalCaption holds the provider's caption once Caption has been replaced by the alias.
	OriginalCaption string `json:"original_caption,omitempty" yaml:"original_caption,omitempty"`

	Flags    Flags `json:"flags" yaml:"flags"`
	Resolved bool  `json:"resolved" yaml:"resolved"`
	TopLevel bool  `json:"top_level" yaml:"top_level"`
	Implicit bool  `json:"implicit,omitempty" yaml:"implicit,omitempty"`

	// Hidden keeps a top-level node in the world while another node represents it.
	Hidden bool `json:"hidden,omitempty" yaml:"hidden,omitempty"`

	// DependencyIDs lists the ids of the children this node declares, in order.
	DependencyIDs []string `json:"dependency_ids,omitempty" yaml:"dependency_ids,omitempty"`
}

// EffectiveAlias returns the caption to display when this node collides with another.
func (d Dependency) EffectiveAlias() string {
	if d.Alias != "" {
		return d.Alias
	}
	base := d.BaseCaption()
	if d.OriginalItemSpec != "" && d.OriginalItemSpec != base {
		return CaptionWithItemSpec(base, d.OriginalItemSpec)
	}
	return base
}

// BaseCaption returns the caption the provider reported, before any alias was applied.
func (d Dependency) BaseCaption() string {
	if d.OriginalCaption != "" {
		return d.OriginalCaption
	}
	return d.Caption
}

// Disambiguated returns a copy showing EffectiveAlias as its caption.
// Applying it twice yields the same node.
func (d Dependency) Disambiguated() Dependency {
	alias := d.EffectiveAlias()
	if alias == d.Caption {
		return d
	}
	d.OriginalCaption = d.BaseCaption()
	d.Caption = alias
	return d
}

// CaptionWithItemSpec formats the disambiguated caption "{caption} ({itemSpec})".
func CaptionWithItemSpec(caption, itemSpec string) string {
	return fmt.Sprintf("%s (%s)", caption, itemSpec)
}

// Kind classifies the node for SDK/package pairing.
type Kind int

const (
	KindOther Kind = iota
	KindSdk
	KindPackage
)

// Kind returns the node kind derived from its flags.
func (d Dependency) Kind() (Kind, error) {
	isSdk, isPackage := d.Flags.IsSdk(), d.Flags.IsPackage()
	switch {
	case isSdk && isPackage:
		return KindOther, fmt.Errorf("%w: %q", ErrAmbiguousKind, d.ID)
	case isSdk:
		return KindSdk, nil
	case isPackage:
		return KindPackage, nil
	default:
		return KindOther, nil
	}
}

// Equal reports whether d and other hold the same values.
func (d Dependency) Equal(other Dependency) bool {
	return d.ID == other.ID &&
		d.Name == other.Name &&
		d.Caption == other.Caption &&
		d.ProviderType == other.ProviderType &&
		d.Version == other.Version &&
		d.Alias == other.Alias &&
		d.OriginalItemSpec == other.OriginalItemSpec &&
		d.OriginalCaption == other.OriginalCaption &&
		d.Flags == other.Flags &&
		d.Resolved == other.Resolved &&
		d.TopLevel == other.TopLevel &&
		d.Implicit == other.Implicit &&
		d.Hidden == other.Hidden &&
		slices.Equal(d.DependencyIDs, other.DependencyIDs)
}

// Clone returns a copy that shares no slices with d.
func (d Dependency) Clone() Dependency {
	d.DependencyIDs = slices.Clone(d.DependencyIDs)
	return d
}

// Property changes one field of a Dependency copy.
type Property func(*Dependency)

// WithCaption sets the caption.
func WithCaption(caption string) Property {
	return func(d *Dependency) {
		d.Caption = caption
	}
}

// WithResolved sets the resolution status.
func WithResolved(resolved bool) Property {
	return func(d *Dependency) {
		d.Resolved = resolved
	}
}

// WithFlags replaces the flags.
func WithFlags(flags Flags) Property {
	return func(d *Dependency) {
		d.Flags = flags
	}
}

// WithDependencyIDs replaces the child ids. The slice is copied.
func WithDependencyIDs(ids []string) Property {
	return func(d *Dependency) {
		d.DependencyIDs = slices.Clone(ids)
	}
}

// WithHidden sets whether the node is kept out of the top-level set.
func WithHidden(hidden bool) Property {
	return func(d *Dependency) {
		d.Hidden = hidden
	}
}

// SetProperties returns a copy of d with the given properties applied.
// d itself is left untouched.
func (d Dependency) SetProperties(props ...Property) Dependency {
	out := d.Clone()
	for _, p := range props {
		p(&out)
	}
	return out
}
