package domain

import (
	"fmt"
	"strings"
)

// Flags is a capability set classifying a dependency node.
// Set operations are plain bit operations and therefore idempotent and order-independent.
type Flags uint32

const (
	DependencyFlag Flags = 1 << iota
	ResolvedFlag
	UnresolvedFlag
	SdkSubTreeNodeFlag
	PackageNodeFlag
	ProjectNodeFlag
	AssemblyNodeFlag
	AnalyzerNodeFlag
	GenericDependencyFlag
	SupportsHierarchyFlag
	SupportsRemoveFlag
	SubTreeRootNodeFlag
)

// Composite flag sets used by the filters.
const (
	ResolvedFlags       = ResolvedFlag
	UnresolvedFlags     = UnresolvedFlag
	SdkSubTreeNodeFlags = DependencyFlag | SdkSubTreeNodeFlag | SupportsRemoveFlag
	PackageNodeFlags    = DependencyFlag | PackageNodeFlag | SupportsHierarchyFlag | SupportsRemoveFlag
)

var flagNames = []struct {
	flag Flags
	name string
}{
	{DependencyFlag, "Dependency"},
	{ResolvedFlag, "Resolved"},
	{UnresolvedFlag, "Unresolved"},
	{SdkSubTreeNodeFlag, "SdkSubTreeNode"},
	{PackageNodeFlag, "PackageNode"},
	{ProjectNodeFlag, "ProjectNode"},
	{AssemblyNodeFlag, "AssemblyNode"},
	{AnalyzerNodeFlag, "AnalyzerNode"},
	{GenericDependencyFlag, "GenericDependency"},
	{SupportsHierarchyFlag, "SupportsHierarchy"},
	{SupportsRemoveFlag, "SupportsRemove"},
	{SubTreeRootNodeFlag, "SubTreeRootNode"},
}

// Union returns the flags present in f or other.
func (f Flags) Union(other Flags) Flags {
	return f | other
}

// Except returns f without any of the flags in other.
func (f Flags) Except(other Flags) Flags {
	return f &^ other
}

// Contains reports whether every flag of other is present in f.
func (f Flags) Contains(other Flags) bool {
	return f&other == other
}

// Intersects reports whether f and other share at least one flag.
func (f Flags) Intersects(other Flags) bool {
	return f&other != 0
}

// IsSdk reports whether the flags classify an SDK sub-tree node.
func (f Flags) IsSdk() bool {
	return f.Contains(SdkSubTreeNodeFlag)
}

// IsPackage reports whether the flags classify a package node.
func (f Flags) IsPackage() bool {
	return f.Contains(PackageNodeFlag)
}

// Names returns the names of the set flags in declaration order.
func (f Flags) Names() []string {
	names := make([]string, 0, len(flagNames))
	for _, fn := range flagNames {
		if f.Contains(fn.flag) {
			names = append(names, fn.name)
		}
	}
	return names
}

func (f Flags) String() string {
	return strings.Join(f.Names(), "|")
}

// ParseFlags parses a list of flag names. Entries may themselves hold several
// names separated by '|' or ','.
func ParseFlags(names ...string) (Flags, error) {
	var f Flags
	for _, entry := range names {
		for _, name := range strings.FieldsFunc(entry, func(r rune) bool { return r == '|' || r == ',' }) {
			flag, ok := lookupFlag(strings.TrimSpace(name))
			if !ok {
				return 0, fmt.Errorf("unknown flag %q", name)
			}
			f |= flag
		}
	}
	return f, nil
}

func lookupFlag(name string) (Flags, bool) {
	if name == "" {
		return 0, true
	}
	for _, fn := range flagNames {
		if strings.EqualFold(fn.name, name) {
			return fn.flag, true
		}
	}
	return 0, false
}

// MarshalText encodes the flags as "Name|Name". Both JSON and YAML use it.
func (f Flags) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText decodes the form produced by MarshalText.
func (f *Flags) UnmarshalText(text []byte) error {
	parsed, err := ParseFlags(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
