package filters

import (
	"fmt"

	"github.com/aretw0/depsnap/pkg/domain"
	"github.com/aretw0/depsnap/pkg/snapshot"
)

// SdkAndPackagesName is the registry name of SdkAndPackages.
const SdkAndPackagesName = "sdk-and-packages"

// SdkAndPackages links an SDK node with the package node of the same name in the
// same target framework. While the package is resolved, the SDK mirrors its
// resolution, children and flags, and the SDK is the only one of the two in the
// top-level set.
type SdkAndPackages struct{}

func NewSdkAndPackages() *SdkAndPackages {
	return &SdkAndPackages{}
}

func (f *SdkAndPackages) Name() string {
	return SdkAndPackagesName
}

func (f *SdkAndPackages) Description() string {
	return `Links an **SDK** node with the **package** of the same name in the same target framework.

- While the package is resolved, the SDK is resolved too and takes over the package's children and flags.
- The package stays in the world but is hidden from the top level.
- Removing the package turns the SDK back into an unresolved placeholder.
- Removing the SDK shows the package again.`
}

func (f *SdkAndPackages) BeforeAdd(_ string, tf domain.TargetFramework, dep domain.Dependency, world *snapshot.WorldBuilder, topLevel *snapshot.TopLevelBuilder) (domain.Dependency, error) {
	if !dep.TopLevel {
		return dep, nil
	}

	kind, err := dep.Kind()
	if err != nil {
		return dep, err
	}

	switch kind {
	case domain.KindSdk:
		return f.adoptPackage(tf, dep, world, topLevel)
	case domain.KindPackage:
		if !dep.Resolved {
			return f.releaseSdk(tf, dep, world, topLevel)
		}
		return f.resolveSdk(tf, dep, world, topLevel)
	}
	return dep, nil
}

func (f *SdkAndPackages) BeforeRemove(_ string, tf domain.TargetFramework, dep domain.Dependency, world *snapshot.WorldBuilder, topLevel *snapshot.TopLevelBuilder) error {
	if !dep.TopLevel {
		return nil
	}

	kind, err := dep.Kind()
	if err != nil {
		return err
	}

	switch kind {
	case domain.KindPackage:
		if !dep.Resolved {
			return nil
		}
		return f.unresolveSdk(tf, dep, world, topLevel)
	case domain.KindSdk:
		return f.revealPackage(tf, dep, world, topLevel)
	}
	return nil
}

// adoptPackage copies a resolved package's state onto the incoming SDK node and
// hides the package behind it.
func (f *SdkAndPackages) adoptPackage(tf domain.TargetFramework, sdk domain.Dependency, world *snapshot.WorldBuilder, topLevel *snapshot.TopLevelBuilder) (domain.Dependency, error) {
	pkg, ok, err := f.counterpart(tf, domain.ProviderTypePackage, sdk, world)
	if err != nil || !ok || !pkg.Resolved {
		return sdk, err
	}

	if !pkg.Hidden {
		if topLevel == nil {
			return sdk, fmt.Errorf("%s: %w", f.Name(), domain.ErrNilBuilder)
		}
		hidden := pkg.SetProperties(domain.WithHidden(true))
		world.Set(hidden)
		topLevel.RemoveID(pkg.ID)
	}

	return sdk.SetProperties(
		domain.WithResolved(true),
		domain.WithDependencyIDs(pkg.DependencyIDs),
		domain.WithFlags(resolvedFlags(sdk.Flags)),
	), nil
}

// resolveSdk pushes the incoming resolved package's state onto the SDK already in
// the world. The package is returned hidden so it does not compete for the top level.
func (f *SdkAndPackages) resolveSdk(tf domain.TargetFramework, pkg domain.Dependency, world *snapshot.WorldBuilder, topLevel *snapshot.TopLevelBuilder) (domain.Dependency, error) {
	sdk, ok, err := f.counterpart(tf, domain.ProviderTypeSdk, pkg, world)
	if err != nil || !ok {
		return pkg, err
	}
	if topLevel == nil {
		return pkg, fmt.Errorf("%s: %w", f.Name(), domain.ErrNilBuilder)
	}

	linked := sdk.SetProperties(
		domain.WithResolved(true),
		domain.WithDependencyIDs(pkg.DependencyIDs),
		domain.WithFlags(resolvedFlags(sdk.Flags)),
	)
	world.Set(linked)
	topLevel.Remove(sdk)
	topLevel.Add(linked)

	return pkg.SetProperties(domain.WithHidden(true)), nil
}

// releaseSdk handles a package that comes back unresolved while the world still
// holds it hidden behind its SDK. The SDK is unlinked and keeps the top level.
func (f *SdkAndPackages) releaseSdk(tf domain.TargetFramework, pkg domain.Dependency, world *snapshot.WorldBuilder, topLevel *snapshot.TopLevelBuilder) (domain.Dependency, error) {
	if world == nil {
		return pkg, fmt.Errorf("%s: %w", f.Name(), domain.ErrNilBuilder)
	}
	prev, ok := world.Get(pkg.ID)
	if !ok || !prev.Hidden || !prev.Resolved {
		return pkg, nil
	}
	if err := f.unresolveSdk(tf, pkg, world, topLevel); err != nil {
		return pkg, err
	}
	return pkg.SetProperties(domain.WithHidden(true)), nil
}

// unresolveSdk resets the SDK once its package goes away, keeping it in the top
// level as an unresolved placeholder.
func (f *SdkAndPackages) unresolveSdk(tf domain.TargetFramework, pkg domain.Dependency, world *snapshot.WorldBuilder, topLevel *snapshot.TopLevelBuilder) error {
	sdk, ok, err := f.counterpart(tf, domain.ProviderTypeSdk, pkg, world)
	if err != nil || !ok {
		return err
	}
	if topLevel == nil {
		return fmt.Errorf("%s: %w", f.Name(), domain.ErrNilBuilder)
	}

	unlinked := sdk.SetProperties(
		domain.WithResolved(false),
		domain.WithDependencyIDs(nil),
		domain.WithFlags(sdk.Flags.Union(domain.UnresolvedFlags).Except(domain.ResolvedFlags)),
	)
	world.Set(unlinked)
	topLevel.Remove(sdk)
	topLevel.Add(unlinked)
	return nil
}

// revealPackage makes a package hidden behind a removed SDK visible again.
func (f *SdkAndPackages) revealPackage(tf domain.TargetFramework, sdk domain.Dependency, world *snapshot.WorldBuilder, topLevel *snapshot.TopLevelBuilder) error {
	pkg, ok, err := f.counterpart(tf, domain.ProviderTypePackage, sdk, world)
	if err != nil || !ok || !pkg.Hidden {
		return err
	}
	if topLevel == nil {
		return fmt.Errorf("%s: %w", f.Name(), domain.ErrNilBuilder)
	}

	shown := pkg.SetProperties(domain.WithHidden(false))
	world.Set(shown)
	if shown.TopLevel {
		topLevel.Add(shown)
	}
	return nil
}

// counterpart looks up "{moniker}\{providerType}\{dep.Name}" in the world.
func (f *SdkAndPackages) counterpart(tf domain.TargetFramework, providerType string, dep domain.Dependency, world *snapshot.WorldBuilder) (domain.Dependency, bool, error) {
	if world == nil {
		return domain.Dependency{}, false, fmt.Errorf("%s: %w", f.Name(), domain.ErrNilBuilder)
	}
	id, err := domain.DependencyID(tf, providerType, dep.Name)
	if err != nil {
		return domain.Dependency{}, false, fmt.Errorf("%s: counterpart of %q: %w", f.Name(), dep.ID, err)
	}
	other, ok := world.Get(id)
	return other, ok, nil
}

func resolvedFlags(f domain.Flags) domain.Flags {
	return f.Union(domain.ResolvedFlags).Except(domain.UnresolvedFlags)
}
