package dsl

import (
	"testing"

	"github.com/aretw0/depsnap/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_ComputesIDs(t *testing.T) {
	b := New(domain.NewTargetFramework("net8.0"))

	b.Sdk("Microsoft.NETCore.App").TopLevel()
	b.Package("Microsoft.NETCore.App").
		Version("8.0.0").
		TopLevel().
		Resolved().
		Children(`net8.0\NuGetDependency\System.Runtime`)
	b.Package("System.Runtime").Resolved()

	deps, err := b.Build()
	require.NoError(t, err)
	require.Len(t, deps, 3)

	assert.Equal(t, `net8.0\SdkDependency\Microsoft.NETCore.App`, deps[0].ID)
	assert.True(t, deps[0].Flags.IsSdk())
	assert.True(t, deps[0].Flags.Contains(domain.UnresolvedFlags))

	pkg := deps[1]
	assert.Equal(t, `net8.0\NuGetDependency\Microsoft.NETCore.App`, pkg.ID)
	assert.True(t, pkg.Resolved)
	assert.True(t, pkg.Flags.Contains(domain.ResolvedFlags))
	assert.False(t, pkg.Flags.Contains(domain.UnresolvedFlags))
	assert.Equal(t, "8.0.0", pkg.Version)
	assert.Equal(t, []string{`net8.0\NuGetDependency\System.Runtime`}, pkg.DependencyIDs)
}

func TestBuilder_AddReturnsExisting(t *testing.T) {
	b := New(domain.NewTargetFramework("net8.0"))
	first := b.Package("A")
	assert.Same(t, first, b.Package("A"))
	assert.NotSame(t, first, b.Sdk("A"))
}

func TestBuilder_Snapshot(t *testing.T) {
	b := New(domain.NewTargetFramework("net8.0"))
	b.Package("Visible").TopLevel()
	b.Package("Behind").TopLevel().Hidden()
	b.Package("Child")

	snap, err := b.Snapshot("/src/app.csproj")
	require.NoError(t, err)
	assert.Equal(t, 3, snap.Len())
	require.Len(t, snap.TopLevel(), 1)
	assert.Equal(t, "Visible", snap.TopLevel()[0].Name)
}

func TestNodeBuilder_Errors(t *testing.T) {
	_, err := NewPackage(domain.TargetFramework{}, "A").Dependency()
	assert.ErrorIs(t, err, domain.ErrMalformedID)

	dep, err := NewPackage(domain.TargetFramework{}, "A").ID("custom").Dependency()
	require.NoError(t, err)
	assert.Equal(t, "custom", dep.ID)

	assert.Panics(t, func() { NewSdk(domain.TargetFramework{}, "").MustDependency() })

	b := New(domain.TargetFramework{})
	b.Package("A")
	_, err = b.Build()
	assert.ErrorIs(t, err, domain.ErrMalformedID)
}
