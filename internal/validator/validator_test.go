package validator

import (
	"strings"
	"testing"

	"github.com/aretw0/depsnap/internal/testutils"
	"github.com/aretw0/depsnap/pkg/domain"
	"github.com/aretw0/depsnap/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tf = domain.NewTargetFramework("net8.0")

func TestValidateSnapshot(t *testing.T) {
	// Scenario A: Valid tree
	// lib -> child
	b := dsl.New(tf)
	b.Package("child").Resolved()
	childID := b.Package("child").MustDependency().ID
	b.Package("lib").TopLevel().Resolved().Children(childID)
	snap := testutils.Snapshot(t, b, "/p.csproj")

	assert.NoError(t, ValidateSnapshot(snap))
	assert.Empty(t, Unreachable(snap))

	// Scenario B: Broken link
	// lib -> ghost
	b = dsl.New(tf)
	b.Package("lib").TopLevel().Children(`net8.0\NuGetDependency\ghost`)
	snap = testutils.Snapshot(t, b, "/p.csproj")

	err := ValidateSnapshot(snap)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "Missing child"), err.Error())
}

func TestValidateSnapshot_SharedCaption(t *testing.T) {
	b := dsl.New(tf)
	b.Package("one").Caption("Lib").TopLevel()
	b.Package("two").Caption("Lib").TopLevel()
	b.Sdk("three").Caption("Lib").TopLevel()
	snap := testutils.Snapshot(t, b, "/p.csproj")

	err := ValidateSnapshot(snap)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "found 1 errors")
	assert.Contains(t, err.Error(), "Caption 'Lib' shared")
}

func TestUnreachable(t *testing.T) {
	b := dsl.New(tf)
	b.Package("loose")
	b.Package("shadow").TopLevel().Hidden().Children(`net8.0\NuGetDependency\under-shadow`)
	b.Package("under-shadow")
	snap := testutils.Snapshot(t, b, "/p.csproj")

	assert.Equal(t, []string{`net8.0\NuGetDependency\loose`}, Unreachable(snap))
}
