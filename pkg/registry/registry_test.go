package registry

import (
	"testing"

	"github.com/aretw0/depsnap/pkg/filters"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type namedFilter struct {
	filters.Base
	name string
}

func (f namedFilter) Name() string { return f.name }

func TestDefault(t *testing.T) {
	r := Default()
	assert.Equal(t, []string{filters.SdkAndPackagesName, filters.DuplicatedDependenciesName}, r.Names())

	chain, err := r.Build()
	require.NoError(t, err)
	require.Len(t, chain, 2)
	assert.Equal(t, filters.SdkAndPackagesName, chain[0].Name())
}

func TestRegistry_BuildSubsetInOrder(t *testing.T) {
	r := Default()
	chain, err := r.Build(filters.DuplicatedDependenciesName, filters.SdkAndPackagesName)
	require.NoError(t, err)
	assert.Equal(t, filters.DuplicatedDependenciesName, chain[0].Name())
	assert.Equal(t, filters.SdkAndPackagesName, chain[1].Name())

	_, err = r.Build("missing")
	assert.ErrorContains(t, err, "filter not found: missing")
}

func TestRegistry_RegisterOverwriteKeepsPosition(t *testing.T) {
	r := NewRegistry()
	r.Register("a", func() filters.Filter { return namedFilter{name: "a"} })
	r.Register("b", func() filters.Filter { return namedFilter{name: "b"} })
	r.Register("a", func() filters.Filter { return namedFilter{name: "a2"} })

	assert.Equal(t, []string{"a", "b"}, r.Names())
	chain, err := r.Build("a")
	require.NoError(t, err)
	assert.Equal(t, "a2", chain[0].Name())
}
