package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestFlags_SetOperations(t *testing.T) {
	base := SdkSubTreeNodeFlags.Union(UnresolvedFlags)

	resolved := base.Union(ResolvedFlags).Except(UnresolvedFlags)
	assert.True(t, resolved.Contains(ResolvedFlag))
	assert.False(t, resolved.Contains(UnresolvedFlag))
	assert.True(t, resolved.Contains(SdkSubTreeNodeFlags))

	// idempotent and order independent
	assert.Equal(t, resolved, resolved.Union(ResolvedFlags).Except(UnresolvedFlags))
	assert.Equal(t, base.Except(UnresolvedFlags).Union(ResolvedFlags), resolved)
}

func TestFlags_Classification(t *testing.T) {
	assert.True(t, SdkSubTreeNodeFlags.IsSdk())
	assert.False(t, SdkSubTreeNodeFlags.IsPackage())
	assert.True(t, PackageNodeFlags.IsPackage())
	assert.False(t, PackageNodeFlags.IsSdk())
	assert.True(t, PackageNodeFlags.Intersects(SdkSubTreeNodeFlags), "both carry DependencyFlag")
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		want    Flags
		wantErr bool
	}{
		{name: "empty", input: nil, want: 0},
		{name: "single", input: []string{"Resolved"}, want: ResolvedFlag},
		{name: "list", input: []string{"PackageNode", "Dependency"}, want: PackageNodeFlag | DependencyFlag},
		{name: "pipe separated", input: []string{"SdkSubTreeNode|Resolved"}, want: SdkSubTreeNodeFlag | ResolvedFlag},
		{name: "case insensitive", input: []string{"unresolved"}, want: UnresolvedFlag},
		{name: "unknown", input: []string{"Bogus"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFlags(tt.input...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFlags_TextEncoding(t *testing.T) {
	flags := PackageNodeFlags.Union(ResolvedFlags)
	assert.Equal(t, "Dependency|Resolved|PackageNode|SupportsHierarchy|SupportsRemove", flags.String())

	out, err := yaml.Marshal(struct {
		Flags Flags `yaml:"flags"`
	}{flags})
	require.NoError(t, err)

	var decoded struct {
		Flags Flags `yaml:"flags"`
	}
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	assert.Equal(t, flags, decoded.Flags)

	var fromJSON struct {
		Flags Flags `json:"flags"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"flags":"SdkSubTreeNode,Unresolved"}`), &fromJSON))
	assert.Equal(t, SdkSubTreeNodeFlag|UnresolvedFlag, fromJSON.Flags)
}
