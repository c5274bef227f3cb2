package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDependencyID(t *testing.T) {
	tfm := NewTargetFramework("tfm")

	tests := []struct {
		name         string
		tf           TargetFramework
		providerType string
		modelID      string
		want         string
		wantErr      bool
	}{
		{name: "plain", tf: tfm, providerType: ProviderTypePackage, modelID: "mydependency1", want: `tfm\NuGetDependency\mydependency1`},
		{name: "normalizes slashes", tf: tfm, providerType: ProviderTypeSdk, modelID: "/a/b/", want: `tfm\SdkDependency\a\b`},
		{name: "missing moniker", tf: TargetFramework{}, providerType: ProviderTypeSdk, modelID: "a", wantErr: true},
		{name: "missing provider", tf: tfm, providerType: "", modelID: "a", wantErr: true},
		{name: "missing model id", tf: tfm, providerType: ProviderTypeSdk, modelID: `\`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DependencyID(tt.tf, tt.providerType, tt.modelID)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseID(t *testing.T) {
	moniker, provider, model, err := ParseID(`net8.0\NuGetDependency\Contoso\Core`)
	require.NoError(t, err)
	assert.Equal(t, "net8.0", moniker)
	assert.Equal(t, ProviderTypePackage, provider)
	assert.Equal(t, `Contoso\Core`, model)

	_, _, _, err = ParseID("mydependency1id")
	assert.ErrorIs(t, err, ErrMalformedID)
}
