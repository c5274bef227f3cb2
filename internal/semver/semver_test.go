package semver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		version    string
		constraint string
		want       bool
	}{
		{"1.2.0", "^1.2.0", true},
		{"1.9.9", "^1.2.0", true},
		{"2.0.0", "^1.2.0", false},
		{"8.0.1", ">=8.0.0 <9.0.0", true},
	}
	for _, tt := range tests {
		t.Run(tt.version+" "+tt.constraint, func(t *testing.T) {
			got, err := Check(tt.version, tt.constraint)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheck_Errors(t *testing.T) {
	_, err := Check("[1.0,)", "^1.0.0")
	assert.ErrorContains(t, err, "parse version")

	_, err = Check("1.0.0", "not a constraint")
	assert.ErrorContains(t, err, "parse constraint")
}

func TestVersion(t *testing.T) {
	v := MustParseVersion("1.0.0-preview.3")
	assert.True(t, v.Prerelease())
	assert.Equal(t, "1.0.0-preview.3", v.String())
	assert.Equal(t, "", Version{}.String())

	assert.Equal(t, -1, Compare(v, MustParseVersion("1.0.0")))
	assert.Equal(t, 1, Compare(v, Version{}))
	assert.Equal(t, 0, Compare(Version{}, Version{}))
	assert.Panics(t, func() { MustParseVersion("x") })
}
