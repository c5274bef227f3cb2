package domain

import (
	"fmt"
	"strings"
)

// Provider type identifiers. They are part of every dependency Id and are used to
// pair nodes reported by different providers.
const (
	ProviderTypePackage  = "NuGetDependency"
	ProviderTypeSdk      = "SdkDependency"
	ProviderTypeProject  = "ProjectDependency"
	ProviderTypeAssembly = "AssemblyDependency"
	ProviderTypeAnalyzer = "AnalyzerDependency"
)

const idSeparator = `\`

// DependencyID builds the Id of a dependency as "{moniker}\{providerType}\{modelID}".
// Forward slashes in modelID are normalized to backslashes and surrounding separators
// are trimmed, so "a/b/" and `a\b` produce the same Id.
func DependencyID(tf TargetFramework, providerType, modelID string) (string, error) {
	if tf.IsZero() {
		return "", fmt.Errorf("%w: target framework moniker is empty", ErrMalformedID)
	}
	if providerType == "" {
		return "", fmt.Errorf("%w: provider type is empty", ErrMalformedID)
	}
	normalized := normalizeModelID(modelID)
	if normalized == "" {
		return "", fmt.Errorf("%w: model id %q is empty", ErrMalformedID, modelID)
	}
	return tf.Moniker + idSeparator + providerType + idSeparator + normalized, nil
}

// ParseID splits an Id into moniker, provider type and model id.
// The model id may itself contain separators.
func ParseID(id string) (moniker, providerType, modelID string, err error) {
	parts := strings.SplitN(id, idSeparator, 3)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return "", "", "", fmt.Errorf("%w: %q", ErrMalformedID, id)
	}
	return parts[0], parts[1], parts[2], nil
}

func normalizeModelID(modelID string) string {
	return strings.Trim(strings.ReplaceAll(strings.TrimSpace(modelID), "/", idSeparator), idSeparator)
}
