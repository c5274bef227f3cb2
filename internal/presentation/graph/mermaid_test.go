package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/depsnap/internal/presentation/graph"
	"github.com/aretw0/depsnap/internal/testutils"
	"github.com/aretw0/depsnap/pkg/domain"
	"github.com/aretw0/depsnap/pkg/dsl"
)

func TestGenerateMermaid(t *testing.T) {
	tf := domain.NewTargetFramework("net8.0")
	b := dsl.New(tf)
	b.Package("Contoso.Runtime").Version("8.0.1").Resolved()
	runtimeID := b.Package("Contoso.Runtime").MustDependency().ID
	b.Sdk("Contoso.Sdk").TopLevel().Resolved().Children(runtimeID)
	b.Package("Contoso.Sdk").TopLevel().Resolved().Hidden().Children(runtimeID)
	b.Add(domain.ProviderTypeProject, "Lib").TopLevel()
	snap := testutils.Snapshot(t, b, "/src/app.csproj")

	got := graph.GenerateMermaid(snap)

	tests := []struct {
		name     string
		contains []string
	}{
		{
			name: "Node Shapes",
			contains: []string{
				`net8_0_SdkDependency_Contoso_Sdk[["Contoso.Sdk"]]`,
				`net8_0_NuGetDependency_Contoso_Runtime["Contoso.Runtime <br/> 8.0.1"]`,
				`net8_0_ProjectDependency_Lib(["Lib"])`,
			},
		},
		{
			name: "Edges",
			contains: []string{
				"net8_0_SdkDependency_Contoso_Sdk --> net8_0_NuGetDependency_Contoso_Runtime",
				"net8_0_NuGetDependency_Contoso_Sdk -.-> net8_0_NuGetDependency_Contoso_Runtime",
			},
		},
		{
			name: "States",
			contains: []string{
				"class net8_0_SdkDependency_Contoso_Sdk top;",
				"class net8_0_NuGetDependency_Contoso_Sdk hidden;",
				"class net8_0_ProjectDependency_Lib unresolved;",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, s := range tt.contains {
				if !strings.Contains(got, s) {
					t.Errorf("Expected output to contain %q, but it didn't.\nOutput:\n%s", s, got)
				}
			}
		})
	}
}
