package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/depsnap/pkg/domain"
	"github.com/aretw0/depsnap/pkg/snapshot"
)

// GenerateMermaid produces a Mermaid flowchart of the snapshot's dependency tree.
// It applies semantic styling:
// - SDK: [[Subroutine]]
// - Project: ([Stadium])
// - Default: [Rectangle]
// Top-level nodes are styled "top", hidden ones "hidden" and unresolved ones "unresolved".
func GenerateMermaid(s *snapshot.Snapshot) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	world := s.World()
	for _, dep := range world {
		safeID := sanitizeMermaidID(dep.ID)

		opener, closer := "[", "]"
		switch dep.ProviderType {
		case domain.ProviderTypeSdk:
			opener, closer = "[[", "]]"
		case domain.ProviderTypeProject:
			opener, closer = "([", "])"
		}

		label := strings.ReplaceAll(dep.Caption, "\"", "'")
		if dep.Version != "" {
			label = fmt.Sprintf("%s <br/> %s", label, dep.Version)
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, label, closer))

		for _, child := range dep.DependencyIDs {
			arrow := "-->"
			if dep.Hidden {
				arrow = "-.->"
			}
			sb.WriteString(fmt.Sprintf("    %s %s %s\n", safeID, arrow, sanitizeMermaidID(child)))
		}
	}

	sb.WriteString("\n    %% Node States\n")
	// Force black text (color:#000) for high-contrast regardless of theme
	sb.WriteString("    classDef top fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
	sb.WriteString("    classDef hidden fill:#eeeeee,stroke:#9e9e9e,stroke-dasharray: 4 4,color:#000;\n")
	sb.WriteString("    classDef unresolved fill:#ffeb3b,stroke:#fbc02d,color:#000;\n")
	for _, dep := range world {
		safeID := sanitizeMermaidID(dep.ID)
		switch {
		case dep.Hidden:
			sb.WriteString(fmt.Sprintf("    class %s hidden;\n", safeID))
		case s.IsTopLevel(dep.ID):
			sb.WriteString(fmt.Sprintf("    class %s top;\n", safeID))
		}
		if !dep.Resolved && !dep.Hidden {
			sb.WriteString(fmt.Sprintf("    class %s unresolved;\n", safeID))
		}
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
