package validator

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/depsnap/pkg/snapshot"
)

// ValidateSnapshot checks for broken child links and for top-level nodes of one
// provider sharing a caption.
func ValidateSnapshot(s *snapshot.Snapshot) error {
	var errors []string

	for _, dep := range s.World() {
		for _, child := range dep.DependencyIDs {
			if _, ok := s.Get(child); !ok {
				errors = append(errors, fmt.Sprintf("Missing child '%s' of '%s'", child, dep.ID))
			}
		}
	}

	captions := make(map[string]string)
	for _, dep := range s.TopLevel() {
		key := dep.ProviderType + "\x00" + dep.Caption
		if first, ok := captions[key]; ok {
			errors = append(errors, fmt.Sprintf("Caption '%s' shared by '%s' and '%s'", dep.Caption, first, dep.ID))
			continue
		}
		captions[key] = dep.ID
	}

	if len(errors) > 0 {
		return fmt.Errorf("found %d errors:\n- %s", len(errors), strings.Join(errors, "\n- "))
	}

	return nil
}

// Unreachable returns the ids of world nodes that no top-level node leads to.
// Hidden nodes count as roots since another node stands in for them.
func Unreachable(s *snapshot.Snapshot) []string {
	visited := make(map[string]bool)
	var queue []string
	for _, dep := range s.World() {
		if s.IsTopLevel(dep.ID) || (dep.TopLevel && dep.Hidden) {
			queue = append(queue, dep.ID)
		}
	}

	for len(queue) > 0 {
		currentID := queue[0]
		queue = queue[1:]

		if visited[currentID] {
			continue
		}
		visited[currentID] = true

		dep, ok := s.Get(currentID)
		if !ok {
			continue // Reported by ValidateSnapshot
		}
		for _, child := range dep.DependencyIDs {
			if !visited[child] {
				queue = append(queue, child)
			}
		}
	}

	var orphans []string
	for _, dep := range s.World() {
		if !visited[dep.ID] {
			orphans = append(orphans, dep.ID)
		}
	}
	slices.Sort(orphans)
	return orphans
}
