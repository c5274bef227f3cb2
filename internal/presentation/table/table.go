package table

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/depsnap/pkg/domain"
	"github.com/aretw0/depsnap/pkg/snapshot"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Options tunes Render.
type Options struct {
	// Color enables ANSI colors in the state column and headers.
	Color bool
	// All also lists world nodes that no top-level node leads to.
	All bool
}

// Render writes the dependency tree of s as a table: each top-level node
// followed by its children, indented by depth.
func Render(w io.Writer, s *snapshot.Snapshot, opts Options) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.Style().Format.Footer = text.FormatDefault
	t.AppendHeader(table.Row{
		header("NODE", opts),
		header("PROVIDER", opts),
		header("VERSION", opts),
		header("STATE", opts),
		header("FLAGS", opts),
	})

	visited := make(map[string]bool)
	var walk func(dep domain.Dependency, depth int)
	walk = func(dep domain.Dependency, depth int) {
		t.AppendRow(row(dep, depth, opts))
		if visited[dep.ID] {
			return
		}
		visited[dep.ID] = true
		for _, childID := range dep.DependencyIDs {
			child, ok := s.Get(childID)
			if !ok {
				child = domain.Dependency{ID: childID, Caption: childID}
			}
			walk(child, depth+1)
		}
	}
	for _, dep := range s.TopLevel() {
		walk(dep, 0)
	}

	if opts.All {
		for _, dep := range s.World() {
			if !visited[dep.ID] {
				visited[dep.ID] = true
				t.AppendRow(row(dep, 0, opts))
			}
		}
	}

	t.AppendFooter(table.Row{
		fmt.Sprintf("%s %s", s.ProjectPath(), s.TargetFramework()),
		"", "",
		fmt.Sprintf("%d top-level", len(s.TopLevel())),
		fmt.Sprintf("%d in world", s.Len()),
	})
	t.Render()
}

func row(dep domain.Dependency, depth int, opts Options) table.Row {
	caption := dep.Caption
	if caption == "" {
		caption = dep.Name
	}
	if depth > 0 {
		caption = strings.Repeat("  ", depth-1) + "└ " + caption
	}
	return table.Row{caption, dep.ProviderType, dep.Version, state(dep, opts), dep.Flags.String()}
}

func state(dep domain.Dependency, opts Options) string {
	var label string
	var color text.Color
	switch {
	case dep.ProviderType == "":
		label, color = "missing", text.FgRed
	case dep.Hidden:
		label, color = "hidden", text.FgHiBlack
	case dep.Resolved:
		label, color = "resolved", text.FgGreen
	default:
		label, color = "unresolved", text.FgYellow
	}
	if !opts.Color {
		return label
	}
	return color.Sprint(label)
}

func header(label string, opts Options) string {
	if !opts.Color {
		return label
	}
	return text.FgHiCyan.Sprint(label)
}
