package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/depsnap/internal/presentation/graph"
	"github.com/aretw0/depsnap/internal/presentation/table"
	"github.com/aretw0/depsnap/pkg/snapshot"
	"gopkg.in/yaml.v3"
)

// PrintSnapshot writes s to w in the given output format.
func PrintSnapshot(w io.Writer, s *snapshot.Snapshot, format string, tableOpts table.Options) error {
	switch format {
	case OutputTable, "":
		table.Render(w, s, tableOpts)
		return nil
	case OutputMermaid:
		_, err := fmt.Fprintln(w, graph.GenerateMermaid(s))
		return err
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s.View())
	case OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s.View()); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}
