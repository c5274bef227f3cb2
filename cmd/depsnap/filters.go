package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/depsnap/internal/cli"
	"github.com/aretw0/depsnap/internal/presentation/tui"
	"github.com/aretw0/depsnap/pkg/filters"
	"github.com/aretw0/depsnap/pkg/registry"
	"github.com/spf13/cobra"
)

func newFiltersCmd(opts *cli.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "filters",
		Short: "Describe the filter chain",
		Long:  `Prints the configured filters in execution order. Markdown is rendered on interactive terminals.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			chain, err := registry.Default().Build(opts.Filters...)
			if err != nil {
				return err
			}

			var sb strings.Builder
			sb.WriteString("# Filter chain\n\n")
			for i, f := range chain {
				fmt.Fprintf(&sb, "## %d. %s\n\n", i+1, f.Name())
				if desc := filters.Describe(f); desc != "" {
					sb.WriteString(desc)
					sb.WriteString("\n\n")
				}
			}

			doc := sb.String()
			if f, ok := cmd.OutOrStdout().(*os.File); ok && tui.IsInteractive(f) {
				rendered, err := tui.NewRenderer()(doc)
				if err == nil {
					doc = rendered
				}
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), doc)
			return err
		},
	}
}
