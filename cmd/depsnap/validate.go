package main

import (
	"errors"
	"fmt"

	"github.com/aretw0/depsnap/internal/scenario"
	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <scenario.yaml>...",
		Short: "Check scenario files without running them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			invalid := 0
			for _, path := range args {
				if _, err := scenario.Load(path); err != nil {
					invalid++
					fmt.Fprintf(out, "✗ %s\n", path)
					if issues := scenario.ValidationErrors(err); len(issues) > 0 {
						for _, issue := range issues {
							fmt.Fprintf(out, "  - %v\n", issue)
						}
					} else {
						fmt.Fprintf(out, "  - %v\n", err)
					}
					continue
				}
				fmt.Fprintf(out, "✓ %s\n", path)
			}
			if invalid > 0 {
				return errors.New("validation failed")
			}
			return nil
		},
	}
}
