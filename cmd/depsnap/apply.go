package main

import (
	"fmt"

	"github.com/aretw0/depsnap/internal/cli"
	"github.com/aretw0/depsnap/internal/scenario"
	"github.com/aretw0/depsnap/internal/validator"
	"github.com/spf13/cobra"
)

func newApplyCmd(opts *cli.Options) *cobra.Command {
	var (
		steps bool
		all   bool
	)

	cmd := &cobra.Command{
		Use:   "apply <scenario.yaml>",
		Short: "Run a scenario through the filter chain",
		Long: `Applies each step of a scenario file to the snapshot of its project and target
framework, checks the step expectations, and prints the resulting snapshot.
Snapshots outlive the command when --state-dir or --redis-addr is set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := scenario.Load(args[0])
			if err != nil {
				return err
			}

			eng, logger, err := openEngine(opts)
			if err != nil {
				return err
			}
			defer eng.Close()

			results, err := scenario.Run(cmd.Context(), eng, sc)
			if err != nil {
				return err
			}

			out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
			tableOpts := tableOptions(cmd, all)
			failed := 0
			for i, r := range results {
				last := i == len(results)-1
				if steps || last {
					fmt.Fprintf(errOut, "== %s\n", r.Name)
					if err := cli.PrintSnapshot(out, r.Snapshot, opts.Output, tableOpts); err != nil {
						return err
					}
				}
				if !r.Passed() {
					failed++
					for _, f := range r.Failures {
						fmt.Fprintf(errOut, "✗ %s: %s\n", r.Name, f)
					}
				}
			}

			if len(results) > 0 {
				final := results[len(results)-1].Snapshot
				if err := validator.ValidateSnapshot(final); err != nil {
					logger.Warn("Snapshot is inconsistent", "project", sc.Project, "error", err)
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d steps failed their expectations", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&steps, "steps", false, "Print the snapshot after every step, not only the last")
	cmd.Flags().BoolVar(&all, "all", false, "Also list world nodes no top-level node leads to (table output)")
	return cmd
}
