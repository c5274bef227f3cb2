package main

import (
	"fmt"

	"github.com/aretw0/depsnap/internal/cli"
	"github.com/aretw0/depsnap/pkg/domain"
	"github.com/spf13/cobra"
)

func newSnapshotCmd(opts *cli.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Manage stored snapshots",
		Long:  `List, show, and remove the snapshots kept in --state-dir or Redis.`,
	}
	cmd.AddCommand(newSnapshotLsCmd(opts), newSnapshotShowCmd(opts), newSnapshotRmCmd(opts))
	return cmd
}

func newSnapshotLsCmd(opts *cli.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List stored snapshots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := openEngine(opts)
			if err != nil {
				return err
			}
			defer eng.Close()

			keys, err := eng.Keys(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to list snapshots: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(keys) == 0 {
				fmt.Fprintln(out, "No snapshots found.")
				return nil
			}
			for _, k := range keys {
				fmt.Fprintln(out, "- "+k)
			}
			return nil
		},
	}
}

func newSnapshotShowCmd(opts *cli.Options) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "show <project> <target-framework>",
		Short: "Print a stored snapshot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := openEngine(opts)
			if err != nil {
				return err
			}
			defer eng.Close()

			snap, err := eng.Snapshot(cmd.Context(), args[0], domain.NewTargetFramework(args[1]))
			if err != nil {
				return fmt.Errorf("failed to load snapshot %s|%s: %w", args[0], args[1], err)
			}
			return cli.PrintSnapshot(cmd.OutOrStdout(), snap, opts.Output, tableOptions(cmd, all))
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Also list world nodes no top-level node leads to (table output)")
	return cmd
}

func newSnapshotRmCmd(opts *cli.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <project> <target-framework>",
		Short: "Remove a stored snapshot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := openEngine(opts)
			if err != nil {
				return err
			}
			defer eng.Close()

			if err := eng.Forget(cmd.Context(), args[0], domain.NewTargetFramework(args[1])); err != nil {
				return fmt.Errorf("failed to remove snapshot %s|%s: %w", args[0], args[1], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed snapshot '%s|%s'\n", args[0], args[1])
			return nil
		},
	}
}
