package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/depsnap/internal/cli"
	"github.com/aretw0/depsnap/internal/presentation/table"
	"github.com/aretw0/depsnap/internal/presentation/tui"
	"github.com/aretw0/depsnap/pkg/domain"
	"github.com/aretw0/depsnap/pkg/observability"
	"github.com/spf13/cobra"
)

// Execute builds the command tree and runs it.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &cli.Options{}

	rootCmd := &cobra.Command{
		Use:   "depsnap",
		Short: "depsnap reconciles project dependency snapshots",
		Long: `depsnap keeps an immutable snapshot of the dependency tree of each project and
target framework, and passes every change through a chain of filters that
reconcile SDKs with their backing packages and disambiguate duplicate captions.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.ValidateOutput()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flags.StringVar(&opts.LogFormat, "log-format", "text", "Log format (text, json)")
	flags.StringVarP(&opts.Output, "output", "o", cli.OutputTable, "Output format (table, yaml, json, mermaid)")
	flags.StringSliceVar(&opts.Filters, "filters", nil, "Filters to run, in order (default: every built-in filter)")
	flags.StringVar(&opts.StateDir, "state-dir", "", "Persist snapshots as files in this directory")
	flags.StringVar(&opts.RedisAddr, "redis-addr", "", "Persist snapshots in Redis at this address")
	flags.StringVar(&opts.RedisPrefix, "redis-prefix", "", "Key prefix for Redis (default \"depsnap:\")")
	flags.DurationVar(&opts.LockTTL, "lock-ttl", 0, "Distributed lock TTL when using Redis")

	rootCmd.AddCommand(
		newApplyCmd(opts),
		newValidateCmd(),
		newSnapshotCmd(opts),
		newFiltersCmd(opts),
		newServeCmd(opts),
		newMCPCmd(opts),
		newVersionCmd(),
	)
	return rootCmd
}

// openEngine builds the logger and engine described by the persistent flags.
// Extra hooks run after the audit log hooks.
func openEngine(opts *cli.Options, extra ...domain.LifecycleHooks) (*cli.Engine, *slog.Logger, error) {
	logger, err := opts.Logger()
	if err != nil {
		return nil, nil, err
	}
	hooks := observability.LogHooks(logger)
	for _, h := range extra {
		hooks = hooks.Merge(h)
	}
	eng, err := cli.CreateEngine(*opts, logger, hooks)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to init engine: %w", err)
	}
	return eng, logger, nil
}

// tableOptions enables colors only when writing to an interactive terminal.
func tableOptions(cmd *cobra.Command, all bool) table.Options {
	opts := table.Options{All: all}
	if f, ok := cmd.OutOrStdout().(*os.File); ok {
		opts.Color = tui.IsInteractive(f)
	}
	return opts
}
