package main

import (
	"log"
	"os"

	"github.com/aretw0/depsnap/internal/cli"
	"github.com/aretw0/depsnap/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

func newMCPCmd(opts *cli.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run the Model Context Protocol (MCP) server",
		Long: `Starts the engine as an MCP server over standard input and output.
AI agents can then apply changes and inspect snapshots as tools.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, logger, err := openEngine(opts)
			if err != nil {
				return err
			}
			defer eng.Close()

			// Ensure logs don't corrupt JSON-RPC on Stdout
			log.SetOutput(os.Stderr)
			logger.Info("Starting depsnap MCP server (stdio)", "filters", eng.Filters())
			return mcp.NewServer(eng.Engine).ServeStdio()
		},
	}
}
