package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/depsnap"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of depsnap",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "depsnap version %s\n", strings.TrimSpace(depsnap.Version))
		},
	}
}
