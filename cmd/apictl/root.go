package main

import (
	"fmt"
	"os"

	"github.com/firetemplate/items-api/pkg/logger"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:   "apictl",
		Short: "Operator tooling for the items API",
		Long: `apictl reads the same environment (and .env file) as the API server.
It can mint development tokens, check connectivity to the configured
services and print the effective configuration.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := "warn"
			if verbose {
				level = "debug"
			}
			logger.Init(level)
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	root.AddCommand(newTokenCmd(), newStatusCmd(), newConfigCmd())
	return root
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
