package cli

import (
	"os"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
}

// NewRootCmd builds the bookcook command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "bookcook",
		Short: "Cookbook and in-n-out-books REST services",
		Long: `bookcook runs two small REST services side by side:

  cookbook         recipes, registration and password reset
  in-n-out-books   books, login and security question checks

Both share one set of collections, kept in memory or in a sqlite database.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to a YAML config file")

	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newHashPasswordCmd(opts))
	return root
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
