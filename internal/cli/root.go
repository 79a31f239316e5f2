// Package cli provides the Cobra command structure for codelint.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/codelint/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root codelint command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "codelint",
		Short: "A fast, self-fixing linter for script sources",
		Long: `codelint analyzes JavaScript and TypeScript sources through a staged
parse, semantic, and lint pipeline. Files are checked in parallel and
failures in one file never abort the rest of the run. With --fix,
codelint rewrites files in place using atomic writes and reports the
issues it found at their original positions.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}
