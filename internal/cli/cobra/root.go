// Package cobra provides the Cobra-based CLI command tree for conf2wiki.
package cobra

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/NielsdaWheelz/conf2wiki/internal/version"
)

// GlobalOpts holds global options parsed before subcommand dispatch.
type GlobalOpts struct {
	Verbose bool
}

// globalOpts stores the parsed global options for access by subcommands.
var globalOpts GlobalOpts

// GetGlobalOpts returns the parsed global options.
func GetGlobalOpts() GlobalOpts {
	return globalOpts
}

// NewRootCmd creates the root cobra command for conf2wiki.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "conf2wiki",
		Short: "Export Splunk saved searches to Wiki.js pages",
		Long: `conf2wiki - export Splunk saved searches to Wiki.js pages

Conf2wiki reads saved search definitions through Splunk btool, renders
each one into a Markdown document from a template, and publishes the
documents to a Wiki.js instance over its GraphQL API. Pages are created
or updated in place so repeated runs converge on the same wiki state.`,
		Version:       version.FullVersion(),
		SilenceErrors: true, // We handle error printing in main.go
		SilenceUsage:  true, // We handle usage printing manually
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVar(&globalOpts.Verbose, "verbose", false, "show debug logging and detailed error context")

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// Add all subcommands
	rootCmd.AddCommand(
		newExportCmd(),
		newUploadCmd(),
		newSyncCmd(),
		newFieldsCmd(),
		newDoctorCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

// Execute runs the root command with the given output writers.
// This is the main entry point from main.go.
func Execute(stdout, stderr io.Writer) error {
	rootCmd := NewRootCmd()
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return rootCmd.Execute()
}
