// Command conf2wiki exports Splunk saved searches to Wiki.js pages.
package main

import (
	"os"

	"github.com/NielsdaWheelz/conf2wiki/internal/cli/cobra"
	"github.com/NielsdaWheelz/conf2wiki/internal/errors"
)

func main() {
	err := cobra.Execute(os.Stdout, os.Stderr)
	if err != nil {
		// Use verbose mode if --verbose global flag was set
		opts := errors.PrintOptions{
			Verbose: cobra.GetGlobalOpts().Verbose,
		}
		errors.PrintWithOptions(os.Stderr, err, opts)
		os.Exit(errors.ExitCode(err))
	}
}
