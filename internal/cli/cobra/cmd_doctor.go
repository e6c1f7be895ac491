package cobra

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/NielsdaWheelz/conf2wiki/internal/commands"
	"github.com/NielsdaWheelz/conf2wiki/internal/errors"
	"github.com/NielsdaWheelz/conf2wiki/internal/fs"
)

func newDoctorCmd() *cobra.Command {
	var checkWiki bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the local setup without changing anything",
		Long: `Check the local setup without changing anything.

Verifies the configuration, the Splunk binary, the template, the
export directory, and the API token. With --check-wiki it also probes
the Wiki.js endpoint with a read-only page listing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()

			cwd, err := os.Getwd()
			if err != nil {
				return errors.Wrap(errors.EInternal, "failed to get working directory", err)
			}

			fsys := fs.NewRealFS()
			ctx := context.Background()

			opts := commands.DoctorOpts{
				CheckWiki: checkWiki,
			}

			return commands.Doctor(ctx, fsys, cwd, opts, stdout)
		},
	}

	cmd.Flags().BoolVar(&checkWiki, "check-wiki", false, "probe the Wiki.js endpoint with a read-only query")

	return cmd
}
