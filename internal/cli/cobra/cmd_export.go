package cobra

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/NielsdaWheelz/conf2wiki/internal/commands"
	"github.com/NielsdaWheelz/conf2wiki/internal/errors"
	"github.com/NielsdaWheelz/conf2wiki/internal/exec"
	"github.com/NielsdaWheelz/conf2wiki/internal/fs"
)

func newExportCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export saved searches to Markdown files",
		Long: `Export Splunk saved searches to Markdown files.

Runs splunk btool to dump the merged savedsearches configuration,
renders each stanza through the configured template, and writes one
Markdown file per saved search into the export directory.

Notes:
  - requires a readable Splunk installation (SPLUNK_BIN_DIR)
  - a search that fails to render is skipped, not fatal
  - use --dry-run to list the files that would be written`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			stderr := cmd.ErrOrStderr()

			cwd, err := os.Getwd()
			if err != nil {
				return errors.Wrap(errors.EInternal, "failed to get working directory", err)
			}

			cr := exec.NewRealRunner()
			fsys := fs.NewRealFS()
			ctx := context.Background()

			opts := commands.ExportOpts{
				DryRun:  dryRun,
				Verbose: globalOpts.Verbose,
			}

			return commands.Export(ctx, cr, fsys, cwd, opts, stdout, stderr)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "list files that would be written without writing them")

	return cmd
}
