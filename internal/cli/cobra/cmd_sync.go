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

func newSyncCmd() *cobra.Command {
	var dryRun bool
	var exportOnly bool
	var uploadOnly bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Export saved searches and upload them to Wiki.js",
		Long: `Export saved searches and upload them to Wiki.js in one run.

Runs the export phase followed by the upload phase under a single run
log, so both phases share one run ID.

Notes:
  - --export-only and --upload-only are mutually exclusive
  - --dry-run applies to both phases`,
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

			opts := commands.SyncOpts{
				DryRun:     dryRun,
				ExportOnly: exportOnly,
				UploadOnly: uploadOnly,
				Verbose:    globalOpts.Verbose,
			}

			return commands.Sync(ctx, cr, fsys, cwd, opts, stdout, stderr)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be done without writing or uploading")
	cmd.Flags().BoolVar(&exportOnly, "export-only", false, "run only the export phase")
	cmd.Flags().BoolVar(&uploadOnly, "upload-only", false, "run only the upload phase")

	return cmd
}
