package cobra

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/NielsdaWheelz/conf2wiki/internal/commands"
	"github.com/NielsdaWheelz/conf2wiki/internal/errors"
	"github.com/NielsdaWheelz/conf2wiki/internal/fs"
)

func newUploadCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Upload exported Markdown files to Wiki.js",
		Long: `Upload exported Markdown files to Wiki.js.

Reads every .md file from the markdown directory, fetches the list of
existing wiki pages once, then creates or updates one page per file
under the configured base path. Uploads run in parallel with retries.

Notes:
  - requires an API token (CONF2MD_WIKIJS_API_TOKEN or config.txt)
  - a file that fails after all retries is reported, not fatal
  - use --dry-run to list the files that would be uploaded`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stdout := cmd.OutOrStdout()
			stderr := cmd.ErrOrStderr()

			cwd, err := os.Getwd()
			if err != nil {
				return errors.Wrap(errors.EInternal, "failed to get working directory", err)
			}

			fsys := fs.NewRealFS()
			ctx := context.Background()

			opts := commands.UploadOpts{
				DryRun:  dryRun,
				Verbose: globalOpts.Verbose,
			}

			return commands.Upload(ctx, fsys, cwd, opts, stdout, stderr)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "list files that would be uploaded without calling the wiki")

	return cmd
}
