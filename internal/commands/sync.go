package commands

import (
	"context"
	"io"

	"github.com/NielsdaWheelz/conf2wiki/internal/config"
	"github.com/NielsdaWheelz/conf2wiki/internal/errors"
	"github.com/NielsdaWheelz/conf2wiki/internal/exec"
	"github.com/NielsdaWheelz/conf2wiki/internal/fs"
)

// SyncOpts holds options for the sync command.
type SyncOpts struct {
	// DryRun threads through to both phases.
	DryRun bool

	// ExportOnly stops after the export phase.
	ExportOnly bool

	// UploadOnly skips the export phase.
	UploadOnly bool

	// Verbose lowers the console log level to debug.
	Verbose bool
}

// Sync runs export followed by upload under a single run environment,
// so both phases share one run ID and one log file.
func Sync(ctx context.Context, cr exec.CommandRunner, fsys fs.FS, root string, opts SyncOpts, stdout, stderr io.Writer) error {
	if opts.ExportOnly && opts.UploadOnly {
		return errors.New(errors.EUsage, "--export-only and --upload-only are mutually exclusive")
	}

	cfg, err := config.Load(fsys, root)
	if err != nil {
		return err
	}

	env := newRunEnv(root, cfg, opts.Verbose, stderr)
	defer env.Close()

	if !opts.UploadOnly {
		eopts := ExportOpts{DryRun: opts.DryRun, Verbose: opts.Verbose}
		if err := exportPhase(ctx, cr, fsys, cfg, env, eopts, stdout); err != nil {
			return err
		}
	}

	if !opts.ExportOnly {
		uopts := UploadOpts{DryRun: opts.DryRun, Verbose: opts.Verbose}
		if err := uploadPhase(ctx, fsys, cfg, env, uopts, stdout); err != nil {
			return err
		}
	}

	return nil
}
