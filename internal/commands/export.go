package commands

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sort"

	"github.com/NielsdaWheelz/conf2wiki/internal/btool"
	"github.com/NielsdaWheelz/conf2wiki/internal/config"
	"github.com/NielsdaWheelz/conf2wiki/internal/errors"
	"github.com/NielsdaWheelz/conf2wiki/internal/events"
	"github.com/NielsdaWheelz/conf2wiki/internal/exec"
	"github.com/NielsdaWheelz/conf2wiki/internal/fs"
	"github.com/NielsdaWheelz/conf2wiki/internal/render"
)

// ExportOpts holds options for the export command.
type ExportOpts struct {
	// DryRun lists what would be written without touching the disk.
	DryRun bool

	// Verbose lowers the console log level to debug.
	Verbose bool
}

// Export runs the export phase: btool dump, parse, render, write.
// Precondition failures (binary, template, btool, export dir) are
// fatal; a single record failing to render or write is recorded and
// skipped.
func Export(ctx context.Context, cr exec.CommandRunner, fsys fs.FS, root string, opts ExportOpts, stdout, stderr io.Writer) error {
	cfg, err := config.Load(fsys, root)
	if err != nil {
		return err
	}

	env := newRunEnv(root, cfg, opts.Verbose, stderr)
	defer env.Close()

	return exportPhase(ctx, cr, fsys, cfg, env, opts, stdout)
}

// exportPhase is shared with the sync command so both phases of a
// combined run use one runEnv.
func exportPhase(ctx context.Context, cr exec.CommandRunner, fsys fs.FS, cfg config.Config, env *runEnv, opts ExportOpts, stdout io.Writer) error {
	env.log.Info("starting saved searches export", "dry_run", opts.DryRun)
	_ = env.events.Append("export_started", events.ExportStartedData(opts.DryRun))

	// Template first: rendering is impossible without it.
	builder, err := render.NewBuilder(fsys, cfg.TemplatePath())
	if err != nil {
		return err
	}
	env.log.Debug("extracted template keys", "keys", fmt.Sprintf("%v", builder.Contract()))

	records, err := btool.Dump(ctx, cr, cfg.SplunkExe(), cfg.BtoolTimeout, env.log)
	if err != nil {
		return err
	}

	if !opts.DryRun {
		if err := fsys.MkdirAll(cfg.ExportBase, 0o755); err != nil {
			return errors.WrapWithDetails(
				errors.EExportDirFailed,
				"failed to create export directory",
				err,
				map[string]string{"export_dir": cfg.ExportBase},
			)
		}
	}

	names := make([]string, 0, len(records))
	for name := range records {
		names = append(names, name)
	}
	sort.Strings(names)

	var exported, filtered, failed int
	for _, name := range names {
		attrs := records[name]

		if cfg.FilterKey != "" && cfg.FilterValue != "" {
			if attrs[cfg.FilterKey] != cfg.FilterValue {
				filtered++
				env.log.Debug("filtered out", "name", name)
				continue
			}
		}

		doc, err := builder.Render(name, attrs)
		if err != nil {
			env.log.Error("failed to render", "name", name, "error", err.Error())
			failed++
			continue
		}

		filename := doc.Identifier + ".md"
		if opts.DryRun {
			fmt.Fprintf(stdout, "[DRY RUN] Would export: %s\n", filename)
			exported++
			continue
		}

		path := filepath.Join(cfg.ExportBase, filename)
		if err := fsys.WriteFile(path, []byte(doc.Body), 0o644); err != nil {
			env.log.Error("failed to export", "file", filename, "error", err.Error())
			failed++
			continue
		}
		env.log.Info("exported", "file", filename)
		exported++
	}

	_ = env.events.Append("export_finished", events.ExportFinishedData(exported, filtered, failed))

	if opts.DryRun {
		fmt.Fprintf(stdout, "[DRY RUN] Complete: would export %d searches, filtered %d\n", exported, filtered)
	} else {
		fmt.Fprintf(stdout, "Export complete: %d exported, %d filtered, %d failed\n", exported, filtered, failed)
	}

	// Per-record failures do not fail the process.
	return nil
}
