package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/NielsdaWheelz/conf2wiki/internal/config"
	"github.com/NielsdaWheelz/conf2wiki/internal/events"
	"github.com/NielsdaWheelz/conf2wiki/internal/fs"
	"github.com/NielsdaWheelz/conf2wiki/internal/retry"
	"github.com/NielsdaWheelz/conf2wiki/internal/syncer"
	"github.com/NielsdaWheelz/conf2wiki/internal/wiki"
)

// UploadOpts holds options for the upload command.
type UploadOpts struct {
	// DryRun lists files without any remote call.
	DryRun bool

	// Verbose lowers the console log level to debug.
	Verbose bool
}

// Upload runs the upload phase: read exported documents, snapshot the
// remote index, reconcile under the bounded pool.
//
// The process exit is zero even when individual documents fail;
// only precondition failures (missing dir, missing token, index fetch)
// propagate as errors.
func Upload(ctx context.Context, fsys fs.FS, root string, opts UploadOpts, stdout, stderr io.Writer) error {
	cfg, err := config.Load(fsys, root)
	if err != nil {
		return err
	}

	env := newRunEnv(root, cfg, opts.Verbose, stderr)
	defer env.Close()

	return uploadPhase(ctx, fsys, cfg, env, opts, stdout)
}

func uploadPhase(ctx context.Context, fsys fs.FS, cfg config.Config, env *runEnv, opts UploadOpts, stdout io.Writer) error {
	docs, err := syncer.LoadDocuments(fsys, cfg.MarkdownDir)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		env.log.Warning("no markdown files found", "export_dir", cfg.MarkdownDir)
		return nil
	}
	env.log.Info("found markdown files to process", "count", len(docs))

	if opts.DryRun {
		fmt.Fprintln(stdout, "[DRY RUN] Would upload the following files:")
		for _, doc := range docs {
			fmt.Fprintf(stdout, "  - %s\n", doc.File)
		}
		return nil
	}

	client, err := wiki.NewClient(cfg.WikiURL, cfg.APIToken, env.log)
	if err != nil {
		return err
	}

	_ = env.events.Append("upload_started", events.UploadStartedData(len(docs), false))

	policy := retry.Policy{Attempts: cfg.MaxRetries, BaseDelay: cfg.RetryDelay}
	engine := syncer.New(client, cfg.BasePath, cfg.Locale, policy, env.log, env.events)

	report, err := engine.Sync(ctx, docs, cfg.MaxParallelUploads)
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, "\nResults:")
	for _, res := range report.Results {
		switch res.Outcome {
		case syncer.OutcomeFailed:
			fmt.Fprintf(stdout, "  %s: error: %s\n", res.File, res.Reason)
		default:
			fmt.Fprintf(stdout, "  %s: %s\n", res.File, res.Outcome)
		}
	}
	fmt.Fprintf(stdout, "Upload complete: %d created, %d updated, %d failed\n",
		report.Created, report.Updated, report.Failed)

	return nil
}
