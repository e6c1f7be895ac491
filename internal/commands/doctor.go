package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/NielsdaWheelz/conf2wiki/internal/config"
	"github.com/NielsdaWheelz/conf2wiki/internal/errors"
	"github.com/NielsdaWheelz/conf2wiki/internal/fs"
	"github.com/NielsdaWheelz/conf2wiki/internal/logging"
	"github.com/NielsdaWheelz/conf2wiki/internal/render"
	"github.com/NielsdaWheelz/conf2wiki/internal/wiki"
)

// DoctorOpts holds options for the doctor command.
type DoctorOpts struct {
	// CheckWiki also probes the Wiki.js endpoint with a list query.
	CheckWiki bool
}

type doctorCheck struct {
	name   string
	status string // "ok", "warn", "fail"
	detail string
}

// Doctor inspects the local setup without mutating anything: config,
// Splunk binary, template, export directory, API token, and optionally
// the Wiki.js endpoint.
func Doctor(ctx context.Context, fsys fs.FS, root string, opts DoctorOpts, stdout io.Writer) error {
	var checks []doctorCheck

	cfg, err := config.Load(fsys, root)
	if err != nil {
		checks = append(checks, doctorCheck{"config", "fail", err.Error()})
		printChecks(stdout, checks)
		return errors.New(errors.EInvalidConfig, "doctor found problems")
	}
	checks = append(checks, doctorCheck{"config", "ok", config.Path(root)})

	if _, err := fsys.Stat(cfg.SplunkExe()); err != nil {
		checks = append(checks, doctorCheck{"splunk binary", "fail", cfg.SplunkExe() + " not found"})
	} else {
		checks = append(checks, doctorCheck{"splunk binary", "ok", cfg.SplunkExe()})
	}

	if builder, err := render.NewBuilder(fsys, cfg.TemplatePath()); err != nil {
		checks = append(checks, doctorCheck{"template", "fail", err.Error()})
	} else {
		detail := fmt.Sprintf("%s (%d keys)", cfg.TemplatePath(), len(builder.Contract()))
		checks = append(checks, doctorCheck{"template", "ok", detail})
	}

	if _, err := fsys.Stat(cfg.ExportBase); err != nil {
		checks = append(checks, doctorCheck{"export dir", "warn", cfg.ExportBase + " missing, run conf2wiki export"})
	} else {
		checks = append(checks, doctorCheck{"export dir", "ok", cfg.ExportBase})
	}

	if cfg.APIToken == "" {
		checks = append(checks, doctorCheck{"api token", "warn", "not set, upload will fail"})
	} else {
		checks = append(checks, doctorCheck{"api token", "ok", "present"})
	}

	if opts.CheckWiki {
		checks = append(checks, checkWiki(ctx, cfg))
	}

	printChecks(stdout, checks)

	for _, c := range checks {
		if c.status == "fail" {
			return errors.New(errors.EInternal, "doctor found problems")
		}
	}
	return nil
}

func checkWiki(ctx context.Context, cfg config.Config) doctorCheck {
	if cfg.APIToken == "" {
		return doctorCheck{"wiki endpoint", "warn", "skipped, no token"}
	}
	client, err := wiki.NewClient(cfg.WikiURL, cfg.APIToken, logging.Nop())
	if err != nil {
		return doctorCheck{"wiki endpoint", "fail", err.Error()}
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	pages, err := client.ListPages(ctx)
	if err != nil {
		return doctorCheck{"wiki endpoint", "fail", err.Error()}
	}
	return doctorCheck{"wiki endpoint", "ok", fmt.Sprintf("%s (%d pages)", cfg.WikiURL, len(pages))}
}

func printChecks(w io.Writer, checks []doctorCheck) {
	marks := map[string]string{"ok": "✓", "warn": "!", "fail": "✗"}
	for _, c := range checks {
		line := fmt.Sprintf("%s %s", marks[c.status], c.name)
		if c.detail != "" {
			line += ": " + c.detail
		}
		fmt.Fprintln(w, line)
	}
	var failed int
	for _, c := range checks {
		if c.status == "fail" {
			failed++
		}
	}
	if failed > 0 {
		fmt.Fprintf(w, "\n%d check(s) failed\n", failed)
	} else {
		fmt.Fprintln(w, "\nAll checks passed")
	}
}
