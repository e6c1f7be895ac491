// Package commands implements conf2wiki CLI commands.
package commands

import (
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/NielsdaWheelz/conf2wiki/internal/config"
	"github.com/NielsdaWheelz/conf2wiki/internal/events"
	"github.com/NielsdaWheelz/conf2wiki/internal/logging"
)

// runEnv bundles the logging and event sinks shared by one run.
// Export and upload reuse the same env when invoked through sync.
type runEnv struct {
	runID  string
	log    logging.Logger
	events *events.Log
	sink   *logging.FileSink
}

// newRunEnv opens the run log file named by cfg.LogFilePattern and
// builds the tee logger. A sink open failure degrades to console-only
// logging; it never fails the run.
func newRunEnv(root string, cfg config.Config, verbose bool, stderr io.Writer) *runEnv {
	runID := events.NewRunID()

	logPath := strings.ReplaceAll(cfg.LogFilePattern, "{execution_time}", time.Now().Format("20060102_150405"))
	if !filepath.IsAbs(logPath) {
		logPath = filepath.Join(root, logPath)
	}

	env := &runEnv{runID: runID}

	sink, err := logging.OpenFileSink(logPath)
	if err != nil {
		env.log = logging.New(stderr, verbose)
		env.log.Warning("failed to open log file, logging to console only", "log", logPath, "error", err.Error())
	} else {
		env.sink = sink
		env.log = logging.Tee(stderr, sink, verbose)
	}

	env.events = events.NewLog(filepath.Join(root, "logs", "events.jsonl"), runID)
	return env
}

func (e *runEnv) Close() {
	if e.sink != nil {
		_ = e.sink.Close()
	}
}
