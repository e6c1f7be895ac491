package btool

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/NielsdaWheelz/conf2wiki/internal/errors"
	"github.com/NielsdaWheelz/conf2wiki/internal/exec"
	"github.com/NielsdaWheelz/conf2wiki/internal/logging"
)

// Dump runs `splunk btool savedsearches list --debug` and parses the
// output into Records.
//
// A missing binary, non-zero exit, or timeout is a fatal precondition:
// partial or empty output is never parsed as if valid.
func Dump(ctx context.Context, cr exec.CommandRunner, splunkExe string, timeout time.Duration, log logging.Logger) (Records, error) {
	if info, err := os.Stat(splunkExe); err != nil || info.IsDir() {
		return nil, errors.NewWithDetails(
			errors.ESplunkBinNotFound,
			fmt.Sprintf("splunk binary not found at %s", splunkExe),
			map[string]string{"binary": splunkExe},
		)
	}

	args := []string{"btool", "savedsearches", "list", "--debug"}
	log.Info("executing btool", "binary", splunkExe, "timeout", timeout.String())

	result, err := cr.Run(ctx, splunkExe, args, exec.RunOpts{Timeout: timeout})
	if result.TimedOut {
		return nil, errors.NewWithDetails(
			errors.EBtoolTimeout,
			fmt.Sprintf("btool timed out after %s", timeout),
			map[string]string{"binary": splunkExe, "timeout": timeout.String()},
		)
	}
	if err != nil {
		return nil, errors.WrapWithDetails(
			errors.EBtoolFailed,
			"failed to execute btool",
			err,
			map[string]string{"binary": splunkExe},
		)
	}
	if result.ExitCode != 0 {
		return nil, errors.NewWithDetails(
			errors.EBtoolFailed,
			fmt.Sprintf("btool failed with exit code %d", result.ExitCode),
			map[string]string{
				"binary":    splunkExe,
				"exit_code": fmt.Sprintf("%d", result.ExitCode),
				"stderr":    result.Stderr,
			},
		)
	}

	records := Parse(result.Stdout)
	log.Info("parsed saved searches", "count", len(records))
	return records, nil
}
