// Package exec provides the external command abstraction for conf2wiki.
package exec

import (
	"bytes"
	"context"
	stderrors "errors"
	"os/exec"
	"time"
)

// RunOpts holds per-invocation options.
type RunOpts struct {
	// Dir is the working directory for the command. Empty means inherit.
	Dir string

	// Timeout bounds the invocation. Zero means no additional timeout
	// beyond the caller's context.
	Timeout time.Duration
}

// Result holds the outcome of a completed command.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int

	// TimedOut is true when the invocation was killed by the timeout.
	TimedOut bool
}

// CommandRunner runs external commands. The real implementation shells
// out; tests substitute a FakeRunner.
type CommandRunner interface {
	Run(ctx context.Context, name string, args []string, opts RunOpts) (Result, error)
}

// RealRunner implements CommandRunner using os/exec.
type RealRunner struct{}

// NewRealRunner returns a CommandRunner backed by os/exec.
func NewRealRunner() CommandRunner {
	return RealRunner{}
}

// Run executes the command and waits for completion.
// A non-zero exit is reported via Result.ExitCode with a nil error;
// the error return is reserved for start failures and timeouts.
func (RealRunner) Run(ctx context.Context, name string, args []string, opts RunOpts) (Result, error) {
	runCtx := ctx
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, name, args...)
	cmd.Dir = opts.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if runCtx.Err() == context.DeadlineExceeded {
		result.TimedOut = true
		return result, runCtx.Err()
	}

	if err != nil {
		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, err
	}

	return result, nil
}
