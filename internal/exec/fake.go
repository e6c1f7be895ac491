package exec

import (
	"context"
	"fmt"
	"strings"
)

// FakeResponse is a scripted outcome for a FakeRunner call.
type FakeResponse struct {
	Result Result
	Err    error
}

// FakeRunner is a CommandRunner for tests. Responses are keyed by
// "name arg1 arg2 ..."; unscripted commands fail loudly.
type FakeRunner struct {
	Responses map[string]FakeResponse

	// Calls records every invocation in order.
	Calls []string
}

// NewFakeRunner returns an empty FakeRunner.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{Responses: map[string]FakeResponse{}}
}

// Script registers a response for the given command line.
func (f *FakeRunner) Script(cmdline string, resp FakeResponse) {
	f.Responses[cmdline] = resp
}

func (f *FakeRunner) Run(ctx context.Context, name string, args []string, opts RunOpts) (Result, error) {
	key := strings.Join(append([]string{name}, args...), " ")
	f.Calls = append(f.Calls, key)
	resp, ok := f.Responses[key]
	if !ok {
		return Result{}, fmt.Errorf("fake runner: unscripted command: %s", key)
	}
	return resp.Result, resp.Err
}
