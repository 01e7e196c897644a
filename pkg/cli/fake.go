package cli

import (
	"context"
	"strings"
	"sync"
)

// Response is a scripted reply of a FakeRunner
type Response struct {
	Result Result
	Err    error
}

// FakeRunner is a Runner that doesn't start any process. It records every command and replies
// using the first handler whose prefix matches the start of the command line.
//
// Intended for use in tests.
type FakeRunner struct {
	mu       sync.Mutex
	handlers []fakeHandler
	calls    []Command
}

type fakeHandler struct {
	prefix    []string
	responses []Response
}

// On registers responses for commands whose arguments start with the given prefix.
// Responses are used in order, with the last one repeated once the others are used up.
func (f *FakeRunner) On(prefix []string, responses ...Response) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers = append(f.handlers, fakeHandler{prefix: prefix, responses: responses})
	return f
}

// Run records the command and returns the scripted response.
// Commands with no matching handler succeed with no output.
func (f *FakeRunner) Run(ctx context.Context, cmd Command) (Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, cmd)

	if err := ctx.Err(); err != nil {
		return Result{ExitCode: -1}, err
	}

	for i := range f.handlers {
		h := &f.handlers[i]
		if !hasPrefix(cmd.Args, h.prefix) || len(h.responses) == 0 {
			continue
		}
		resp := h.responses[0]
		if len(h.responses) > 1 {
			h.responses = h.responses[1:]
		}
		return resp.Result, resp.Err
	}

	return Result{}, nil
}

// Calls returns all commands run so far
func (f *FakeRunner) Calls() []Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Command{}, f.calls...)
}

// CallsWithPrefix returns the commands whose arguments start with the given prefix
func (f *FakeRunner) CallsWithPrefix(prefix ...string) []Command {
	matching := []Command{}
	for _, c := range f.Calls() {
		if hasPrefix(c.Args, prefix) {
			matching = append(matching, c)
		}
	}
	return matching
}

func hasPrefix(args, prefix []string) bool {
	if len(prefix) > len(args) {
		return false
	}
	return strings.Join(args[:len(prefix)], "\x00") == strings.Join(prefix, "\x00")
}
