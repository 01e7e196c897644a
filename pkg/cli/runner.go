package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/onsi/gomega/gexec"

	"github.com/eclipse-che/apitest/pkg/logger"
)

// Runner executes commands
type Runner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

// ProcessRunner runs commands as local processes
type ProcessRunner struct {
	// OutWriter and ErrWriter, if set, receive a live copy of the process output of commands that aren't sensitive
	OutWriter io.Writer
	ErrWriter io.Writer
}

// NewProcessRunner returns a Runner that executes commands on the local machine.
// Unless logging is disabled the process output is streamed to the logger writer as it arrives.
func NewProcessRunner() *ProcessRunner {
	r := &ProcessRunner{}
	if !logger.DisableLogging {
		r.OutWriter = gexec.NewPrefixedWriter("[out] ", logger.LogWriter)
		r.ErrWriter = gexec.NewPrefixedWriter("[err] ", logger.LogWriter)
	}
	return r
}

// Run starts the command and blocks until it exits or the context is done.
//
// The process is killed if the context ends before it exits.
func (r *ProcessRunner) Run(ctx context.Context, cmd Command) (Result, error) {
	logger.Log("Running %s", cmd)

	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Env = append(os.Environ(), cmd.Env...)
	if cmd.Stdin != "" {
		c.Stdin = strings.NewReader(cmd.Stdin)
	}

	outWriter, errWriter := r.OutWriter, r.ErrWriter
	if cmd.Sensitive {
		outWriter, errWriter = nil, nil
	}

	session, err := gexec.Start(c, outWriter, errWriter)
	if err != nil {
		return Result{ExitCode: -1}, fmt.Errorf("failed to start %s - %w", cmd.Name, err)
	}

	select {
	case <-session.Exited:
	case <-ctx.Done():
		session.Kill()
		<-session.Exited
	}
	if ctx.Err() != nil {
		return collect(session), fmt.Errorf("%s did not finish - %w", cmd.Name, ctx.Err())
	}

	return collect(session), nil
}

func collect(session *gexec.Session) Result {
	return Result{
		Stdout:   string(session.Out.Contents()),
		Stderr:   string(session.Err.Contents()),
		ExitCode: session.ExitCode(),
	}
}
