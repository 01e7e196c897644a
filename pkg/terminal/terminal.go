package terminal

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/kballard/go-shellquote"

	"github.com/eclipse-che/apitest/pkg/cli"
	"github.com/eclipse-che/apitest/pkg/logger"
)

const (
	// DefaultRetryTimeout is how long the first command waits for the container to accept exec sessions
	DefaultRetryTimeout = 2 * time.Minute
	// DefaultRetryInterval is the initial delay between attempts of the first command
	DefaultRetryInterval = 2 * time.Second
)

// ContainerTerminal runs shell command lines in a single container of the workspace
type ContainerTerminal struct {
	channel   Channel
	container string

	retryTimeout  time.Duration
	retryInterval time.Duration

	mu        sync.Mutex
	reachable bool
}

// Option overrides a default setting of a ContainerTerminal
type Option func(*ContainerTerminal)

// WithRetryTimeout overrides how long the first command is retried while the container is unreachable
func WithRetryTimeout(timeout time.Duration) Option {
	return func(t *ContainerTerminal) {
		t.retryTimeout = timeout
	}
}

// WithRetryInterval overrides the initial interval between retries of the first command
func WithRetryInterval(interval time.Duration) Option {
	return func(t *ContainerTerminal) {
		t.retryInterval = interval
	}
}

// New returns a ContainerTerminal sending commands to the given container over channel
func New(channel Channel, container string, opts ...Option) *ContainerTerminal {
	t := &ContainerTerminal{
		channel:       channel,
		container:     container,
		retryTimeout:  DefaultRetryTimeout,
		retryInterval: DefaultRetryInterval,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Container returns the name of the container commands are run in
func (t *ContainerTerminal) Container() string {
	return t.container
}

// RunCommand runs the command line with `sh -c` in the container.
//
// Until a command has reached the container once, ExecErrors are retried with an exponential backoff
// as the container may still be starting. After that every call is a single attempt.
func (t *ContainerTerminal) RunCommand(ctx context.Context, commandLine string) (cli.Result, error) {
	argv := []string{"sh", "-c", commandLine}

	if t.isReachable() {
		return t.channel.Exec(ctx, t.container, argv)
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = t.retryInterval
	bo.MaxInterval = 15 * time.Second
	bo.RandomizationFactor = 0.1

	retryCtx, cancel := context.WithTimeout(ctx, t.retryTimeout)
	defer cancel()

	var lastExecErr error
	operation := func() (cli.Result, error) {
		res, err := t.channel.Exec(retryCtx, t.container, argv)
		if err != nil && !IsExecError(err) {
			return res, backoff.Permanent(err)
		}
		if err != nil {
			lastExecErr = err
		}
		return res, err
	}

	notify := func(err error, d time.Duration) {
		logger.Log("Container '%s' not reachable yet: %s. Retrying in %s...", t.container, err, d.Round(time.Millisecond))
	}

	res, err := backoff.Retry(
		retryCtx,
		operation,
		backoff.WithBackOff(bo),
		backoff.WithMaxElapsedTime(t.retryTimeout),
		backoff.WithNotify(notify),
	)
	if err != nil {
		// Running out of retry time reports why the container couldn't be reached
		if lastExecErr != nil && ctx.Err() == nil && errors.Is(err, context.DeadlineExceeded) {
			return res, lastExecErr
		}
		return res, err
	}

	t.markReachable()
	return res, nil
}

// RunCommandInDir runs the command line from within dir
func (t *ContainerTerminal) RunCommandInDir(ctx context.Context, dir string, commandLine string) (cli.Result, error) {
	if dir == "" {
		return t.RunCommand(ctx, commandLine)
	}
	return t.RunCommand(ctx, "cd "+shellquote.Join(dir)+" && "+commandLine)
}

// Pwd runs `pwd`
func (t *ContainerTerminal) Pwd(ctx context.Context) (cli.Result, error) {
	return t.RunCommand(ctx, "pwd")
}

// Ls runs `ls` on the given path, or the working directory if path is empty
func (t *ContainerTerminal) Ls(ctx context.Context, path string) (cli.Result, error) {
	if path == "" {
		return t.RunCommand(ctx, "ls")
	}
	return t.RunCommand(ctx, "ls "+shellquote.Join(path))
}

// GitClone runs `git clone` of the repository into the working directory
func (t *ContainerTerminal) GitClone(ctx context.Context, url string) (cli.Result, error) {
	return t.RunCommand(ctx, "git clone "+shellquote.Join(url))
}

func (t *ContainerTerminal) isReachable() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.reachable
}

func (t *ContainerTerminal) markReachable() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.reachable = true
}
