package cli

import (
	"strings"

	shellquote "github.com/kballard/go-shellquote"
)

// Command describes a single process invocation
type Command struct {
	Name  string
	Args  []string
	Stdin string
	// Env is appended to the environment of the current process
	Env []string
	// Sensitive hides the arguments when the command is logged
	Sensitive bool
}

// String returns the command line in a form that can be pasted into a shell
func (c Command) String() string {
	if c.Sensitive {
		return shellquote.Join(c.Name) + " [redacted]"
	}
	return shellquote.Join(append([]string{c.Name}, c.Args...)...)
}

// Result holds the captured output of a finished command
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Succeeded returns true if the command exited with a zero exit code
func (r Result) Succeeded() bool {
	return r.ExitCode == 0
}

// Combined returns stdout followed by stderr
func (r Result) Combined() string {
	return r.Stdout + r.Stderr
}

// FirstLine returns the first line of stdout with surrounding whitespace removed
func (r Result) FirstLine() string {
	line, _, _ := strings.Cut(strings.TrimSpace(r.Stdout), "\n")
	return strings.TrimSpace(line)
}
