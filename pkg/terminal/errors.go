package terminal

import (
	"errors"
	"fmt"
)

// ExecError is returned when a command couldn't be run because the container was unreachable,
// for example because it isn't running yet. A command that ran and exited non-zero is not an ExecError.
type ExecError struct {
	Pod       string
	Container string
	Command   string
	Output    string
	Err       error
}

func (e *ExecError) Error() string {
	target := e.Container
	if e.Pod != "" {
		target = fmt.Sprintf("%s/%s", e.Pod, e.Container)
	}

	msg := fmt.Sprintf("unable to exec %q in container %s", e.Command, target)
	if e.Err != nil {
		msg = fmt.Sprintf("%s - %v", msg, e.Err)
	}
	if e.Output != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Output)
	}
	return msg
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// IsExecError returns true if the error, or any error it wraps, is an ExecError
func IsExecError(err error) bool {
	var execErr *ExecError
	return errors.As(err, &execErr)
}
