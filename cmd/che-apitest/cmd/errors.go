package cmd

import (
	"errors"
	"fmt"
)

// ExitCodeError is returned when a command run in the workspace exited with a non-zero code
type ExitCodeError struct {
	Code int
}

func (e *ExitCodeError) Error() string {
	return fmt.Sprintf("command exited with code %d", e.Code)
}

// ExitCode returns the code the process should exit with for the error returned by Execute
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var exitErr *ExitCodeError
	if errors.As(err, &exitErr) && exitErr.Code > 0 {
		return exitErr.Code
	}
	return 1
}
