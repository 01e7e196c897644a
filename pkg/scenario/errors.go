package scenario

import (
	"errors"
	"fmt"
	"strings"

	"github.com/eclipse-che/apitest/pkg/cli"
)

// CloneMarker is the text `git clone` prints when it starts cloning
const CloneMarker = "Cloning"

// AssertionFailure is returned when the output of a command doesn't contain what was expected
type AssertionFailure struct {
	Step     string
	Expected string
	Actual   string
}

func (e *AssertionFailure) Error() string {
	actual := strings.TrimRight(e.Actual, "\n")
	if actual == "" {
		actual = "<empty>"
	}
	return fmt.Sprintf("%s: expected output to contain %q\nactual output:\n%s", e.Step, e.Expected, actual)
}

// IsAssertionFailure returns true if the error, or any error it wraps, is an AssertionFailure
func IsAssertionFailure(err error) bool {
	var target *AssertionFailure
	return errors.As(err, &target)
}

// ClonedSuccessfully returns true if the combined output of `git clone` shows it started cloning.
// This doesn't check that the clone completed.
func ClonedSuccessfully(result cli.Result) bool {
	return strings.Contains(result.Stdout+result.Stderr, CloneMarker)
}

func expectContains(step string, output string, expected string) error {
	if !strings.Contains(output, expected) {
		return &AssertionFailure{Step: step, Expected: expected, Actual: output}
	}
	return nil
}
