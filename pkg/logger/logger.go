package logger

import (
	"fmt"
	"io"
	"os"

	"sigs.k8s.io/controller-runtime/pkg/log/zap"

	"github.com/eclipse-che/apitest/pkg/env"
)

var (
	// LogWriter is the io.Writer that log lines will be written too
	LogWriter io.Writer = os.Stdout
	// DisableLogging will disable all logging from the test framework
	DisableLogging bool = false
)

// Log writes out the provided message to the LogWriter
func Log(str string, args ...any) {
	write(fmt.Sprintf(str, args...))
}

// Warn writes out the provided message to the LogWriter, marked as a warning.
// Used for failures that must not change the outcome of a test, such as teardown.
func Warn(str string, args ...any) {
	write(fmt.Sprintf(str, args...), "severity", "warning")
}

func write(msg string, keysAndValues ...any) {
	if DisableLogging {
		return
	}

	// `console` gives human readable lines, anything else JSON
	consoleFormat := os.Getenv(env.LogFormat) == "console"
	logger := zap.New(zap.WriteTo(LogWriter), zap.UseDevMode(consoleFormat))
	logger.Info(msg, keysAndValues...)
}
