package utils

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// GetEnvOrDefault returns the trimmed value of the environment variable, or fallback if it is unset or empty
func GetEnvOrDefault(name string, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(name)); value != "" {
		return value
	}
	return fallback
}

// GetDurationEnvOrDefault parses the environment variable as a Go duration (e.g. `6m`),
// returning fallback if it is unset
func GetDurationEnvOrDefault(name string, fallback time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return fallback, nil
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback, fmt.Errorf("invalid duration in %s - %w", name, err)
	}
	return d, nil
}

// IsEnvSet returns true if the environment variable has a non-empty value
func IsEnvSet(name string) bool {
	return strings.TrimSpace(os.Getenv(name)) != ""
}
