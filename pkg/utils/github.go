package utils

import (
	"os"
	"strings"
)

// GetGitHubToken returns the token from `GITHUB_TOKEN`, or read from the file at `GITHUB_TOKEN_FILE`.
// Returns an empty string if neither is available.
func GetGitHubToken() string {
	envToken := strings.TrimSpace(os.Getenv("GITHUB_TOKEN"))
	if envToken != "" {
		return envToken
	}

	tokenLocation := strings.TrimSpace(os.Getenv("GITHUB_TOKEN_FILE"))
	if tokenLocation != "" {
		token, err := os.ReadFile(tokenLocation)
		if err != nil {
			return ""
		}
		return strings.TrimSpace(string(token))
	}

	return ""
}
