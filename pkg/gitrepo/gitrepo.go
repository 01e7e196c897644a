package gitrepo

import (
	"fmt"
	"net/url"
	"strings"
)

// ProjectName returns the name of the directory `git clone` creates for the repository URL.
//
// The last path segment is used with any trailing slashes and a `.git` suffix removed,
// e.g. `https://github.com/crw-qe/web-nodejs-sample` gives `web-nodejs-sample`.
func ProjectName(repoURL string) string {
	name := strings.TrimSpace(repoURL)
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	name = strings.TrimRight(name, "/")
	name = strings.TrimSuffix(name, ".git")
	name = strings.TrimRight(name, "/")

	// Covers both URLs and scp-like addresses (`git@github.com:org/repo.git`)
	if i := strings.LastIndexAny(name, "/:"); i >= 0 {
		name = name[i+1:]
	}

	return name
}

// ParseGitHubURL returns the owner and repository name of a github.com repository URL
func ParseGitHubURL(repoURL string) (string, string, error) {
	u, err := url.Parse(strings.TrimSpace(repoURL))
	if err != nil {
		return "", "", fmt.Errorf("failed to parse repository url - %w", err)
	}
	if u.Host != "github.com" && u.Host != "www.github.com" {
		return "", "", fmt.Errorf("not a github.com repository: %s", repoURL)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("repository url is missing the owner or repository name: %s", repoURL)
	}

	return parts[0], strings.TrimSuffix(parts[1], ".git"), nil
}
