package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/go-github/v83/github"
	"golang.org/x/oauth2"

	"github.com/eclipse-che/apitest/pkg/logger"
	"github.com/eclipse-che/apitest/pkg/utils"
)

// newGitHubClient returns a new initialized GitHub client using the GitHub token specified in the environment
func newGitHubClient(ctx context.Context) *github.Client {
	var ghHTTPClient *http.Client
	githubToken := utils.GetGitHubToken()
	if githubToken != "" {
		ghHTTPClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: githubToken},
		))
	}

	return github.NewClient(ghHTTPClient)
}

// RootEntries returns the names of the files and directories at the root of the default branch of a GitHub repository.
//
// Transient API failures are retried with an exponential backoff for up to 1 minute.
func RootEntries(ctx context.Context, repoURL string) ([]string, error) {
	return rootEntries(ctx, newGitHubClient(ctx), repoURL)
}

func rootEntries(ctx context.Context, gh *github.Client, repoURL string) ([]string, error) {
	owner, repo, err := ParseGitHubURL(repoURL)
	if err != nil {
		return nil, err
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 1 * time.Second
	bo.MaxInterval = 15 * time.Second
	bo.RandomizationFactor = 0.1

	operation := func() ([]string, error) {
		_, contents, _, err := gh.Repositories.GetContents(ctx, owner, repo, "", &github.RepositoryContentGetOptions{})
		if err != nil {
			if isTransientGitHubError(err) {
				return nil, err
			}
			return nil, backoff.Permanent(err)
		}

		names := make([]string, 0, len(contents))
		for _, c := range contents {
			names = append(names, c.GetName())
		}
		return names, nil
	}

	notify := func(err error, d time.Duration) {
		logger.Log("Failed to list contents of %s/%s: %s. Retrying in %s...", owner, repo, err, d.Round(time.Second))
	}

	names, err := backoff.Retry(
		ctx,
		operation,
		backoff.WithBackOff(bo),
		backoff.WithMaxElapsedTime(1*time.Minute),
		backoff.WithNotify(notify),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to list contents of %s/%s: %w", owner, repo, err)
	}

	return names, nil
}

// isTransientGitHubError determines if a GitHub API error is likely transient and should be retried
func isTransientGitHubError(err error) bool {
	var ghErr *github.ErrorResponse
	if !errors.As(err, &ghErr) || ghErr.Response == nil {
		return false
	}

	switch ghErr.Response.StatusCode {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}
