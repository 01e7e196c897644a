package apitest

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/eclipse-che/apitest/pkg/env"
	"github.com/eclipse-che/apitest/pkg/utils"
)

const apiServerPort = "6443"

// Login establishes the session with the cluster.
//
// With `oc` this logs in to the api-server using the token from `TS_SELENIUM_OCP_TOKEN` or the
// credentials from `TS_SELENIUM_OCP_USERNAME` / `TS_SELENIUM_OCP_PASSWORD`.
// With `kubectl` the existing kubeconfig is used and only checked for access to DevWorkspaces in the namespace.
func (f *Framework) Login(ctx context.Context) error {
	if !f.tool.IsOpenShift() {
		return f.checkAccess(ctx)
	}

	server, err := apiServerURL()
	if err != nil {
		return &AuthenticationError{Err: err}
	}

	args := []string{"login", fmt.Sprintf("--server=%s", server)}
	user := strings.TrimSpace(os.Getenv(env.OCPUsername))
	if token := strings.TrimSpace(os.Getenv(env.OCPToken)); token != "" {
		args = append(args, fmt.Sprintf("--token=%s", token))
		user = ""
	} else {
		password := os.Getenv(env.OCPPassword)
		if user == "" || password == "" {
			return &AuthenticationError{Server: server, Err: fmt.Errorf("%s and %s, or %s, must be set", env.OCPUsername, env.OCPPassword, env.OCPToken)}
		}
		args = append(args, fmt.Sprintf("--username=%s", user), fmt.Sprintf("--password=%s", password))
	}
	args = append(args, "--insecure-skip-tls-verify=true")

	f.Log("Logging in to %s", server)
	res, err := f.tool.RunSensitive(ctx, args...)
	if err != nil {
		return &AuthenticationError{Server: server, User: user, Err: err}
	}
	if !res.Succeeded() {
		return &AuthenticationError{Server: server, User: user, Output: strings.TrimSpace(res.Stderr)}
	}

	return f.checkAccess(ctx)
}

func (f *Framework) checkAccess(ctx context.Context) error {
	res, err := f.tool.Run(ctx, "auth", "can-i", "get", "devworkspaces.workspace.devfile.io", "-n", f.namespace)
	if err != nil {
		return &AuthenticationError{Err: err}
	}

	// `can-i` exits non-zero when the answer is no
	if answer := strings.TrimSpace(res.Stdout); answer != "yes" {
		output := strings.TrimSpace(res.Combined())
		if output == "" {
			output = "no"
		}
		return &AuthenticationError{Err: fmt.Errorf("not allowed to get devworkspaces in namespace %s", f.namespace), Output: output}
	}

	f.Log("Session can access devworkspaces")
	return nil
}

// apiServerURL returns the api-server from `E2E_API_SERVER_URL`, or derives it from the dashboard URL
func apiServerURL() (string, error) {
	if server := utils.GetEnvOrDefault(env.APIServerURL, ""); server != "" {
		return server, nil
	}

	baseURL := utils.GetEnvOrDefault(env.BaseURL, "")
	if baseURL == "" {
		return "", fmt.Errorf("one of %s or %s must be set", env.APIServerURL, env.BaseURL)
	}
	return apiServerFromBaseURL(baseURL)
}

// apiServerFromBaseURL turns the route of an OpenShift application, such as
// `https://devspaces.apps.cluster.example.com`, into the api-server URL `https://api.cluster.example.com:6443`
func apiServerFromBaseURL(baseURL string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s - %v", baseURL, err)
	}

	labels := strings.Split(u.Hostname(), ".")
	for i, label := range labels {
		if label == "apps" && i+1 < len(labels) {
			host := strings.Join(append([]string{"api"}, labels[i+1:]...), ".")
			return fmt.Sprintf("https://%s:%s", host, apiServerPort), nil
		}
	}

	return "", fmt.Errorf("unable to derive the api-server from %s, set %s", baseURL, env.APIServerURL)
}
