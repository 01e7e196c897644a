package terminal

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	utilexec "k8s.io/client-go/util/exec"

	"github.com/eclipse-che/apitest/pkg/cli"
	"github.com/eclipse-che/apitest/pkg/client"
)

// Channel sends a command to a container of the workspace
type Channel interface {
	// Exec runs argv in the container. The returned error is an ExecError when the container couldn't be reached,
	// a command that exits non-zero is returned as a result.
	Exec(ctx context.Context, container string, argv []string) (cli.Result, error)
}

var remoteExitCode = regexp.MustCompile(`(?m)^command terminated with exit code (\d+)\n?`)

// CLIChannel runs commands with `exec` of the cluster CLI
type CLIChannel struct {
	Tool      *cli.Tool
	Namespace string
	Workspace string

	mu  sync.Mutex
	pod string
}

// NewCLIChannel returns a CLIChannel targeting the pod of the named DevWorkspace
func NewCLIChannel(tool *cli.Tool, namespace, workspace string) *CLIChannel {
	return &CLIChannel{
		Tool:      tool,
		Namespace: namespace,
		Workspace: workspace,
	}
}

// Exec implements Channel
func (c *CLIChannel) Exec(ctx context.Context, container string, argv []string) (cli.Result, error) {
	command := strings.Join(argv, " ")

	pod, err := c.podName(ctx)
	if err != nil {
		return cli.Result{}, &ExecError{Container: container, Command: command, Err: err}
	}

	args := append([]string{"exec", pod, "-n", c.Namespace, "-c", container, "--"}, argv...)
	res, err := c.Tool.Run(ctx, args...)
	if err != nil {
		return res, &ExecError{Pod: pod, Container: container, Command: command, Err: err}
	}
	if res.Succeeded() {
		return res, nil
	}

	// A non-zero exit of the remote command is reported by the CLI with this line on stderr
	if match := remoteExitCode.FindStringSubmatch(res.Stderr); match != nil {
		code, _ := strconv.Atoi(match[1])
		res.ExitCode = code
		res.Stderr = strings.TrimSuffix(strings.Replace(res.Stderr, match[0], "", 1), "\n")
		return res, nil
	}

	c.forgetPod()
	return res, &ExecError{Pod: pod, Container: container, Command: command, Output: strings.TrimSpace(res.Stderr)}
}

func (c *CLIChannel) podName(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pod != "" {
		return c.pod, nil
	}

	res, err := c.Tool.Run(ctx,
		"get", "pods",
		"-n", c.Namespace,
		"-l", fmt.Sprintf("%s=%s", client.DevWorkspaceNameLabel, c.Workspace),
		"-o", "jsonpath={.items[*].metadata.name}",
	)
	if err != nil {
		return "", err
	}
	if !res.Succeeded() {
		return "", fmt.Errorf("failed to find pod of devworkspace %s - %s", c.Workspace, strings.TrimSpace(res.Stderr))
	}

	names := strings.Fields(res.Stdout)
	if len(names) == 0 {
		return "", fmt.Errorf("no pod found for devworkspace %s/%s", c.Namespace, c.Workspace)
	}

	c.pod = names[0]
	return c.pod, nil
}

func (c *CLIChannel) forgetPod() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pod = ""
}

// APIChannel runs commands through the pod exec endpoint of the Kubernetes API
type APIChannel struct {
	Client    *client.Client
	Namespace string
	Workspace string
}

// NewAPIChannel returns an APIChannel targeting the running pod of the named DevWorkspace
func NewAPIChannel(kubeClient *client.Client, namespace, workspace string) *APIChannel {
	return &APIChannel{
		Client:    kubeClient,
		Namespace: namespace,
		Workspace: workspace,
	}
}

// Exec implements Channel
func (c *APIChannel) Exec(ctx context.Context, container string, argv []string) (cli.Result, error) {
	command := strings.Join(argv, " ")

	pod, err := c.Client.GetRunningPodForDevWorkspace(ctx, c.Workspace, c.Namespace)
	if err != nil {
		return cli.Result{}, &ExecError{Container: container, Command: command, Err: err}
	}

	stdout, stderr, err := c.Client.ExecInPod(ctx, pod.Name, c.Namespace, container, argv)
	res := cli.Result{Stdout: stdout, Stderr: stderr}
	if err == nil {
		return res, nil
	}

	var exitErr utilexec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitStatus()
		return res, nil
	}

	res.ExitCode = -1
	return res, &ExecError{Pod: pod.Name, Container: container, Command: command, Err: err}
}
