package failurehandler

import (
	"context"
	"strings"

	"github.com/eclipse-che/apitest"
	"github.com/eclipse-che/apitest/pkg/cli"
	"github.com/eclipse-che/apitest/pkg/client"
	"github.com/eclipse-che/apitest/pkg/logger"
	"github.com/eclipse-che/apitest/pkg/terminal"
)

// WorkspaceIssues collects debug information about the DevWorkspace of the session.
// This includes the DevWorkspace resource as reported by the cluster CLI and, if the Kubernetes API is reachable,
// the status, warning events and last 25 lines of logs of the workspace pods.
func WorkspaceIssues(framework *apitest.Framework) FailureHandler {
	return Wrap(func() {
		ctx, cancel := newContext()
		defer cancel()

		logger.Log("Attempting to get debug info for DevWorkspace '%s'", framework.WorkspaceName())

		res, err := framework.Tool().Run(ctx, "get", "devworkspace", framework.WorkspaceName(), "-n", framework.Namespace(), "-o", "yaml")
		logResult("DevWorkspace", res, err)

		kubeClient, err := framework.API()
		if err != nil {
			logger.Log("Failed to get Kubernetes API client - %v", err)
			return
		}
		if err := kubeClient.CheckConnection(); err != nil {
			logger.Log("Kubernetes API at '%s' is not reachable - %v", kubeClient.GetAPIServerEndpoint(), err)
			return
		}

		debugWorkspacePods(ctx, kubeClient, framework.Namespace(), framework.WorkspaceName(), 25)
	})
}

// ContainersNotReady logs the status and last 50 lines of logs of every workspace container that isn't ready.
func ContainersNotReady(framework *apitest.Framework) FailureHandler {
	return Wrap(func() {
		ctx, cancel := newContext()
		defer cancel()

		logger.Log("Attempting to get debug info for non-ready workspace containers")

		kubeClient, err := framework.API()
		if err != nil {
			logger.Log("Failed to get Kubernetes API client - %v", err)
			return
		}

		pods, err := kubeClient.GetPodsForDevWorkspace(ctx, framework.WorkspaceName(), framework.Namespace())
		if err != nil {
			logger.Log("Failed to get Pods for DevWorkspace '%s' - %v", framework.WorkspaceName(), err)
			return
		}

		maxLines := int64(50)
		for i := range pods.Items {
			pod := &pods.Items[i]
			for _, status := range pod.Status.ContainerStatuses {
				if status.Ready {
					continue
				}
				logContainerStatus(pod.ObjectMeta.Name, status)
				logs, err := kubeClient.GetContainerLogs(ctx, pod, status.Name, &maxLines)
				if err != nil {
					logger.Log("Failed to get logs for container '%s' - %v", status.Name, err)
					continue
				}
				logger.Log("Last %d lines of logs from container '%s' - %s", maxLines, status.Name, logs)
			}
		}
	})
}

// TerminalIssues runs a few diagnostic commands in the container of the terminal,
// such as the git version and a listing of the given directory.
func TerminalIssues(term *terminal.ContainerTerminal, dir string) FailureHandler {
	return Wrap(func() {
		ctx, cancel := newContext()
		defer cancel()

		logger.Log("Attempting to get debug info from container '%s'", term.Container())

		for _, commandLine := range []string{"id", "git --version", "ls -la"} {
			res, err := term.RunCommandInDir(ctx, dir, commandLine)
			logResult(commandLine, res, err)
		}
	})
}

func debugWorkspacePods(ctx context.Context, kubeClient *client.Client, namespace, name string, maxLines int64) {
	pods, err := kubeClient.GetPodsForDevWorkspace(ctx, name, namespace)
	if err != nil {
		logger.Log("Failed to get Pods for DevWorkspace '%s' - %v", name, err)
		return
	}
	if len(pods.Items) == 0 {
		logger.Log("No Pods found for DevWorkspace '%s'", name)
		return
	}

	for i := range pods.Items {
		debugPod(ctx, kubeClient, &pods.Items[i], maxLines)
	}
}

func logResult(what string, res cli.Result, err error) {
	if err != nil {
		logger.Log("Failed to get %s - %v", what, err)
		return
	}
	logger.Log("%s (exit code %d):\n%s", what, res.ExitCode, strings.TrimSpace(res.Combined()))
}
