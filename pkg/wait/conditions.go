package wait

import (
	"context"
	"strings"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/eclipse-che/apitest/pkg/cli"
	"github.com/eclipse-che/apitest/pkg/client"
	"github.com/eclipse-che/apitest/pkg/logger"
)

// WaitCondition is a function performing a condition check for if we need to keep waiting
type WaitCondition func() (done bool, err error)

// WorkspaceFailedError is returned by the DevWorkspace conditions when the operator gave up on starting the workspace
type WorkspaceFailedError struct {
	Name    string
	Message string
}

func (e *WorkspaceFailedError) Error() string {
	return "devworkspace " + e.Name + " failed to start: " + e.Message
}

// IsDevWorkspaceRunning returns a WaitCondition that uses the cluster CLI to check if the DevWorkspace reports the `Running` phase.
// A `Failed` phase stops the wait with a WorkspaceFailedError, errors from the CLI itself are logged and polling continues.
func IsDevWorkspaceRunning(ctx context.Context, tool *cli.Tool, name string, namespace string) WaitCondition {
	return func() (bool, error) {
		res, err := tool.Run(ctx, "get", "devworkspace", name, "-n", namespace, "-o", "json")
		if err != nil {
			return false, err
		}
		if !res.Succeeded() {
			logger.Log("Failed to get devworkspace '%s' - %s", name, strings.TrimSpace(res.Stderr))
			return false, nil
		}

		dw := &unstructured.Unstructured{}
		if err := dw.UnmarshalJSON([]byte(res.Stdout)); err != nil {
			logger.Log("Unable to parse devworkspace '%s' - %v", name, err)
			return false, nil
		}

		phase, _, _ := unstructured.NestedString(dw.Object, "status", "phase")
		message, _, _ := unstructured.NestedString(dw.Object, "status", "message")
		return checkPhase(name, phase, message)
	}
}

// IsDevWorkspaceRunningAPI is like IsDevWorkspaceRunning but reads the DevWorkspace through the Kubernetes API
func IsDevWorkspaceRunningAPI(ctx context.Context, kubeClient *client.Client, name string, namespace string) WaitCondition {
	return func() (bool, error) {
		phase, message, err := kubeClient.GetDevWorkspacePhase(ctx, name, namespace)
		if client.IsDevWorkspaceAPIMissing(err) {
			return false, err
		} else if err != nil {
			logger.Log("Failed to get devworkspace '%s' - %v", name, err)
			return false, nil
		}

		return checkPhase(name, phase, message)
	}
}

func checkPhase(name, phase, message string) (bool, error) {
	switch phase {
	case client.DevWorkspacePhaseRunning:
		logger.Log("Devworkspace '%s' is running", name)
		return true, nil
	case client.DevWorkspacePhaseFailed:
		return false, &WorkspaceFailedError{Name: name, Message: message}
	default:
		logger.Log("Devworkspace '%s' is not yet running: phase='%s' message='%s'", name, phase, message)
		return false, nil
	}
}
