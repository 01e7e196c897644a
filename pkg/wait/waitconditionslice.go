package wait

import (
	"context"
	"fmt"

	"github.com/eclipse-che/apitest/pkg/client"
	"github.com/eclipse-che/apitest/pkg/logger"
)

// WaitConditionSlice is a function performing a condition check for if we need to keep waiting
// and returns a slice to use as the check
type WaitConditionSlice func() (result []any, err error) // nolint

// AreWorkspaceContainersReadySlice returns a WaitConditionSlice that contains every container of the workspace pods
// that isn't ready yet. An empty slice means all containers are ready.
func AreWorkspaceContainersReadySlice(ctx context.Context, kubeClient *client.Client, name string, namespace string) WaitConditionSlice {
	return func() ([]any, error) {
		notReady := []any{}

		pods, err := kubeClient.GetPodsForDevWorkspace(ctx, name, namespace)
		if err != nil {
			return notReady, err
		}
		if len(pods.Items) == 0 {
			logger.Log("No pods found yet for devworkspace '%s'", name)
			return []any{fmt.Sprintf("%s/%s", namespace, name)}, nil
		}

		for _, pod := range pods.Items {
			for _, status := range pod.Status.ContainerStatuses {
				if !status.Ready {
					logger.Log("Container '%s' in pod '%s' is not ready yet (restarts: %d)", status.Name, pod.Name, status.RestartCount)
					notReady = append(notReady, fmt.Sprintf("%s/%s", pod.Name, status.Name))
				}
			}
		}

		if len(notReady) == 0 {
			logger.Log("All containers of devworkspace '%s' are ready", name)
		}

		return notReady, nil
	}
}

// ForEmpty polls the provided WaitConditionSlice until it returns an empty slice, an error occurs or the timeout is reached.
// The options are the same as for `For`.
func ForEmpty(fn WaitConditionSlice, opts ...Option) error {
	return For(func() (bool, error) {
		remaining, err := fn()
		if err != nil {
			return false, err
		}
		return len(remaining) == 0, nil
	}, opts...)
}
