package client

import (
	"bytes"
	"context"
	"fmt"
	"io"

	corev1 "k8s.io/api/core/v1"
	v1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
)

// GetLogs fetches the logs from the provided Pod. If `numOfLines` is provided (instead of `nil`) then that
// many lines will be returned from the end of the logs.
// If multiple containers (including initContainers such as the editor injector) are found in the pod then
// logs from all of them will be collected, each preceded by a header line naming the container.
func (c *Client) GetLogs(ctx context.Context, pod *corev1.Pod, numOfLines *int64) (string, error) {
	return c.getLogs(ctx, pod, "", numOfLines)
}

// GetContainerLogs is like GetLogs but only returns the logs of the named container
func (c *Client) GetContainerLogs(ctx context.Context, pod *corev1.Pod, containerName string, numOfLines *int64) (string, error) {
	return c.getLogs(ctx, pod, containerName, numOfLines)
}

func (c *Client) getLogs(ctx context.Context, pod *corev1.Pod, onlyContainer string, numOfLines *int64) (string, error) {
	coreClient, err := kubernetes.NewForConfig(c.config)
	if err != nil {
		return "", fmt.Errorf("failed initializing kubernetes core client - %w", err)
	}

	pod, err = coreClient.CoreV1().Pods(pod.ObjectMeta.Namespace).Get(ctx, pod.ObjectMeta.Name, v1.GetOptions{})
	if err != nil {
		return "", fmt.Errorf("failed to get pod - %w", err)
	}

	buf := new(bytes.Buffer)
	for _, containerName := range allContainerNames(pod) {
		if onlyContainer != "" && containerName != onlyContainer {
			continue
		}
		if onlyContainer == "" {
			fmt.Fprintf(buf, "==> %s <==\n", containerName)
		}

		req := coreClient.CoreV1().Pods(pod.ObjectMeta.Namespace).GetLogs(pod.ObjectMeta.Name, &corev1.PodLogOptions{
			TailLines: numOfLines,
			Container: containerName,
		})
		if err := copyLogs(ctx, buf, req.Stream); err != nil {
			return "", err
		}
	}

	return buf.String(), nil
}

func copyLogs(ctx context.Context, w io.Writer, open func(context.Context) (io.ReadCloser, error)) error {
	podLogs, err := open(ctx)
	if err != nil {
		return fmt.Errorf("error in opening log stream - %w", err)
	}
	defer podLogs.Close()

	if _, err := io.Copy(w, podLogs); err != nil {
		return fmt.Errorf("error in copying from podLogs to buffer - %w", err)
	}
	return nil
}

func allContainerNames(pod *corev1.Pod) []string {
	names := []string{}
	for _, c := range pod.Spec.InitContainers {
		names = append(names, c.Name)
	}
	for _, c := range pod.Spec.Containers {
		names = append(names, c.Name)
	}
	for _, c := range pod.Spec.EphemeralContainers {
		names = append(names, c.Name)
	}
	return names
}
