package failurehandler

import (
	"context"

	corev1 "k8s.io/api/core/v1"

	"github.com/eclipse-che/apitest/pkg/client"
	"github.com/eclipse-che/apitest/pkg/logger"
)

func debugPod(ctx context.Context, kubeClient *client.Client, pod *corev1.Pod, maxLines int64) {
	logger.Log("Pod '%s' status: Phase='%s'", pod.ObjectMeta.Name, pod.Status.Phase)
	for _, condition := range pod.Status.Conditions {
		logger.Log("Pod '%s' condition: Type='%s', Status='%s', Message='%s'", pod.ObjectMeta.Name, condition.Type, condition.Status, condition.Message)
	}
	for _, status := range append(pod.Status.InitContainerStatuses, pod.Status.ContainerStatuses...) {
		logContainerStatus(pod.ObjectMeta.Name, status)
	}

	events, err := kubeClient.GetWarningEventsForResource(ctx, pod)
	if err != nil {
		logger.Log("Failed to get events for Pod '%s' - %v", pod.ObjectMeta.Name, err)
	} else {
		for _, event := range events.Items {
			logger.Log("Pod '%s' Event: Reason='%s', Message='%s', Last Occurred='%v'", pod.ObjectMeta.Name, event.Reason, event.Message, event.LastTimestamp)
		}
	}

	logs, err := kubeClient.GetLogs(ctx, pod, &maxLines)
	if err != nil {
		logger.Log("Failed to get logs for Pod '%s' - %v", pod.ObjectMeta.Name, err)
	} else {
		logger.Log("Last %d lines of logs from '%s' - %s", maxLines, pod.ObjectMeta.Name, logs)
	}
}

func logContainerStatus(podName string, status corev1.ContainerStatus) {
	switch {
	case status.State.Waiting != nil:
		logger.Log("Pod '%s' container '%s' waiting: Reason='%s', Message='%s'", podName, status.Name, status.State.Waiting.Reason, status.State.Waiting.Message)
	case status.State.Terminated != nil:
		logger.Log("Pod '%s' container '%s' terminated: Reason='%s', ExitCode='%d'", podName, status.Name, status.State.Terminated.Reason, status.State.Terminated.ExitCode)
	default:
		logger.Log("Pod '%s' container '%s': Ready='%t', Restarts='%d'", podName, status.Name, status.Ready, status.RestartCount)
	}
}
