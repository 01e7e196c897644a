package client

import (
	"context"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/apimachinery/pkg/types"
	cr "sigs.k8s.io/controller-runtime/pkg/client"
)

const (
	// DevWorkspaceNameLabel is set by the DevWorkspace operator on every pod belonging to a workspace
	DevWorkspaceNameLabel = "controller.devfile.io/devworkspace_name"

	// DevWorkspacePhaseRunning is the phase reported once all workspace containers are up
	DevWorkspacePhaseRunning = "Running"
	// DevWorkspacePhaseFailed is the phase reported when the workspace can't be started
	DevWorkspacePhaseFailed = "Failed"
)

// DevWorkspaceGVK is the GroupVersionKind of DevWorkspace resources
var DevWorkspaceGVK = schema.GroupVersionKind{
	Group:   "workspace.devfile.io",
	Version: "v1alpha2",
	Kind:    "DevWorkspace",
}

// NewDevWorkspace returns an empty unstructured DevWorkspace with the given name, ready to be used with Get or Delete
func NewDevWorkspace(name, namespace string) *unstructured.Unstructured {
	dw := &unstructured.Unstructured{}
	dw.SetGroupVersionKind(DevWorkspaceGVK)
	dw.SetName(name)
	dw.SetNamespace(namespace)
	return dw
}

// GetDevWorkspacePhase returns the `.status.phase` and `.status.message` of the named DevWorkspace
func (c *Client) GetDevWorkspacePhase(ctx context.Context, name, namespace string) (string, string, error) {
	dw := NewDevWorkspace(name, namespace)
	if err := c.Get(ctx, types.NamespacedName{Name: name, Namespace: namespace}, dw); err != nil {
		return "", "", err
	}

	phase, _, err := unstructured.NestedString(dw.Object, "status", "phase")
	if err != nil {
		return "", "", fmt.Errorf("failed to read phase of devworkspace %s - %v", name, err)
	}
	message, _, _ := unstructured.NestedString(dw.Object, "status", "message")

	return phase, message, nil
}

// GetPodsForDevWorkspace returns all pods the DevWorkspace operator created for the named workspace
func (c *Client) GetPodsForDevWorkspace(ctx context.Context, name, namespace string) (*corev1.PodList, error) {
	pods := &corev1.PodList{}
	err := c.List(ctx, pods,
		cr.InNamespace(namespace),
		cr.MatchingLabels{DevWorkspaceNameLabel: name},
	)
	return pods, err
}

// GetRunningPodForDevWorkspace returns the first running pod of the named workspace
func (c *Client) GetRunningPodForDevWorkspace(ctx context.Context, name, namespace string) (*corev1.Pod, error) {
	pods, err := c.GetPodsForDevWorkspace(ctx, name, namespace)
	if err != nil {
		return nil, err
	}

	for i := range pods.Items {
		if pods.Items[i].Status.Phase == corev1.PodRunning {
			return &pods.Items[i], nil
		}
	}

	return nil, fmt.Errorf("no running pod found for devworkspace %s/%s", namespace, name)
}
