package client

import (
	"context"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/fields"
	cr "sigs.k8s.io/controller-runtime/pkg/client"
)

// GetEventsForResource returns all existing events related to the provided resource.
// Unstructured resources (such as a DevWorkspace) are matched on their own kind.
func (c *Client) GetEventsForResource(ctx context.Context, resource cr.Object) (*corev1.EventList, error) {
	events := &corev1.EventList{}

	fieldSelectors := []fields.Selector{
		fields.OneTermEqualSelector("involvedObject.name", resource.GetName()),
	}

	if resource.GetNamespace() != "" {
		fieldSelectors = append(fieldSelectors, fields.OneTermEqualSelector("involvedObject.namespace", resource.GetNamespace()))
	}

	if kind := resource.GetObjectKind().GroupVersionKind().Kind; kind != "" {
		fieldSelectors = append(fieldSelectors, fields.OneTermEqualSelector("involvedObject.kind", kind))
	} else {
		// Get the Object kind from the schema
		gvks, unversioned, err := c.Scheme().ObjectKinds(resource)
		if err != nil {
			return events, err
		}
		if !unversioned && len(gvks) == 1 {
			fieldSelectors = append(fieldSelectors, fields.OneTermEqualSelector("involvedObject.kind", gvks[0].Kind))
		}
	}

	err := c.List(ctx, events, cr.MatchingFieldsSelector{
		Selector: fields.AndSelectors(fieldSelectors...),
	})

	return events, err
}

// GetWarningEventsForResource returns all events related to the provided resource that have a type of "Warning"
func (c *Client) GetWarningEventsForResource(ctx context.Context, resource cr.Object) (*corev1.EventList, error) {
	events, err := c.GetEventsForResource(ctx, resource)
	if err != nil {
		return events, err
	}

	filteredEvents := events.DeepCopy()
	filteredEvents.Items = []corev1.Event{}

	for _, event := range events.Items {
		if event.Type == corev1.EventTypeWarning {
			filteredEvents.Items = append(filteredEvents.Items, event)
		}
	}

	return filteredEvents, nil
}
