package client

import (
	"errors"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/api/meta"
)

// isUnsuccessfulConnectionError are errors returned from the api-server that are likely due to it not being ready
func isUnsuccessfulConnectionError(err error) bool {
	return apierrors.IsServiceUnavailable(err) || apierrors.IsTimeout(err) ||
		apierrors.IsServerTimeout(err) || apierrors.IsUnexpectedServerError(err)
}

// isSuccessfulConnectionError are errors returned from an api-server that is up and serving.
// These could be things like resource not found or permissions issues.
func isSuccessfulConnectionError(err error) bool {
	var status apierrors.APIStatus
	return errors.As(err, &status) && !isUnsuccessfulConnectionError(err)
}

// IsDevWorkspaceAPIMissing returns true if the error shows the cluster doesn't serve DevWorkspace resources,
// meaning the DevWorkspace operator isn't installed.
func IsDevWorkspaceAPIMissing(err error) bool {
	return meta.IsNoMatchError(err)
}
