package apitest

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// AuthenticationError is returned when a session with the cluster couldn't be established
type AuthenticationError struct {
	Server string
	User   string
	Output string
	Err    error
}

func (e *AuthenticationError) Error() string {
	msg := "failed to authenticate"
	if e.User != "" {
		msg = fmt.Sprintf("%s as %s", msg, e.User)
	}
	if e.Server != "" {
		msg = fmt.Sprintf("%s against %s", msg, e.Server)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s - %v", msg, e.Err)
	}
	if e.Output != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Output)
	}
	return msg
}

func (e *AuthenticationError) Unwrap() error {
	return e.Err
}

// ApplyError is returned when the manifest is malformed or rejected by the cluster,
// or the DevWorkspace operator reported the workspace as failed
type ApplyError struct {
	Namespace string
	Name      string
	Output    string
	Err       error
}

func (e *ApplyError) Error() string {
	msg := fmt.Sprintf("failed to apply devworkspace %s/%s", e.Namespace, e.Name)
	if e.Err != nil {
		msg = fmt.Sprintf("%s - %v", msg, e.Err)
	}
	if e.Output != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Output)
	}
	return msg
}

func (e *ApplyError) Unwrap() error {
	return e.Err
}

// ProvisioningTimeoutError is returned when the DevWorkspace didn't become ready within the timeout
type ProvisioningTimeoutError struct {
	Namespace string
	Name      string
	Elapsed   time.Duration
}

func (e *ProvisioningTimeoutError) Error() string {
	return fmt.Sprintf("devworkspace %s/%s was not running after waiting %s", e.Namespace, e.Name, e.Elapsed)
}

func (e *ProvisioningTimeoutError) Unwrap() error {
	return context.DeadlineExceeded
}

// IsAuthenticationError returns true if the error, or any error it wraps, is an AuthenticationError
func IsAuthenticationError(err error) bool {
	var target *AuthenticationError
	return errors.As(err, &target)
}

// IsApplyError returns true if the error, or any error it wraps, is an ApplyError
func IsApplyError(err error) bool {
	var target *ApplyError
	return errors.As(err, &target)
}

// IsProvisioningTimeoutError returns true if the error, or any error it wraps, is a ProvisioningTimeoutError
func IsProvisioningTimeoutError(err error) bool {
	var target *ProvisioningTimeoutError
	return errors.As(err, &target)
}
