package apitest

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/eclipse-che/apitest/pkg/logger"
	"github.com/eclipse-che/apitest/pkg/manifest"
	"github.com/eclipse-che/apitest/pkg/terminal"
	"github.com/eclipse-che/apitest/pkg/wait"
)

// ApplyAndWait submits the manifest to the namespace of the session and waits for the DevWorkspace to be running.
//
// The manifest must contain exactly one DevWorkspace, named as the session's workspace.
// If the workspace isn't running before the timeout a ProvisioningTimeoutError is returned.
//
// Example:
//
//	text, _ := manifest.Render(manifest.Default())
//	err := framework.ApplyAndWait(ctx, text)
func (f *Framework) ApplyAndWait(ctx context.Context, manifestText string) error {
	// Loaded before applying so Delete can clean up whatever was partially created
	m, err := f.LoadManifest(ctx, manifestText)
	if err != nil {
		return err
	}

	f.Log("Applying %d resources", len(m.Resources))
	res, err := f.tool.RunWithInput(ctx, m.Raw, "apply", "-n", f.namespace, "-f", "-")
	if err != nil {
		return &ApplyError{Namespace: f.namespace, Name: f.workspaceName, Err: err}
	}
	if !res.Succeeded() {
		return &ApplyError{Namespace: f.namespace, Name: f.workspaceName, Output: strings.TrimSpace(res.Combined())}
	}

	return f.WaitForWorkspaceRunning(ctx)
}

// LoadManifest parses and validates the manifest and makes it the manifest of the session without applying it.
// Delete and Terminal then act on its resources.
func (f *Framework) LoadManifest(ctx context.Context, manifestText string) (*manifest.Manifest, error) {
	m, err := manifest.Parse(ctx, manifestText)
	if err != nil {
		return nil, &ApplyError{Namespace: f.namespace, Name: f.workspaceName, Err: err}
	}
	if err := m.Validate(); err != nil {
		return nil, &ApplyError{Namespace: f.namespace, Name: f.workspaceName, Err: err}
	}
	if name := m.DevWorkspace().Name; name != f.workspaceName {
		return nil, &ApplyError{Namespace: f.namespace, Name: f.workspaceName, Err: fmt.Errorf("manifest describes devworkspace %s", name)}
	}

	f.setManifest(m)
	return m, nil
}

// WaitForWorkspaceRunning polls the DevWorkspace until it reports the `Running` phase
//
// A timeout can be provided via the given `ctx` value by using `context.WithTimeout()`, otherwise the
// timeout of the Framework (`E2E_WORKSPACE_TIMEOUT`, default 6 minutes) is used.
// The status is read with the cluster CLI, or the Kubernetes API when that is the exec channel.
func (f *Framework) WaitForWorkspaceRunning(ctx context.Context) error {
	start := time.Now()

	// Status reads share the deadline of the wait
	waitCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	condition := wait.IsDevWorkspaceRunning(waitCtx, f.tool, f.workspaceName, f.namespace)
	if f.execChannel == "api" {
		kubeClient, err := f.API()
		if err != nil {
			return err
		}
		condition = wait.IsDevWorkspaceRunningAPI(waitCtx, kubeClient, f.workspaceName, f.namespace)
	}

	err := wait.For(
		condition,
		wait.WithContext(waitCtx),
		wait.WithTimeout(f.timeout),
		wait.WithInterval(f.interval),
	)

	var failed *wait.WorkspaceFailedError
	switch {
	case err == nil:
		f.Log("Devworkspace running after %s", time.Since(start).Round(time.Second))
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		return &ProvisioningTimeoutError{
			Namespace: f.namespace,
			Name:      f.workspaceName,
			Elapsed:   time.Since(start).Round(time.Second),
		}
	case errors.As(err, &failed):
		return &ApplyError{Namespace: f.namespace, Name: f.workspaceName, Err: failed}
	default:
		return fmt.Errorf("failed waiting for devworkspace %s/%s - %w", f.namespace, f.workspaceName, err)
	}
}

// WaitForContainersReady waits, through the Kubernetes API, until every container of the workspace pods reports ready
func (f *Framework) WaitForContainersReady(ctx context.Context) error {
	kubeClient, err := f.API()
	if err != nil {
		return err
	}

	waitCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	return wait.ForEmpty(
		wait.AreWorkspaceContainersReadySlice(waitCtx, kubeClient, f.workspaceName, f.namespace),
		wait.WithContext(waitCtx),
		wait.WithTimeout(f.timeout),
		wait.WithInterval(f.interval),
	)
}

// Delete removes the applied resources from the namespace, in reverse order of the manifest.
// If no manifest was applied only the DevWorkspace of the session is deleted.
//
// Every failure is logged as a warning and all of them are returned joined together.
// Nothing is deleted if the Framework was told to keep the workspace.
func (f *Framework) Delete(ctx context.Context) error {
	if f.keepWorkspace {
		f.Log("Keeping devworkspace as requested")
		return nil
	}

	type target struct{ kind, name string }
	targets := []target{}
	if m := f.Manifest(); m != nil {
		for _, r := range slices.Backward(m.Resources) {
			targets = append(targets, target{kind: strings.ToLower(r.Kind), name: r.Name})
		}
	}
	if len(targets) == 0 {
		targets = append(targets, target{kind: "devworkspace", name: f.workspaceName})
	}

	var errs []error
	for _, t := range targets {
		f.Log("Deleting %s %s", t.kind, t.name)
		res, err := f.tool.Run(ctx, "delete", t.kind, t.name, "-n", f.namespace, "--ignore-not-found")
		if err == nil && !res.Succeeded() {
			err = fmt.Errorf("%s", strings.TrimSpace(res.Combined()))
		}
		if err != nil {
			logger.Warn("Failed to delete %s %s/%s - %v", t.kind, f.namespace, t.name, err)
			errs = append(errs, fmt.Errorf("failed to delete %s %s - %w", t.kind, t.name, err))
		}
	}

	return errors.Join(errs...)
}

// WithWorkspace applies the manifest, waits for the workspace and runs body with a terminal to its main container.
//
// The workspace is deleted once body returns, fails or panics, and also when applying fails.
// A failure to delete is only logged as a warning and never replaces the error of body.
func (f *Framework) WithWorkspace(ctx context.Context, manifestText string, body func(context.Context, *terminal.ContainerTerminal) error) error {
	defer func() {
		if err := f.Delete(context.WithoutCancel(ctx)); err != nil {
			logger.Warn("Teardown of devworkspace %s/%s failed - %v", f.namespace, f.workspaceName, err)
		}
	}()

	if err := f.ApplyAndWait(ctx, manifestText); err != nil {
		return err
	}

	term, err := f.Terminal("")
	if err != nil {
		return err
	}

	return body(ctx, term)
}
