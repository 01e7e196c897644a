package apitest

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/eclipse-che/apitest/pkg/cli"
	"github.com/eclipse-che/apitest/pkg/env"
	"github.com/eclipse-che/apitest/pkg/logger"
	"github.com/eclipse-che/apitest/pkg/manifest"
	"github.com/eclipse-che/apitest/pkg/terminal"
)

func init() {
	logger.DisableLogging = true
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		env.Kubeconfig, env.CommandLineTool, env.BaseURL, env.APIServerURL,
		env.OCPUsername, env.OCPPassword, env.OCPToken,
		env.WorkspaceNamespace, env.WorkspaceName, env.WorkspaceTimeout,
		env.KeepWorkspace, env.ExecChannel, env.UDIImage,
	} {
		t.Setenv(name, "")
	}
}

func newTestFramework(t *testing.T, binary string, opts ...Option) (*Framework, *cli.FakeRunner) {
	t.Helper()
	clearEnv(t)

	runner := &cli.FakeRunner{}
	opts = append([]Option{WithTool(cli.NewTool(binary, runner, "")), WithInterval(time.Millisecond)}, opts...)
	f, err := New("admin-devspaces", "empty", opts...)
	if err != nil {
		t.Fatalf("Failed to create framework - %v", err)
	}
	return f, runner
}

func defaultManifest(t *testing.T) string {
	t.Helper()
	text, err := manifest.Render(manifest.Default())
	if err != nil {
		t.Fatalf("Failed to render manifest - %v", err)
	}
	return text
}

func phase(p string) cli.Response {
	return cli.Response{Result: cli.Result{Stdout: `{"apiVersion":"workspace.devfile.io/v1alpha2","kind":"DevWorkspace","metadata":{"name":"empty"},"status":{"phase":"` + p + `","message":"details"}}`}}
}

func TestNew_Defaults(t *testing.T) {
	clearEnv(t)

	f, err := New("", "", WithTool(cli.NewTool("oc", &cli.FakeRunner{}, "")))
	if err != nil {
		t.Fatalf("Not expecting an error - %v", err)
	}
	if f.Namespace() != "admin-devspaces" {
		t.Errorf("Unexpected namespace. Expected: %s, Actual: %s", "admin-devspaces", f.Namespace())
	}
	if f.WorkspaceName() != "empty" {
		t.Errorf("Unexpected workspace name. Expected: %s, Actual: %s", "empty", f.WorkspaceName())
	}
	if f.timeout != 6*time.Minute {
		t.Errorf("Unexpected timeout. Expected: %s, Actual: %s", 6*time.Minute, f.timeout)
	}
}

func TestNew_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(env.WorkspaceNamespace, "user-devspaces")
	t.Setenv(env.WorkspaceName, "clone-test")
	t.Setenv(env.WorkspaceTimeout, "90s")
	t.Setenv(env.KeepWorkspace, "true")

	f, err := New("", "", WithTool(cli.NewTool("kubectl", &cli.FakeRunner{}, "")))
	if err != nil {
		t.Fatalf("Not expecting an error - %v", err)
	}
	if f.Namespace() != "user-devspaces" || f.WorkspaceName() != "clone-test" {
		t.Errorf("Unexpected session target %s/%s", f.Namespace(), f.WorkspaceName())
	}
	if f.timeout != 90*time.Second {
		t.Errorf("Unexpected timeout. Expected: %s, Actual: %s", 90*time.Second, f.timeout)
	}
	if !f.keepWorkspace {
		t.Errorf("Expected the workspace to be kept")
	}

	t.Setenv(env.WorkspaceTimeout, "soon")
	if _, err := New("", ""); err == nil {
		t.Errorf("Was expecting an error for an invalid timeout")
	}
}

func TestNew_SessionKubeconfig(t *testing.T) {
	clearEnv(t)
	source := filepath.Join(t.TempDir(), "kubeconfig")
	if err := os.WriteFile(source, []byte("apiVersion: v1\nkind: Config\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(env.Kubeconfig, source)

	runner := &cli.FakeRunner{}
	f, err := New("", "", WithRunner(runner))
	if err != nil {
		t.Fatalf("Not expecting an error - %v", err)
	}

	session := f.KubeconfigPath()
	if session == source || session == "" {
		t.Fatalf("Expected a private session kubeconfig, got %s", session)
	}
	content, err := os.ReadFile(session)
	if err != nil || string(content) != "apiVersion: v1\nkind: Config\n" {
		t.Errorf("Session kubeconfig should be a copy of the source - %v", err)
	}

	_, _ = f.Tool().Run(context.Background(), "whoami")
	calls := runner.Calls()
	if len(calls) != 1 || len(calls[0].Env) != 1 || calls[0].Env[0] != "KUBECONFIG="+session {
		t.Errorf("Expected the CLI to use the session kubeconfig, got %v", calls)
	}

	if err := f.Close(); err != nil {
		t.Errorf("Not expecting an error - %v", err)
	}
	if _, err := os.Stat(session); !os.IsNotExist(err) {
		t.Errorf("Session kubeconfig should be removed on Close")
	}
}

func TestNew_KubectlUsesKubeconfigDirectly(t *testing.T) {
	clearEnv(t)
	t.Setenv(env.Kubeconfig, "/tmp/some-kubeconfig")
	t.Setenv(env.CommandLineTool, "kubectl")

	f, err := New("", "", WithRunner(&cli.FakeRunner{}))
	if err != nil {
		t.Fatalf("Not expecting an error - %v", err)
	}
	if f.KubeconfigPath() != "/tmp/some-kubeconfig" {
		t.Errorf("Unexpected kubeconfig. Expected: %s, Actual: %s", "/tmp/some-kubeconfig", f.KubeconfigPath())
	}
	if err := f.Close(); err != nil {
		t.Errorf("Close should not touch a kubeconfig it didn't create - %v", err)
	}
}

func TestLogin_OpenShift(t *testing.T) {
	f, runner := newTestFramework(t, "oc")
	t.Setenv(env.BaseURL, "https://devspaces.apps.cluster.example.com/dashboard/")
	t.Setenv(env.OCPUsername, "admin")
	t.Setenv(env.OCPPassword, "s3cret")
	runner.On([]string{"auth", "can-i"}, cli.Response{Result: cli.Result{Stdout: "yes\n"}})

	if err := f.Login(context.Background()); err != nil {
		t.Fatalf("Not expecting an error - %v", err)
	}

	logins := runner.CallsWithPrefix("login")
	if len(logins) != 1 {
		t.Fatalf("Unexpected number of logins. Expected: %d, Actual: %d", 1, len(logins))
	}
	login := logins[0]
	if !login.Sensitive {
		t.Errorf("Login should not log its arguments")
	}
	expected := []string{
		"login",
		"--server=https://api.cluster.example.com:6443",
		"--username=admin",
		"--password=s3cret",
		"--insecure-skip-tls-verify=true",
	}
	if strings.Join(login.Args, " ") != strings.Join(expected, " ") {
		t.Errorf("Unexpected login args. Expected: %v, Actual: %v", expected, login.Args)
	}
	if strings.Contains(login.String(), "s3cret") {
		t.Errorf("Password should be redacted - %s", login.String())
	}
}

func TestLogin_Token(t *testing.T) {
	f, runner := newTestFramework(t, "oc")
	t.Setenv(env.APIServerURL, "https://api.example.com:6443")
	t.Setenv(env.OCPToken, "sha256~abc")
	runner.On([]string{"auth", "can-i"}, cli.Response{Result: cli.Result{Stdout: "yes"}})

	if err := f.Login(context.Background()); err != nil {
		t.Fatalf("Not expecting an error - %v", err)
	}
	login := runner.CallsWithPrefix("login")[0]
	if login.Args[1] != "--server=https://api.example.com:6443" || login.Args[2] != "--token=sha256~abc" {
		t.Errorf("Unexpected login args %v", login.Args)
	}
}

func TestLogin_Failures(t *testing.T) {
	tests := []struct {
		name   string
		binary string
		env    map[string]string
		script func(*cli.FakeRunner)
	}{
		{
			name:   "no server",
			binary: "oc",
			env:    map[string]string{env.OCPUsername: "admin", env.OCPPassword: "pw"},
		},
		{
			name:   "no credentials",
			binary: "oc",
			env:    map[string]string{env.APIServerURL: "https://api.example.com:6443"},
		},
		{
			name:   "credentials rejected",
			binary: "oc",
			env:    map[string]string{env.APIServerURL: "https://api.example.com:6443", env.OCPUsername: "admin", env.OCPPassword: "wrong"},
			script: func(r *cli.FakeRunner) {
				r.On([]string{"login"}, cli.Response{Result: cli.Result{Stderr: "Login failed (401 Unauthorized)", ExitCode: 1}})
			},
		},
		{
			name:   "no access to namespace",
			binary: "kubectl",
			script: func(r *cli.FakeRunner) {
				r.On([]string{"auth", "can-i"}, cli.Response{Result: cli.Result{Stdout: "no", ExitCode: 1}})
			},
		},
		{
			name:   "cli missing",
			binary: "kubectl",
			script: func(r *cli.FakeRunner) {
				r.On([]string{"auth", "can-i"}, cli.Response{Result: cli.Result{ExitCode: -1}, Err: errors.New("executable file not found in $PATH")})
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f, runner := newTestFramework(t, tc.binary)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			if tc.script != nil {
				tc.script(runner)
			}

			err := f.Login(context.Background())
			if !IsAuthenticationError(err) {
				t.Errorf("Was expecting an AuthenticationError, got %v", err)
			}
		})
	}
}

func TestAPIServerFromBaseURL(t *testing.T) {
	tests := []struct {
		baseURL     string
		expected    string
		expectError bool
	}{
		{baseURL: "https://devspaces.apps.ocp.example.com", expected: "https://api.ocp.example.com:6443"},
		{baseURL: "https://devspaces.apps.ocp.example.com/dashboard/", expected: "https://api.ocp.example.com:6443"},
		{baseURL: "https://che-eclipse-che.apps.crc.testing", expected: "https://api.crc.testing:6443"},
		{baseURL: "https://che.example.com", expectError: true},
	}

	for _, tc := range tests {
		actual, err := apiServerFromBaseURL(tc.baseURL)
		if tc.expectError {
			if err == nil {
				t.Errorf("Was expecting an error for %s", tc.baseURL)
			}
			continue
		}
		if err != nil {
			t.Errorf("Not expecting an error - %v", err)
		}
		if actual != tc.expected {
			t.Errorf("Unexpected api-server. Expected: %s, Actual: %s", tc.expected, actual)
		}
	}
}

func TestApplyAndWait(t *testing.T) {
	f, runner := newTestFramework(t, "oc")
	runner.On([]string{"get", "devworkspace"}, phase("Starting"), phase("Starting"), phase("Running"))
	text := defaultManifest(t)

	if err := f.ApplyAndWait(context.Background(), text); err != nil {
		t.Fatalf("Not expecting an error - %v", err)
	}

	applies := runner.CallsWithPrefix("apply")
	if len(applies) != 1 {
		t.Fatalf("Unexpected number of applies. Expected: %d, Actual: %d", 1, len(applies))
	}
	if applies[0].Stdin != text {
		t.Errorf("Manifest should be applied verbatim")
	}
	if strings.Join(applies[0].Args, " ") != "apply -n admin-devspaces -f -" {
		t.Errorf("Unexpected apply args %v", applies[0].Args)
	}
	if polls := len(runner.CallsWithPrefix("get", "devworkspace", "empty")); polls != 3 {
		t.Errorf("Unexpected number of polls. Expected: %d, Actual: %d", 3, polls)
	}
	if f.Manifest() == nil || f.Manifest().Raw != text {
		t.Errorf("Applied manifest should be kept on the session")
	}
}

func TestApplyAndWait_Errors(t *testing.T) {
	tests := []struct {
		name          string
		manifest      func(t *testing.T) string
		script        func(*cli.FakeRunner)
		opts          []Option
		expectTimeout bool
		expectApplied bool
	}{
		{
			name:     "malformed manifest",
			manifest: func(t *testing.T) string { return "kind: [" },
		},
		{
			name: "wrong workspace",
			manifest: func(t *testing.T) string {
				text, _ := manifest.Render(manifest.ForWorkspace("other"))
				return text
			},
		},
		{
			name:     "rejected by the cluster",
			manifest: defaultManifest,
			script: func(r *cli.FakeRunner) {
				r.On([]string{"apply"}, cli.Response{Result: cli.Result{Stderr: "error: the server doesn't have a resource type \"DevWorkspace\"", ExitCode: 1}})
			},
			expectApplied: true,
		},
		{
			name:     "workspace failed",
			manifest: defaultManifest,
			script: func(r *cli.FakeRunner) {
				r.On([]string{"get", "devworkspace"}, phase("Starting"), phase("Failed"))
			},
			expectApplied: true,
		},
		{
			name:     "never running",
			manifest: defaultManifest,
			script: func(r *cli.FakeRunner) {
				r.On([]string{"get", "devworkspace"}, phase("Starting"))
			},
			opts:          []Option{WithTimeout(50 * time.Millisecond), WithInterval(5 * time.Millisecond)},
			expectTimeout: true,
			expectApplied: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f, runner := newTestFramework(t, "oc", tc.opts...)
			if tc.script != nil {
				tc.script(runner)
			}

			err := f.ApplyAndWait(context.Background(), tc.manifest(t))
			if tc.expectTimeout {
				if !IsProvisioningTimeoutError(err) {
					t.Fatalf("Was expecting a ProvisioningTimeoutError, got %v", err)
				}
				if !errors.Is(err, context.DeadlineExceeded) {
					t.Errorf("Timeout should wrap context.DeadlineExceeded")
				}
				if !strings.Contains(err.Error(), "admin-devspaces/empty") {
					t.Errorf("Timeout should name the workspace - %s", err)
				}
			} else if !IsApplyError(err) {
				t.Errorf("Was expecting an ApplyError, got %v", err)
			}

			if applied := len(runner.CallsWithPrefix("apply")) == 1; applied != tc.expectApplied {
				t.Errorf("Unexpected apply. Expected: %t, Actual: %t", tc.expectApplied, applied)
			}
		})
	}
}

// hangingRunner never answers `get` until the context of the call is done
type hangingRunner struct {
	cli.FakeRunner
}

func (r *hangingRunner) Run(ctx context.Context, cmd cli.Command) (cli.Result, error) {
	if len(cmd.Args) > 0 && cmd.Args[0] == "get" {
		<-ctx.Done()
		return cli.Result{ExitCode: -1}, ctx.Err()
	}
	return r.FakeRunner.Run(ctx, cmd)
}

func TestApplyAndWait_HangingStatusRead(t *testing.T) {
	clearEnv(t)
	runner := &hangingRunner{}
	f, err := New("admin-devspaces", "empty",
		WithTool(cli.NewTool("oc", runner, "")),
		WithTimeout(100*time.Millisecond),
		WithInterval(time.Millisecond),
	)
	if err != nil {
		t.Fatalf("Failed to create framework - %v", err)
	}

	text := defaultManifest(t)
	done := make(chan error, 1)
	go func() {
		done <- f.ApplyAndWait(context.Background(), text)
	}()

	select {
	case err := <-done:
		if !IsProvisioningTimeoutError(err) {
			t.Errorf("Was expecting a ProvisioningTimeoutError, got %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("ApplyAndWait didn't return within its timeout")
	}
}

func TestDelete(t *testing.T) {
	f, runner := newTestFramework(t, "oc")
	runner.On([]string{"get", "devworkspace"}, phase("Running"))
	if err := f.ApplyAndWait(context.Background(), defaultManifest(t)); err != nil {
		t.Fatalf("Not expecting an error - %v", err)
	}

	if err := f.Delete(context.Background()); err != nil {
		t.Fatalf("Not expecting an error - %v", err)
	}

	deletes := runner.CallsWithPrefix("delete")
	expected := []string{
		"delete devworkspace empty -n admin-devspaces --ignore-not-found",
		"delete devworkspacetemplate che-code-empty -n admin-devspaces --ignore-not-found",
	}
	if len(deletes) != len(expected) {
		t.Fatalf("Unexpected number of deletes. Expected: %d, Actual: %d", len(expected), len(deletes))
	}
	for i := range expected {
		if actual := strings.Join(deletes[i].Args, " "); actual != expected[i] {
			t.Errorf("Unexpected delete. Expected: %s, Actual: %s", expected[i], actual)
		}
	}
}

func TestDelete_WithoutManifest(t *testing.T) {
	f, runner := newTestFramework(t, "oc")

	if err := f.Delete(context.Background()); err != nil {
		t.Fatalf("Not expecting an error - %v", err)
	}
	deletes := runner.CallsWithPrefix("delete", "devworkspace", "empty")
	if len(deletes) != 1 {
		t.Errorf("Expected the session workspace to be deleted")
	}
}

func TestDelete_AfterRejectedApply(t *testing.T) {
	f, runner := newTestFramework(t, "oc")
	runner.On([]string{"apply"}, cli.Response{Result: cli.Result{Stderr: "denied", ExitCode: 1}})

	_ = f.ApplyAndWait(context.Background(), defaultManifest(t))
	_ = f.Delete(context.Background())

	if len(runner.CallsWithPrefix("delete")) != 2 {
		t.Errorf("Expected every resource of the manifest to be deleted")
	}
}

func TestLoadManifest(t *testing.T) {
	f, runner := newTestFramework(t, "oc")

	m, err := f.LoadManifest(context.Background(), defaultManifest(t))
	if err != nil {
		t.Fatalf("Not expecting an error - %v", err)
	}
	if f.Manifest() != m {
		t.Errorf("Expected the loaded manifest to be the manifest of the session")
	}
	if len(runner.Calls()) != 0 {
		t.Errorf("Not expecting the cluster CLI to be called. Calls: %d", len(runner.Calls()))
	}

	_ = f.Delete(context.Background())
	if len(runner.CallsWithPrefix("delete")) != 2 {
		t.Errorf("Expected every resource of the loaded manifest to be deleted")
	}
}

func TestLoadManifest_OtherWorkspace(t *testing.T) {
	f, _ := newTestFramework(t, "oc")
	text, err := manifest.Render(manifest.ForWorkspace("other"))
	if err != nil {
		t.Fatalf("Failed to render manifest - %v", err)
	}

	_, err = f.LoadManifest(context.Background(), text)
	if !IsApplyError(err) {
		t.Errorf("Expected an ApplyError. Actual: %v", err)
	}
	if f.Manifest() != nil {
		t.Errorf("Not expecting a manifest to be set")
	}
}

func TestDelete_Keep(t *testing.T) {
	f, runner := newTestFramework(t, "oc", WithKeepWorkspace(true))

	if err := f.Delete(context.Background()); err != nil {
		t.Fatalf("Not expecting an error - %v", err)
	}
	if len(runner.CallsWithPrefix("delete")) != 0 {
		t.Errorf("Nothing should be deleted when keeping the workspace")
	}
}

func TestDelete_Failures(t *testing.T) {
	f, runner := newTestFramework(t, "oc")
	runner.On([]string{"get", "devworkspace"}, phase("Running"))
	runner.On([]string{"delete", "devworkspace"}, cli.Response{Result: cli.Result{Stderr: "Unable to connect to the server", ExitCode: 1}})
	if err := f.ApplyAndWait(context.Background(), defaultManifest(t)); err != nil {
		t.Fatalf("Not expecting an error - %v", err)
	}

	err := f.Delete(context.Background())
	if err == nil || !strings.Contains(err.Error(), "Unable to connect to the server") {
		t.Errorf("Was expecting the delete failure to be returned, got %v", err)
	}
	if len(runner.CallsWithPrefix("delete")) != 2 {
		t.Errorf("Expected deletion to continue after a failure")
	}
}

func TestWithWorkspace_DeletesExactlyOnce(t *testing.T) {
	bodyErr := errors.New("assertion failed")

	tests := []struct {
		name        string
		script      func(*cli.FakeRunner)
		body        func(context.Context, *terminal.ContainerTerminal) error
		expectedErr func(error) bool
		expectPanic bool
	}{
		{
			name:        "success",
			body:        func(context.Context, *terminal.ContainerTerminal) error { return nil },
			expectedErr: func(err error) bool { return err == nil },
		},
		{
			name:        "body fails",
			body:        func(context.Context, *terminal.ContainerTerminal) error { return bodyErr },
			expectedErr: func(err error) bool { return errors.Is(err, bodyErr) },
		},
		{
			name: "body fails and teardown fails",
			script: func(r *cli.FakeRunner) {
				r.On([]string{"delete"}, cli.Response{Result: cli.Result{Stderr: "boom", ExitCode: 1}})
			},
			body:        func(context.Context, *terminal.ContainerTerminal) error { return bodyErr },
			expectedErr: func(err error) bool { return errors.Is(err, bodyErr) },
		},
		{
			name: "apply fails",
			script: func(r *cli.FakeRunner) {
				r.On([]string{"apply"}, cli.Response{Result: cli.Result{Stderr: "denied", ExitCode: 1}})
			},
			body:        func(context.Context, *terminal.ContainerTerminal) error { return nil },
			expectedErr: IsApplyError,
		},
		{
			name:        "body panics",
			body:        func(context.Context, *terminal.ContainerTerminal) error { panic("unexpected") },
			expectPanic: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f, runner := newTestFramework(t, "oc")
			runner.On([]string{"get", "devworkspace"}, phase("Running"))
			if tc.script != nil {
				tc.script(runner)
			}

			var err error
			panicked := func() (p bool) {
				defer func() {
					if recover() != nil {
						p = true
					}
				}()
				err = f.WithWorkspace(context.Background(), defaultManifest(t), tc.body)
				return false
			}()

			if panicked != tc.expectPanic {
				t.Errorf("Unexpected panic state. Expected: %t, Actual: %t", tc.expectPanic, panicked)
			}
			if tc.expectedErr != nil && !tc.expectedErr(err) {
				t.Errorf("Unexpected error %v", err)
			}
			if deletes := len(runner.CallsWithPrefix("delete", "devworkspace", "empty")); deletes != 1 {
				t.Errorf("Unexpected number of teardowns. Expected: %d, Actual: %d", 1, deletes)
			}
		})
	}
}

func TestTerminal(t *testing.T) {
	f, runner := newTestFramework(t, "oc")

	if _, err := f.Terminal(""); err == nil {
		t.Errorf("Was expecting an error without an applied manifest")
	}

	runner.On([]string{"get", "devworkspace"}, phase("Running"))
	if err := f.ApplyAndWait(context.Background(), defaultManifest(t)); err != nil {
		t.Fatalf("Not expecting an error - %v", err)
	}

	term, err := f.Terminal("")
	if err != nil {
		t.Fatalf("Not expecting an error - %v", err)
	}
	if term.Container() != "che-code-runtime-description" {
		t.Errorf("Unexpected container. Expected: %s, Actual: %s", "che-code-runtime-description", term.Container())
	}

	f.execChannel = "carrier-pigeon"
	if _, err := f.Terminal("tools"); err == nil {
		t.Errorf("Was expecting an error for an unknown exec channel")
	}
}
