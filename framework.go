package apitest

import (
	"fmt"
	"os"
	"sync"
	"time"

	"k8s.io/client-go/tools/clientcmd"

	"github.com/eclipse-che/apitest/pkg/cli"
	"github.com/eclipse-che/apitest/pkg/client"
	"github.com/eclipse-che/apitest/pkg/env"
	"github.com/eclipse-che/apitest/pkg/logger"
	"github.com/eclipse-che/apitest/pkg/manifest"
	"github.com/eclipse-che/apitest/pkg/terminal"
	"github.com/eclipse-che/apitest/pkg/utils"
	"github.com/eclipse-che/apitest/pkg/wait"
)

// Framework is a session with the cluster the test DevWorkspace is created in.
//
// All cluster CLI invocations made through the Framework share a private kubeconfig, so logging in
// doesn't change the context of the user running the tests.
type Framework struct {
	namespace     string
	workspaceName string

	tool           *cli.Tool
	runner         cli.Runner
	kubeconfigPath string
	ownsKubeconfig bool

	timeout       time.Duration
	interval      time.Duration
	keepWorkspace bool
	execChannel   string

	mu        sync.Mutex
	manifest  *manifest.Manifest
	apiClient *client.Client
}

// Option overrides a default setting of the Framework
type Option func(*Framework)

// WithRunner sets the Runner used to invoke the cluster CLI
func WithRunner(runner cli.Runner) Option {
	return func(f *Framework) {
		f.runner = runner
	}
}

// WithTool sets the cluster CLI to use instead of the one from `KUBERNETES_COMMAND_LINE_TOOL`
func WithTool(tool *cli.Tool) Option {
	return func(f *Framework) {
		f.tool = tool
	}
}

// WithKubeconfig uses the given kubeconfig file for the session instead of a private copy
func WithKubeconfig(path string) Option {
	return func(f *Framework) {
		f.kubeconfigPath = path
	}
}

// WithTimeout overrides how long ApplyAndWait waits for the workspace to be running
func WithTimeout(timeout time.Duration) Option {
	return func(f *Framework) {
		f.timeout = timeout
	}
}

// WithInterval overrides how often the workspace status is polled
func WithInterval(interval time.Duration) Option {
	return func(f *Framework) {
		f.interval = interval
	}
}

// WithKeepWorkspace controls whether Delete leaves the workspace in the cluster
func WithKeepWorkspace(keep bool) Option {
	return func(f *Framework) {
		f.keepWorkspace = keep
	}
}

// New initializes a new Framework for the given namespace and DevWorkspace name.
// Empty values fall back to `E2E_WORKSPACE_NAMESPACE` and `E2E_WORKSPACE_NAME`, then to `admin-devspaces` and `empty`.
//
// When the cluster CLI is `oc` a private kubeconfig is created for the session, seeded from `E2E_KUBECONFIG` if set.
// Call Close to remove it.
func New(namespace string, workspaceName string, opts ...Option) (*Framework, error) {
	if namespace == "" {
		namespace = utils.GetEnvOrDefault(env.WorkspaceNamespace, env.DefaultNamespace)
	}
	if workspaceName == "" {
		workspaceName = utils.GetEnvOrDefault(env.WorkspaceName, env.DefaultWorkspaceName)
	}

	timeout, err := utils.GetDurationEnvOrDefault(env.WorkspaceTimeout, wait.DefaultTimeout)
	if err != nil {
		return nil, err
	}

	f := &Framework{
		namespace:     namespace,
		workspaceName: workspaceName,
		timeout:       timeout,
		interval:      wait.DefaultInterval,
		keepWorkspace: utils.IsEnvSet(env.KeepWorkspace),
		execChannel:   utils.GetEnvOrDefault(env.ExecChannel, "cli"),
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.tool == nil {
		binary := utils.GetEnvOrDefault(env.CommandLineTool, env.DefaultCommandLineTool)
		if f.kubeconfigPath == "" {
			f.kubeconfigPath = os.Getenv(env.Kubeconfig)
			if binary == env.DefaultCommandLineTool {
				if err := f.createSessionKubeconfig(f.kubeconfigPath); err != nil {
					return nil, err
				}
			}
		}
		f.tool = cli.NewTool(binary, f.runner, f.kubeconfigPath)
	} else if f.kubeconfigPath == "" {
		f.kubeconfigPath = f.tool.Kubeconfig
	}

	return f, nil
}

func (f *Framework) createSessionKubeconfig(source string) error {
	var content []byte
	if source != "" {
		var err error
		content, err = os.ReadFile(source)
		if err != nil {
			return fmt.Errorf("failed to read kubeconfig %s - %v", source, err)
		}
	}

	file, err := os.CreateTemp("", "apitest-kubeconfig-")
	if err != nil {
		return fmt.Errorf("failed to create session kubeconfig - %v", err)
	}
	defer file.Close()

	if _, err := file.Write(content); err != nil {
		return fmt.Errorf("failed to write session kubeconfig - %v", err)
	}

	f.kubeconfigPath = file.Name()
	f.ownsKubeconfig = true
	return nil
}

// Close removes the private session kubeconfig, if one was created
func (f *Framework) Close() error {
	if !f.ownsKubeconfig {
		return nil
	}
	f.ownsKubeconfig = false
	return os.Remove(f.kubeconfigPath)
}

// Namespace returns the namespace the workspace is created in
func (f *Framework) Namespace() string {
	return f.namespace
}

// WorkspaceName returns the name of the DevWorkspace under test
func (f *Framework) WorkspaceName() string {
	return f.workspaceName
}

// Tool returns the cluster CLI of the session
func (f *Framework) Tool() *cli.Tool {
	return f.tool
}

// KubeconfigPath returns the kubeconfig file used by the session
func (f *Framework) KubeconfigPath() string {
	return f.kubeconfigPath
}

// Manifest returns the manifest loaded by LoadManifest or ApplyAndWait, or nil
func (f *Framework) Manifest() *manifest.Manifest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.manifest
}

func (f *Framework) setManifest(m *manifest.Manifest) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.manifest = m
}

// API returns a Kubernetes API client for the session, created on first use
func (f *Framework) API() (*client.Client, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.apiClient != nil {
		return f.apiClient, nil
	}

	path := f.kubeconfigPath
	if path == "" {
		path = clientcmd.RecommendedHomeFile
	}
	c, err := client.New(path)
	if err != nil {
		return nil, err
	}

	f.apiClient = c
	return c, nil
}

// Terminal returns a ContainerTerminal for the given container of the workspace.
// If container is empty the main container of the applied manifest is used.
//
// Commands are sent with the cluster CLI unless `E2E_EXEC_CHANNEL` is set to `api`.
func (f *Framework) Terminal(container string, opts ...terminal.Option) (*terminal.ContainerTerminal, error) {
	if container == "" {
		m := f.Manifest()
		if m == nil {
			return nil, fmt.Errorf("no manifest has been applied, a container name must be provided")
		}
		container = m.MainContainer()
		if container == "" {
			return nil, fmt.Errorf("manifest doesn't define a container to run commands in")
		}
	}

	var channel terminal.Channel
	switch f.execChannel {
	case "api":
		c, err := f.API()
		if err != nil {
			return nil, err
		}
		channel = terminal.NewAPIChannel(c, f.namespace, f.workspaceName)
	case "cli", "":
		channel = terminal.NewCLIChannel(f.tool, f.namespace, f.workspaceName)
	default:
		return nil, fmt.Errorf("unknown exec channel '%s', must be one of 'cli' or 'api'", f.execChannel)
	}

	return terminal.New(channel, container, opts...), nil
}

// Log writes out the provided message prefixed with the workspace of the session
func (f *Framework) Log(str string, args ...any) {
	logger.Log(fmt.Sprintf("[%s/%s] %s", f.namespace, f.workspaceName, str), args...)
}
