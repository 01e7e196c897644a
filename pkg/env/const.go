package env

const (
	// Kubeconfig is the environment variable pointing to the kubeconfig file that
	// will be used to connect to the cluster running the DevWorkspace operator
	Kubeconfig = "E2E_KUBECONFIG"

	// CommandLineTool is the cluster CLI binary to shell out to. Either `oc` or `kubectl`.
	CommandLineTool = "KUBERNETES_COMMAND_LINE_TOOL"

	// BaseURL is the URL of the Dev Spaces dashboard. When APIServerURL isn't set the
	// api-server address is derived from it.
	BaseURL = "TS_SELENIUM_BASE_URL"
	// APIServerURL is the api-server address used by `oc login`
	APIServerURL = "E2E_API_SERVER_URL"

	// OCPUsername is the user to log in as when using `oc`
	OCPUsername = "TS_SELENIUM_OCP_USERNAME"
	// OCPPassword is the password for OCPUsername
	OCPPassword = "TS_SELENIUM_OCP_PASSWORD" //nolint:gosec
	// OCPToken can be provided instead of a username and password
	OCPToken = "TS_SELENIUM_OCP_TOKEN" //nolint:gosec

	// UDIImage is the image used for the workspace runtime container
	UDIImage = "TS_API_TEST_UDI_IMAGE"

	// ProjectRootFileName is a file expected at the root of the cloned project
	ProjectRootFileName = "TS_SELENIUM_PROJECT_ROOT_FILE_NAME"

	// WorkspaceNamespace is the namespace the test workspace is created in
	WorkspaceNamespace = "E2E_WORKSPACE_NAMESPACE"
	// WorkspaceName is the name of the DevWorkspace to create
	WorkspaceName = "E2E_WORKSPACE_NAME"

	// WorkspaceTimeout is the max time to wait for the workspace to be running,
	// in Go duration format (e.g. `6m`)
	WorkspaceTimeout = "E2E_WORKSPACE_TIMEOUT"

	// KeepWorkspace is used to indicate if the teardown of the workspace should be
	// skipped. Setting this env var to any non-empty value will ensure the workspace
	// is kept at the end of a test run.
	KeepWorkspace = "E2E_WORKSPACE_KEEP"

	// ExecChannel selects how commands are run in the workspace container.
	// `cli` (the default) shells out to the cluster CLI, `api` uses the Kubernetes API directly.
	ExecChannel = "E2E_EXEC_CHANNEL"

	// LogFormat selects the format of the framework logs. `console` for human readable lines, JSON otherwise.
	LogFormat = "E2E_LOG_FORMAT"
)

const (
	// DefaultNamespace is used when WorkspaceNamespace isn't set
	DefaultNamespace = "admin-devspaces"
	// DefaultWorkspaceName is used when WorkspaceName isn't set
	DefaultWorkspaceName = "empty"
	// DefaultCommandLineTool is used when CommandLineTool isn't set
	DefaultCommandLineTool = "oc"
	// DefaultUDIImage is used when UDIImage isn't set
	DefaultUDIImage = "quay.io/devfile/universal-developer-image:latest"
	// DefaultProjectRootFileName is used when ProjectRootFileName isn't set
	DefaultProjectRootFileName = "devfile.yaml"
)
