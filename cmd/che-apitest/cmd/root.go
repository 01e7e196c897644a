package cmd

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/eclipse-che/apitest"
	"github.com/eclipse-che/apitest/pkg/logger"
	"github.com/eclipse-che/apitest/pkg/manifest"
)

var (
	namespace     string
	workspaceName string
	manifestFile  string
	timeout       time.Duration
	keepWorkspace bool
	quiet         bool
)

var rootCmd = &cobra.Command{
	Use:   "che-apitest",
	Short: "Run DevWorkspace API tests against a Dev Spaces cluster",
	Long: `che-apitest provisions a DevWorkspace with the cluster CLI (oc or kubectl),
runs commands in its container and removes it again.

The cluster and credentials are taken from the environment:
  E2E_KUBECONFIG, KUBERNETES_COMMAND_LINE_TOOL, TS_SELENIUM_BASE_URL,
  TS_SELENIUM_OCP_USERNAME, TS_SELENIUM_OCP_PASSWORD, TS_SELENIUM_OCP_TOKEN`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.LogWriter = os.Stderr
		logger.DisableLogging = quiet
	},
}

// Execute runs the command line
func Execute() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&namespace, "namespace", "n", "", "Namespace of the workspace (default $E2E_WORKSPACE_NAMESPACE or admin-devspaces)")
	rootCmd.PersistentFlags().StringVarP(&workspaceName, "workspace", "w", "", "Name of the DevWorkspace (default $E2E_WORKSPACE_NAME or empty)")
	rootCmd.PersistentFlags().StringVarP(&manifestFile, "file", "f", "", "Manifest to use instead of the empty workspace")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Max time to wait for the workspace to be running (default $E2E_WORKSPACE_TIMEOUT or 6m)")
	rootCmd.PersistentFlags().BoolVar(&keepWorkspace, "keep", false, "Don't delete the workspace")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Disable logging")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// newFramework creates a Framework from the flags. Close must be called on the returned Framework.
func newFramework() (*apitest.Framework, error) {
	opts := []apitest.Option{}
	if timeout > 0 {
		opts = append(opts, apitest.WithTimeout(timeout))
	}
	if keepWorkspace {
		opts = append(opts, apitest.WithKeepWorkspace(true))
	}
	return apitest.New(namespace, workspaceName, opts...)
}

// manifestText returns the contents of the manifest file, or the empty workspace manifest for the workspace
func manifestText(workspace string) (string, error) {
	if manifestFile != "" {
		content, err := os.ReadFile(manifestFile)
		if err != nil {
			return "", err
		}
		return string(content), nil
	}
	return manifest.Render(manifest.ForWorkspace(workspace))
}
