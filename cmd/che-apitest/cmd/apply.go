package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eclipse-che/apitest/pkg/env"
	"github.com/eclipse-che/apitest/pkg/utils"
)

var (
	waitForContainers bool
	generateName      bool
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Log in, apply the workspace manifest and wait for the workspace to be running",
	Args:  cobra.NoArgs,
	RunE:  runApply,
}

func init() {
	applyCmd.Flags().BoolVar(&waitForContainers, "wait-containers", false, "Also wait for every workspace container to be ready, using the Kubernetes API")
	applyCmd.Flags().BoolVar(&generateName, "generate-name", false, "Append a random suffix to the workspace name")
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	if generateName {
		if manifestFile != "" {
			return fmt.Errorf("--generate-name can't be used with a manifest file")
		}
		workspaceName = randomWorkspaceName()
	}

	framework, err := newFramework()
	if err != nil {
		return err
	}
	defer framework.Close()

	text, err := manifestText(framework.WorkspaceName())
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if err := framework.Login(ctx); err != nil {
		return err
	}
	if err := framework.ApplyAndWait(ctx, text); err != nil {
		return err
	}
	if waitForContainers {
		if err := framework.WaitForContainersReady(ctx); err != nil {
			return err
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "devworkspace %s/%s is running\n", framework.Namespace(), framework.WorkspaceName())
	return nil
}

// randomWorkspaceName returns the workspace name of the flags or environment followed by a random suffix
func randomWorkspaceName() string {
	base := workspaceName
	if base == "" {
		base = utils.GetEnvOrDefault(env.WorkspaceName, env.DefaultWorkspaceName)
	}
	return utils.GenerateRandomName(base)
}
