package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eclipse-che/apitest/pkg/env"
	"github.com/eclipse-che/apitest/pkg/manifest"
	"github.com/eclipse-che/apitest/pkg/utils"
)

var image string

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Print the empty workspace manifest",
	Args:  cobra.NoArgs,
	RunE:  runManifest,
}

func init() {
	manifestCmd.Flags().StringVar(&image, "image", "", "Runtime container image (default $TS_API_TEST_UDI_IMAGE)")
	rootCmd.AddCommand(manifestCmd)
}

func runManifest(cmd *cobra.Command, args []string) error {
	values := manifest.ForWorkspace(utils.GetEnvOrDefault(env.WorkspaceName, env.DefaultWorkspaceName))
	if workspaceName != "" {
		values = manifest.ForWorkspace(workspaceName)
	}
	if image != "" {
		values.Image = image
	}

	text, err := manifest.Render(values)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), text)
	return nil
}
