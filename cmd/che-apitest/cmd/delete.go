package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the resources of the workspace manifest",
	Args:  cobra.NoArgs,
	RunE:  runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
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
	if _, err := framework.LoadManifest(ctx, text); err != nil {
		return err
	}
	if err := framework.Login(ctx); err != nil {
		return err
	}
	if err := framework.Delete(ctx); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "devworkspace %s/%s deleted\n", framework.Namespace(), framework.WorkspaceName())
	return nil
}
