package cmd

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/eclipse-che/apitest/pkg/gitrepo"
	"github.com/eclipse-che/apitest/pkg/logger"
	"github.com/eclipse-che/apitest/pkg/scenario"
)

// DefaultRepository is the repository cloned when none is given
const DefaultRepository = "https://github.com/crw-qe/web-nodejs-sample"

var (
	markerFile        string
	skipUpstreamCheck bool
)

var cloneCmd = &cobra.Command{
	Use:   "clone-repo [repository-url]",
	Short: "Create an empty workspace, clone a repository into it and check the project files, then delete the workspace",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runClone,
}

func init() {
	cloneCmd.Flags().StringVar(&markerFile, "marker", "", "File expected at the root of the cloned project (default $TS_SELENIUM_PROJECT_ROOT_FILE_NAME or devfile.yaml)")
	cloneCmd.Flags().BoolVar(&skipUpstreamCheck, "skip-upstream-check", false, "Don't check the marker file exists in the upstream GitHub repository")
	rootCmd.AddCommand(cloneCmd)
}

func runClone(cmd *cobra.Command, args []string) error {
	repoURL := DefaultRepository
	if len(args) == 1 {
		repoURL = args[0]
	}
	ctx := cmd.Context()

	framework, err := newFramework()
	if err != nil {
		return err
	}
	defer framework.Close()

	s, err := scenario.NewCloneGitRepo(framework, repoURL)
	if err != nil {
		return err
	}
	if markerFile != "" {
		s.MarkerFile = markerFile
	}
	if manifestFile != "" {
		if s.Manifest, err = manifestText(framework.WorkspaceName()); err != nil {
			return err
		}
	}

	if !skipUpstreamCheck {
		if _, _, err := gitrepo.ParseGitHubURL(repoURL); err == nil {
			entries, err := gitrepo.RootEntries(ctx, repoURL)
			if err != nil {
				logger.Log("Unable to check upstream repository, continuing - %v", err)
			} else if !slices.Contains(entries, s.MarkerFile) {
				return fmt.Errorf("%s isn't at the root of %s, set --marker", s.MarkerFile, repoURL)
			}
		}
	}

	if err := framework.Login(ctx); err != nil {
		return err
	}

	report, err := s.Run(ctx)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Reached:  %s\n", report.Reached)
	fmt.Fprintf(out, "Work dir: %s\n", report.WorkDir)
	fmt.Fprintf(out, "Project:  %s\n", report.ProjectName)
	if report.TeardownErr != nil {
		fmt.Fprintf(out, "Teardown: failed (%v)\n", report.TeardownErr)
	} else {
		fmt.Fprintf(out, "Teardown: ok\n")
	}

	return err
}
