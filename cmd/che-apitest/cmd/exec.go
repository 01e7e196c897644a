package cmd

import (
	"fmt"

	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"
)

var (
	container string
	workDir   string
)

var execCmd = &cobra.Command{
	Use:   "exec -- <command> [args...]",
	Short: "Run a command in the container of a running workspace",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runExec,
}

func init() {
	execCmd.Flags().StringVarP(&container, "container", "c", "", "Container to run the command in (default the main container of the manifest)")
	execCmd.Flags().StringVar(&workDir, "dir", "", "Directory to run the command from")
	rootCmd.AddCommand(execCmd)
}

func runExec(cmd *cobra.Command, args []string) error {
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

	term, err := framework.Terminal(container)
	if err != nil {
		return err
	}

	// A single argument is taken as a shell command line
	commandLine := args[0]
	if len(args) > 1 {
		commandLine = shellquote.Join(args...)
	}

	res, err := term.RunCommandInDir(ctx, workDir, commandLine)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), res.Stdout)
	fmt.Fprint(cmd.ErrOrStderr(), res.Stderr)
	if !res.Succeeded() {
		// The output has been printed already
		cmd.SilenceErrors = true
		return &ExitCodeError{Code: res.ExitCode}
	}
	return nil
}
