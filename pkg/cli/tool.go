package cli

import (
	"context"
	"fmt"
	"path/filepath"
)

// Tool is a cluster command-line tool (`oc` or `kubectl`) bound to a session kubeconfig
type Tool struct {
	Binary     string
	Kubeconfig string
	Runner     Runner
}

// NewTool returns a Tool for the given binary.
//
// If kubeconfig is not empty every invocation is run with `KUBECONFIG` pointing at it,
// leaving the kubeconfig of the calling user untouched.
func NewTool(binary string, runner Runner, kubeconfig string) *Tool {
	if runner == nil {
		runner = NewProcessRunner()
	}
	return &Tool{
		Binary:     binary,
		Kubeconfig: kubeconfig,
		Runner:     runner,
	}
}

// IsOpenShift returns true if the tool is the OpenShift client
func (t *Tool) IsOpenShift() bool {
	return filepath.Base(t.Binary) == "oc"
}

// Run invokes the tool with the given arguments
func (t *Tool) Run(ctx context.Context, args ...string) (Result, error) {
	return t.Runner.Run(ctx, t.command("", false, args))
}

// RunWithInput invokes the tool with the given arguments, passing input on stdin
func (t *Tool) RunWithInput(ctx context.Context, input string, args ...string) (Result, error) {
	return t.Runner.Run(ctx, t.command(input, false, args))
}

// RunSensitive invokes the tool without logging its arguments.
// Used for commands that carry credentials.
func (t *Tool) RunSensitive(ctx context.Context, args ...string) (Result, error) {
	return t.Runner.Run(ctx, t.command("", true, args))
}

func (t *Tool) command(stdin string, sensitive bool, args []string) Command {
	cmd := Command{
		Name:      t.Binary,
		Args:      args,
		Stdin:     stdin,
		Sensitive: sensitive,
	}
	if t.Kubeconfig != "" {
		cmd.Env = []string{fmt.Sprintf("KUBECONFIG=%s", t.Kubeconfig)}
	}
	return cmd
}
