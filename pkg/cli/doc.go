// package cli runs external command-line tools and captures what they print.
//
// A [Runner] executes a [Command] and returns a [Result] holding the captured stdout, stderr and
// exit code. A non-zero exit code isn't an error: callers decide what a failing command means.
// An error is only returned if the process couldn't be started or the context ended first.
//
// [Tool] binds a Runner to the cluster command-line tool (`oc` or `kubectl`) and a session kubeconfig
// so that every invocation made through it shares the same, explicitly owned, login state.
//
// # Example
//
//	tool := cli.NewTool("oc", cli.NewProcessRunner(), "/tmp/kubeconfig-session")
//
//	res, err := tool.Run(ctx, "get", "devworkspaces", "-n", "admin-devspaces")
//	if err != nil {
//		return err
//	}
//	if !res.Succeeded() {
//		return fmt.Errorf("listing workspaces failed - %s", res.Stderr)
//	}
package cli
