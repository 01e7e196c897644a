// package terminal runs shell commands inside a container of a running DevWorkspace.
//
// Commands are sent over a Channel, either the cluster CLI (`oc exec` / `kubectl exec`) or the Kubernetes API.
// Every command is run in a fresh shell so no state, such as the working directory, carries from one call to the next.
//
// # Example
//
//	term := terminal.New(terminal.NewCLIChannel(tool, "admin-devspaces", "empty"), "che-code-runtime-description")
//
//	pwd, err := term.Pwd(ctx)
//	if err != nil {
//		return err
//	}
//	clone, err := term.GitClone(ctx, "https://github.com/crw-qe/web-nodejs-sample")
package terminal
