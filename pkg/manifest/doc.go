// package manifest provides the DevWorkspace manifest used to provision the test workspace.
//
// The manifest is a multi-document YAML made of a DevWorkspaceTemplate, describing the editor and the
// runtime container, and a DevWorkspace that references it as its editor contribution.
//
// # Example
//
//	text, err := manifest.Render(manifest.Default())
//	if err != nil {
//		return err
//	}
//	m, err := manifest.Parse(ctx, text)
//	if err != nil {
//		return err
//	}
//	fmt.Println(m.DevWorkspace().Name, m.MainContainer())
package manifest
