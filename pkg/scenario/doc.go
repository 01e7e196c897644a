// package scenario provides the clone-git-repo scenario run against a fresh DevWorkspace.
//
// The scenario moves through the states `Uninitialized → WorkspaceReady → RepoCloned → Verified` and always ends
// in `TornDown`: the workspace is deleted exactly once whatever happened before. A failing teardown is recorded on
// the Report and logged as a warning, it never replaces the outcome of the scenario.
//
// # Example
//
//	s, err := scenario.NewCloneGitRepo(framework, "https://github.com/crw-qe/web-nodejs-sample")
//	if err != nil {
//		return err
//	}
//	report, err := s.Run(ctx)
//	if err != nil {
//		var failure *scenario.AssertionFailure
//		if errors.As(err, &failure) {
//			fmt.Println(failure.Step, failure.Expected)
//		}
//	}
//	fmt.Println(report.Reached, report.TeardownErr)
package scenario
