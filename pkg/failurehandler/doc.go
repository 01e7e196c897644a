// package failurehandler provides functions to help with extra debugging when Gomega assertions fail
//
// # Example using Gomega's `Expect`
//
//	res, err := term.GitClone(ctx, repoURL)
//	Expect(err).NotTo(HaveOccurred(), failurehandler.WorkspaceIssues(framework))
//	Expect(res.Combined()).To(
//		ContainSubstring("Cloning"),
//		failurehandler.Bundle(
//			failurehandler.TerminalIssues(term, workDir),
//			failurehandler.WorkspaceIssues(framework),
//		),
//	)
//
// # Example using Gomega's `Eventually`
//
//	Eventually(wait.AreWorkspaceContainersReadySlice(ctx, kubeClient, "empty", "admin-devspaces")).
//		WithTimeout(5*time.Minute).
//		WithPolling(10*time.Second).
//		Should(
//			BeEmpty(),
//			failurehandler.ContainersNotReady(framework),
//		)
package failurehandler
