// package apitest provides the main entry point to the framework for DevWorkspace API tests.
//
// The [Framework] is a session with the cluster running the DevWorkspace operator. It logs in with the cluster
// CLI (`oc` or `kubectl`), applies the workspace manifest, waits for the workspace to be running and gives access
// to a terminal in the workspace container.
//
// # Example
//
//	ctx := context.Background()
//
//	framework, err := apitest.New("admin-devspaces", "empty")
//	if err != nil {
//		panic(err)
//	}
//	defer framework.Close()
//
//	if err := framework.Login(ctx); err != nil {
//		panic(err)
//	}
//
//	text, _ := manifest.Render(manifest.Default())
//	err = framework.WithWorkspace(ctx, text, func(ctx context.Context, term *terminal.ContainerTerminal) error {
//		res, err := term.GitClone(ctx, "https://github.com/crw-qe/web-nodejs-sample")
//		// Run checks...
//		return err
//	})
//
// # Example Using Ginkgo
//
//	var _ = Describe("Clone repo", Ordered, func() {
//		BeforeAll(func() {
//			logger.LogWriter = GinkgoWriter
//
//			Expect(framework.Login(ctx)).To(Succeed())
//			Expect(framework.ApplyAndWait(ctx, text)).To(Succeed())
//		})
//
//		AfterAll(func() {
//			if err := framework.Delete(ctx); err != nil {
//				logger.Warn("Failed to delete workspace - %v", err)
//			}
//		})
//
//		It("clones the repo", func() {
//			term, err := framework.Terminal("")
//			Expect(err).NotTo(HaveOccurred())
//
//			res, err := term.GitClone(ctx, "https://github.com/crw-qe/web-nodejs-sample")
//			Expect(err).NotTo(HaveOccurred())
//			Expect(res.Combined()).To(ContainSubstring("Cloning"))
//		})
//	})
package apitest
