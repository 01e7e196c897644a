package api

import (
	"fmt"
	"path"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/eclipse-che/apitest/pkg/env"
	"github.com/eclipse-che/apitest/pkg/failurehandler"
	"github.com/eclipse-che/apitest/pkg/gitrepo"
	"github.com/eclipse-che/apitest/pkg/logger"
	"github.com/eclipse-che/apitest/pkg/manifest"
	"github.com/eclipse-che/apitest/pkg/scenario"
	"github.com/eclipse-che/apitest/pkg/terminal"
	"github.com/eclipse-che/apitest/pkg/utils"
)

const gitRepository = "https://github.com/crw-qe/web-nodejs-sample"

var _ = Describe(fmt.Sprintf("Test cloning of repo %q into empty workspace", gitRepository), Ordered, func() {
	var (
		term              *terminal.ContainerTerminal
		containerWorkDir  string
		clonedProjectName = gitrepo.ProjectName(gitRepository)
		markerFile        = utils.GetEnvOrDefault(env.ProjectRootFileName, env.DefaultProjectRootFileName)
	)

	BeforeAll(func() {
		text, err := manifest.Render(manifest.Default())
		Expect(err).NotTo(HaveOccurred())

		Expect(framework.Login(ctx)).To(Succeed())
		Expect(framework.ApplyAndWait(ctx, text)).To(Succeed(), failurehandler.WorkspaceIssues(framework))

		term, err = framework.Terminal("")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterAll(func() {
		if err := framework.Delete(ctx); err != nil {
			logger.Warn("Failed to delete workspace - %v", err)
		}
	})

	Describe("Clone public repo without previous setup", func() {
		It("should clone the public repo", func() {
			pwd, err := term.Pwd(ctx)
			Expect(err).NotTo(HaveOccurred(), failurehandler.ContainersNotReady(framework))
			containerWorkDir = pwd.FirstLine()

			cloneOutput, err := term.GitClone(ctx, gitRepository)
			Expect(err).NotTo(HaveOccurred())
			Expect(scenario.ClonedSuccessfully(cloneOutput)).To(BeTrue(),
				failurehandler.Bundle(
					failurehandler.Wrap(func() { logger.Log("git clone output: %s", cloneOutput.Combined()) }),
					failurehandler.TerminalIssues(term, containerWorkDir),
				),
			)
		})

		It("should have created the project", func() {
			ls, err := term.Ls(ctx, "")
			Expect(err).NotTo(HaveOccurred())
			Expect(ls.Stdout).To(ContainSubstring(clonedProjectName))
		})

		It("should have imported the files", func() {
			ls, err := term.Ls(ctx, path.Join(containerWorkDir, clonedProjectName))
			Expect(err).NotTo(HaveOccurred())
			Expect(ls.Stdout).To(ContainSubstring(markerFile))
		})
	})
})
