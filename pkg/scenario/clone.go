package scenario

import (
	"context"
	"fmt"
	"path"

	"github.com/eclipse-che/apitest/pkg/cli"
	"github.com/eclipse-che/apitest/pkg/env"
	"github.com/eclipse-che/apitest/pkg/gitrepo"
	"github.com/eclipse-che/apitest/pkg/logger"
	"github.com/eclipse-che/apitest/pkg/manifest"
	"github.com/eclipse-che/apitest/pkg/terminal"
	"github.com/eclipse-che/apitest/pkg/utils"
)

// Workspace provisions and removes the DevWorkspace the scenario runs in
type Workspace interface {
	ApplyAndWait(ctx context.Context, manifestText string) error
	Terminal(container string, opts ...terminal.Option) (*terminal.ContainerTerminal, error)
	Delete(ctx context.Context) error
}

// CloneGitRepo checks that a git repository can be cloned into an empty workspace
type CloneGitRepo struct {
	Workspace Workspace
	// Terminal is used to run commands. If nil one is requested from the Workspace for Container.
	Terminal *terminal.ContainerTerminal
	// Container commands are run in. Empty means the main container of the manifest.
	Container string
	// Manifest is the text applied to create the workspace
	Manifest string
	// RepositoryURL is the repository to clone
	RepositoryURL string
	// MarkerFile is a file expected at the root of the cloned project
	MarkerFile string
}

// Report is the outcome of a scenario run
type Report struct {
	// State is the state the scenario is in, TornDown once Run returns
	State State
	// Reached is the last state reached before teardown
	Reached     State
	WorkDir     string
	ProjectName string
	Clone       cli.Result
	TeardownErr error
}

func (r *Report) advance(s State) {
	logger.Log("Scenario state %s -> %s", r.State, s)
	r.State = s
	if s != TornDown {
		r.Reached = s
	}
}

// NewCloneGitRepo returns the scenario for the given repository using the stock empty workspace manifest
// and the marker file from `TS_SELENIUM_PROJECT_ROOT_FILE_NAME`
func NewCloneGitRepo(workspace Workspace, repositoryURL string) (*CloneGitRepo, error) {
	text, err := manifest.Render(manifest.Default())
	if err != nil {
		return nil, err
	}

	return &CloneGitRepo{
		Workspace:     workspace,
		Manifest:      text,
		RepositoryURL: repositoryURL,
		MarkerFile:    utils.GetEnvOrDefault(env.ProjectRootFileName, env.DefaultProjectRootFileName),
	}, nil
}

// Run provisions the workspace, clones the repository and checks the project is present.
// The workspace is deleted before Run returns, on every path.
func (s *CloneGitRepo) Run(ctx context.Context) (*Report, error) {
	report := &Report{
		State:       Uninitialized,
		Reached:     Uninitialized,
		ProjectName: gitrepo.ProjectName(s.RepositoryURL),
	}

	defer func() {
		if err := s.Workspace.Delete(context.WithoutCancel(ctx)); err != nil {
			report.TeardownErr = err
			logger.Warn("Teardown failed, ignoring - %v", err)
		}
		report.advance(TornDown)
	}()

	if err := s.Workspace.ApplyAndWait(ctx, s.Manifest); err != nil {
		return report, err
	}
	report.advance(WorkspaceReady)

	term := s.Terminal
	if term == nil {
		var err error
		term, err = s.Workspace.Terminal(s.Container)
		if err != nil {
			return report, err
		}
	}

	pwd, err := term.Pwd(ctx)
	if err != nil {
		return report, err
	}
	report.WorkDir = pwd.FirstLine()
	if !pwd.Succeeded() || report.WorkDir == "" {
		return report, &AssertionFailure{Step: "pwd", Expected: "/", Actual: pwd.Combined()}
	}

	clone, err := term.GitClone(ctx, s.RepositoryURL)
	report.Clone = clone
	if err != nil {
		return report, err
	}
	if !ClonedSuccessfully(clone) {
		return report, &AssertionFailure{Step: "git clone", Expected: CloneMarker, Actual: clone.Combined()}
	}
	report.advance(RepoCloned)

	ls, err := term.Ls(ctx, "")
	if err != nil {
		return report, err
	}
	if err := expectContains("project created", ls.Stdout, report.ProjectName); err != nil {
		return report, err
	}

	projectDir := path.Join(report.WorkDir, report.ProjectName)
	files, err := term.Ls(ctx, projectDir)
	if err != nil {
		return report, err
	}
	if err := expectContains(fmt.Sprintf("files imported into %s", projectDir), files.Stdout, s.MarkerFile); err != nil {
		return report, err
	}
	report.advance(Verified)

	return report, nil
}
