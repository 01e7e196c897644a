// package gitrepo provides helpers for working with the git repositories cloned into a workspace.
//
// `ProjectName` derives the directory `git clone` creates for a repository URL. `RootEntries` lists the
// top level of a GitHub repository so a cloned project can be compared against upstream.
package gitrepo
