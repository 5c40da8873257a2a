package git

import (
	"context"
	"strings"
)

// RemoteBranchExists reports whether origin/<branch> exists as a
// remote-tracking ref in the given repository.
func RemoteBranchExists(ctx context.Context, repoDir, branch string) bool {
	return runGit(ctx, repoDir, "rev-parse", "--verify", "--quiet", "refs/remotes/origin/"+branch) == nil
}

// LocalBranchExists reports whether a local branch exists in the given
// repository.
func LocalBranchExists(ctx context.Context, repoDir, branch string) bool {
	return runGit(ctx, repoDir, "rev-parse", "--verify", "--quiet", "refs/heads/"+branch) == nil
}

// MainBranch returns the base branch new worktrees fork from.
// Probes origin/master, then origin/develop, defaulting to main.
func MainBranch(ctx context.Context, repoDir string) string {
	if RemoteBranchExists(ctx, repoDir, "master") {
		return "master"
	}
	if RemoteBranchExists(ctx, repoDir, "develop") {
		return "develop"
	}
	return "main"
}

// CurrentBranch returns the branch checked out at path.
// Returns "(detached)" for a detached HEAD.
func CurrentBranch(ctx context.Context, path string) (string, error) {
	output, err := outputGit(ctx, path, "branch", "--show-current")
	if err != nil {
		return "", err
	}
	branch := strings.TrimSpace(string(output))
	if branch == "" {
		return "(detached)", nil
	}
	return branch, nil
}

// Fetch updates remote-tracking refs from origin.
func Fetch(ctx context.Context, repoDir string) error {
	return runGit(ctx, repoDir, "fetch", "origin", "--quiet")
}

// TopLevel returns the root of the working tree containing dir.
func TopLevel(ctx context.Context, dir string) (string, error) {
	output, err := outputGit(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(output)), nil
}
