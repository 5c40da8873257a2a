package git

import (
	"context"
	"fmt"
	"strings"
)

// WorktreeInfo is one entry of the worktree registry, parsed from
// git worktree list --porcelain.
type WorktreeInfo struct {
	Path   string
	Branch string
}

// ListWorktrees returns all worktrees registered with a repository.
func ListWorktrees(ctx context.Context, repoDir string) ([]WorktreeInfo, error) {
	output, err := outputGit(ctx, repoDir, "worktree", "list", "--porcelain")
	if err != nil {
		return nil, fmt.Errorf("failed to list worktrees: %w", err)
	}
	return ParseWorktreeList(output), nil
}

// ParseWorktreeList parses `git worktree list --porcelain` output.
// Each entry is a "worktree <path>" line followed by attribute lines and
// terminated by a blank line.
func ParseWorktreeList(output []byte) []WorktreeInfo {
	var worktrees []WorktreeInfo
	var current WorktreeInfo

	for _, line := range strings.Split(string(output), "\n") {
		switch {
		case strings.HasPrefix(line, "worktree "):
			if current.Path != "" {
				worktrees = append(worktrees, current)
			}
			current = WorktreeInfo{Path: strings.TrimPrefix(line, "worktree ")}
		case strings.HasPrefix(line, "branch refs/heads/"):
			current.Branch = strings.TrimPrefix(line, "branch refs/heads/")
		case line == "detached":
			current.Branch = "(detached)"
		}
	}
	if current.Path != "" {
		worktrees = append(worktrees, current)
	}

	return worktrees
}

// AddWorktreeTracking creates a worktree with a new local branch tracking
// origin/<branch>.
func AddWorktreeTracking(ctx context.Context, repoDir, path, branch string) error {
	return runGit(ctx, repoDir, "worktree", "add", "--track", "-b", branch, path, "origin/"+branch)
}

// AddWorktreeExisting creates a worktree checking out an existing local
// branch.
func AddWorktreeExisting(ctx context.Context, repoDir, path, branch string) error {
	return runGit(ctx, repoDir, "worktree", "add", path, branch)
}

// AddWorktreeNew creates a worktree with a new local branch based on baseRef.
func AddWorktreeNew(ctx context.Context, repoDir, path, branch, baseRef string) error {
	return runGit(ctx, repoDir, "worktree", "add", "-b", branch, path, baseRef)
}

// RemoveWorktree detaches a worktree from the registry and deletes its
// directory.
func RemoveWorktree(ctx context.Context, repoDir, path string) error {
	return runGit(ctx, repoDir, "worktree", "remove", path)
}

// PruneWorktrees drops stale registry entries whose directories are gone.
func PruneWorktrees(ctx context.Context, repoDir string) error {
	return runGit(ctx, repoDir, "worktree", "prune")
}
