// Package worktree implements the worktree lifecycle: path resolution for
// the flat and nested layouts, and the create/list/switch/remove flows over
// git's on-disk worktree registry.
package worktree

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/wtmdev/wtm/internal/config"
)

// Paths locates a worktree on disk. Outer is the directory the rest of the
// system names, lists and removes; Inner is the actual checkout. They differ
// only for repositories with a nested layout, where the checkout sits one
// path segment below the container so sibling tooling directories can live
// next to it without polluting the tree.
type Paths struct {
	Outer string
	Inner string
}

// Nested reports whether the checkout sits below the container directory.
func (p Paths) Nested() bool {
	return p.Outer != p.Inner
}

// ResolvePaths computes the outer and inner paths for a worktree.
// The outer directory is always <worktrees_dir>/<full-name>-<suffix>.
func ResolvePaths(cfg *config.Config, repo config.Repo, suffix string) Paths {
	outer := filepath.Join(cfg.WorktreesDir, repo.Name+"-"+suffix)
	inner := outer
	if repo.NestedDir != "" {
		inner = filepath.Join(outer, repo.NestedDir)
	}
	return Paths{Outer: outer, Inner: inner}
}

// Entry is one worktree of a repository as presented to the user.
type Entry struct {
	DisplayName string
	Branch      string
	Path        string // actual checkout path (inner for nested layouts)
}

func (e Entry) String() string {
	return fmt.Sprintf("%s (%s)", e.DisplayName, e.Branch)
}

// displayName computes the user-facing name of a registry path. A nested
// checkout reports its inner path, so when the last segment equals the
// repository name and the parent still lies under the worktrees root, the
// outer container's name is what the user knows the worktree by.
func displayName(root *RootMatcher, path, repoName string) string {
	parent := filepath.Dir(path)
	if filepath.Base(path) == repoName && root.Contains(parent) {
		return filepath.Base(parent)
	}
	return filepath.Base(path)
}

// outerDir returns the directory that remove operates on for a registry
// path: the parent container for nested checkouts, the path itself
// otherwise.
func outerDir(root *RootMatcher, path, repoName string) string {
	parent := filepath.Dir(path)
	if filepath.Base(path) == repoName && root.Contains(parent) {
		return parent
	}
	return path
}

// isWithin reports whether path is dir or lies below it, segment-aware.
func isWithin(dir, path string) bool {
	dir = filepath.Clean(dir)
	path = filepath.Clean(path)
	return path == dir || strings.HasPrefix(path, dir+string(filepath.Separator))
}
