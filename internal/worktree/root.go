package worktree

import (
	"path/filepath"
)

// RootMatcher decides whether a registry-reported path lies under the
// configured worktrees root. Registry paths may come back with symlinks
// resolved (macOS reports /var/… as /private/var/…), so a path matching
// either the configured root or its canonicalized form counts as inside.
type RootMatcher struct {
	raw       string
	canonical string
}

// NewRootMatcher builds a matcher for the configured worktrees root.
func NewRootMatcher(root string) *RootMatcher {
	m := &RootMatcher{raw: filepath.Clean(root)}
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		m.canonical = filepath.Clean(resolved)
	}
	return m
}

// Contains reports whether path lies under (or is) the worktrees root in
// either its configured or canonicalized form.
func (m *RootMatcher) Contains(path string) bool {
	if isWithin(m.raw, path) {
		return true
	}
	return m.canonical != "" && isWithin(m.canonical, path)
}
