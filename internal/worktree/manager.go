package worktree

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wtmdev/wtm/internal/config"
	"github.com/wtmdev/wtm/internal/git"
	"github.com/wtmdev/wtm/internal/log"
	"github.com/wtmdev/wtm/internal/resolve"
	"github.com/wtmdev/wtm/internal/template"
)

// Manager implements the worktree lifecycle for configured repositories.
// It holds no state of its own: every operation re-queries git's worktree
// registry, which remains the single source of truth.
type Manager struct {
	cfg *config.Config
}

// NewManager creates a Manager over the loaded configuration.
func NewManager(cfg *config.Config) *Manager {
	return &Manager{cfg: cfg}
}

// CreateResult describes a successfully created worktree.
type CreateResult struct {
	Path   string // checkout path to switch the session into
	Branch string
}

// Create makes a new worktree for the repository resolved from token (or
// the working directory) and the given branch suffix.
func (m *Manager) Create(ctx context.Context, token, suffix, cwd string) (CreateResult, error) {
	if suffix == "" {
		return CreateResult{}, fmt.Errorf("%w: branch name required", ErrMissingArgument)
	}
	if m.cfg.BranchPrefix != "" && strings.Contains(suffix, "/") {
		return CreateResult{}, fmt.Errorf(
			"%w: %q must not contain / when branch_prefix %q is set",
			ErrInvalidBranchName, suffix, m.cfg.BranchPrefix)
	}

	res, err := resolve.Repository(ctx, m.cfg, token, cwd)
	if err != nil {
		return CreateResult{}, err
	}

	bare := m.cfg.BareRepoPath(res.Name)
	if info, err := os.Stat(bare); err != nil || !info.IsDir() {
		return CreateResult{}, fmt.Errorf("%w: %s", ErrMissingBareRepo, bare)
	}

	paths := ResolvePaths(m.cfg, res.Repo, suffix)
	if _, err := os.Stat(paths.Outer); err == nil {
		return CreateResult{}, fmt.Errorf("%w: %s", ErrWorktreeAlreadyExists, paths.Outer)
	}

	branch := m.cfg.BranchName(suffix)

	if err := os.MkdirAll(paths.Outer, 0755); err != nil {
		return CreateResult{}, fmt.Errorf("%w: %v", ErrWorktreeCreationFailed, err)
	}

	if err := m.addWorktree(ctx, bare, paths.Inner, branch); err != nil {
		// A failed add can leave a stale registration behind. A partially
		// populated directory stays on disk for debugging; only the empty
		// container we just made is cleaned up.
		_ = git.PruneWorktrees(ctx, bare)
		_ = os.Remove(paths.Outer)
		return CreateResult{}, fmt.Errorf("%w: %v", ErrWorktreeCreationFailed, err)
	}

	m.applyTemplates(ctx, res.Name, paths.Inner)

	return CreateResult{Path: paths.Inner, Branch: branch}, nil
}

// addWorktree picks the branch source: a remote-tracking branch of the same
// name, then an existing local branch, then a new branch off the main line.
func (m *Manager) addWorktree(ctx context.Context, bare, path, branch string) error {
	l := log.FromContext(ctx)

	// Refresh remote refs so a branch pushed from another machine is picked
	// up as the tracking source. Offline creation still works.
	if err := git.Fetch(ctx, bare); err != nil {
		l.Debug("fetch failed", "repo", bare, "error", err)
	}

	switch {
	case git.RemoteBranchExists(ctx, bare, branch):
		l.Debug("branch source", "kind", "remote", "branch", branch)
		return git.AddWorktreeTracking(ctx, bare, path, branch)
	case git.LocalBranchExists(ctx, bare, branch):
		l.Debug("branch source", "kind", "local", "branch", branch)
		return git.AddWorktreeExisting(ctx, bare, path, branch)
	default:
		base := "origin/" + git.MainBranch(ctx, bare)
		l.Debug("branch source", "kind", "new", "branch", branch, "base", base)
		return git.AddWorktreeNew(ctx, bare, path, branch, base)
	}
}

func (m *Manager) applyTemplates(ctx context.Context, repoName, dst string) {
	dir := m.cfg.TemplateDir(repoName)
	if !template.Exists(dir) {
		return
	}
	if err := template.Load(dir, dst); err != nil {
		log.FromContext(ctx).Printf("Warning: failed to copy templates: %v\n", err)
	}
}

// List returns the repository's worktrees under the worktrees root,
// in registry order.
func (m *Manager) List(ctx context.Context, res resolve.Resolution) ([]Entry, error) {
	listing, err := git.ListWorktrees(ctx, m.cfg.BareRepoPath(res.Name))
	if err != nil {
		return nil, err
	}
	return m.entries(listing, res.Name), nil
}

// entries filters registry output to the worktrees root and computes
// display names, un-collapsing nested checkouts onto their containers.
func (m *Manager) entries(listing []git.WorktreeInfo, repoName string) []Entry {
	root := NewRootMatcher(m.cfg.WorktreesDir)

	var entries []Entry
	for _, wt := range listing {
		if !root.Contains(wt.Path) {
			continue
		}
		entries = append(entries, Entry{
			DisplayName: displayName(root, wt.Path, repoName),
			Branch:      wt.Branch,
			Path:        wt.Path,
		})
	}
	return entries
}

// Switch finds the first worktree whose branch contains search,
// case-insensitively, in registry order.
func (m *Manager) Switch(ctx context.Context, res resolve.Resolution, search string) (Entry, error) {
	entries, err := m.List(ctx, res)
	if err != nil {
		return Entry{}, err
	}

	needle := strings.ToLower(search)
	for _, entry := range entries {
		if strings.Contains(strings.ToLower(entry.Branch), needle) {
			return entry, nil
		}
	}

	return Entry{}, &NotFoundError{Query: search, Available: entries}
}

// Remove deletes the worktree matching name exactly (by display name).
// cwd guards against removing the worktree the caller is standing in.
func (m *Manager) Remove(ctx context.Context, res resolve.Resolution, name, cwd string) (Entry, error) {
	entries, err := m.List(ctx, res)
	if err != nil {
		return Entry{}, err
	}

	var target *Entry
	for i := range entries {
		if entries[i].DisplayName == name {
			target = &entries[i]
			break
		}
	}
	if target == nil {
		return Entry{}, &NotFoundError{Query: name, Available: entries}
	}

	root := NewRootMatcher(m.cfg.WorktreesDir)
	outer := outerDir(root, target.Path, res.Name)

	if insideOf(outer, cwd) {
		return Entry{}, fmt.Errorf("%w: %s (cd out of it first)", ErrCannotRemoveSelf, outer)
	}

	if err := git.RemoveWorktree(ctx, m.cfg.BareRepoPath(res.Name), target.Path); err != nil {
		return Entry{}, fmt.Errorf("%w: %v", ErrWorktreeRemovalFailed, err)
	}

	// Nested layouts leave the container behind. Delete it only when empty;
	// users may keep sibling files next to the checkout.
	if outer != target.Path {
		if err := os.Remove(outer); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.FromContext(ctx).Debug("container not removed", "dir", outer, "error", err)
		}
	}

	return *target, nil
}

// insideOf reports whether cwd lies within dir, tolerating symlinked paths
// on either side.
func insideOf(dir, cwd string) bool {
	if cwd == "" {
		return false
	}
	if isWithin(dir, cwd) {
		return true
	}
	resolvedDir, errDir := filepath.EvalSymlinks(dir)
	resolvedCwd, errCwd := filepath.EvalSymlinks(cwd)
	if errDir != nil || errCwd != nil {
		return false
	}
	return isWithin(resolvedDir, resolvedCwd)
}
