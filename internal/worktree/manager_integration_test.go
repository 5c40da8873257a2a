package worktree

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wtmdev/wtm/internal/config"
	"github.com/wtmdev/wtm/internal/git"
	"github.com/wtmdev/wtm/internal/resolve"
)

// The tests in this file drive the manager against real git repositories
// laid out the way a user's machine would be: a bare clone under the repos
// dir and worktrees under the worktrees root.

// resolveSymlinks resolves symlinks in a path. Needed on macOS where
// t.TempDir lives under /var, a symlink to /private/var, while git reports
// resolved worktree paths.
func resolveSymlinks(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	require.NoError(t, err)
	return resolved
}

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v: %v\n%s", args, err, out)
	}
}

// setupSourceRepo creates a repo with an initial commit on master and
// returns its path.
func setupSourceRepo(t *testing.T, dir string) string {
	t.Helper()

	src := filepath.Join(dir, "src")
	require.NoError(t, os.MkdirAll(src, 0755))

	runGit(t, src, "init")
	runGit(t, src, "symbolic-ref", "HEAD", "refs/heads/master")
	runGit(t, src, "config", "user.email", "test@test.com")
	runGit(t, src, "config", "user.name", "Test User")
	runGit(t, src, "config", "commit.gpgsign", "false")

	require.NoError(t, os.WriteFile(filepath.Join(src, "README.md"), []byte("# test\n"), 0644))
	runGit(t, src, "add", "README.md")
	runGit(t, src, "commit", "-m", "Initial commit")

	return src
}

// setupBareClone clones src into the bare repos dir under name and
// configures remote-tracking refs the way a bare clone used for worktrees
// needs them.
func setupBareClone(t *testing.T, cfg *config.Config, src, name string) {
	t.Helper()

	bare := cfg.BareRepoPath(name)
	runGit(t, filepath.Dir(bare), "clone", "--bare", "--quiet", src, bare)
	runGit(t, bare, "config", "remote.origin.fetch", "+refs/heads/*:refs/remotes/origin/*")
}

// integrationSetup builds a config rooted in a temp dir, a source repo and
// a bare clone of it registered under shorthand "ba".
func integrationSetup(t *testing.T) (*config.Config, string) {
	t.Helper()

	base := resolveSymlinks(t, t.TempDir())

	cfg := config.Default()
	cfg.GitUsername = "alice"
	cfg.BranchPrefix = "alice"
	cfg.BareReposDir = filepath.Join(base, "repos")
	cfg.WorktreesDir = filepath.Join(base, "worktrees")
	cfg.TemplatesDir = filepath.Join(base, "templates")
	cfg.Repos = map[string]config.Repo{
		"ba": {Name: "billing-service"},
	}
	require.NoError(t, os.MkdirAll(cfg.BareReposDir, 0755))
	require.NoError(t, os.MkdirAll(cfg.WorktreesDir, 0755))

	src := setupSourceRepo(t, base)
	setupBareClone(t, &cfg, src, "billing-service")

	return &cfg, src
}

func resolution(cfg *config.Config, shorthand string) resolve.Resolution {
	repo := cfg.Repos[shorthand]
	return resolve.Resolution{Shorthand: shorthand, Name: repo.Name, Repo: repo}
}

// Scenario: create a worktree for a new branch, see it in the listing,
// find it by substring, then remove it by display name.
func TestWorktreeRoundTrip(t *testing.T) {
	t.Parallel()

	cfg, _ := integrationSetup(t)
	m := NewManager(cfg)
	ctx := context.Background()
	res := resolution(cfg, "ba")

	created, err := m.Create(ctx, "ba", "checkout-flow", "")
	require.NoError(t, err)
	assert.Equal(t, "alice/checkout-flow", created.Branch)
	assert.Equal(t, filepath.Join(cfg.WorktreesDir, "billing-service-checkout-flow"), created.Path)
	assert.DirExists(t, created.Path)

	branch, err := git.CurrentBranch(ctx, created.Path)
	require.NoError(t, err)
	assert.Equal(t, "alice/checkout-flow", branch)

	entries, err := m.List(ctx, res)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "billing-service-checkout-flow", entries[0].DisplayName)
	assert.Equal(t, "alice/checkout-flow", entries[0].Branch)
	assert.Equal(t, created.Path, entries[0].Path)

	// Search is a case-insensitive substring match on the branch.
	hit, err := m.Switch(ctx, res, "CHECKOUT")
	require.NoError(t, err)
	assert.Equal(t, created.Path, hit.Path)

	removed, err := m.Remove(ctx, res, "billing-service-checkout-flow", cfg.WorktreesDir)
	require.NoError(t, err)
	assert.Equal(t, created.Path, removed.Path)
	assert.NoDirExists(t, created.Path)

	entries, err = m.List(ctx, res)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

// Scenario: a branch already pushed to origin becomes the worktree's
// tracking source instead of a fresh branch off the main line.
func TestCreateTracksExistingRemoteBranch(t *testing.T) {
	t.Parallel()

	cfg, src := integrationSetup(t)
	runGit(t, src, "branch", "alice/payments")

	m := NewManager(cfg)
	ctx := context.Background()

	// The branch only exists upstream; create fetches before probing.
	created, err := m.Create(ctx, "ba", "payments", "")
	require.NoError(t, err)

	branch, err := git.CurrentBranch(ctx, created.Path)
	require.NoError(t, err)
	assert.Equal(t, "alice/payments", branch)
}

// Scenario: a nested-layout repo checks out under a container dir, lists
// under the container's name, and removal cleans the container up too.
func TestNestedWorktreeRoundTrip(t *testing.T) {
	t.Parallel()

	cfg, src := integrationSetup(t)
	cfg.Repos["mob"] = config.Repo{Name: "mobile-app", NestedDir: "mobile-app"}
	setupBareClone(t, cfg, src, "mobile-app")

	m := NewManager(cfg)
	ctx := context.Background()
	res := resolution(cfg, "mob")

	created, err := m.Create(ctx, "mob", "fix-crash", "")
	require.NoError(t, err)

	outer := filepath.Join(cfg.WorktreesDir, "mobile-app-fix-crash")
	assert.Equal(t, filepath.Join(outer, "mobile-app"), created.Path)

	entries, err := m.List(ctx, res)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "mobile-app-fix-crash", entries[0].DisplayName)
	assert.Equal(t, created.Path, entries[0].Path)

	_, err = m.Remove(ctx, res, "mobile-app-fix-crash", cfg.WorktreesDir)
	require.NoError(t, err)
	assert.NoDirExists(t, created.Path)
	assert.NoDirExists(t, outer)
}

// Scenario: removing the worktree the caller is standing in is refused and
// the worktree stays intact.
func TestRemoveRefusedFromInside(t *testing.T) {
	t.Parallel()

	cfg, _ := integrationSetup(t)
	m := NewManager(cfg)
	ctx := context.Background()
	res := resolution(cfg, "ba")

	created, err := m.Create(ctx, "ba", "checkout-flow", "")
	require.NoError(t, err)

	_, err = m.Remove(ctx, res, "billing-service-checkout-flow", created.Path)
	assert.ErrorIs(t, err, ErrCannotRemoveSelf)
	assert.DirExists(t, created.Path)

	entries, err := m.List(ctx, res)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
