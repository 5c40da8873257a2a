package worktree

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wtmdev/wtm/internal/config"
	"github.com/wtmdev/wtm/internal/git"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.GitUsername = "alice"
	cfg.BranchPrefix = "alice"
	cfg.BareReposDir = filepath.Join(base, "repos")
	cfg.WorktreesDir = filepath.Join(base, "worktrees")
	cfg.TemplatesDir = filepath.Join(base, "templates")
	cfg.Repos = map[string]config.Repo{
		"ba": {Name: "billing-service"},
	}
	require.NoError(t, os.MkdirAll(cfg.WorktreesDir, 0755))
	return &cfg
}

func TestCreateRequiresSuffix(t *testing.T) {
	t.Parallel()

	m := NewManager(testConfig(t))
	_, err := m.Create(context.Background(), "ba", "", "")

	assert.ErrorIs(t, err, ErrMissingArgument)
}

func TestCreateRejectsSlashWithPrefix(t *testing.T) {
	t.Parallel()

	m := NewManager(testConfig(t))
	_, err := m.Create(context.Background(), "ba", "bob/feature", "")

	assert.ErrorIs(t, err, ErrInvalidBranchName)
}

func TestCreateAllowsSlashWithoutPrefix(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.BranchPrefix = ""
	m := NewManager(cfg)

	// Validation passes; the next check fails on the missing bare repo.
	_, err := m.Create(context.Background(), "ba", "bob/feature", "")

	assert.ErrorIs(t, err, ErrMissingBareRepo)
}

func TestCreateMissingBareRepo(t *testing.T) {
	t.Parallel()

	m := NewManager(testConfig(t))
	_, err := m.Create(context.Background(), "ba", "feature", "")

	assert.ErrorIs(t, err, ErrMissingBareRepo)
}

func TestCreateExistingWorktreeDir(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	require.NoError(t, os.MkdirAll(cfg.BareRepoPath("billing-service"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(cfg.WorktreesDir, "billing-service-feature"), 0755))

	m := NewManager(cfg)
	_, err := m.Create(context.Background(), "ba", "feature", "")

	assert.ErrorIs(t, err, ErrWorktreeAlreadyExists)
}

func TestEntriesFiltersAndNames(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.Repos["mo"] = config.Repo{Name: "mobile-app", NestedDir: "mobile-app"}
	m := NewManager(cfg)

	listing := []git.WorktreeInfo{
		{Path: cfg.BareRepoPath("mobile-app"), Branch: ""},
		{Path: filepath.Join(cfg.WorktreesDir, "mobile-app-login", "mobile-app"), Branch: "alice/login"},
		{Path: "/somewhere/else/mobile-app-old", Branch: "old"},
	}

	entries := m.entries(listing, "mobile-app")

	require.Len(t, entries, 1)
	assert.Equal(t, "mobile-app-login", entries[0].DisplayName)
	assert.Equal(t, "alice/login", entries[0].Branch)
}

func TestNotFoundErrorListsAlternatives(t *testing.T) {
	t.Parallel()

	err := &NotFoundError{
		Query: "payments",
		Available: []Entry{
			{DisplayName: "app-login", Branch: "alice/login"},
		},
	}

	assert.Contains(t, err.Error(), `"payments"`)
	assert.Contains(t, err.Error(), "app-login (alice/login)")

	empty := &NotFoundError{Query: "x"}
	assert.Contains(t, empty.Error(), "none exist")
}

func TestInsideOf(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0755))

	assert.True(t, insideOf(dir, sub))
	assert.True(t, insideOf(dir, dir))
	assert.False(t, insideOf(sub, dir))
	assert.False(t, insideOf(dir, ""))
}
