package worktree

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wtmdev/wtm/internal/config"
)

func TestResolvePathsFlat(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{WorktreesDir: "/work/trees"}
	repo := config.Repo{Name: "billing-service"}

	paths := ResolvePaths(cfg, repo, "fix-rounding")

	assert.Equal(t, filepath.Join("/work/trees", "billing-service-fix-rounding"), paths.Outer)
	assert.Equal(t, paths.Outer, paths.Inner)
	assert.False(t, paths.Nested())
}

func TestResolvePathsNested(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{WorktreesDir: "/work/trees"}
	repo := config.Repo{Name: "mobile-app", NestedDir: "mobile-app"}

	paths := ResolvePaths(cfg, repo, "login")

	assert.Equal(t, filepath.Join("/work/trees", "mobile-app-login"), paths.Outer)
	assert.Equal(t, filepath.Join(paths.Outer, "mobile-app"), paths.Inner)
	assert.True(t, paths.Nested())
}

func TestDisplayName(t *testing.T) {
	t.Parallel()

	root := NewRootMatcher("/work/trees")

	tests := []struct {
		name string
		path string
		repo string
		want string
	}{
		{
			name: "flat checkout",
			path: "/work/trees/billing-service-fix",
			repo: "billing-service",
			want: "billing-service-fix",
		},
		{
			name: "nested checkout reports container",
			path: "/work/trees/mobile-app-login/mobile-app",
			repo: "mobile-app",
			want: "mobile-app-login",
		},
		{
			name: "repo-named dir outside root keeps its own name",
			path: "/elsewhere/mobile-app",
			repo: "mobile-app",
			want: "mobile-app",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, displayName(root, tc.path, tc.repo))
		})
	}
}

func TestOuterDir(t *testing.T) {
	t.Parallel()

	root := NewRootMatcher("/work/trees")

	assert.Equal(t, "/work/trees/app-x",
		outerDir(root, "/work/trees/app-x", "app"))
	assert.Equal(t, "/work/trees/app-x",
		outerDir(root, "/work/trees/app-x/app", "app"))
}

func TestIsWithin(t *testing.T) {
	t.Parallel()

	assert.True(t, isWithin("/a/b", "/a/b"))
	assert.True(t, isWithin("/a/b", "/a/b/c"))
	assert.False(t, isWithin("/a/b", "/a/bc"))
	assert.False(t, isWithin("/a/b", "/a"))
}

func TestEntryString(t *testing.T) {
	t.Parallel()

	e := Entry{DisplayName: "app-login", Branch: "alice/login", Path: "/x"}
	assert.Equal(t, "app-login (alice/login)", e.String())
}
