package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseWorktreeList(t *testing.T) {
	t.Parallel()

	output := []byte(`worktree /dev/.repos/Acme-Web.git
bare

worktree /dev/worktrees/Acme-Web-fix
HEAD 1234567890abcdef1234567890abcdef12345678
branch refs/heads/jdoe/fix

worktree /dev/worktrees/Acme-Web-spike
HEAD abcdef1234567890abcdef1234567890abcdef12
detached
`)

	got := ParseWorktreeList(output)
	assert.Equal(t, []WorktreeInfo{
		{Path: "/dev/.repos/Acme-Web.git"},
		{Path: "/dev/worktrees/Acme-Web-fix", Branch: "jdoe/fix"},
		{Path: "/dev/worktrees/Acme-Web-spike", Branch: "(detached)"},
	}, got)
}

func TestParseWorktreeListEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, ParseWorktreeList(nil))
	assert.Empty(t, ParseWorktreeList([]byte("\n\n")))
}

func TestParseWorktreeListNoTrailingNewline(t *testing.T) {
	t.Parallel()

	got := ParseWorktreeList([]byte("worktree /w/x\nbranch refs/heads/main"))
	assert.Equal(t, []WorktreeInfo{{Path: "/w/x", Branch: "main"}}, got)
}
