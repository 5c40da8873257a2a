package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wtmdev/wtm/internal/worktree"
)

func TestSplitRepoArg(t *testing.T) {
	t.Parallel()

	token, operand := splitRepoArg([]string{"feature-x"})
	assert.Empty(t, token)
	assert.Equal(t, "feature-x", operand)

	token, operand = splitRepoArg([]string{"web", "feature-x"})
	assert.Equal(t, "web", token)
	assert.Equal(t, "feature-x", operand)

	token, operand = splitRepoArg(nil)
	assert.Empty(t, token)
	assert.Empty(t, operand)
}

func TestSuggestWorktrees(t *testing.T) {
	t.Parallel()

	available := []worktree.Entry{
		{DisplayName: "web-login", Branch: "alice/login"},
		{DisplayName: "web-payments", Branch: "alice/payments"},
	}

	hint := suggestWorktrees("pyments", available)
	assert.Contains(t, hint, "alice/payments")

	assert.Empty(t, suggestWorktrees("", available))
	assert.Empty(t, suggestWorktrees("zzzz", available))
	assert.Empty(t, suggestWorktrees("login", nil))
}

func TestSuggestNames(t *testing.T) {
	t.Parallel()

	available := []worktree.Entry{
		{DisplayName: "web-login", Branch: "alice/login"},
	}

	assert.Contains(t, suggestNames("web-logn", available), "web-login")
	assert.Empty(t, suggestNames("x", nil))
}
