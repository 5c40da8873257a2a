package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrintfQuiet(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := New(&buf, false, true)
	l.Printf("hello %s\n", "world")
	assert.Empty(t, buf.String())
}

func TestDebugOnlyVerbose(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := New(&buf, false, false)
	l.Debug("resolving repo", "token", "web")
	assert.Empty(t, buf.String())

	l = New(&buf, true, false)
	l.Debug("resolving repo", "token", "web")
	assert.Equal(t, "resolving repo token=web\n", buf.String())
}

func TestCommandTrace(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := New(&buf, true, false)
	l.Command("git", "worktree", "list", "--porcelain")
	assert.Equal(t, "$ git worktree list --porcelain\n", buf.String())
}

func TestFromContextFallback(t *testing.T) {
	t.Parallel()

	// Detached context returns a usable no-op logger.
	l := FromContext(context.Background())
	l.Println("should not panic")

	var buf bytes.Buffer
	ctx := WithLogger(context.Background(), New(&buf, false, false))
	FromContext(ctx).Println("attached")
	assert.Equal(t, "attached\n", buf.String())
}
