package worktree

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the worktree flows. Commands match on these with
// errors.Is; the wrapped messages carry the operator guidance.
var (
	ErrMissingArgument        = errors.New("missing argument")
	ErrInvalidBranchName      = errors.New("invalid branch name")
	ErrMissingBareRepo        = errors.New("bare repository not found")
	ErrWorktreeAlreadyExists  = errors.New("worktree already exists")
	ErrWorktreeCreationFailed = errors.New("worktree creation failed")
	ErrCannotRemoveSelf       = errors.New("cannot remove the worktree you are in")
	ErrWorktreeRemovalFailed  = errors.New("worktree removal failed")
)

// NotFoundError reports that no worktree matched, carrying the full
// unfiltered listing so callers can print the valid alternatives.
type NotFoundError struct {
	Query     string
	Available []Entry
}

func (e *NotFoundError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("no worktree matching %q (none exist)", e.Query)
	}
	var names []string
	for _, entry := range e.Available {
		names = append(names, entry.String())
	}
	return fmt.Sprintf("no worktree matching %q, existing worktrees:\n  %s",
		e.Query, strings.Join(names, "\n  "))
}
