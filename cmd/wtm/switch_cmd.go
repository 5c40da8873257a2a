package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"github.com/wtmdev/wtm/internal/config"
	"github.com/wtmdev/wtm/internal/log"
	"github.com/wtmdev/wtm/internal/output"
	"github.com/wtmdev/wtm/internal/resolve"
	"github.com/wtmdev/wtm/internal/ui/prompt"
	"github.com/wtmdev/wtm/internal/worktree"
)

func newSwitchCmd() *cobra.Command {
	var interactive bool
	var copyToClipboard bool

	cmd := &cobra.Command{
		Use:     "switch [repo] <search>",
		Short:   "Print the path of a worktree matching a branch search",
		Aliases: []string{"sw"},
		GroupID: GroupWorktree,
		Args:    cobra.RangeArgs(0, 2),
		Long: `Find a worktree by case-insensitive substring match on its branch
name and print its checkout path on stdout.

Use with command substitution: cd "$(wtm switch feat)".`,
		Example: `  cd "$(wtm switch feat)"       # first branch containing "feat"
  cd "$(wtm sw web login)"      # search in an explicit repo
  cd "$(wtm switch -i)"         # pick from a filterable list
  wtm switch --copy feat        # copy the path instead`,
		ValidArgsFunction: completeRepoThenWorktree,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)

			token, search := splitRepoArg(args)
			if search == "" && !interactive {
				return fmt.Errorf("%w: search term required (or use --interactive)", worktree.ErrMissingArgument)
			}

			res, err := resolveRepo(ctx, token)
			if err != nil {
				return err
			}
			mgr := worktree.NewManager(cfg)

			var entry worktree.Entry
			if interactive {
				entry, err = pickEntry(ctx, mgr, res)
			} else {
				entry, err = mgr.Switch(ctx, res, search)
				var notFound *worktree.NotFoundError
				if errors.As(err, &notFound) {
					if hint := suggestWorktrees(search, notFound.Available); hint != "" {
						err = fmt.Errorf("%w\n%s", err, hint)
					}
				}
			}
			if err != nil {
				return err
			}

			if copyToClipboard {
				if err := clipboard.WriteAll(entry.Path); err != nil {
					return fmt.Errorf("copy to clipboard: %w", err)
				}
				log.FromContext(ctx).Printf("Copied %s\n", entry.Path)
				return nil
			}

			output.FromContext(ctx).Path(entry.Path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Pick the worktree from a filterable list")
	cmd.Flags().BoolVarP(&copyToClipboard, "copy", "c", false, "Copy the path to the clipboard instead of printing it")

	return cmd
}

func pickEntry(ctx context.Context, mgr *worktree.Manager, res resolve.Resolution) (worktree.Entry, error) {
	entries, err := mgr.List(ctx, res)
	if err != nil {
		return worktree.Entry{}, err
	}
	if len(entries) == 0 {
		return worktree.Entry{}, &worktree.NotFoundError{Query: ""}
	}
	if !prompt.Interactive() {
		return worktree.Entry{}, fmt.Errorf("--interactive requires a terminal")
	}

	options := make([]string, len(entries))
	for i, entry := range entries {
		options[i] = entry.String()
	}

	result, err := prompt.Select("Switch to worktree", options)
	if err != nil {
		return worktree.Entry{}, err
	}
	if result.Cancelled {
		return worktree.Entry{}, fmt.Errorf("cancelled")
	}
	return entries[result.Index], nil
}

// suggestWorktrees ranks the available branches against the failed search
// and formats the closest matches as a hint.
func suggestWorktrees(search string, available []worktree.Entry) string {
	if search == "" || len(available) == 0 {
		return ""
	}

	branches := make([]string, len(available))
	for i, entry := range available {
		branches[i] = entry.Branch
	}

	matches := fuzzy.Find(search, branches)
	if len(matches) == 0 {
		return ""
	}

	var suggestions []string
	for i, match := range matches {
		if i == 3 {
			break
		}
		suggestions = append(suggestions, match.Str)
	}
	return "Did you mean: " + strings.Join(suggestions, ", ")
}
