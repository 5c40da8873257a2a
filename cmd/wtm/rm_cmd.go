package main

import (
	"errors"
	"fmt"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"github.com/wtmdev/wtm/internal/config"
	"github.com/wtmdev/wtm/internal/log"
	"github.com/wtmdev/wtm/internal/ui/prompt"
	"github.com/wtmdev/wtm/internal/worktree"
)

func newRmCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm [repo] <name>",
		Short:   "Remove a worktree",
		GroupID: GroupWorktree,
		Args:    cobra.RangeArgs(1, 2),
		Long: `Remove the worktree with the given name (as shown by wtm list).

The name must match exactly. Removal is refused from inside the worktree
being removed. Uncommitted work blocks removal; git reports the reason.`,
		Example: `  wtm rm web-feature-x
  wtm rm web web-feature-x
  wtm rm -y web-feature-x   # skip confirmation`,
		ValidArgsFunction: completeRepoThenWorktree,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			token, name := splitRepoArg(args)

			res, err := resolveRepo(ctx, token)
			if err != nil {
				return err
			}

			if !yes {
				if !prompt.Interactive() {
					return fmt.Errorf("confirmation requires a terminal, pass --yes to skip")
				}
				result, err := prompt.Confirm(fmt.Sprintf("Remove worktree %s?", name))
				if err != nil {
					return err
				}
				if !result.Confirmed {
					return fmt.Errorf("aborted")
				}
			}

			cfg := config.FromContext(ctx)
			entry, err := worktree.NewManager(cfg).Remove(ctx, res, name, workDir)
			var notFound *worktree.NotFoundError
			if errors.As(err, &notFound) {
				if hint := suggestNames(name, notFound.Available); hint != "" {
					return fmt.Errorf("%w\n%s", err, hint)
				}
			}
			if err != nil {
				return err
			}

			log.FromContext(ctx).Printf("Removed worktree %s (%s)\n", entry.DisplayName, entry.Branch)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func suggestNames(name string, available []worktree.Entry) string {
	if len(available) == 0 {
		return ""
	}

	names := make([]string, len(available))
	for i, entry := range available {
		names[i] = entry.DisplayName
	}

	matches := fuzzy.Find(name, names)
	if len(matches) == 0 {
		return ""
	}
	return "Did you mean: " + matches[0].Str
}
