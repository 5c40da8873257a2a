package main

import (
	"github.com/spf13/cobra"

	"github.com/wtmdev/wtm/internal/config"
	"github.com/wtmdev/wtm/internal/git"
	"github.com/wtmdev/wtm/internal/log"
	"github.com/wtmdev/wtm/internal/output"
	"github.com/wtmdev/wtm/internal/ui/static"
	"github.com/wtmdev/wtm/internal/worktree"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list [repo]",
		Short:   "List a repository's worktrees",
		Aliases: []string{"ls"},
		GroupID: GroupWorktree,
		Args:    cobra.MaximumNArgs(1),
		Long: `List all worktrees of a repository in registry order.

The listing goes to stderr; the first worktree's checkout path goes to
stdout so the command composes with cd.`,
		Example: `  wtm list
  wtm ls web
  cd "$(wtm list web)"   # jump to the first worktree`,
		ValidArgsFunction: completeRepos,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var token string
			if len(args) == 1 {
				token = args[0]
			}
			res, err := resolveRepo(ctx, token)
			if err != nil {
				return err
			}

			cfg := config.FromContext(ctx)
			entries, err := worktree.NewManager(cfg).List(ctx, res)
			if err != nil {
				return err
			}

			l := log.FromContext(ctx)
			if len(entries) == 0 {
				l.Printf("No worktrees for %s\n", res.Name)
				return nil
			}

			// Mark the worktree the caller is standing in, if any.
			current, _ := git.CurrentBranch(ctx, workDir)

			rows := make([][]string, len(entries))
			for i, entry := range entries {
				marker := ""
				if current != "" && entry.Branch == current {
					marker = "*"
				}
				rows[i] = []string{marker, entry.DisplayName, entry.Branch}
			}
			l.Printf("%s", static.RenderTable([]string{"", "WORKTREE", "BRANCH"}, rows))

			output.FromContext(ctx).Path(entries[0].Path)
			return nil
		},
	}

	return cmd
}
