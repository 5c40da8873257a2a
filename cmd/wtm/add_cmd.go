package main

import (
	"github.com/spf13/cobra"

	"github.com/wtmdev/wtm/internal/config"
	"github.com/wtmdev/wtm/internal/log"
	"github.com/wtmdev/wtm/internal/output"
	"github.com/wtmdev/wtm/internal/worktree"
)

func newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "add [repo] <branch-suffix>",
		Short:   "Create a worktree with a new or existing branch",
		GroupID: GroupWorktree,
		Args:    cobra.RangeArgs(1, 2),
		Long: `Create a worktree for a repository.

The branch name is <branch_prefix>/<branch-suffix> when a prefix is
configured, the suffix alone otherwise. An existing remote or local branch
of that name is checked out; otherwise a new branch is forked from the
main branch.

The worktree directory is <worktrees_dir>/<repo>-<branch-suffix>. If the
repository has templates configured they are copied into the fresh
checkout. The checkout path is printed on stdout.`,
		Example: `  cd "$(wtm add feature-x)"       # current repo
  cd "$(wtm add web feature-x)"   # explicit repo shorthand
  wtm add web fix-123`,
		ValidArgsFunction: completeRepos,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			token, suffix := splitRepoArg(args)

			cfg := config.FromContext(ctx)
			mgr := worktree.NewManager(cfg)

			result, err := mgr.Create(ctx, token, suffix, workDir)
			if err != nil {
				return err
			}

			log.FromContext(ctx).Printf("Created worktree %s on branch %s\n", result.Path, result.Branch)
			output.FromContext(ctx).Path(result.Path)
			return nil
		},
	}

	return cmd
}
