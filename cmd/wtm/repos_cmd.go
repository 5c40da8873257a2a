package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/wtmdev/wtm/internal/config"
	"github.com/wtmdev/wtm/internal/git"
	"github.com/wtmdev/wtm/internal/log"
	"github.com/wtmdev/wtm/internal/output"
	"github.com/wtmdev/wtm/internal/ui/static"
	"github.com/wtmdev/wtm/internal/worktree"
)

func newReposCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "repos",
		Short:   "List configured repositories and their worktrees",
		GroupID: GroupWorktree,
		Args:    cobra.NoArgs,
		Long: `Show every configured repository with its shorthand and worktrees.
Repositories are listed in parallel; ones without a bare clone on disk
are marked missing.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			l := log.FromContext(ctx)

			var refs []git.RepoRef
			var rows [][]string
			for _, short := range cfg.Shorthands() {
				repo := cfg.Repos[short]
				bare := cfg.BareRepoPath(repo.Name)
				if _, err := os.Stat(bare); err != nil {
					rows = append(rows, []string{short, repo.Name, "(missing bare clone)", ""})
					continue
				}
				refs = append(refs, git.RepoRef{Shorthand: short, Name: repo.Name, Dir: bare})
			}

			listings, warnings := git.LoadAll(ctx, refs)
			for _, w := range warnings {
				l.Debug("skipping repo", "repo", w.RepoName, "error", w.Err)
			}

			root := worktree.NewRootMatcher(cfg.WorktreesDir)
			for _, listing := range listings {
				count := 0
				for _, wt := range listing.Worktrees {
					if !root.Contains(wt.Path) {
						continue
					}
					rows = append(rows, []string{listing.Repo.Shorthand, listing.Repo.Name, wt.Path, wt.Branch})
					count++
				}
				if count == 0 {
					rows = append(rows, []string{listing.Repo.Shorthand, listing.Repo.Name, "(no worktrees)", ""})
				}
			}

			if len(rows) == 0 {
				l.Println("No repositories configured")
				return nil
			}

			out := output.FromContext(ctx)
			out.Print(static.RenderTable([]string{"REPO", "NAME", "WORKTREE", "BRANCH"}, rows))
			return nil
		},
	}

	return cmd
}
