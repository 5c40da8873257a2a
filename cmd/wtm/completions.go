package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/wtmdev/wtm/internal/config"
	"github.com/wtmdev/wtm/internal/worktree"
)

// completeRepos completes configured repository shorthands.
func completeRepos(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cfg := config.FromContext(cmd.Context())

	var matches []string
	for _, short := range cfg.Shorthands() {
		if strings.HasPrefix(short, toComplete) {
			matches = append(matches, short+"\t"+cfg.Repos[short].Name)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}

// completeRepoThenWorktree completes a repo shorthand in first position
// and a worktree name in second.
func completeRepoThenWorktree(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return completeRepos(cmd, args, toComplete)
	}
	if len(args) > 1 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	ctx := cmd.Context()
	res, err := resolveRepo(ctx, args[0])
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	cfg := config.FromContext(ctx)
	entries, err := worktree.NewManager(cfg).List(ctx, res)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var matches []string
	for _, entry := range entries {
		if strings.HasPrefix(entry.DisplayName, toComplete) {
			matches = append(matches, entry.DisplayName+"\t"+entry.Branch)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}
