package git

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// RepoRef identifies a repository for the loader without depending on the
// config package.
type RepoRef struct {
	Shorthand string
	Name      string
	Dir       string // bare storage path
}

// RepoWorktrees is the registry listing of a single repository.
type RepoWorktrees struct {
	Repo      RepoRef
	Worktrees []WorktreeInfo
}

// LoadWarning is a non-fatal error encountered while listing one repository.
type LoadWarning struct {
	RepoName string
	Err      error
}

// LoadAll lists worktrees for all repositories in parallel.
// Results keep the input order; per-repo errors are collected as warnings.
func LoadAll(ctx context.Context, repos []RepoRef) ([]RepoWorktrees, []LoadWarning) {
	type result struct {
		listing RepoWorktrees
		warning *LoadWarning
	}

	results := make([]result, len(repos))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8) // bound concurrent git processes

	for i, repo := range repos {
		g.Go(func() error {
			wts, err := ListWorktrees(ctx, repo.Dir)
			if err != nil {
				results[i] = result{warning: &LoadWarning{RepoName: repo.Name, Err: err}}
				return nil // warnings are non-fatal
			}
			results[i] = result{listing: RepoWorktrees{Repo: repo, Worktrees: wts}}
			return nil
		})
	}
	_ = g.Wait() // always nil, errors became warnings

	var listings []RepoWorktrees
	var warnings []LoadWarning
	for _, r := range results {
		if r.warning != nil {
			warnings = append(warnings, *r.warning)
			continue
		}
		listings = append(listings, r.listing)
	}

	return listings, warnings
}
