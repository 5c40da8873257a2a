// Package resolve maps user-supplied repository tokens and working
// directories onto configured repositories.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/wtmdev/wtm/internal/config"
	"github.com/wtmdev/wtm/internal/log"
)

// ErrUnknownRepository indicates the token (or working directory) did not
// match any configured repository.
var ErrUnknownRepository = errors.New("unknown repository")

// Resolution is a resolved repository.
type Resolution struct {
	Shorthand string
	Name      string // full repository name
	Repo      config.Repo
}

// Repository resolves a token to a configured repository. An empty or
// unknown token falls back to auto-detection against the working directory.
func Repository(ctx context.Context, cfg *config.Config, token, cwd string) (Resolution, error) {
	if token != "" {
		if short, repo, ok := cfg.RepoByToken(token); ok {
			return Resolution{Shorthand: short, Name: repo.Name, Repo: repo}, nil
		}
	}

	if res, ok := detect(ctx, cfg, cwd, false); ok {
		return res, nil
	}

	return Resolution{}, fmt.Errorf("%w %q (configured: %s)", ErrUnknownRepository, token, cfg.DescribeRepos())
}

// Current resolves the repository for the working directory alone. Used by
// the CI and IDE dispatchers, which have no explicit-argument form; unlike
// Repository it also matches shorthands against the directory path.
func Current(ctx context.Context, cfg *config.Config, cwd string) (Resolution, error) {
	if res, ok := detect(ctx, cfg, cwd, true); ok {
		return res, nil
	}
	return Resolution{}, fmt.Errorf("%w for directory %s (configured: %s)", ErrUnknownRepository, cwd, cfg.DescribeRepos())
}

// detect scans the working directory path for configured repository names.
// Several names can be substrings of the same path (and of each other), so
// the longest full-name match wins and the losers are logged at debug level.
func detect(ctx context.Context, cfg *config.Config, cwd string, matchShorthands bool) (Resolution, bool) {
	type candidate struct {
		short string
		repo  config.Repo
		match string
	}
	var candidates []candidate

	for _, short := range cfg.Shorthands() {
		repo := cfg.Repos[short]
		if repo.Name != "" && strings.Contains(cwd, repo.Name) {
			candidates = append(candidates, candidate{short: short, repo: repo, match: repo.Name})
			continue
		}
		if matchShorthands && strings.Contains(cwd, short) {
			candidates = append(candidates, candidate{short: short, repo: repo, match: short})
		}
	}

	if len(candidates) == 0 {
		return Resolution{}, false
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return len(candidates[i].match) > len(candidates[j].match)
	})

	if len(candidates) > 1 {
		var losers []string
		for _, c := range candidates[1:] {
			losers = append(losers, c.repo.Name)
		}
		log.FromContext(ctx).Debug("ambiguous repository detection",
			"dir", cwd,
			"picked", candidates[0].repo.Name,
			"also matched", strings.Join(losers, ","))
	}

	best := candidates[0]
	return Resolution{Shorthand: best.short, Name: best.repo.Name, Repo: best.repo}, true
}
