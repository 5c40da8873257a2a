package main

import (
	"context"

	"github.com/wtmdev/wtm/internal/config"
	"github.com/wtmdev/wtm/internal/resolve"
)

// splitRepoArg interprets an optional leading repository token:
// one argument means "current repo, arg is the operand", two mean
// "explicit repo, then operand".
func splitRepoArg(args []string) (token, operand string) {
	if len(args) == 2 {
		return args[0], args[1]
	}
	if len(args) == 1 {
		return "", args[0]
	}
	return "", ""
}

// resolveRepo resolves an optional repository token against the config,
// falling back to working-directory detection.
func resolveRepo(ctx context.Context, token string) (resolve.Resolution, error) {
	cfg := config.FromContext(ctx)
	return resolve.Repository(ctx, cfg, token, workDir)
}

// resolveCurrentRepo resolves the repository from the working directory
// only, the CI-dispatch rule (shorthand segments count as matches too).
func resolveCurrentRepo(ctx context.Context) (resolve.Resolution, error) {
	cfg := config.FromContext(ctx)
	return resolve.Current(ctx, cfg, workDir)
}
