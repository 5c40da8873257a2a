package main

import (
	"github.com/spf13/cobra"

	"github.com/wtmdev/wtm/internal/git"
	"github.com/wtmdev/wtm/internal/ide"
	"github.com/wtmdev/wtm/internal/log"
)

func newIdeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ide",
		Short:   "Open the current checkout in its IDE",
		GroupID: GroupCI,
		Args:    cobra.NoArgs,
		Long: `Open the current checkout in the right development environment.

An explicit IDE setting on the repository wins; otherwise the checkout's
build files decide (Gradle project, Swift package, Xcode workspace or
project), falling back to $EDITOR.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			res, err := resolveCurrentRepo(ctx)
			if err != nil {
				return err
			}

			gitRoot, err := git.TopLevel(ctx, workDir)
			if err != nil {
				gitRoot = workDir
			}

			target, err := ide.Detect(gitRoot, res.Repo)
			if err != nil {
				return err
			}

			log.FromContext(ctx).Debug("detected ide", "type", target.Type, "path", target.Path)
			return ide.Launch(ctx, target)
		},
	}

	return cmd
}
