package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wtmdev/wtm/internal/config"
	"github.com/wtmdev/wtm/internal/git"
	"github.com/wtmdev/wtm/internal/log"
	"github.com/wtmdev/wtm/internal/template"
)

func newTemplateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "template",
		Short:   "Copy untracked config files between worktrees and templates",
		GroupID: GroupWorktree,
		Long: `Manage per-repository template trees.

Templates hold untracked files (local.properties, .envrc, editor settings)
that every fresh worktree needs. "load" copies the whole template into the
current checkout; "save" refreshes the template's files from the current
checkout without adding new ones.`,
	}

	cmd.AddCommand(newTemplateLoadCmd())
	cmd.AddCommand(newTemplateSaveCmd())

	return cmd
}

// templateContext resolves the current repository and checkout root.
func templateContext(cmd *cobra.Command, args []string) (templateDir, gitRoot string, err error) {
	ctx := cmd.Context()

	var token string
	if len(args) == 1 {
		token = args[0]
	}
	res, err := resolveRepo(ctx, token)
	if err != nil {
		return "", "", err
	}

	gitRoot, err = git.TopLevel(ctx, workDir)
	if err != nil {
		return "", "", fmt.Errorf("not inside a worktree: %w", err)
	}

	cfg := config.FromContext(ctx)
	return cfg.TemplateDir(res.Name), gitRoot, nil
}

func newTemplateLoadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "load [repo]",
		Short:             "Copy the repository's template files into the current checkout",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeRepos,
		RunE: func(cmd *cobra.Command, args []string) error {
			templateDir, gitRoot, err := templateContext(cmd, args)
			if err != nil {
				return err
			}
			if !template.Exists(templateDir) {
				return fmt.Errorf("no templates at %s", templateDir)
			}
			if err := template.Load(templateDir, gitRoot); err != nil {
				return err
			}
			log.FromContext(cmd.Context()).Printf("Loaded templates from %s\n", templateDir)
			return nil
		},
	}
	return cmd
}

func newTemplateSaveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "save [repo]",
		Short:             "Refresh the repository's template files from the current checkout",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeRepos,
		RunE: func(cmd *cobra.Command, args []string) error {
			templateDir, gitRoot, err := templateContext(cmd, args)
			if err != nil {
				return err
			}
			if !template.Exists(templateDir) {
				return fmt.Errorf("no templates at %s, create the directory and seed it first", templateDir)
			}
			if err := template.Save(templateDir, gitRoot); err != nil {
				return err
			}
			log.FromContext(cmd.Context()).Printf("Saved templates to %s\n", templateDir)
			return nil
		},
	}
	return cmd
}
