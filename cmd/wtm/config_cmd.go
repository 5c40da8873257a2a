package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wtmdev/wtm/internal/config"
	"github.com/wtmdev/wtm/internal/log"
	"github.com/wtmdev/wtm/internal/output"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Manage the wtm configuration",
		GroupID: GroupConfig,
	}

	cmd.AddCommand(newConfigPathCmd())
	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigMigrateCmd())

	return cmd
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.Path()
			if err != nil {
				return err
			}
			output.FromContext(cmd.Context()).Println(path)
			return nil
		},
	}
}

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented starter config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.Init(force)
			if err != nil {
				return err
			}
			log.FromContext(cmd.Context()).Printf("Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	return cmd
}

func newConfigMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate [legacy-config]",
		Short: "Convert a legacy shell-format config to TOML",
		Args:  cobra.MaximumNArgs(1),
		Long: `Convert the old shell-array worktree config into the TOML format.

Repository entries keyed by full name are rewritten to their shorthands.
An existing TOML config is backed up first. Running against an
already-migrated config is a no-op.`,
		Example: `  wtm config migrate
  wtm config migrate ~/.worktree_config`,
		RunE: func(cmd *cobra.Command, args []string) error {
			legacyPath := ""
			if len(args) == 1 {
				legacyPath = args[0]
			} else {
				var err error
				legacyPath, err = config.LegacyPath()
				if err != nil {
					return err
				}
			}

			dstPath, err := config.Path()
			if err != nil {
				return err
			}

			result, err := config.Migrate(legacyPath, dstPath)
			if err != nil {
				return fmt.Errorf("migrate %s: %w", legacyPath, err)
			}

			l := log.FromContext(cmd.Context())
			if result.Skipped {
				l.Printf("Nothing to do: %s\n", result.Reason)
				return nil
			}
			if result.BackupPath != "" {
				l.Printf("Backed up previous config to %s\n", result.BackupPath)
			}
			l.Printf("Migrated %s to %s\n", legacyPath, result.ConfigPath)
			return nil
		},
	}

	return cmd
}
