package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wtmdev/wtm/internal/config"
	"github.com/wtmdev/wtm/internal/git"
	"github.com/wtmdev/wtm/internal/log"
	"github.com/wtmdev/wtm/internal/output"
	"github.com/wtmdev/wtm/internal/ui/styles"
)

var (
	// Global flags
	verbose bool
	quiet   bool

	// Shared state injected into commands
	workDir string
)

// Command group IDs for organizing help output
const (
	GroupWorktree = "worktree"
	GroupCI       = "ci"
	GroupConfig   = "config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "wtm",
	Short: "Git worktree manager with per-repo build and IDE config",
	Long: `wtm manages git worktrees for bare-cloned repositories.

Worktrees live under a common root as <repo>-<branch> directories. Each
repository carries its build/test/lint commands, an optional Gradle module
list and an IDE preference in ~/.config/wtm/config.toml.

Commands that target a directory print it on stdout, for use with
command substitution: cd "$(wtm add feature-x)".`,
	SilenceUsage:               true,
	SilenceErrors:              true,
	SuggestionsMinimumDistance: 2, // Enable typo suggestions
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose && quiet {
			return fmt.Errorf("--verbose and --quiet are mutually exclusive")
		}

		// Flags are parsed at this point, so the logger can honor
		// --verbose and --quiet. Diagnostics go to stderr, primary
		// data to stdout.
		cmd.SetContext(log.WithLogger(cmd.Context(), log.New(os.Stderr, verbose, quiet)))

		// Completion, help and config management work without git
		switch cmd.Name() {
		case "completion", "__complete", "help":
			return nil
		}
		if isConfigCommand(cmd) {
			return nil
		}

		return git.CheckGit()
	},
	// Run is not set - shows help when no subcommand provided
}

func isConfigCommand(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "config" {
			return true
		}
	}
	return false
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	workDir, err = os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "wtm: failed to get working directory: %v\n", err)
		os.Exit(1)
	}

	styles.Init()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ctx = output.WithPrinter(ctx, os.Stdout)
	ctx = config.WithConfig(ctx, &cfg)

	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Run 'wtm -h' for help")
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show external commands being executed")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.AddGroup(
		&cobra.Group{ID: GroupWorktree, Title: "Worktree Commands:"},
		&cobra.Group{ID: GroupCI, Title: "CI Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
	)

	// Worktree commands
	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newSwitchCmd())
	rootCmd.AddCommand(newRmCmd())
	rootCmd.AddCommand(newTemplateCmd())
	rootCmd.AddCommand(newReposCmd())

	// CI commands
	rootCmd.AddCommand(newCiCmd())
	rootCmd.AddCommand(newBuildCmd())
	rootCmd.AddCommand(newTestCmd())
	rootCmd.AddCommand(newLintCmd())
	rootCmd.AddCommand(newIdeCmd())

	// Config commands
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newCompletionCmd())
}
