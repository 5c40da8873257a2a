package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/wtmdev/wtm/internal/ci"
)

// currentDispatcher resolves the current repository and builds a
// dispatcher running in the working directory.
func currentDispatcher(ctx context.Context) (*ci.Dispatcher, error) {
	res, err := resolveCurrentRepo(ctx)
	if err != nil {
		return nil, err
	}
	return ci.NewDispatcher(res.Repo, workDir)
}

func newCiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ci",
		Short:   "Run the repository's build, test and lint commands",
		GroupID: GroupCI,
		Args:    cobra.NoArgs,
		Long: `Run the configured build, test and lint commands for the repository
detected from the working directory, in that order, stopping at the
first failure.`,
		Example: `  wtm ci
  wtm ci modules            # module-scoped build
  wtm ci modules assembleDebug testDebugUnitTest`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, err := currentDispatcher(ctx)
			if err != nil {
				return err
			}
			return d.RunAll(ctx)
		},
	}

	cmd.AddCommand(newCiModulesCmd())

	return cmd
}

func newCiModulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "modules [tasks...]",
		Short: "Run Gradle tasks scoped to the configured modules",
		Long: `Run Gradle tasks against the repository's configured module list as a
single combined invocation, one :module:task pair per combination.
Defaults to the build task. Non-Gradle repositories run their whole-repo
build command instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, err := currentDispatcher(ctx)
			if err != nil {
				return err
			}
			tasks := args
			if len(tasks) == 0 {
				tasks = []string{"build"}
			}
			return d.RunModules(ctx, ci.Build, tasks)
		},
	}
	return cmd
}

func newBuildCmd() *cobra.Command {
	return newPhaseCmd("build", "Run the repository's build command", ci.Build)
}

func newTestCmd() *cobra.Command {
	return newPhaseCmd("test", "Run the repository's test command", ci.Test)
}

func newLintCmd() *cobra.Command {
	cmd := newPhaseCmd("lint", "Run the repository's lint command", ci.Lint)
	cmd.AddCommand(newLintModulesCmd())
	return cmd
}

func newLintModulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "modules",
		Short: "Run the Gradle lint task scoped to the configured modules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, err := currentDispatcher(ctx)
			if err != nil {
				return err
			}
			return d.RunModules(ctx, ci.Lint, []string{"lint"})
		},
	}
	return cmd
}

func newPhaseCmd(name, short string, phase ci.Phase) *cobra.Command {
	return &cobra.Command{
		Use:     name,
		Short:   short,
		GroupID: GroupCI,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, err := currentDispatcher(ctx)
			if err != nil {
				return err
			}
			return d.RunPhase(ctx, phase)
		},
	}
}
