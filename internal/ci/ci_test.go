package ci

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wtmdev/wtm/internal/config"
)

func TestNewDispatcherRequiresCommands(t *testing.T) {
	t.Parallel()

	_, err := NewDispatcher(config.Repo{Name: "bare"}, ".")
	assert.ErrorIs(t, err, ErrUnregisteredRepository)

	d, err := NewDispatcher(config.Repo{Name: "ok", Build: "true"}, ".")
	require.NoError(t, err)
	assert.NotNil(t, d)
}

func TestRunPhaseMissingCommand(t *testing.T) {
	t.Parallel()

	d, err := NewDispatcher(config.Repo{Name: "partial", Build: "true"}, t.TempDir())
	require.NoError(t, err)

	assert.ErrorIs(t, d.RunPhase(context.Background(), Lint), ErrUnregisteredRepository)
}

func TestRunPhaseExecutesShellCommand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	d, err := NewDispatcher(config.Repo{Name: "r", Build: "touch built.txt"}, dir)
	require.NoError(t, err)

	require.NoError(t, d.RunPhase(context.Background(), Build))
	assert.FileExists(t, dir+"/built.txt")
}

func TestRunPhasePropagatesExitStatus(t *testing.T) {
	t.Parallel()

	d, err := NewDispatcher(config.Repo{Name: "r", Test: "exit 3"}, t.TempDir())
	require.NoError(t, err)

	assert.Error(t, d.RunPhase(context.Background(), Test))
}

func TestRunAllShortCircuits(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	repo := config.Repo{
		Name:  "r",
		Build: "touch build.txt",
		Test:  "false",
		Lint:  "touch lint.txt",
	}
	d, err := NewDispatcher(repo, dir)
	require.NoError(t, err)

	assert.Error(t, d.RunAll(context.Background()))
	assert.FileExists(t, dir+"/build.txt")
	assert.NoFileExists(t, dir+"/lint.txt")
}

func TestRunAllSucceeds(t *testing.T) {
	t.Parallel()

	repo := config.Repo{Name: "r", Build: "true", Test: "true", Lint: "true"}
	d, err := NewDispatcher(repo, t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, d.RunAll(context.Background()))
}

func TestGradleArgs(t *testing.T) {
	t.Parallel()

	args := GradleArgs([]string{"app", "lib:core"}, []string{"build", "lint"})

	assert.Equal(t, []string{
		":app:build", ":app:lint",
		":lib:core:build", ":lib:core:lint",
	}, args)
}

func TestRunModulesRequiresModules(t *testing.T) {
	t.Parallel()

	d, err := NewDispatcher(config.Repo{Name: "r", Build: "./gradlew build"}, t.TempDir())
	require.NoError(t, err)

	err = d.RunModules(context.Background(), Build, []string{"build"})
	assert.ErrorIs(t, err, ErrNoModulesConfigured)
}

func TestRunModulesFallsBackForNonGradle(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	repo := config.Repo{
		Name:    "r",
		Build:   "touch whole.txt",
		Modules: []string{"app"},
	}
	d, err := NewDispatcher(repo, dir)
	require.NoError(t, err)

	require.NoError(t, d.RunModules(context.Background(), Build, []string{"build"}))
	assert.FileExists(t, dir+"/whole.txt")
}

func TestPhaseString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "build", Build.String())
	assert.Equal(t, "test", Test.String())
	assert.Equal(t, "lint", Lint.String())
}
