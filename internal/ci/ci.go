// Package ci dispatches the per-repository build, test and lint commands.
// Commands are configured as shell strings and run through the host shell,
// so pipelines and environment expansion in the config keep working.
package ci

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/wtmdev/wtm/internal/cmdutil"
	"github.com/wtmdev/wtm/internal/config"
	"github.com/wtmdev/wtm/internal/log"
)

var (
	ErrUnregisteredRepository = errors.New("repository has no CI configuration")
	ErrNoModulesConfigured    = errors.New("no modules configured")
)

// Phase selects one of the configured command strings.
type Phase int

const (
	Build Phase = iota
	Test
	Lint
)

func (p Phase) String() string {
	switch p {
	case Build:
		return "build"
	case Test:
		return "test"
	case Lint:
		return "lint"
	default:
		return "unknown"
	}
}

// Dispatcher runs configured commands for one repository in a fixed
// working directory.
type Dispatcher struct {
	repo config.Repo
	dir  string
}

// NewDispatcher builds a dispatcher for repo, running commands in dir.
// Fails when the repository has no command triple configured.
func NewDispatcher(repo config.Repo, dir string) (*Dispatcher, error) {
	if repo.Build == "" && repo.Test == "" && repo.Lint == "" {
		return nil, fmt.Errorf("%w: %s", ErrUnregisteredRepository, repo.Name)
	}
	return &Dispatcher{repo: repo, dir: dir}, nil
}

func (d *Dispatcher) command(phase Phase) string {
	switch phase {
	case Build:
		return d.repo.Build
	case Test:
		return d.repo.Test
	case Lint:
		return d.repo.Lint
	default:
		return ""
	}
}

// RunPhase executes the configured command for one phase through the shell,
// propagating the command's exit status as the returned error.
func (d *Dispatcher) RunPhase(ctx context.Context, phase Phase) error {
	command := d.command(phase)
	if command == "" {
		return fmt.Errorf("%w: no %s command for %s", ErrUnregisteredRepository, phase, d.repo.Name)
	}
	return d.shell(ctx, command)
}

// RunAll chains build, test and lint, stopping at the first failure.
func (d *Dispatcher) RunAll(ctx context.Context) error {
	l := log.FromContext(ctx)
	for _, phase := range []Phase{Build, Test, Lint} {
		l.Printf("==> %s: %s\n", phase, d.command(phase))
		if err := d.RunPhase(ctx, phase); err != nil {
			l.Printf("==> %s failed\n", phase)
			return err
		}
		l.Printf("==> %s ok\n", phase)
	}
	return nil
}

// GradleArgs synthesizes the argument list for a module-scoped invocation:
// one :module:task argument per (module, task) combination, modules outer.
func GradleArgs(modules, tasks []string) []string {
	args := make([]string, 0, len(modules)*len(tasks))
	for _, module := range modules {
		for _, task := range tasks {
			args = append(args, ":"+strings.Trim(module, ":")+":"+task)
		}
	}
	return args
}

// gradleBased reports whether the repository's build command indicates a
// Gradle project.
func (d *Dispatcher) gradleBased() bool {
	return strings.Contains(d.repo.Build, "gradle")
}

// RunModules runs tasks scoped to the configured module list as a single
// combined Gradle invocation. Non-Gradle repositories fall back to the
// whole-repository phase.
func (d *Dispatcher) RunModules(ctx context.Context, fallback Phase, tasks []string) error {
	if len(d.repo.Modules) == 0 {
		return fmt.Errorf("%w for %s", ErrNoModulesConfigured, d.repo.Name)
	}
	if !d.gradleBased() {
		log.FromContext(ctx).Printf("not a Gradle project, running %s for the whole repository\n", fallback)
		return d.RunPhase(ctx, fallback)
	}
	args := GradleArgs(d.repo.Modules, tasks)
	return d.shell(ctx, "./gradlew "+strings.Join(args, " "))
}

// shell runs a configured command string through sh -c with inherited
// stdio, so interactive tools and progress output behave normally.
func (d *Dispatcher) shell(ctx context.Context, command string) error {
	if err := cmdutil.RunInteractive(ctx, d.dir, "sh", "-c", command); err != nil {
		if code := cmdutil.ExitCode(err); code > 0 {
			return fmt.Errorf("%q exited with status %d", command, code)
		}
		return fmt.Errorf("%q: %w", command, err)
	}
	return nil
}
