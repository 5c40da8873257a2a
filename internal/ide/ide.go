// Package ide picks and launches the right development environment for a
// checkout: an explicit per-repository configuration wins, otherwise the
// tree's build files decide.
package ide

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/wtmdev/wtm/internal/cmdutil"
	"github.com/wtmdev/wtm/internal/config"
)

var (
	ErrIdeNotFound    = errors.New("no suitable IDE found")
	ErrUnknownIdeType = errors.New("unknown ide type")
)

// Known IDE types. The first four match the values accepted in the config
// file; the rest only come out of heuristic detection.
const (
	TypeAndroidStudio  = "android-studio"
	TypeXcodeWorkspace = "xcode-workspace"
	TypeXcodePackage   = "xcode-package"
	TypeVSCode         = "vscode"
	TypeXcodeProject   = "xcode-project"
	TypeEditor         = "editor"
)

// Target is a resolved IDE launch: what to open and with which tool.
type Target struct {
	Type string
	Path string
}

// Detect resolves the IDE target for a checkout. An explicit IDE
// configuration on the repository takes precedence; otherwise build files
// in gitRoot drive the choice, falling back to a plain editor.
func Detect(gitRoot string, repo config.Repo) (Target, error) {
	if repo.IDE != nil {
		return fromConfig(gitRoot, *repo.IDE)
	}
	return fromHeuristics(gitRoot)
}

func fromConfig(gitRoot string, ide config.IDEConfig) (Target, error) {
	switch ide.Type {
	case TypeAndroidStudio:
		return Target{Type: TypeAndroidStudio, Path: gitRoot}, nil
	case TypeVSCode:
		return Target{Type: TypeVSCode, Path: gitRoot}, nil
	case TypeXcodeWorkspace, TypeXcodePackage:
		path := filepath.Join(gitRoot, ide.Path)
		if _, err := os.Stat(path); err != nil {
			return Target{}, fmt.Errorf("%w: %s", ErrIdeNotFound, path)
		}
		return Target{Type: ide.Type, Path: path}, nil
	default:
		return Target{}, fmt.Errorf("%w: %q", ErrUnknownIdeType, ide.Type)
	}
}

func fromHeuristics(gitRoot string) (Target, error) {
	if exists(gitRoot, "gradlew") || exists(gitRoot, "build.gradle") || exists(gitRoot, "build.gradle.kts") {
		return Target{Type: TypeAndroidStudio, Path: gitRoot}, nil
	}

	if exists(gitRoot, "Package.swift") {
		// Xcode generates a workspace next to the manifest; prefer it when
		// present so schemes and settings carry over.
		if ws := glob(gitRoot, "*.xcworkspace"); ws != "" {
			return Target{Type: TypeXcodeWorkspace, Path: ws}, nil
		}
		return Target{Type: TypeXcodePackage, Path: filepath.Join(gitRoot, "Package.swift")}, nil
	}

	if ws := glob(gitRoot, "*.xcworkspace"); ws != "" {
		return Target{Type: TypeXcodeWorkspace, Path: ws}, nil
	}
	if proj := glob(gitRoot, "*.xcodeproj"); proj != "" {
		return Target{Type: TypeXcodeProject, Path: proj}, nil
	}

	return Target{Type: TypeEditor, Path: gitRoot}, nil
}

func exists(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}

func glob(dir, pattern string) string {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil || len(matches) == 0 {
		return ""
	}
	return matches[0]
}

// launcher returns the command invocation for a target. The editor type
// honors $EDITOR before falling back to VS Code.
func launcher(target Target) (string, []string, error) {
	switch target.Type {
	case TypeAndroidStudio:
		return "studio", []string{target.Path}, nil
	case TypeXcodeWorkspace, TypeXcodePackage, TypeXcodeProject:
		return "open", []string{target.Path}, nil
	case TypeVSCode:
		return "code", []string{target.Path}, nil
	case TypeEditor:
		if editor := os.Getenv("EDITOR"); editor != "" {
			return editor, []string{target.Path}, nil
		}
		return "code", []string{target.Path}, nil
	default:
		return "", nil, fmt.Errorf("%w: %q", ErrUnknownIdeType, target.Type)
	}
}

// Launch opens the target in its IDE. Fails with ErrIdeNotFound when the
// launcher binary is not installed.
func Launch(ctx context.Context, target Target) error {
	name, args, err := launcher(target)
	if err != nil {
		return err
	}
	if _, err := exec.LookPath(name); err != nil {
		return fmt.Errorf("%w: %s is not installed", ErrIdeNotFound, name)
	}

	return cmdutil.RunInteractive(ctx, "", name, args...)
}
