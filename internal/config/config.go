// Package config loads and represents the wtm configuration.
//
// The configuration is read once at process start and treated as immutable
// afterwards; commands receive it by parameter (or via the context helpers)
// instead of reaching for globals.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// CurrentVersion is the config schema version written by init and migrate.
const CurrentVersion = 2

// IDEConfig declares which IDE opens a repository's worktrees.
type IDEConfig struct {
	Type string `toml:"type"` // android-studio, xcode-workspace, xcode-package, vscode
	Path string `toml:"path"` // workspace/package path relative to the checkout, for the xcode types
}

// Repo holds per-repository settings, keyed by shorthand in the config file.
type Repo struct {
	Name      string     `toml:"name"` // full repository name; defaults to the table key
	Build     string     `toml:"build"`
	Test      string     `toml:"test"`
	Lint      string     `toml:"lint"`
	Modules   []string   `toml:"modules,omitempty"`    // gradle module paths, optional
	NestedDir string     `toml:"nested_dir,omitempty"` // nested-layout checkout dir name, optional
	IDE       *IDEConfig `toml:"ide,omitempty"`
}

// Config holds the wtm configuration.
type Config struct {
	Version      int             `toml:"version"`
	GitUsername  string          `toml:"git_username"`
	BranchPrefix string          `toml:"branch_prefix"`
	BaseDir      string          `toml:"base_dir"`
	BareReposDir string          `toml:"bare_repos_dir"`
	WorktreesDir string          `toml:"worktrees_dir"`
	TemplatesDir string          `toml:"templates_dir"`
	Repos        map[string]Repo `toml:"repos"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Version: CurrentVersion,
		Repos:   map[string]Repo{},
	}
}

// RepoByToken looks up a repository by shorthand first, then by full name.
// The dual lookup keeps configs keyed by full name working.
func (c *Config) RepoByToken(token string) (shorthand string, repo Repo, ok bool) {
	if r, found := c.Repos[token]; found {
		return token, r, true
	}
	for key, r := range c.Repos {
		if r.Name == token {
			return key, r, true
		}
	}
	return "", Repo{}, false
}

// Shorthands returns all configured shorthands, sorted.
func (c *Config) Shorthands() []string {
	keys := make([]string, 0, len(c.Repos))
	for k := range c.Repos {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DescribeRepos returns "shorthand (full-name)" lines for operator guidance
// in error messages.
func (c *Config) DescribeRepos() string {
	var parts []string
	for _, k := range c.Shorthands() {
		parts = append(parts, fmt.Sprintf("%s (%s)", k, c.Repos[k].Name))
	}
	return strings.Join(parts, ", ")
}

// BranchName applies the configured branch prefix to a suffix.
func (c *Config) BranchName(suffix string) string {
	if c.BranchPrefix == "" {
		return suffix
	}
	return c.BranchPrefix + "/" + suffix
}

// BareRepoPath returns the bare storage path for a repository name.
func (c *Config) BareRepoPath(name string) string {
	return filepath.Join(c.BareReposDir, name+".git")
}

// TemplateDir returns the template directory for a repository name.
func (c *Config) TemplateDir(name string) string {
	return filepath.Join(c.TemplatesDir, name)
}

// Path returns the path to the config file.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "wtm", "config.toml"), nil
}

// LegacyPath returns the default location of the old shell-format config.
func LegacyPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".worktree_config"), nil
}

// ValidatePath checks that the path is absolute or starts with ~.
func ValidatePath(path, fieldName string) error {
	if path == "" {
		return nil // not configured
	}
	if path[0] == '~' {
		return nil
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s must be absolute or start with ~, got: %q", fieldName, path)
	}
	return nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

var validIDETypes = map[string]bool{
	"android-studio":  true,
	"xcode-workspace": true,
	"xcode-package":   true,
	"vscode":          true,
}

// Load reads the config from ~/.config/wtm/config.toml.
// Returns Default() without error if the file doesn't exist.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads the config from an explicit path.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a TOML config document.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config file: %w", err)
	}

	for _, field := range []struct{ val, name string }{
		{cfg.BaseDir, "base_dir"},
		{cfg.BareReposDir, "bare_repos_dir"},
		{cfg.WorktreesDir, "worktrees_dir"},
		{cfg.TemplatesDir, "templates_dir"},
	} {
		if err := ValidatePath(field.val, field.name); err != nil {
			return Default(), err
		}
	}

	if err := expandDirs(&cfg); err != nil {
		return Default(), err
	}
	deriveDirs(&cfg)

	if cfg.Repos == nil {
		cfg.Repos = map[string]Repo{}
	}
	for key, repo := range cfg.Repos {
		if repo.Name == "" {
			repo.Name = key
			cfg.Repos[key] = repo
		}
		if repo.IDE != nil && !validIDETypes[repo.IDE.Type] {
			return Default(), fmt.Errorf("invalid ide type %q for repo %q: must be one of android-studio, xcode-workspace, xcode-package, vscode", repo.IDE.Type, key)
		}
	}

	// The branch prefix joins with "/": a trailing slash would produce
	// an empty ref segment.
	if strings.HasSuffix(cfg.BranchPrefix, "/") {
		return Default(), fmt.Errorf("branch_prefix must not end with /: %q", cfg.BranchPrefix)
	}

	return cfg, nil
}

func expandDirs(cfg *Config) error {
	for _, field := range []struct {
		val  *string
		name string
	}{
		{&cfg.BaseDir, "base_dir"},
		{&cfg.BareReposDir, "bare_repos_dir"},
		{&cfg.WorktreesDir, "worktrees_dir"},
		{&cfg.TemplatesDir, "templates_dir"},
	} {
		expanded, err := ExpandPath(*field.val)
		if err != nil {
			return fmt.Errorf("expand %s: %w", field.name, err)
		}
		*field.val = expanded
	}
	return nil
}

// deriveDirs fills the storage directories from base_dir when unset,
// matching the <base>/.repos, <base>/worktrees, <base>/worktree_templates
// layout convention.
func deriveDirs(cfg *Config) {
	if cfg.BaseDir == "" {
		return
	}
	if cfg.BareReposDir == "" {
		cfg.BareReposDir = filepath.Join(cfg.BaseDir, ".repos")
	}
	if cfg.WorktreesDir == "" {
		cfg.WorktreesDir = filepath.Join(cfg.BaseDir, "worktrees")
	}
	if cfg.TemplatesDir == "" {
		cfg.TemplatesDir = filepath.Join(cfg.BaseDir, "worktree_templates")
	}
}

const defaultConfig = `# wtm configuration

version = 2

# Used for the default branch prefix and commit templates.
# git_username = "jdoe"

# Prefix applied to every branch created by wtm add.
# "jdoe" turns "wtm add web fix" into branch "jdoe/fix".
# Leave empty to use branch suffixes verbatim.
# branch_prefix = ""

# Base development directory. Derives the three directories below
# when they are not set explicitly:
#   <base_dir>/.repos               bare repository storages (<name>.git)
#   <base_dir>/worktrees            checkouts (<name>-<branch>)
#   <base_dir>/worktree_templates   per-repo template trees (<name>/)
# base_dir = "~/dev"

# bare_repos_dir = "~/dev/.repos"
# worktrees_dir = "~/dev/worktrees"
# templates_dir = "~/dev/worktree_templates"

# Repositories, keyed by shorthand.
#
# [repos.web]
# name = "Acme-Web"
# build = "make build"
# test = "make test"
# lint = "make lint"
#
# [repos.android]
# name = "Acme-Android"
# build = "./gradlew assembleDebug"
# test = "./gradlew testDebugUnitTest"
# lint = "./gradlew lintDebug"
# modules = ["app", "core/network"]
#
# [repos.ios]
# name = "Acme-iOS"
# build = "fastlane build"
# test = "fastlane test"
# lint = "swiftlint"
# nested_dir = "checkout"   # checkout lives one level below the worktree dir
# [repos.ios.ide]
# type = "xcode-workspace"
# path = "Acme.xcworkspace"
`

// Init creates a default config file at ~/.config/wtm/config.toml.
// If force is true, overwrites an existing file.
// Returns the path to the created file.
func Init(force bool) (string, error) {
	path, err := Path()
	if err != nil {
		return "", err
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", errors.New("config file already exists: " + path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(defaultConfig), 0644); err != nil {
		return "", err
	}
	return path, nil
}
