package config

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Legacy represents the old shell-sourced config format: scalar assignments
// plus associative arrays (REPO_MAPPINGS, REPO_CONFIGS, …). Entries were
// historically keyed by either shorthand or full repository name; the
// migration rewrites everything onto shorthand keys.
type Legacy struct {
	Version      int
	GitUsername  string
	BranchPrefix string
	BaseDir      string
	Mappings     map[string]string // shorthand -> full name
	Configs      map[string]string // key -> "build|test|lint"
	Modules      map[string]string // key -> space-separated module paths
	IDEs         map[string]string // key -> "type|path"
	Nested       map[string]string // key -> nested dir name
}

var (
	legacyScalarRe = regexp.MustCompile(`(?m)^([A-Z_]+)=("?)([^"\n]*)("?)\s*$`)
	legacyArrayRe  = regexp.MustCompile(`(?m)^([A-Z_]+)\[([^\]]+)\]="([^"]*)"`)
)

// ParseLegacy extracts scalars and array entries from a legacy config script.
// Unknown variables are ignored; the parser never fails on extra content
// because legacy configs carried comments, guards and lazy-load scaffolding.
func ParseLegacy(data []byte) Legacy {
	l := Legacy{
		Mappings: map[string]string{},
		Configs:  map[string]string{},
		Modules:  map[string]string{},
		IDEs:     map[string]string{},
		Nested:   map[string]string{},
	}

	for _, m := range legacyScalarRe.FindAllStringSubmatch(string(data), -1) {
		name, value := m[1], strings.TrimSpace(m[3])
		switch name {
		case "CONFIG_VERSION":
			if v, err := strconv.Atoi(value); err == nil {
				l.Version = v
			}
		case "GIT_USERNAME":
			l.GitUsername = value
		case "BRANCH_PREFIX":
			l.BranchPrefix = value
		case "BASE_DEV_PATH":
			l.BaseDir = normalizeLegacyPath(value)
		}
	}

	for _, m := range legacyArrayRe.FindAllStringSubmatch(string(data), -1) {
		array, key, value := m[1], m[2], m[3]
		switch array {
		case "REPO_MAPPINGS":
			l.Mappings[key] = value
		case "REPO_CONFIGS":
			l.Configs[key] = value
		case "REPO_MODULES":
			l.Modules[key] = value
		case "REPO_IDE_CONFIGS":
			l.IDEs[key] = value
		case "REPO_NESTED_WORKTREES":
			l.Nested[key] = value
		}
	}

	return l
}

// normalizeLegacyPath rewrites $HOME references to ~ so the TOML config
// stays portable (shell expansion doesn't happen in TOML files).
func normalizeLegacyPath(path string) string {
	path = strings.ReplaceAll(path, "${HOME}", "~")
	path = strings.ReplaceAll(path, "$HOME", "~")
	return path
}

// SplitCommandTriple splits a legacy "build|test|lint" command string.
// The build command is everything before the first pipe and the lint command
// everything after the last one, so embedded pipes in the middle survive.
func SplitCommandTriple(s string) (build, test, lint string, err error) {
	first := strings.Index(s, "|")
	last := strings.LastIndex(s, "|")
	if first == -1 || first == last {
		return "", "", "", fmt.Errorf("expected two | separators in %q", s)
	}
	return s[:first], s[first+1 : last], s[last+1:], nil
}

// shorthandFor maps a legacy array key (shorthand or full name) to the
// shorthand, falling back to the key itself.
func (l *Legacy) shorthandFor(key string) string {
	if _, ok := l.Mappings[key]; ok {
		return key
	}
	for short, full := range l.Mappings {
		if full == key {
			return short
		}
	}
	return key
}

// ToConfig converts a parsed legacy config into the current schema,
// rewriting full-name keys onto shorthands.
func (l *Legacy) ToConfig() (Config, error) {
	cfg := Default()
	cfg.GitUsername = l.GitUsername
	cfg.BranchPrefix = l.BranchPrefix
	cfg.BaseDir = l.BaseDir

	for short, full := range l.Mappings {
		cfg.Repos[short] = Repo{Name: full}
	}

	for key, triple := range l.Configs {
		short := l.shorthandFor(key)
		repo := cfg.Repos[short]
		if repo.Name == "" {
			repo.Name = short
		}
		build, test, lint, err := SplitCommandTriple(triple)
		if err != nil {
			return Config{}, fmt.Errorf("REPO_CONFIGS[%s]: %w", key, err)
		}
		repo.Build, repo.Test, repo.Lint = build, test, lint
		cfg.Repos[short] = repo
	}

	for key, mods := range l.Modules {
		short := l.shorthandFor(key)
		repo := cfg.Repos[short]
		if repo.Name == "" {
			repo.Name = short
		}
		repo.Modules = strings.Fields(mods)
		cfg.Repos[short] = repo
	}

	for key, ide := range l.IDEs {
		short := l.shorthandFor(key)
		repo := cfg.Repos[short]
		if repo.Name == "" {
			repo.Name = short
		}
		parts := strings.SplitN(ide, "|", 3)
		ideCfg := &IDEConfig{Type: parts[0]}
		if len(parts) > 1 {
			ideCfg.Path = parts[1]
		}
		if !validIDETypes[ideCfg.Type] {
			return Config{}, fmt.Errorf("REPO_IDE_CONFIGS[%s]: unknown ide type %q", key, ideCfg.Type)
		}
		repo.IDE = ideCfg
		cfg.Repos[short] = repo
	}

	for key, dir := range l.Nested {
		short := l.shorthandFor(key)
		repo := cfg.Repos[short]
		if repo.Name == "" {
			repo.Name = short
		}
		repo.NestedDir = dir
		cfg.Repos[short] = repo
	}

	return cfg, nil
}
