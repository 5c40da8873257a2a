package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// MigrateResult reports what the migration did.
type MigrateResult struct {
	ConfigPath string // path of the written TOML config
	BackupPath string // non-empty when an existing TOML config was backed up
	Skipped    bool
	Reason     string // set when Skipped
}

// Migrate converts a legacy shell-format config at legacyPath into a TOML
// config at dstPath. It is idempotent: a legacy config already carrying the
// current version marker, or an up-to-date TOML config at dstPath, results
// in a no-op. An existing out-of-date TOML config is backed up before being
// overwritten.
func Migrate(legacyPath, dstPath string) (MigrateResult, error) {
	data, err := os.ReadFile(legacyPath)
	if err != nil {
		return MigrateResult{}, fmt.Errorf("read legacy config: %w", err)
	}

	legacy := ParseLegacy(data)
	if legacy.Version >= CurrentVersion {
		return MigrateResult{
			Skipped: true,
			Reason:  fmt.Sprintf("legacy config is already at version %d", legacy.Version),
		}, nil
	}

	if existing, err := os.ReadFile(dstPath); err == nil {
		var probe struct {
			Version int `toml:"version"`
		}
		if toml.Unmarshal(existing, &probe) == nil && probe.Version >= CurrentVersion {
			return MigrateResult{
				ConfigPath: dstPath,
				Skipped:    true,
				Reason:     fmt.Sprintf("config at %s is already at version %d", dstPath, probe.Version),
			}, nil
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return MigrateResult{}, fmt.Errorf("read existing config: %w", err)
	}

	cfg, err := legacy.ToConfig()
	if err != nil {
		return MigrateResult{}, fmt.Errorf("convert legacy config: %w", err)
	}
	cfg.Version = CurrentVersion

	result := MigrateResult{ConfigPath: dstPath}

	if _, err := os.Stat(dstPath); err == nil {
		backup := dstPath + ".bak"
		if err := os.Rename(dstPath, backup); err != nil {
			return MigrateResult{}, fmt.Errorf("back up existing config: %w", err)
		}
		result.BackupPath = backup
	}

	if err := os.MkdirAll(filepath.Dir(dstPath), 0755); err != nil {
		return MigrateResult{}, err
	}

	var buf bytes.Buffer
	buf.WriteString("# wtm configuration (migrated from legacy shell config)\n\n")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return MigrateResult{}, fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(dstPath, buf.Bytes(), 0644); err != nil {
		return MigrateResult{}, fmt.Errorf("write config: %w", err)
	}

	return result, nil
}
