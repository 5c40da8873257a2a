// Package template synchronizes per-repository template trees with
// worktrees. Load copies the whole template into a checkout; Save refreshes
// the template from a checkout but only for files the template already
// contains, so the template's file set stays curated by hand.
package template

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Exists reports whether a template directory is present for a repository.
func Exists(templateDir string) bool {
	info, err := os.Stat(templateDir)
	return err == nil && info.IsDir()
}

// Load recursively copies every entry of templateDir, including hidden
// files, into dstDir, creating directories and overwriting conflicts.
func Load(templateDir, dstDir string) error {
	return filepath.WalkDir(templateDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(templateDir, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		target := filepath.Join(dstDir, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		return copyFile(path, target)
	})
}

// Save refreshes template files from workDir. Only relative paths already
// present in the template are updated; files that exist solely in the
// working tree are never added. Working-tree files that are missing are
// skipped silently (the template keeps its last saved copy).
func Save(templateDir, workDir string) error {
	return filepath.WalkDir(templateDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(templateDir, path)
		if err != nil {
			return err
		}
		src := filepath.Join(workDir, rel)
		if _, err := os.Stat(src); errors.Is(err, os.ErrNotExist) {
			return nil
		} else if err != nil {
			return err
		}
		return copyFile(src, path)
	})
}

func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
