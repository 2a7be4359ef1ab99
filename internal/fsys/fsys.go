// Package fsys is the filesystem capability used by the expansion pipeline:
// reading and writing files, recursive glob discovery, and nearest-ancestor
// marker lookup. Everything else in mdocs reaches the disk through FileSystem.
package fsys

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/tacogips/mdocs/internal/debug"
)

// FileSystem is the set of filesystem operations mdocs depends on.
type FileSystem interface {
	// ReadFile returns the text content of path.
	ReadFile(path string) (string, error)

	// WriteFile replaces the content of path, creating parent directories as needed.
	WriteFile(path, content string) error

	// FindFiles returns the absolute paths under root matching pattern, in
	// lexical walk order. Patterns without a slash match the file's base name;
	// patterns with a slash match the root-relative path.
	FindFiles(pattern, root string) ([]string, error)

	// FindNearestAncestor walks up from startDir (inclusive) and returns the
	// path of the first entry named marker. ok is false when none exists.
	FindNearestAncestor(marker, startDir string) (path string, ok bool, err error)

	// Exists reports whether path exists.
	Exists(path string) bool

	// IsFile reports whether path exists and is a regular file.
	IsFile(path string) bool
}

// OSFileSystem implements FileSystem on the host filesystem.
type OSFileSystem struct {
	// IgnoreDirs are directory base names never descended into by FindFiles.
	IgnoreDirs []string
}

// NewOSFileSystem creates an OSFileSystem that skips the given directory names.
func NewOSFileSystem(ignoreDirs []string) *OSFileSystem {
	return &OSFileSystem{IgnoreDirs: ignoreDirs}
}

// ReadFile returns the text content of path.
func (o *OSFileSystem) ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Exists reports whether path exists.
func (o *OSFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsFile reports whether path is a regular file, following symlinks.
func (o *OSFileSystem) IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// FindFiles returns the files under root matching pattern.
func (o *OSFileSystem) FindFiles(pattern, root string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob pattern: %s", pattern)
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	matchBase := !strings.Contains(pattern, "/")
	var found []string

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && slices.Contains(o.IgnoreDirs, d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		name := d.Name()
		if !matchBase {
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			name = filepath.ToSlash(rel)
		}
		ok, err := doublestar.Match(pattern, name)
		if err != nil {
			return err
		}
		if ok {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search %s for %s: %w", root, pattern, err)
	}

	debug.Debug("[fsys] FindFiles: pattern=%s root=%s matches=%d", pattern, root, len(found))
	return found, nil
}

// FindNearestAncestor walks up from startDir looking for marker.
func (o *OSFileSystem) FindNearestAncestor(marker, startDir string) (string, bool, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, err
	}

	for {
		candidate := filepath.Join(dir, marker)
		_, err := os.Lstat(candidate)
		if err == nil {
			return candidate, true, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", false, err
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// EscapeGlob quotes the glob meta characters in s so it matches literally.
func EscapeGlob(s string) string {
	var out []byte
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '*', '?', '[', ']', '{', '}', '\\':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}
