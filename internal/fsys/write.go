package fsys

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tacogips/mdocs/internal/debug"
)

const (
	fileMode = 0644
	dirMode  = 0755
)

// WriteFile writes content to path atomically using a temporary file and rename.
// Parent directories are created if they don't exist.
func (o *OSFileSystem) WriteFile(path, content string) error {
	debug.Debug("[fsys] Writing file: %s (size: %d bytes)", path, len(content))

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, dirMode); err != nil {
			return fmt.Errorf("failed to create parent directory of %s: %w", path, err)
		}
	}

	tempFile := path + ".tmp"
	f, err := os.OpenFile(tempFile, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fileMode)
	if err != nil {
		return fmt.Errorf("failed to create temporary file for %s: %w", path, err)
	}

	_, err = f.WriteString(content)
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(tempFile)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := os.Rename(tempFile, path); err != nil {
		_ = os.Remove(tempFile)
		return fmt.Errorf("failed to rename temporary file to %s: %w", path, err)
	}
	return nil
}
