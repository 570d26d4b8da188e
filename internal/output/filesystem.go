// Package output writes generated sources with write-or-nothing semantics.
package output

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileSystem defines the file system operations used by generators
type FileSystem interface {
	// Stat returns file info for path
	Stat(path string) (os.FileInfo, error)

	// WriteFile replaces the file at path with data. Either the whole new
	// content becomes visible or the file is left as it was.
	WriteFile(path string, data []byte, perm os.FileMode) error
}

// OSFileSystem is a FileSystem backed by the operating system. Writes go to
// a temporary file in the destination directory that is renamed into place.
type OSFileSystem struct{}

// NewOSFileSystem creates an OS backed file system
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

// Stat implements FileSystem
func (OSFileSystem) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

// WriteFile implements FileSystem
func (OSFileSystem) WriteFile(path string, data []byte, perm os.FileMode) (err error) {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file for %s: %w", path, err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync %s: %w", path, err)
	}
	if err = tmp.Chmod(perm); err != nil {
		return fmt.Errorf("failed to set permissions of %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to move %s into place: %w", path, err)
	}
	return nil
}

// DirExists reports whether path exists and is a directory
func DirExists(fs FileSystem, path string) bool {
	info, err := fs.Stat(path)
	return err == nil && info.IsDir()
}
