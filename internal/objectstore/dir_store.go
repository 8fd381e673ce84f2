package objectstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const artifactFilePermissions = 0o644

var (
	// ErrNotDirectory indicates that the output path is missing or not a directory.
	ErrNotDirectory = errors.New("output path is not an existing directory")
	// ErrInvalidKey indicates a key that would escape the output directory.
	ErrInvalidKey = errors.New("object key must be a plain file name")
)

// DirStore implements the core.ObjectStore interface on a local directory.
// The directory must already exist; it is never created.
type DirStore struct {
	dir string
}

// NewDir binds a DirStore to an existing directory.
func NewDir(dir string) (*DirStore, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotDirectory, dir)
		}

		return nil, fmt.Errorf("failed to stat output directory %q: %w", dir, err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}

	return &DirStore{dir: dir}, nil
}

// Dir returns the backing directory.
func (d *DirStore) Dir() string {
	return d.dir
}

// Download reads an artifact from the directory.
func (d *DirStore) Download(_ context.Context, key string) ([]byte, error) {
	path, err := d.path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read object '%s' from %s: %w", key, d.dir, err)
	}

	return data, nil
}

// Upload writes an artifact, truncating any file already stored under key.
func (d *DirStore) Upload(_ context.Context, key string, data []byte) error {
	path, err := d.path(key)
	if err != nil {
		return err
	}

	err = os.WriteFile(path, data, artifactFilePermissions)
	if err != nil {
		return fmt.Errorf("failed to write object '%s' to %s: %w", key, d.dir, err)
	}

	return nil
}

func (d *DirStore) path(key string) (string, error) {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}

	return filepath.Join(d.dir, key), nil
}
