package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemStore implements Store over a local directory.
// Files live at {basePath}/{path}.
type FilesystemStore struct {
	basePath string
}

// NewFilesystemStore creates a filesystem store rooted at basePath.
func NewFilesystemStore(basePath string) *FilesystemStore {
	return &FilesystemStore{
		basePath: basePath,
	}
}

// validatePath rejects path traversal attempts and invalid characters.
func (f *FilesystemStore) validatePath(path string) error {
	if strings.Contains(path, "\x00") {
		return fmt.Errorf("invalid path: null byte not allowed")
	}

	if filepath.IsAbs(path) {
		return fmt.Errorf("invalid path: absolute paths not allowed")
	}
	if len(path) >= 2 && path[1] == ':' {
		return fmt.Errorf("invalid path: absolute paths not allowed")
	}

	clean := filepath.Clean(filepath.FromSlash(path))
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return fmt.Errorf("invalid path: path traversal not allowed")
	}

	return nil
}

// buildPath constructs the full filesystem path after validation.
func (f *FilesystemStore) buildPath(path string) (string, error) {
	if err := f.validatePath(path); err != nil {
		return "", err
	}

	fullPath := filepath.Join(f.basePath, filepath.FromSlash(path))

	// Final safety check: ensure path is within basePath
	cleanPath := filepath.Clean(fullPath)
	cleanBase := filepath.Clean(f.basePath)
	if !strings.HasPrefix(cleanPath, cleanBase) {
		return "", fmt.Errorf("invalid path: path escapes base directory")
	}

	return cleanPath, nil
}

func (f *FilesystemStore) Exists(ctx context.Context, path string) (bool, error) {
	fullPath, err := f.buildPath(path)
	if err != nil {
		return false, err
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("checking file: %w", err)
	}

	return !info.IsDir(), nil
}

func (f *FilesystemStore) DirExists(ctx context.Context, path string) (bool, error) {
	fullPath, err := f.buildPath(path)
	if err != nil {
		return false, err
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("checking directory: %w", err)
	}

	return info.IsDir(), nil
}

func (f *FilesystemStore) ReadFile(ctx context.Context, path string) ([]byte, error) {
	fullPath, err := f.buildPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading file: %w", err)
	}

	return data, nil
}

func (f *FilesystemStore) WriteFile(ctx context.Context, path string, data []byte) error {
	fullPath, err := f.buildPath(path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}

	return nil
}

func (f *FilesystemStore) ListDirs(ctx context.Context, path string) ([]string, error) {
	fullPath, err := f.buildPath(path)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading directory: %w", err)
	}

	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, entry.Name())
		}
	}

	return dirs, nil
}
