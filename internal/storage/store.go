// Package storage provides the backing store for script files and test data.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/crowmatic/perch/internal/config"
)

var (
	ErrNotFound      = errors.New("file not found")
	ErrInvalidConfig = errors.New("invalid storage configuration")
)

// Store abstracts file primitives over the script root. Paths are
// slash-separated and relative to the store root.
type Store interface {
	// Exists reports whether a file exists at path.
	Exists(ctx context.Context, path string) (bool, error)
	// DirExists reports whether a directory exists at path.
	DirExists(ctx context.Context, path string) (bool, error)
	// ReadFile returns the full content of the file at path.
	// Returns ErrNotFound if the file doesn't exist.
	ReadFile(ctx context.Context, path string) ([]byte, error)
	// WriteFile stores data at path, creating parent directories as needed.
	WriteFile(ctx context.Context, path string, data []byte) error
	// ListDirs returns the names of first-level directories under path.
	// A missing path yields an empty listing, not an error.
	ListDirs(ctx context.Context, path string) ([]string, error)
}

// New builds a Store from configuration.
func New(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Type {
	case "filesystem":
		if cfg.Path == "" {
			return nil, fmt.Errorf("%w: path is required", ErrInvalidConfig)
		}
		return NewFilesystemStore(cfg.Path), nil
	case "s3":
		return NewS3Store(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("%w: unknown storage type %q", ErrInvalidConfig, cfg.Type)
	}
}
