// Package fs provides a filesystem-backed content store.
package fs

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/math-u-t/Drive-CLI/pkg/store/content"
	"github.com/math-u-t/Drive-CLI/pkg/store/drive"
)

// FSContentStore stores file bodies as individual files under a base
// directory, one file per ContentID.
//
// Filesystem operations are thread-safe at the OS level, but concurrent
// writes to the same ContentID may interleave. Callers serialize writes
// to the same content.
type FSContentStore struct {
	basePath string
}

// NewFSContentStore creates a filesystem content store rooted at basePath.
// The directory is created if it does not exist.
func NewFSContentStore(ctx context.Context, basePath string) (*FSContentStore, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &FSContentStore{basePath: basePath}, nil
}

// filePath returns the path for a given content ID. The ID is hex-encoded
// so arbitrary bytes in it cannot escape the base directory.
func (s *FSContentStore) filePath(id drive.ContentID) string {
	return filepath.Join(s.basePath, hex.EncodeToString([]byte(id)))
}

// Read returns the full content stored under id.
func (s *FSContentStore) Read(ctx context.Context, id drive.ContentID) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.filePath(id))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("content %s: %w", id, content.ErrContentNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read content %s: %w", id, err)
	}
	return data, nil
}

// Write stores data under id, replacing any existing content. The write
// goes to a temporary file first and is renamed into place so readers
// never observe a partial body.
func (s *FSContentStore) Write(ctx context.Context, id drive.ContentID, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	target := s.filePath(id)
	tmp, err := os.CreateTemp(s.basePath, ".write-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write content %s: %w", id, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to commit content %s: %w", id, err)
	}
	return nil
}

// Copy duplicates the content under src into dst.
func (s *FSContentStore) Copy(ctx context.Context, src, dst drive.ContentID) error {
	data, err := s.Read(ctx, src)
	if err != nil {
		return err
	}
	return s.Write(ctx, dst, data)
}

// Delete removes the content under id. Idempotent.
func (s *FSContentStore) Delete(ctx context.Context, id drive.ContentID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := os.Remove(s.filePath(id))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete content %s: %w", id, err)
	}
	return nil
}

// Exists reports whether content is stored under id.
func (s *FSContentStore) Exists(ctx context.Context, id drive.ContentID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	_, err := os.Stat(s.filePath(id))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat content %s: %w", id, err)
	}
	return true, nil
}

// Size returns the stored content size in bytes.
func (s *FSContentStore) Size(ctx context.Context, id drive.ContentID) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	info, err := os.Stat(s.filePath(id))
	if os.IsNotExist(err) {
		return 0, fmt.Errorf("content %s: %w", id, content.ErrContentNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to stat content %s: %w", id, err)
	}
	return uint64(info.Size()), nil
}

// HealthCheck verifies the base directory exists and is writable.
func (s *FSContentStore) HealthCheck(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	info, err := os.Stat(s.basePath)
	if err != nil {
		return fmt.Errorf("base directory unavailable: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("base path %s is not a directory", s.basePath)
	}

	tmp, err := os.CreateTemp(s.basePath, ".health-*")
	if err != nil {
		return fmt.Errorf("base directory not writable: %w", err)
	}
	name := tmp.Name()
	tmp.Close()
	return os.Remove(name)
}

// Close is a no-op; the store holds no open handles between operations.
func (s *FSContentStore) Close() error { return nil }
