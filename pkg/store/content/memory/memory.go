// Package memory provides an in-memory content store.
//
// Content lives in a single map guarded by a read-write mutex. Nothing is
// persisted; the store is intended for tests and for running the server
// without any storage configured.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/math-u-t/Drive-CLI/pkg/store/content"
	"github.com/math-u-t/Drive-CLI/pkg/store/drive"
)

// MemoryContentStore keeps file bodies in process memory.
type MemoryContentStore struct {
	mu   sync.RWMutex
	data map[drive.ContentID][]byte
}

// NewMemoryContentStore creates an empty in-memory content store.
func NewMemoryContentStore() *MemoryContentStore {
	return &MemoryContentStore{
		data: make(map[drive.ContentID][]byte),
	}
}

// Read returns a copy of the content stored under id.
func (s *MemoryContentStore) Read(ctx context.Context, id drive.ContentID) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.data[id]
	if !ok {
		return nil, fmt.Errorf("content %s: %w", id, content.ErrContentNotFound)
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Write stores a copy of data under id.
func (s *MemoryContentStore) Write(ctx context.Context, id drive.ContentID, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	s.data[id] = stored
	return nil
}

// Copy duplicates the content under src into dst.
func (s *MemoryContentStore) Copy(ctx context.Context, src, dst drive.ContentID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.data[src]
	if !ok {
		return fmt.Errorf("content %s: %w", src, content.ErrContentNotFound)
	}
	stored := make([]byte, len(data))
	copy(stored, data)
	s.data[dst] = stored
	return nil
}

// Delete removes the content under id. Idempotent.
func (s *MemoryContentStore) Delete(ctx context.Context, id drive.ContentID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, id)
	return nil
}

// Exists reports whether content is stored under id.
func (s *MemoryContentStore) Exists(ctx context.Context, id drive.ContentID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.data[id]
	return ok, nil
}

// Size returns the stored size in bytes.
func (s *MemoryContentStore) Size(ctx context.Context, id drive.ContentID) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.data[id]
	if !ok {
		return 0, fmt.Errorf("content %s: %w", id, content.ErrContentNotFound)
	}
	return uint64(len(data)), nil
}

// HealthCheck always succeeds for the in-memory store.
func (s *MemoryContentStore) HealthCheck(ctx context.Context) error {
	return ctx.Err()
}

// Close is a no-op.
func (s *MemoryContentStore) Close() error { return nil }
