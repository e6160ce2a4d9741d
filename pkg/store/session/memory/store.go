// Package memory provides an in-memory session store.
package memory

import (
	"context"
	"sync"
)

// MemorySessionStore keeps session state in a nested map guarded by a
// read-write mutex. State is lost on restart.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]map[string]string
}

// NewMemorySessionStore creates an empty in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]map[string]string),
	}
}

// Get returns the value of field for sessionID, or "" if unset.
func (s *MemorySessionStore) Get(ctx context.Context, sessionID, field string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.sessions[sessionID][field], nil
}

// Set stores value under field for sessionID.
func (s *MemorySessionStore) Set(ctx context.Context, sessionID, field, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	fields, ok := s.sessions[sessionID]
	if !ok {
		fields = make(map[string]string)
		s.sessions[sessionID] = fields
	}
	fields[field] = value
	return nil
}

// Delete removes field for sessionID. Idempotent.
func (s *MemorySessionStore) Delete(ctx context.Context, sessionID, field string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if fields, ok := s.sessions[sessionID]; ok {
		delete(fields, field)
		if len(fields) == 0 {
			delete(s.sessions, sessionID)
		}
	}
	return nil
}

// Close is a no-op.
func (s *MemorySessionStore) Close() error { return nil }
