// Package memory implements an in-memory drive store.
//
// This implementation is suitable for testing, development and demo
// deployments where persistence is not required. All state lives in
// interconnected maps guarded by a single read-write mutex.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/math-u-t/Drive-CLI/pkg/store/drive"
)

// MemoryDriveStore implements drive.Store using in-memory storage.
//
// Storage Model:
//   - nodes: node id → node record (the primary storage)
//   - parents: child id → parent folder id (upward traversal)
//   - children: folder id → ordered child ids (downward traversal)
//   - order: all node ids in creation order (stable global enumeration,
//     used by the trash listing)
//
// Children keep insertion order, which makes enumeration stable and gives
// "first match wins" name lookups a deterministic meaning even when two
// children share a name.
//
// Thread Safety:
// All operations are protected by a single read-write mutex. Reads return
// copies of node records so callers can never alias internal state.
type MemoryDriveStore struct {
	mu sync.RWMutex

	nodes    map[uuid.UUID]*drive.Node
	parents  map[uuid.UUID]uuid.UUID
	children map[uuid.UUID][]uuid.UUID
	order    []uuid.UUID

	rootID uuid.UUID
	owner  string
	now    func() time.Time
}

// Option configures a MemoryDriveStore.
type Option func(*MemoryDriveStore)

// WithClock overrides the store clock. Used by tests that need
// deterministic timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *MemoryDriveStore) { s.now = now }
}

// NewMemoryDriveStore creates an empty store whose nodes are owned by the
// given identity. The root folder is created immediately.
func NewMemoryDriveStore(owner string, opts ...Option) *MemoryDriveStore {
	s := &MemoryDriveStore{
		nodes:    make(map[uuid.UUID]*drive.Node),
		parents:  make(map[uuid.UUID]uuid.UUID),
		children: make(map[uuid.UUID][]uuid.UUID),
		owner:    owner,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	now := s.now()
	root := &drive.Node{
		ID:         uuid.New(),
		Name:       "My Drive",
		Kind:       drive.KindFolder,
		CreatedAt:  now,
		ModifiedAt: now,
		Owner:      owner,
	}
	s.nodes[root.ID] = root
	s.order = append(s.order, root.ID)
	s.rootID = root.ID

	return s
}

// Root returns the root folder.
func (s *MemoryDriveStore) Root(ctx context.Context) (*drive.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneNode(s.nodes[s.rootID]), nil
}

// GetNode retrieves a node by id.
func (s *MemoryDriveStore) GetNode(ctx context.Context, id uuid.UUID) (*drive.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.nodes[id]
	if !ok {
		return nil, drive.NotFound(id.String())
	}
	return cloneNode(n), nil
}

// ListChildFolders enumerates non-trashed child folders in insertion order.
func (s *MemoryDriveStore) ListChildFolders(ctx context.Context, folderID uuid.UUID) ([]*drive.Node, error) {
	return s.listChildren(ctx, folderID, drive.KindFolder)
}

// ListChildFiles enumerates non-trashed child files in insertion order.
func (s *MemoryDriveStore) ListChildFiles(ctx context.Context, folderID uuid.UUID) ([]*drive.Node, error) {
	return s.listChildren(ctx, folderID, drive.KindFile)
}

func (s *MemoryDriveStore) listChildren(ctx context.Context, folderID uuid.UUID, kind drive.NodeKind) ([]*drive.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.requireFolderLocked(folderID); err != nil {
		return nil, err
	}

	var out []*drive.Node
	for _, childID := range s.children[folderID] {
		child := s.nodes[childID]
		if child == nil || child.Trashed || child.Kind != kind {
			continue
		}
		out = append(out, cloneNode(child))
	}
	return out, nil
}

// FindChildFolderByName returns the first matching non-trashed child folder.
func (s *MemoryDriveStore) FindChildFolderByName(ctx context.Context, folderID uuid.UUID, name string) (*drive.Node, error) {
	return s.findChild(ctx, folderID, name, drive.KindFolder)
}

// FindChildFileByName returns the first matching non-trashed child file.
func (s *MemoryDriveStore) FindChildFileByName(ctx context.Context, folderID uuid.UUID, name string) (*drive.Node, error) {
	return s.findChild(ctx, folderID, name, drive.KindFile)
}

func (s *MemoryDriveStore) findChild(ctx context.Context, folderID uuid.UUID, name string, kind drive.NodeKind) (*drive.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.requireFolderLocked(folderID); err != nil {
		return nil, err
	}

	for _, childID := range s.children[folderID] {
		child := s.nodes[childID]
		if child == nil || child.Trashed || child.Kind != kind {
			continue
		}
		if child.Name == name {
			return cloneNode(child), nil
		}
	}
	return nil, drive.NotFound(name)
}

// Parent returns the parent folder, or (nil, nil) for the root.
func (s *MemoryDriveStore) Parent(ctx context.Context, id uuid.UUID) (*drive.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.nodes[id]; !ok {
		return nil, drive.NotFound(id.String())
	}

	parentID, ok := s.parents[id]
	if !ok {
		return nil, nil
	}
	return cloneNode(s.nodes[parentID]), nil
}

// Path builds the absolute path by walking the parent chain. The root name
// is not part of the path: the root renders as "/".
func (s *MemoryDriveStore) Path(ctx context.Context, id uuid.UUID) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.nodes[id]; !ok {
		return "", drive.NotFound(id.String())
	}
	if id == s.rootID {
		return "/", nil
	}

	var parts []string
	current := id
	for current != s.rootID {
		n := s.nodes[current]
		if n == nil {
			return "", drive.NotFound(current.String())
		}
		parts = append([]string{n.Name}, parts...)

		parentID, ok := s.parents[current]
		if !ok {
			break
		}
		current = parentID
	}

	path := ""
	for _, p := range parts {
		path += "/" + p
	}
	return path, nil
}

// HealthCheck verifies the root folder exists.
func (s *MemoryDriveStore) HealthCheck(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.nodes[s.rootID]; !ok {
		return &drive.StoreError{Code: drive.ErrIOError, Message: "root folder missing"}
	}
	return nil
}

// Close releases resources. The memory store has none.
func (s *MemoryDriveStore) Close() error { return nil }

// requireFolderLocked verifies the id refers to an existing folder.
// Callers must hold at least a read lock.
func (s *MemoryDriveStore) requireFolderLocked(id uuid.UUID) error {
	n, ok := s.nodes[id]
	if !ok {
		return drive.NotFound(id.String())
	}
	if n.Kind != drive.KindFolder {
		return &drive.StoreError{Code: drive.ErrNotFolder, Message: "not a folder", Name: n.Name}
	}
	return nil
}

func cloneNode(n *drive.Node) *drive.Node {
	if n == nil {
		return nil
	}
	out := *n
	if len(n.Sharing.Grants) > 0 {
		out.Sharing.Grants = append([]drive.Grant(nil), n.Sharing.Grants...)
	}
	return &out
}
