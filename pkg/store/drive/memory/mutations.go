package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/math-u-t/Drive-CLI/pkg/store/drive"
)

// CreateFolder creates an empty folder under parentID.
func (s *MemoryDriveStore) CreateFolder(ctx context.Context, parentID uuid.UUID, name string) (*drive.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, &drive.StoreError{Code: drive.ErrInvalidArgument, Message: "empty folder name"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireFolderLocked(parentID); err != nil {
		return nil, err
	}

	now := s.now()
	n := &drive.Node{
		ID:         uuid.New(),
		Name:       name,
		Kind:       drive.KindFolder,
		CreatedAt:  now,
		ModifiedAt: now,
		Owner:      s.owner,
	}
	s.attachLocked(n, parentID)
	return cloneNode(n), nil
}

// CreateFile creates a file node under parentID.
func (s *MemoryDriveStore) CreateFile(ctx context.Context, parentID uuid.UUID, name, mimeType string, size uint64, contentID drive.ContentID) (*drive.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, &drive.StoreError{Code: drive.ErrInvalidArgument, Message: "empty file name"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireFolderLocked(parentID); err != nil {
		return nil, err
	}

	now := s.now()
	n := &drive.Node{
		ID:         uuid.New(),
		Name:       name,
		Kind:       drive.KindFile,
		MimeType:   mimeType,
		Size:       size,
		ContentID:  contentID,
		CreatedAt:  now,
		ModifiedAt: now,
		Owner:      s.owner,
	}
	s.attachLocked(n, parentID)
	return cloneNode(n), nil
}

// Rename changes a node's name.
func (s *MemoryDriveStore) Rename(ctx context.Context, id uuid.UUID, newName string) (*drive.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if newName == "" {
		return nil, &drive.StoreError{Code: drive.ErrInvalidArgument, Message: "empty name"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.nodes[id]
	if !ok {
		return nil, drive.NotFound(id.String())
	}

	n.Name = newName
	n.ModifiedAt = s.now()
	return cloneNode(n), nil
}

// Move re-parents a node, refusing moves that would create a cycle.
func (s *MemoryDriveStore) Move(ctx context.Context, id, newParentID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.nodes[id]
	if !ok {
		return drive.NotFound(id.String())
	}
	if err := s.requireFolderLocked(newParentID); err != nil {
		return err
	}
	if id == s.rootID {
		return &drive.StoreError{Code: drive.ErrInvalidArgument, Message: "cannot move the root folder"}
	}

	// Walking up from the destination must never reach the moved node,
	// otherwise the move would detach the subtree into a cycle.
	if n.Kind == drive.KindFolder {
		for cur := newParentID; ; {
			if cur == id {
				return &drive.StoreError{Code: drive.ErrCycle, Message: "cannot move a folder into its own subtree", Name: n.Name}
			}
			parent, ok := s.parents[cur]
			if !ok {
				break
			}
			cur = parent
		}
	}

	s.detachLocked(id)
	s.parents[id] = newParentID
	s.children[newParentID] = append(s.children[newParentID], id)
	n.ModifiedAt = s.now()
	return nil
}

// CopyFile duplicates a file node into destParentID under its original name.
func (s *MemoryDriveStore) CopyFile(ctx context.Context, fileID, destParentID uuid.UUID, contentID drive.ContentID) (*drive.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	src, ok := s.nodes[fileID]
	if !ok {
		return nil, drive.NotFound(fileID.String())
	}
	if src.Kind != drive.KindFile {
		return nil, &drive.StoreError{Code: drive.ErrNotFile, Message: "not a file", Name: src.Name}
	}
	if err := s.requireFolderLocked(destParentID); err != nil {
		return nil, err
	}

	now := s.now()
	n := &drive.Node{
		ID:         uuid.New(),
		Name:       src.Name,
		Kind:       drive.KindFile,
		MimeType:   src.MimeType,
		Size:       src.Size,
		ContentID:  contentID,
		CreatedAt:  now,
		ModifiedAt: now,
		Owner:      s.owner,
	}
	s.attachLocked(n, destParentID)
	return cloneNode(n), nil
}

// Trash moves a node to the trash. The node stays attached to its parent so
// Restore can bring it back in place.
func (s *MemoryDriveStore) Trash(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.nodes[id]
	if !ok {
		return drive.NotFound(id.String())
	}
	if id == s.rootID {
		return &drive.StoreError{Code: drive.ErrInvalidArgument, Message: "cannot trash the root folder"}
	}

	n.Trashed = true
	n.TrashedAt = s.now()
	return nil
}

// Restore brings a trashed node back.
func (s *MemoryDriveStore) Restore(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.nodes[id]
	if !ok {
		return drive.NotFound(id.String())
	}
	if !n.Trashed {
		return &drive.StoreError{Code: drive.ErrNotTrashed, Message: "not in trash", Name: n.Name}
	}

	n.Trashed = false
	n.TrashedAt = time.Time{}
	return nil
}

// ListTrashedFolders enumerates all trashed folders in creation order.
func (s *MemoryDriveStore) ListTrashedFolders(ctx context.Context) ([]*drive.Node, error) {
	return s.listTrashed(ctx, drive.KindFolder)
}

// ListTrashedFiles enumerates all trashed files in creation order.
func (s *MemoryDriveStore) ListTrashedFiles(ctx context.Context) ([]*drive.Node, error) {
	return s.listTrashed(ctx, drive.KindFile)
}

func (s *MemoryDriveStore) listTrashed(ctx context.Context, kind drive.NodeKind) ([]*drive.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*drive.Node
	for _, id := range s.order {
		n := s.nodes[id]
		if n == nil || !n.Trashed || n.Kind != kind {
			continue
		}
		out = append(out, cloneNode(n))
	}
	return out, nil
}

// AddGrant grants a user a role, overwriting any previous grant for the
// same email.
func (s *MemoryDriveStore) AddGrant(ctx context.Context, id uuid.UUID, email string, role drive.Role) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.nodes[id]
	if !ok {
		return drive.NotFound(id.String())
	}

	for i := range n.Sharing.Grants {
		if n.Sharing.Grants[i].Email == email {
			n.Sharing.Grants[i].Role = role
			n.ModifiedAt = s.now()
			return nil
		}
	}
	n.Sharing.Grants = append(n.Sharing.Grants, drive.Grant{Email: email, Role: role})
	n.ModifiedAt = s.now()
	return nil
}

// SetLinkAccess switches a node to anyone-with-link visibility.
func (s *MemoryDriveStore) SetLinkAccess(ctx context.Context, id uuid.UUID, role drive.Role) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.nodes[id]
	if !ok {
		return drive.NotFound(id.String())
	}

	n.Sharing.Scope = drive.AccessAnyoneWithLink
	n.Sharing.LinkRole = role
	n.ModifiedAt = s.now()
	return nil
}

// attachLocked registers a new node under a parent. Caller holds the write
// lock and has validated the parent.
func (s *MemoryDriveStore) attachLocked(n *drive.Node, parentID uuid.UUID) {
	s.nodes[n.ID] = n
	s.parents[n.ID] = parentID
	s.children[parentID] = append(s.children[parentID], n.ID)
	s.order = append(s.order, n.ID)
}

// detachLocked removes a node from its current parent's child list.
func (s *MemoryDriveStore) detachLocked(id uuid.UUID) {
	parentID, ok := s.parents[id]
	if !ok {
		return
	}
	siblings := s.children[parentID]
	for i, childID := range siblings {
		if childID == id {
			s.children[parentID] = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
	delete(s.parents, id)
}
