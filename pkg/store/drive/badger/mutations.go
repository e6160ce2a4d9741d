package badger

import (
	"context"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/math-u-t/Drive-CLI/pkg/store/drive"
)

// CreateFolder creates an empty folder under parentID.
func (s *BadgerDriveStore) CreateFolder(ctx context.Context, parentID uuid.UUID, name string) (*drive.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, &drive.StoreError{Code: drive.ErrInvalidArgument, Message: "empty folder name"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	node := &drive.Node{
		ID:         uuid.New(),
		Name:       name,
		Kind:       drive.KindFolder,
		CreatedAt:  now,
		ModifiedAt: now,
		Owner:      s.owner,
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		if err := requireFolder(txn, parentID); err != nil {
			return err
		}
		return attach(txn, node, parentID)
	})
	if err != nil {
		return nil, err
	}
	return node, nil
}

// CreateFile creates a file node under parentID.
func (s *BadgerDriveStore) CreateFile(ctx context.Context, parentID uuid.UUID, name, mimeType string, size uint64, contentID drive.ContentID) (*drive.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, &drive.StoreError{Code: drive.ErrInvalidArgument, Message: "empty file name"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	node := &drive.Node{
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

	err := s.db.Update(func(txn *badger.Txn) error {
		if err := requireFolder(txn, parentID); err != nil {
			return err
		}
		return attach(txn, node, parentID)
	})
	if err != nil {
		return nil, err
	}
	return node, nil
}

// Rename changes a node's name.
func (s *BadgerDriveStore) Rename(ctx context.Context, id uuid.UUID, newName string) (*drive.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if newName == "" {
		return nil, &drive.StoreError{Code: drive.ErrInvalidArgument, Message: "empty name"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var node *drive.Node
	err := s.db.Update(func(txn *badger.Txn) error {
		var err error
		node, err = getNode(txn, id)
		if err != nil {
			return err
		}
		node.Name = newName
		node.ModifiedAt = s.now()
		return putNode(txn, node)
	})
	if err != nil {
		return nil, err
	}
	return node, nil
}

// Move re-parents a node, refusing moves that would create a cycle.
func (s *BadgerDriveStore) Move(ctx context.Context, id, newParentID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Update(func(txn *badger.Txn) error {
		node, err := getNode(txn, id)
		if err != nil {
			return err
		}
		if err := requireFolder(txn, newParentID); err != nil {
			return err
		}

		rootID, err := getUUID(txn, rootKey)
		if err != nil {
			return err
		}
		if id == rootID {
			return &drive.StoreError{Code: drive.ErrInvalidArgument, Message: "cannot move the root folder"}
		}

		// The parent chain above the destination must not contain the
		// moved folder.
		if node.Kind == drive.KindFolder {
			for cur := newParentID; ; {
				if cur == id {
					return &drive.StoreError{Code: drive.ErrCycle, Message: "cannot move a folder into its own subtree", Name: node.Name}
				}
				parentID, ok, err := getParentID(txn, cur)
				if err != nil {
					return err
				}
				if !ok {
					break
				}
				cur = parentID
			}
		}

		if err := detach(txn, id); err != nil {
			return err
		}
		if err := link(txn, id, newParentID); err != nil {
			return err
		}

		node.ModifiedAt = s.now()
		return putNode(txn, node)
	})
}

// CopyFile duplicates a file node into destParentID under its original name.
func (s *BadgerDriveStore) CopyFile(ctx context.Context, fileID, destParentID uuid.UUID, contentID drive.ContentID) (*drive.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var copied *drive.Node
	err := s.db.Update(func(txn *badger.Txn) error {
		src, err := getNode(txn, fileID)
		if err != nil {
			return err
		}
		if src.Kind != drive.KindFile {
			return &drive.StoreError{Code: drive.ErrNotFile, Message: "not a file", Name: src.Name}
		}
		if err := requireFolder(txn, destParentID); err != nil {
			return err
		}

		now := s.now()
		copied = &drive.Node{
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
		return attach(txn, copied, destParentID)
	})
	if err != nil {
		return nil, err
	}
	return copied, nil
}

// Trash moves a node to the trash and records it in the trash index.
func (s *BadgerDriveStore) Trash(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Update(func(txn *badger.Txn) error {
		node, err := getNode(txn, id)
		if err != nil {
			return err
		}

		rootID, err := getUUID(txn, rootKey)
		if err != nil {
			return err
		}
		if id == rootID {
			return &drive.StoreError{Code: drive.ErrInvalidArgument, Message: "cannot trash the root folder"}
		}

		node.Trashed = true
		node.TrashedAt = s.now()
		if err := putNode(txn, node); err != nil {
			return err
		}

		seq, err := nextSeq(txn)
		if err != nil {
			return err
		}
		key := trashKey(seq)
		if err := txn.Set(key, id[:]); err != nil {
			return err
		}
		return txn.Set(trashLookupKey(id), key)
	})
}

// Restore brings a trashed node back and clears its trash index entry.
func (s *BadgerDriveStore) Restore(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Update(func(txn *badger.Txn) error {
		node, err := getNode(txn, id)
		if err != nil {
			return err
		}
		if !node.Trashed {
			return &drive.StoreError{Code: drive.ErrNotTrashed, Message: "not in trash", Name: node.Name}
		}

		node.Trashed = false
		node.TrashedAt = time.Time{}
		if err := putNode(txn, node); err != nil {
			return err
		}

		item, err := txn.Get(trashLookupKey(id))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		var indexKey []byte
		if err := item.Value(func(val []byte) error {
			indexKey = append([]byte(nil), val...)
			return nil
		}); err != nil {
			return err
		}
		if err := txn.Delete(indexKey); err != nil {
			return err
		}
		return txn.Delete(trashLookupKey(id))
	})
}

// ListTrashedFolders enumerates all trashed folders in trash order.
func (s *BadgerDriveStore) ListTrashedFolders(ctx context.Context) ([]*drive.Node, error) {
	return s.listTrashed(ctx, drive.KindFolder)
}

// ListTrashedFiles enumerates all trashed files in trash order.
func (s *BadgerDriveStore) ListTrashedFiles(ctx context.Context) ([]*drive.Node, error) {
	return s.listTrashed(ctx, drive.KindFile)
}

func (s *BadgerDriveStore) listTrashed(ctx context.Context, kind drive.NodeKind) ([]*drive.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out []*drive.Node
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		prefix := []byte("t:")
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var id uuid.UUID
			err := it.Item().Value(func(val []byte) error {
				var verr error
				id, verr = uuidFromValue(val)
				return verr
			})
			if err != nil {
				return err
			}

			node, err := getNode(txn, id)
			if err != nil {
				return err
			}
			if node.Trashed && node.Kind == kind {
				out = append(out, node)
			}
		}
		return nil
	})
	return out, err
}

// AddGrant grants a user a role, overwriting any previous grant for the
// same email.
func (s *BadgerDriveStore) AddGrant(ctx context.Context, id uuid.UUID, email string, role drive.Role) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Update(func(txn *badger.Txn) error {
		node, err := getNode(txn, id)
		if err != nil {
			return err
		}

		updated := false
		for i := range node.Sharing.Grants {
			if node.Sharing.Grants[i].Email == email {
				node.Sharing.Grants[i].Role = role
				updated = true
				break
			}
		}
		if !updated {
			node.Sharing.Grants = append(node.Sharing.Grants, drive.Grant{Email: email, Role: role})
		}
		node.ModifiedAt = s.now()
		return putNode(txn, node)
	})
}

// SetLinkAccess switches a node to anyone-with-link visibility.
func (s *BadgerDriveStore) SetLinkAccess(ctx context.Context, id uuid.UUID, role drive.Role) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Update(func(txn *badger.Txn) error {
		node, err := getNode(txn, id)
		if err != nil {
			return err
		}
		node.Sharing.Scope = drive.AccessAnyoneWithLink
		node.Sharing.LinkRole = role
		node.ModifiedAt = s.now()
		return putNode(txn, node)
	})
}

// attach stores a new node and links it under a parent.
func attach(txn *badger.Txn, node *drive.Node, parentID uuid.UUID) error {
	if err := putNode(txn, node); err != nil {
		return err
	}
	return link(txn, node.ID, parentID)
}

// link records the parent relationship and the insertion-ordered child
// index entry for an existing node.
func link(txn *badger.Txn, id, parentID uuid.UUID) error {
	if err := txn.Set(parentKey(id), parentID[:]); err != nil {
		return err
	}

	seq, err := nextSeq(txn)
	if err != nil {
		return err
	}
	key := childKey(parentID, seq)
	if err := txn.Set(key, id[:]); err != nil {
		return err
	}
	return txn.Set(childLookupKey(id), key)
}

// detach removes a node's parent link and child index entry.
func detach(txn *badger.Txn, id uuid.UUID) error {
	item, err := txn.Get(childLookupKey(id))
	if err == nil {
		var indexKey []byte
		if err := item.Value(func(val []byte) error {
			indexKey = append([]byte(nil), val...)
			return nil
		}); err != nil {
			return err
		}
		if err := txn.Delete(indexKey); err != nil {
			return err
		}
		if err := txn.Delete(childLookupKey(id)); err != nil {
			return err
		}
	} else if err != badger.ErrKeyNotFound {
		return err
	}

	err = txn.Delete(parentKey(id))
	if err == badger.ErrKeyNotFound {
		return nil
	}
	return err
}
