// Package badger implements a persistent drive store backed by BadgerDB.
//
// This implementation is suitable for deployments where the hierarchy must
// survive restarts. See keys.go for the key namespace design.
package badger

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/math-u-t/Drive-CLI/pkg/store/drive"
)

// BadgerDriveStore implements drive.Store using BadgerDB for persistence.
//
// Thread Safety:
// Multi-key mutations are serialized by a single mutex on top of Badger's
// own transaction isolation. This coarse-grained locking keeps invariants
// (node/parent/children index agreement) simple to reason about.
type BadgerDriveStore struct {
	mu    sync.Mutex
	db    *badger.DB
	owner string
	now   func() time.Time
}

// Options configures a BadgerDriveStore.
type Options struct {
	// Path is the Badger database directory.
	Path string

	// Owner is the identity stamped on created nodes.
	Owner string

	// InMemory runs Badger without disk persistence. Used by tests.
	InMemory bool

	// Clock overrides the store clock (nil means time.Now).
	Clock func() time.Time
}

// NewBadgerDriveStore opens (or creates) the database and bootstraps the
// root folder on first use.
func NewBadgerDriveStore(opts Options) (*BadgerDriveStore, error) {
	badgerOpts := badger.DefaultOptions(opts.Path)
	badgerOpts.Logger = nil
	if opts.InMemory {
		badgerOpts = badgerOpts.WithInMemory(true)
		badgerOpts.Dir = ""
		badgerOpts.ValueDir = ""
	}

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger database: %w", err)
	}

	now := opts.Clock
	if now == nil {
		now = time.Now
	}

	s := &BadgerDriveStore{db: db, owner: opts.Owner, now: now}
	if err := s.bootstrapRoot(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// bootstrapRoot creates the root folder if the database is empty.
func (s *BadgerDriveStore) bootstrapRoot() error {
	return s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(rootKey)
		if err == nil {
			return nil
		}
		if err != badger.ErrKeyNotFound {
			return fmt.Errorf("failed to read root pointer: %w", err)
		}

		now := s.now()
		root := &drive.Node{
			ID:         uuid.New(),
			Name:       "My Drive",
			Kind:       drive.KindFolder,
			CreatedAt:  now,
			ModifiedAt: now,
			Owner:      s.owner,
		}
		if err := putNode(txn, root); err != nil {
			return err
		}
		return txn.Set(rootKey, root.ID[:])
	})
}

// Close closes the underlying database.
func (s *BadgerDriveStore) Close() error {
	return s.db.Close()
}

// Root returns the root folder.
func (s *BadgerDriveStore) Root(ctx context.Context) (*drive.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var node *drive.Node
	err := s.db.View(func(txn *badger.Txn) error {
		rootID, err := getUUID(txn, rootKey)
		if err != nil {
			return err
		}
		node, err = getNode(txn, rootID)
		return err
	})
	return node, err
}

// GetNode retrieves a node by id.
func (s *BadgerDriveStore) GetNode(ctx context.Context, id uuid.UUID) (*drive.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var node *drive.Node
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		node, err = getNode(txn, id)
		return err
	})
	return node, err
}

// ListChildFolders enumerates non-trashed child folders in insertion order.
func (s *BadgerDriveStore) ListChildFolders(ctx context.Context, folderID uuid.UUID) ([]*drive.Node, error) {
	return s.listChildren(ctx, folderID, drive.KindFolder)
}

// ListChildFiles enumerates non-trashed child files in insertion order.
func (s *BadgerDriveStore) ListChildFiles(ctx context.Context, folderID uuid.UUID) ([]*drive.Node, error) {
	return s.listChildren(ctx, folderID, drive.KindFile)
}

func (s *BadgerDriveStore) listChildren(ctx context.Context, folderID uuid.UUID, kind drive.NodeKind) ([]*drive.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out []*drive.Node
	err := s.db.View(func(txn *badger.Txn) error {
		if err := requireFolder(txn, folderID); err != nil {
			return err
		}
		return forEachChild(txn, folderID, func(child *drive.Node) error {
			if !child.Trashed && child.Kind == kind {
				out = append(out, child)
			}
			return nil
		})
	})
	return out, err
}

// FindChildFolderByName returns the first matching non-trashed child folder.
func (s *BadgerDriveStore) FindChildFolderByName(ctx context.Context, folderID uuid.UUID, name string) (*drive.Node, error) {
	return s.findChild(ctx, folderID, name, drive.KindFolder)
}

// FindChildFileByName returns the first matching non-trashed child file.
func (s *BadgerDriveStore) FindChildFileByName(ctx context.Context, folderID uuid.UUID, name string) (*drive.Node, error) {
	return s.findChild(ctx, folderID, name, drive.KindFile)
}

var errStopIteration = fmt.Errorf("stop iteration")

func (s *BadgerDriveStore) findChild(ctx context.Context, folderID uuid.UUID, name string, kind drive.NodeKind) (*drive.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var found *drive.Node
	err := s.db.View(func(txn *badger.Txn) error {
		if err := requireFolder(txn, folderID); err != nil {
			return err
		}
		err := forEachChild(txn, folderID, func(child *drive.Node) error {
			if !child.Trashed && child.Kind == kind && child.Name == name {
				found = child
				return errStopIteration
			}
			return nil
		})
		if err == errStopIteration {
			return nil
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, drive.NotFound(name)
	}
	return found, nil
}

// Parent returns the parent folder, or (nil, nil) for the root.
func (s *BadgerDriveStore) Parent(ctx context.Context, id uuid.UUID) (*drive.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var parent *drive.Node
	err := s.db.View(func(txn *badger.Txn) error {
		if _, err := getNode(txn, id); err != nil {
			return err
		}
		parentID, ok, err := getParentID(txn, id)
		if err != nil || !ok {
			return err
		}
		parent, err = getNode(txn, parentID)
		return err
	})
	return parent, err
}

// Path builds the absolute path by walking the parent chain.
func (s *BadgerDriveStore) Path(ctx context.Context, id uuid.UUID) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var path string
	err := s.db.View(func(txn *badger.Txn) error {
		rootID, err := getUUID(txn, rootKey)
		if err != nil {
			return err
		}
		if id == rootID {
			path = "/"
			return nil
		}

		var parts []string
		current := id
		for current != rootID {
			node, err := getNode(txn, current)
			if err != nil {
				return err
			}
			parts = append([]string{node.Name}, parts...)

			parentID, ok, err := getParentID(txn, current)
			if err != nil {
				return err
			}
			if !ok {
				break
			}
			current = parentID
		}

		for _, p := range parts {
			path += "/" + p
		}
		return nil
	})
	return path, err
}

// HealthCheck verifies the root pointer resolves.
func (s *BadgerDriveStore) HealthCheck(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.View(func(txn *badger.Txn) error {
		rootID, err := getUUID(txn, rootKey)
		if err != nil {
			return err
		}
		_, err = getNode(txn, rootID)
		return err
	})
}

// ============================================================================
// Transaction helpers
// ============================================================================

func putNode(txn *badger.Txn, n *drive.Node) error {
	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to serialize node: %w", err)
	}
	return txn.Set(nodeKey(n.ID), data)
}

func getNode(txn *badger.Txn, id uuid.UUID) (*drive.Node, error) {
	item, err := txn.Get(nodeKey(id))
	if err == badger.ErrKeyNotFound {
		return nil, drive.NotFound(id.String())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read node: %w", err)
	}

	var node drive.Node
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &node)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize node: %w", err)
	}
	return &node, nil
}

func getUUID(txn *badger.Txn, key []byte) (uuid.UUID, error) {
	item, err := txn.Get(key)
	if err == badger.ErrKeyNotFound {
		return uuid.UUID{}, drive.NotFound(string(key))
	}
	if err != nil {
		return uuid.UUID{}, err
	}

	var id uuid.UUID
	err = item.Value(func(val []byte) error {
		var verr error
		id, verr = uuidFromValue(val)
		return verr
	})
	return id, err
}

func getParentID(txn *badger.Txn, child uuid.UUID) (uuid.UUID, bool, error) {
	item, err := txn.Get(parentKey(child))
	if err == badger.ErrKeyNotFound {
		return uuid.UUID{}, false, nil
	}
	if err != nil {
		return uuid.UUID{}, false, err
	}

	var id uuid.UUID
	err = item.Value(func(val []byte) error {
		var verr error
		id, verr = uuidFromValue(val)
		return verr
	})
	return id, err == nil, err
}

func requireFolder(txn *badger.Txn, id uuid.UUID) error {
	node, err := getNode(txn, id)
	if err != nil {
		return err
	}
	if node.Kind != drive.KindFolder {
		return &drive.StoreError{Code: drive.ErrNotFolder, Message: "not a folder", Name: node.Name}
	}
	return nil
}

// forEachChild replays the children index of a folder in insertion order.
func forEachChild(txn *badger.Txn, folderID uuid.UUID, fn func(*drive.Node) error) error {
	opts := badger.DefaultIteratorOptions
	prefix := childPrefix(folderID)
	opts.Prefix = prefix

	it := txn.NewIterator(opts)
	defer it.Close()

	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		var childID uuid.UUID
		err := it.Item().Value(func(val []byte) error {
			var verr error
			childID, verr = uuidFromValue(val)
			return verr
		})
		if err != nil {
			return err
		}

		child, err := getNode(txn, childID)
		if err != nil {
			return err
		}
		if err := fn(child); err != nil {
			return err
		}
	}
	return nil
}

// nextSeq increments and returns the global sequence counter.
func nextSeq(txn *badger.Txn) (uint64, error) {
	var seq uint64
	item, err := txn.Get(seqKey)
	if err == nil {
		err = item.Value(func(val []byte) error {
			if len(val) == 8 {
				seq = binary.BigEndian.Uint64(val)
			}
			return nil
		})
		if err != nil {
			return 0, err
		}
	} else if err != badger.ErrKeyNotFound {
		return 0, err
	}

	seq++
	return seq, txn.Set(seqKey, seqBytes(seq))
}
