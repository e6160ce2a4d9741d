package drive

import (
	"context"

	"github.com/google/uuid"
)

// Store provides access to the remote hierarchical object store.
//
// The shell treats this as a single synchronous service with no local cache:
// every command re-reads the store. Implementations must be safe for
// concurrent use by multiple goroutines.
//
// Enumeration Order:
//
// ListChildFolders/ListChildFiles return children in store-defined order.
// Callers must NOT assume the order is sorted, but it must be stable between
// calls for an unchanged folder, because name lookups deterministically take
// the first enumeration match (names are not unique within a parent).
//
// Parent Resolution ("first parent wins"):
//
// A node has at most one parent in this model. Parent returns that single
// link; the sole root folder has no parent and yields (nil, nil). This is a
// documented convention: even against a backing store that could support
// multi-parent nodes, upward traversal always follows the first recorded
// parent.
//
// Trash:
//
// Trashed nodes stay attached to their parent but are invisible to child
// enumeration and name lookup. They reappear in place on Restore. The trash
// listing is global, not scoped to any folder.
//
// Content Coordination:
//
// The store manages metadata only. File bytes live in a content store,
// addressed by Node.ContentID; callers create content first and hand the
// resulting ContentID to CreateFile/CopyFile.
type Store interface {
	// Root returns the root folder of the hierarchy.
	Root(ctx context.Context) (*Node, error)

	// GetNode retrieves a node by id.
	// Returns ErrNotFound if the id is unknown.
	GetNode(ctx context.Context, id uuid.UUID) (*Node, error)

	// ListChildFolders enumerates the non-trashed child folders of a folder.
	ListChildFolders(ctx context.Context, folderID uuid.UUID) ([]*Node, error)

	// ListChildFiles enumerates the non-trashed child files of a folder.
	ListChildFiles(ctx context.Context, folderID uuid.UUID) ([]*Node, error)

	// FindChildFolderByName returns the first non-trashed child folder with
	// the exact name, in enumeration order. Returns ErrNotFound when no
	// folder matches.
	FindChildFolderByName(ctx context.Context, folderID uuid.UUID, name string) (*Node, error)

	// FindChildFileByName is FindChildFolderByName for file children.
	FindChildFileByName(ctx context.Context, folderID uuid.UUID, name string) (*Node, error)

	// Parent returns the parent folder of a node, or (nil, nil) when the
	// node has no parent (the root).
	Parent(ctx context.Context, id uuid.UUID) (*Node, error)

	// Path builds the absolute path of a node by walking the parent chain.
	// The root renders as "/", a first-level folder as "/name".
	Path(ctx context.Context, id uuid.UUID) (string, error)

	// CreateFolder creates an empty folder under parentID.
	CreateFolder(ctx context.Context, parentID uuid.UUID, name string) (*Node, error)

	// CreateFile creates a file node under parentID. The content must
	// already be stored under contentID; size is its byte length.
	CreateFile(ctx context.Context, parentID uuid.UUID, name, mimeType string, size uint64, contentID ContentID) (*Node, error)

	// Rename changes a node's name and returns the updated node.
	Rename(ctx context.Context, id uuid.UUID, newName string) (*Node, error)

	// Move re-parents a node. Moving a folder into its own subtree fails
	// with ErrCycle.
	Move(ctx context.Context, id, newParentID uuid.UUID) error

	// CopyFile duplicates a file node into destParentID under its original
	// name. The caller supplies the ContentID of the duplicated bytes.
	// Copying folders is not supported (ErrNotFile).
	CopyFile(ctx context.Context, fileID, destParentID uuid.UUID, contentID ContentID) (*Node, error)

	// Trash moves a node to the trash.
	Trash(ctx context.Context, id uuid.UUID) error

	// Restore brings a trashed node back to its original parent.
	// Returns ErrNotTrashed when the node is not in the trash.
	Restore(ctx context.Context, id uuid.UUID) error

	// ListTrashedFolders enumerates all trashed folders, store-wide.
	ListTrashedFolders(ctx context.Context) ([]*Node, error)

	// ListTrashedFiles enumerates all trashed files, store-wide.
	ListTrashedFiles(ctx context.Context) ([]*Node, error)

	// AddGrant grants a user a role on a node. A repeated grant for the
	// same email overwrites the previous role.
	AddGrant(ctx context.Context, id uuid.UUID, email string, role Role) error

	// SetLinkAccess switches a node to anyone-with-link visibility at the
	// given role.
	SetLinkAccess(ctx context.Context, id uuid.UUID, role Role) error

	// HealthCheck verifies the store is reachable and consistent.
	HealthCheck(ctx context.Context) error

	// Close releases store resources.
	Close() error
}
