package drive

import (
	"time"

	"github.com/google/uuid"
)

// Node represents a single entry in the remote hierarchy: a folder or a file.
//
// Identity Fields:
//   - ID: Unique UUID identifier for this node, stable across renames and moves
//   - Name: Display name, mutable, NOT guaranteed unique within a parent
//
// A node has at most one parent at any time in this model. The store resolves
// upward traversal through that single parent link ("first parent wins" — see
// the Store interface documentation).
//
// Files carry a MIME type tag, a size in bytes and a ContentID pointing into
// the content store. Folders carry none of these (Size is 0, ContentID empty).
type Node struct {
	// ID is the unique identifier for this node.
	// Generated using UUID v4 (random) for collision resistance.
	ID uuid.UUID `json:"id"`

	// Name is the display name. Not unique within a parent: two files named
	// "report.txt" can legally coexist in the same folder.
	Name string `json:"name"`

	// Kind distinguishes folders from files.
	Kind NodeKind `json:"kind"`

	// MimeType is the content-type tag for files ("" for folders).
	MimeType string `json:"mime_type,omitempty"`

	// Size is the file size in bytes (0 for folders and empty files).
	Size uint64 `json:"size"`

	// ContentID locates the file's bytes in the content store.
	// Empty for folders.
	ContentID ContentID `json:"content_id,omitempty"`

	// CreatedAt is the creation timestamp.
	CreatedAt time.Time `json:"created_at"`

	// ModifiedAt is the last-modified timestamp. Updated on content changes,
	// renames and sharing changes.
	ModifiedAt time.Time `json:"modified_at"`

	// Owner is the owning identity (display string, e.g. an email address).
	Owner string `json:"owner"`

	// Sharing is the node's sharing state: access scope, link role and
	// per-user grants.
	Sharing Sharing `json:"sharing"`

	// Trashed marks the node as sitting in the trash. Trashed nodes are
	// excluded from child enumeration and name lookup.
	Trashed bool `json:"trashed"`

	// TrashedAt is when the node was trashed (zero when Trashed is false).
	TrashedAt time.Time `json:"trashed_at,omitempty"`
}

// IsFolder reports whether the node is a folder.
func (n *Node) IsFolder() bool { return n.Kind == KindFolder }

// NodeKind is the kind of a node: folder or file.
type NodeKind int

const (
	// KindFolder is a folder (container for other nodes).
	KindFolder NodeKind = iota

	// KindFile is a file carrying content.
	KindFile
)

// String returns the listing label for the kind.
func (k NodeKind) String() string {
	switch k {
	case KindFolder:
		return "DIR"
	case KindFile:
		return "FILE"
	default:
		return "UNKNOWN"
	}
}

// ContentID is an identifier for retrieving file content from the content
// store. It is opaque to the drive store; this package generates IDs of the
// form "c-<uuid>" so content survives renames and moves unchanged.
type ContentID string

// NewContentID generates a fresh content identifier.
func NewContentID() ContentID {
	return ContentID("c-" + uuid.NewString())
}

// MIME type tags for the document kinds the `new` command can create.
// Plain files use MimeText; office-document kinds get their own tag so
// listings and `stat` can tell them apart.
const (
	MimeText         = "text/plain"
	MimeDocument     = "application/vnd.drive-cli.document"
	MimeSpreadsheet  = "application/vnd.drive-cli.spreadsheet"
	MimePresentation = "application/vnd.drive-cli.presentation"
	MimeForm         = "application/vnd.drive-cli.form"
)
