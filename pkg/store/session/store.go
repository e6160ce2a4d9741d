// Package session provides per-session key-value state for the shell.
//
// The shell is stateless between commands; everything it needs to remember
// (the current folder, the clipboard) lives here under the caller's session
// ID. Fields are small strings, so the interface is a flat string map
// rather than a typed record.
package session

import "context"

// Well-known session fields used by the shell.
const (
	// FieldCurrentDir holds the node ID of the session's working folder,
	// or the root sentinel when the session is at the drive root.
	FieldCurrentDir = "current_dir"

	// FieldClipboard holds the node ID of the copied item.
	FieldClipboard = "clipboard"

	// FieldClipboardKind holds the copied item's kind, "file" or "folder".
	FieldClipboardKind = "clipboard_kind"
)

// Store persists per-session shell state.
//
// A missing field is not an error: Get returns the empty string for fields
// that were never set, mirroring how the shell treats empty state (an
// unset working folder means root, an unset clipboard means empty).
//
// Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the value of field for sessionID, or "" if unset.
	Get(ctx context.Context, sessionID, field string) (string, error)

	// Set stores value under field for sessionID.
	Set(ctx context.Context, sessionID, field, value string) error

	// Delete removes field for sessionID. Deleting an unset field is
	// not an error.
	Delete(ctx context.Context, sessionID, field string) error

	// Close releases backend resources.
	Close() error
}
