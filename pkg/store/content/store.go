package content

import (
	"context"
	"errors"

	"github.com/math-u-t/Drive-CLI/pkg/store/drive"
)

// Standard content store errors. Shell handlers check for these and map
// them to user-facing messages.
var (
	// ErrContentNotFound indicates the requested content does not exist.
	ErrContentNotFound = errors.New("content not found")

	// ErrUnavailable indicates the storage backend is temporarily
	// unreachable. Retrying may succeed.
	ErrUnavailable = errors.New("content storage unavailable")
)

// Store provides raw byte storage for file bodies, addressed by ContentID.
//
// The content store manages only file data. Names, hierarchy, sharing and
// trash state live in the drive store; a drive node carries the ContentID
// that links it to its bytes here. Shell handlers coordinate the two:
// they write content first, then create the node referencing it.
//
// ContentID is opaque to this layer. Implementations derive storage keys
// from it (a filename, an object key, a map key) but never interpret it.
//
// Implementations must be safe for concurrent use. Concurrent writes to
// the same ContentID are last-write-wins.
type Store interface {
	// Read returns the full content for id.
	// Returns ErrContentNotFound if no content exists under id.
	Read(ctx context.Context, id drive.ContentID) ([]byte, error)

	// Write stores data under id, replacing any existing content.
	Write(ctx context.Context, id drive.ContentID, data []byte) error

	// Copy duplicates the content stored under src into dst.
	// Returns ErrContentNotFound if src does not exist.
	Copy(ctx context.Context, src, dst drive.ContentID) error

	// Delete removes the content under id. Deleting content that does
	// not exist is not an error.
	Delete(ctx context.Context, id drive.ContentID) error

	// Exists reports whether content is stored under id.
	Exists(ctx context.Context, id drive.ContentID) (bool, error)

	// Size returns the stored content size in bytes.
	// Returns ErrContentNotFound if no content exists under id.
	Size(ctx context.Context, id drive.ContentID) (uint64, error)

	// HealthCheck verifies the backend is reachable and writable.
	HealthCheck(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}
