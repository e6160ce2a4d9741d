package drive

// StoreError represents a domain error from drive store operations.
//
// These are business logic errors (node not found, name conflict, etc.)
// as opposed to infrastructure errors (network failure, disk error).
// Command handlers translate StoreError codes into user-facing diagnostics.
type StoreError struct {
	// Code is the error category
	Code ErrorCode

	// Message is a human-readable error description
	Message string

	// Name is the node name or path related to the error (if applicable)
	Name string
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	if e.Name != "" {
		return e.Message + ": " + e.Name
	}
	return e.Message
}

// ErrorCode represents the category of a drive store error.
type ErrorCode int

const (
	// ErrNotFound indicates the requested node doesn't exist in the
	// searched scope
	ErrNotFound ErrorCode = iota

	// ErrAlreadyExists indicates a node with the name already exists in
	// the target folder
	ErrAlreadyExists

	// ErrNotFolder indicates the operation expected a folder but got a file
	ErrNotFolder

	// ErrNotFile indicates the operation expected a file but got a folder
	ErrNotFile

	// ErrInvalidArgument indicates invalid parameters (empty name, nil id)
	ErrInvalidArgument

	// ErrCycle indicates a move that would place a folder inside its own
	// subtree
	ErrCycle

	// ErrNotTrashed indicates a restore on a node that is not in the trash
	ErrNotTrashed

	// ErrIOError indicates an infrastructure failure in the backing store
	ErrIOError
)

// NotFound builds the conventional not-found error for a name lookup.
func NotFound(name string) *StoreError {
	return &StoreError{Code: ErrNotFound, Message: "not found", Name: name}
}

// IsNotFound reports whether err is a StoreError with code ErrNotFound.
func IsNotFound(err error) bool {
	se, ok := err.(*StoreError)
	return ok && se.Code == ErrNotFound
}
