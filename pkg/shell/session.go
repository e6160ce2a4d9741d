package shell

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/math-u-t/Drive-CLI/internal/logger"
	"github.com/math-u-t/Drive-CLI/pkg/store/drive"
	"github.com/math-u-t/Drive-CLI/pkg/store/session"
)

// rootSentinel marks "at the drive root" in session state, so the root
// never needs a resolvable node ID of its own.
const rootSentinel = "root"

// errStaleLocation is returned when the session's working folder no
// longer resolves. The session has already been reset to root when a
// handler sees it.
var errStaleLocation = errors.New("current folder no longer exists, returned to root")

// currentFolder resolves the session's working folder.
//
// A missing or sentinel value means root. If the stored ID no longer
// resolves (the folder was trashed or deleted out-of-band), the session
// is reset to root and errStaleLocation is returned so the command can
// report it; the next command then operates from root normally.
func (sh *Shell) currentFolder(ctx context.Context, sessionID string) (*drive.Node, error) {
	loc, err := sh.sessions.Get(ctx, sessionID, session.FieldCurrentDir)
	if err != nil {
		return nil, err
	}

	if loc == "" || loc == rootSentinel {
		return sh.drive.Root(ctx)
	}

	id, err := uuid.Parse(loc)
	if err == nil {
		node, gerr := sh.drive.GetNode(ctx, id)
		if gerr == nil && node.IsFolder() && !node.Trashed {
			return node, nil
		}
	}

	logger.Warn("session %s: stale working folder %q, resetting to root", sessionID, loc)
	if serr := sh.sessions.Set(ctx, sessionID, session.FieldCurrentDir, rootSentinel); serr != nil {
		return nil, serr
	}
	return nil, errStaleLocation
}

// setLocation records the session's working folder. Passing the root node
// stores the sentinel.
func (sh *Shell) setLocation(ctx context.Context, sessionID string, folder *drive.Node) error {
	root, err := sh.drive.Root(ctx)
	if err != nil {
		return err
	}
	value := folder.ID.String()
	if folder.ID == root.ID {
		value = rootSentinel
	}
	return sh.sessions.Set(ctx, sessionID, session.FieldCurrentDir, value)
}

// currentPath renders the session's working folder as an absolute path,
// falling back to "/" when the location cannot be resolved.
func (sh *Shell) currentPath(ctx context.Context, sessionID string) string {
	folder, err := sh.currentFolder(ctx, sessionID)
	if err != nil {
		return "/"
	}
	path, err := sh.drive.Path(ctx, folder.ID)
	if err != nil {
		return "/"
	}
	return path
}

// clipboard returns the session's clipboard entry, or ok=false when the
// clipboard is empty.
func (sh *Shell) clipboard(ctx context.Context, sessionID string) (id uuid.UUID, kind string, ok bool, err error) {
	raw, err := sh.sessions.Get(ctx, sessionID, session.FieldClipboard)
	if err != nil {
		return uuid.UUID{}, "", false, err
	}
	if raw == "" {
		return uuid.UUID{}, "", false, nil
	}

	id, err = uuid.Parse(raw)
	if err != nil {
		return uuid.UUID{}, "", false, fmt.Errorf("corrupt clipboard entry: %w", err)
	}

	kind, err = sh.sessions.Get(ctx, sessionID, session.FieldClipboardKind)
	if err != nil {
		return uuid.UUID{}, "", false, err
	}
	return id, kind, true, nil
}

// setClipboard records a node in the single-slot clipboard, overwriting
// any previous entry.
func (sh *Shell) setClipboard(ctx context.Context, sessionID string, id uuid.UUID, kind string) error {
	if err := sh.sessions.Set(ctx, sessionID, session.FieldClipboard, id.String()); err != nil {
		return err
	}
	return sh.sessions.Set(ctx, sessionID, session.FieldClipboardKind, kind)
}
