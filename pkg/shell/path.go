package shell

import (
	"context"
	"fmt"
	"strings"

	"github.com/math-u-t/Drive-CLI/pkg/store/drive"
)

// resolveFolderPath turns a path expression into a folder node.
//
// Expressions: empty, "/" and "~" mean root; ".." means the current
// folder's first parent (root when parentless); a leading "/" walks
// exact-name child-folder lookups from root, failing on the first missing
// segment with no partial effect; anything else is a bare name looked up
// in the current folder.
func (sh *Shell) resolveFolderPath(ctx context.Context, sessionID, target string) (*drive.Node, error) {
	switch target {
	case "", "/", "~":
		return sh.drive.Root(ctx)
	case "..", "../":
		current, err := sh.currentFolder(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		parent, err := sh.drive.Parent(ctx, current.ID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return sh.drive.Root(ctx)
		}
		return parent, nil
	}

	if strings.HasPrefix(target, "/") {
		return sh.walkAbsolute(ctx, target)
	}

	current, err := sh.currentFolder(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	folder, err := sh.drive.FindChildFolderByName(ctx, current.ID, target)
	if err != nil {
		if drive.IsNotFound(err) {
			return nil, fmt.Errorf("Folder '%s' not found", target)
		}
		return nil, err
	}
	return folder, nil
}

// walkAbsolute resolves a leading-slash path one segment at a time from
// root. Empty segments from doubled or trailing slashes are skipped.
func (sh *Shell) walkAbsolute(ctx context.Context, target string) (*drive.Node, error) {
	current, err := sh.drive.Root(ctx)
	if err != nil {
		return nil, err
	}

	for _, part := range strings.Split(target, "/") {
		if part == "" {
			continue
		}
		next, err := sh.drive.FindChildFolderByName(ctx, current.ID, part)
		if err != nil {
			if drive.IsNotFound(err) {
				return nil, fmt.Errorf("Folder '%s' not found in path", part)
			}
			return nil, err
		}
		current = next
	}
	return current, nil
}

// resolveChild finds a named child of folder, checking folders before
// files so a folder shadows a file of the same name. Always the first
// enumeration match.
func (sh *Shell) resolveChild(ctx context.Context, folder *drive.Node, name string) (*drive.Node, error) {
	child, err := sh.drive.FindChildFolderByName(ctx, folder.ID, name)
	if err == nil {
		return child, nil
	}
	if !drive.IsNotFound(err) {
		return nil, err
	}

	child, err = sh.drive.FindChildFileByName(ctx, folder.ID, name)
	if err == nil {
		return child, nil
	}
	if !drive.IsNotFound(err) {
		return nil, err
	}
	return nil, fmt.Errorf("'%s' not found", name)
}
