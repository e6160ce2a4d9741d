package shell

import (
	"context"
	"strings"

	"github.com/math-u-t/Drive-CLI/pkg/store/drive"
)

// cmdLs lists the working folder, or renders the subtree when invoked as
// "ls tree".
func (sh *Shell) cmdLs(ctx context.Context, sessionID string, args []string) Result {
	folder, err := sh.currentFolder(ctx, sessionID)
	if err != nil {
		return failf("Error: %v", err)
	}

	if len(args) > 0 && args[0] == "tree" {
		tree, err := sh.renderTree(ctx, folder)
		if err != nil {
			return failf("Error: %v", err)
		}
		return ok(tree)
	}

	folders, err := sh.drive.ListChildFolders(ctx, folder.ID)
	if err != nil {
		return failf("Error: %v", err)
	}
	files, err := sh.drive.ListChildFiles(ctx, folder.ID)
	if err != nil {
		return failf("Error: %v", err)
	}
	return ok(sh.renderListing(folders, files))
}

func (sh *Shell) cmdPwd(ctx context.Context, sessionID string, _ []string) Result {
	return ok(sh.currentPath(ctx, sessionID))
}

// cmdCd transitions the working-location state machine. Transitions are
// all-or-nothing: any resolution failure leaves the location unchanged.
func (sh *Shell) cmdCd(ctx context.Context, sessionID string, args []string) Result {
	if len(args) == 0 {
		return sh.cdToRoot(ctx, sessionID)
	}

	target := strings.Join(args, " ")
	switch target {
	case "/", "~":
		return sh.cdToRoot(ctx, sessionID)
	case "..", "../":
		return sh.cdToParent(ctx, sessionID)
	}

	if strings.HasPrefix(target, "/") {
		folder, err := sh.walkAbsolute(ctx, target)
		if err != nil {
			return failf("Error: %v", err)
		}
		return sh.cdTo(ctx, sessionID, folder)
	}

	current, err := sh.currentFolder(ctx, sessionID)
	if err != nil {
		return failf("Error: %v", err)
	}
	folder, err := sh.drive.FindChildFolderByName(ctx, current.ID, target)
	if err != nil {
		return failf("Error: Folder '%s' not found", target)
	}
	return sh.cdTo(ctx, sessionID, folder)
}

func (sh *Shell) cdToRoot(ctx context.Context, sessionID string) Result {
	root, err := sh.drive.Root(ctx)
	if err != nil {
		return failf("Error: %v", err)
	}
	if err := sh.setLocation(ctx, sessionID, root); err != nil {
		return failf("Error: %v", err)
	}
	return ok("Changed to root directory: /")
}

func (sh *Shell) cdToParent(ctx context.Context, sessionID string) Result {
	root, err := sh.drive.Root(ctx)
	if err != nil {
		return failf("Error: %v", err)
	}
	current, err := sh.currentFolder(ctx, sessionID)
	if err != nil {
		return failf("Error: %v", err)
	}
	if current.ID == root.ID {
		return fail("Error: Already at root")
	}

	// First parent wins; a parentless folder falls back to root.
	parent, err := sh.drive.Parent(ctx, current.ID)
	if err != nil {
		return failf("Error: %v", err)
	}
	if parent == nil {
		return sh.cdToRoot(ctx, sessionID)
	}
	return sh.cdTo(ctx, sessionID, parent)
}

func (sh *Shell) cdTo(ctx context.Context, sessionID string, folder *drive.Node) Result {
	if err := sh.setLocation(ctx, sessionID, folder); err != nil {
		return failf("Error: %v", err)
	}
	path, err := sh.drive.Path(ctx, folder.ID)
	if err != nil {
		return failf("Error: %v", err)
	}
	if path == "/" {
		return ok("Changed to root directory: /")
	}
	return ok("Changed to: " + path)
}

// cmdFind matches an exact name case-insensitively among the working
// folder's children, folders before files, and reports kind, path and ID.
func (sh *Shell) cmdFind(ctx context.Context, sessionID string, args []string) Result {
	if len(args) == 0 {
		return fail("Error: Usage: find <name>")
	}

	name := strings.ToLower(strings.Join(args, " "))
	folder, err := sh.currentFolder(ctx, sessionID)
	if err != nil {
		return failf("Error: %v", err)
	}

	folders, err := sh.drive.ListChildFolders(ctx, folder.ID)
	if err != nil {
		return failf("Error: %v", err)
	}
	for _, sub := range folders {
		if strings.ToLower(sub.Name) == name {
			path, err := sh.drive.Path(ctx, sub.ID)
			if err != nil {
				return failf("Error: %v", err)
			}
			return okf("Found (DIR): %s\nPath: %s\nID: %s", sub.Name, path, sub.ID)
		}
	}

	files, err := sh.drive.ListChildFiles(ctx, folder.ID)
	if err != nil {
		return failf("Error: %v", err)
	}
	for _, file := range files {
		if strings.ToLower(file.Name) == name {
			dir := sh.currentPath(ctx, sessionID)
			if dir == "/" {
				dir = ""
			}
			return okf("Found (FILE): %s\nPath: %s/%s\nID: %s", file.Name, dir, file.Name, file.ID)
		}
	}

	return failf("Error: '%s' not found in current directory", name)
}
