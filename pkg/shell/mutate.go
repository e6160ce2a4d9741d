package shell

import (
	"context"
	"strings"

	"github.com/math-u-t/Drive-CLI/pkg/store/drive"
)

// cmdRename renames a child of the working folder. Folders shadow files:
// a folder named oldName is renamed in preference to a file of the same
// name.
func (sh *Shell) cmdRename(ctx context.Context, sessionID string, args []string) Result {
	if len(args) < 2 {
		return fail("Error: Usage: rn <old_name> <new_name>")
	}

	oldName := args[0]
	newName := strings.Join(args[1:], " ")

	folder, err := sh.currentFolder(ctx, sessionID)
	if err != nil {
		return failf("Error: %v", err)
	}

	if sub, err := sh.drive.FindChildFolderByName(ctx, folder.ID, oldName); err == nil {
		if _, err := sh.drive.Rename(ctx, sub.ID, newName); err != nil {
			return failf("Error: %v", err)
		}
		return okf("Renamed directory: %s → %s", oldName, newName)
	}

	if file, err := sh.drive.FindChildFileByName(ctx, folder.ID, oldName); err == nil {
		if _, err := sh.drive.Rename(ctx, file.ID, newName); err != nil {
			return failf("Error: %v", err)
		}
		return okf("Renamed file: %s → %s", oldName, newName)
	}

	return failf("Error: '%s' not found", oldName)
}

// cmdDelete moves a child to the trash, folders first. When several
// children carry the name, the first enumeration match is trashed and
// the ambiguity is disclosed in the output.
func (sh *Shell) cmdDelete(ctx context.Context, sessionID string, args []string) Result {
	if len(args) == 0 {
		return fail("Error: Usage: del <name>")
	}

	name := strings.Join(args, " ")
	folder, err := sh.currentFolder(ctx, sessionID)
	if err != nil {
		return failf("Error: %v", err)
	}

	if sub, err := sh.drive.FindChildFolderByName(ctx, folder.ID, name); err == nil {
		dup, err := sh.hasDuplicateName(ctx, folder, name, true)
		if err != nil {
			return failf("Error: %v", err)
		}
		if err := sh.drive.Trash(ctx, sub.ID); err != nil {
			return failf("Error: %v", err)
		}
		return ok("Moved to trash: " + name + " (DIR)" + duplicateWarning(dup))
	}

	if file, err := sh.drive.FindChildFileByName(ctx, folder.ID, name); err == nil {
		dup, err := sh.hasDuplicateName(ctx, folder, name, false)
		if err != nil {
			return failf("Error: %v", err)
		}
		if err := sh.drive.Trash(ctx, file.ID); err != nil {
			return failf("Error: %v", err)
		}
		return ok("Moved to trash: " + name + " (FILE)" + duplicateWarning(dup))
	}

	return failf("Error: '%s' not found", name)
}

// cmdMove re-parents a child of the working folder. The last token is the
// destination path expression, the rest joins into the name.
func (sh *Shell) cmdMove(ctx context.Context, sessionID string, args []string) Result {
	if len(args) < 2 {
		return fail("Error: Usage: mv <name> <path>")
	}

	target := args[len(args)-1]
	name := strings.Join(args[:len(args)-1], " ")

	folder, err := sh.currentFolder(ctx, sessionID)
	if err != nil {
		return failf("Error: %v", err)
	}
	node, err := sh.resolveChild(ctx, folder, name)
	if err != nil {
		return failf("Error: %v", err)
	}
	dest, err := sh.resolveFolderPath(ctx, sessionID, target)
	if err != nil {
		return failf("Error: %v", err)
	}

	if err := sh.drive.Move(ctx, node.ID, dest.ID); err != nil {
		return failf("Error: %v", err)
	}

	destPath, err := sh.drive.Path(ctx, dest.ID)
	if err != nil {
		return failf("Error: %v", err)
	}
	return okf("Moved: %s → %s", name, destPath)
}

// cmdCopyTo duplicates a file of the working folder into another folder.
// Folder copies are a defined failure.
func (sh *Shell) cmdCopyTo(ctx context.Context, sessionID string, args []string) Result {
	if len(args) < 2 {
		return fail("Error: Usage: cp <name> <path>")
	}

	target := args[len(args)-1]
	name := strings.Join(args[:len(args)-1], " ")

	folder, err := sh.currentFolder(ctx, sessionID)
	if err != nil {
		return failf("Error: %v", err)
	}
	node, err := sh.resolveChild(ctx, folder, name)
	if err != nil {
		return failf("Error: %v", err)
	}
	if node.IsFolder() {
		return fail("Error: Folder copy not supported")
	}
	dest, err := sh.resolveFolderPath(ctx, sessionID, target)
	if err != nil {
		return failf("Error: %v", err)
	}

	if _, err := sh.duplicateFile(ctx, node, dest); err != nil {
		return failf("Error: %v", err)
	}

	destPath, err := sh.drive.Path(ctx, dest.ID)
	if err != nil {
		return failf("Error: %v", err)
	}
	return okf("Copied: %s → %s", name, destPath)
}

// duplicateFile copies a file's content first, then the node referencing
// the new body.
func (sh *Shell) duplicateFile(ctx context.Context, file *drive.Node, dest *drive.Node) (*drive.Node, error) {
	newContentID := drive.NewContentID()
	if file.ContentID != "" {
		if err := sh.content.Copy(ctx, file.ContentID, newContentID); err != nil {
			return nil, err
		}
	}
	return sh.drive.CopyFile(ctx, file.ID, dest.ID, newContentID)
}

// hasDuplicateName reports whether more than one non-trashed child of the
// given kind carries the name.
func (sh *Shell) hasDuplicateName(ctx context.Context, folder *drive.Node, name string, wantFolder bool) (bool, error) {
	var children []*drive.Node
	var err error
	if wantFolder {
		children, err = sh.drive.ListChildFolders(ctx, folder.ID)
	} else {
		children, err = sh.drive.ListChildFiles(ctx, folder.ID)
	}
	if err != nil {
		return false, err
	}

	matches := 0
	for _, child := range children {
		if child.Name == name {
			matches++
		}
	}
	return matches > 1, nil
}

func duplicateWarning(dup bool) string {
	if !dup {
		return ""
	}
	return "\nWarning: Multiple items with this name exist. Only the first one was moved to trash."
}
