package shell

import (
	"context"
	"strings"
)

// cmdTrash lists the global trash, or restores an item when invoked as
// "trash <name> restore". Restore matches the exact name across the
// whole trashed set, files before folders, first match winning.
func (sh *Shell) cmdTrash(ctx context.Context, sessionID string, args []string) Result {
	if len(args) == 0 {
		folders, err := sh.drive.ListTrashedFolders(ctx)
		if err != nil {
			return failf("Error: %v", err)
		}
		files, err := sh.drive.ListTrashedFiles(ctx)
		if err != nil {
			return failf("Error: %v", err)
		}
		return ok(renderTrashListing(folders, files))
	}

	if len(args) >= 2 && strings.ToLower(args[len(args)-1]) == "restore" {
		return sh.trashRestore(ctx, strings.Join(args[:len(args)-1], " "))
	}

	return fail("Error: Usage: trash OR trash <name> restore")
}

func (sh *Shell) trashRestore(ctx context.Context, name string) Result {
	files, err := sh.drive.ListTrashedFiles(ctx)
	if err != nil {
		return failf("Error: %v", err)
	}
	for _, file := range files {
		if file.Name == name {
			if err := sh.drive.Restore(ctx, file.ID); err != nil {
				return failf("Error: %v", err)
			}
			return okf("Restored: %s", name)
		}
	}

	folders, err := sh.drive.ListTrashedFolders(ctx)
	if err != nil {
		return failf("Error: %v", err)
	}
	for _, folder := range folders {
		if folder.Name == name {
			if err := sh.drive.Restore(ctx, folder.ID); err != nil {
				return failf("Error: %v", err)
			}
			return okf("Restored: %s", name)
		}
	}

	return failf("Error: '%s' not found in trash", name)
}
