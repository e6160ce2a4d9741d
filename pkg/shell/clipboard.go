package shell

import (
	"context"
	"strings"
)

const (
	clipboardKindFile   = "file"
	clipboardKindFolder = "folder"
)

// cmdCopy records a child of the working folder into the single-slot
// clipboard, overwriting any prior entry. Folders shadow files.
func (sh *Shell) cmdCopy(ctx context.Context, sessionID string, args []string) Result {
	if len(args) == 0 {
		return fail("Error: Usage: copy <name>")
	}

	name := strings.Join(args, " ")
	folder, err := sh.currentFolder(ctx, sessionID)
	if err != nil {
		return failf("Error: %v", err)
	}

	if sub, err := sh.drive.FindChildFolderByName(ctx, folder.ID, name); err == nil {
		if err := sh.setClipboard(ctx, sessionID, sub.ID, clipboardKindFolder); err != nil {
			return failf("Error: %v", err)
		}
		return okf("Copied to clipboard: %s (DIR)", name)
	}

	if file, err := sh.drive.FindChildFileByName(ctx, folder.ID, name); err == nil {
		if err := sh.setClipboard(ctx, sessionID, file.ID, clipboardKindFile); err != nil {
			return failf("Error: %v", err)
		}
		return okf("Copied to clipboard: %s (FILE)", name)
	}

	return failf("Error: '%s' not found", name)
}

// cmdPaste duplicates the clipboard file into the working folder under
// its original name. The clipboard survives the paste, so repeated
// pastes are legal. A folder-kind clipboard is a defined failure that
// leaves the clipboard untouched.
func (sh *Shell) cmdPaste(ctx context.Context, sessionID string, _ []string) Result {
	id, kind, present, err := sh.clipboard(ctx, sessionID)
	if err != nil {
		return failf("Error: %v", err)
	}
	if !present {
		return fail("Error: Clipboard is empty")
	}

	if kind != clipboardKindFile {
		return fail("Error: Folder paste not supported")
	}

	folder, err := sh.currentFolder(ctx, sessionID)
	if err != nil {
		return failf("Error: %v", err)
	}
	file, err := sh.drive.GetNode(ctx, id)
	if err != nil {
		return failf("Error: %v", err)
	}

	copied, err := sh.duplicateFile(ctx, file, folder)
	if err != nil {
		return failf("Error: %v", err)
	}
	return okf("Pasted file: %s", copied.Name)
}
