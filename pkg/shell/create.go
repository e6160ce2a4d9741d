package shell

import (
	"context"
	"strings"

	"github.com/math-u-t/Drive-CLI/pkg/store/drive"
)

const newUsage = "Error: Usage: new <name> <type>\nTypes: file, dir, form, sheet, docs, slide, script, py"

// documentMimes maps the office-document types of "new" to their MIME
// tags. Plain "file" is handled separately.
var documentMimes = map[string]string{
	"docs":  drive.MimeDocument,
	"sheet": drive.MimeSpreadsheet,
	"slide": drive.MimePresentation,
	"form":  drive.MimeForm,
}

// cmdNew creates a node in the working folder. The last token is the
// type, everything before it joins into the name so names may contain
// spaces.
func (sh *Shell) cmdNew(ctx context.Context, sessionID string, args []string) Result {
	if len(args) < 2 {
		return fail(newUsage)
	}

	kind := strings.ToLower(args[len(args)-1])
	name := strings.Join(args[:len(args)-1], " ")

	folder, err := sh.currentFolder(ctx, sessionID)
	if err != nil {
		return failf("Error: %v", err)
	}

	var created *drive.Node
	switch kind {
	case "file":
		created, err = sh.createFile(ctx, folder, name, drive.MimeText)
	case "dir":
		created, err = sh.drive.CreateFolder(ctx, folder.ID, name)
	case "docs", "sheet", "slide", "form":
		created, err = sh.createFile(ctx, folder, name, documentMimes[kind])
	case "script":
		return fail("Error: Script creation requires manual setup via the script editor")
	case "py":
		return fail("Error: Notebook creation requires manual setup via the notebook editor")
	default:
		return failf("Error: Unknown type '%s'", kind)
	}
	if err != nil {
		return failf("Error: %v", err)
	}

	return okf("Created %s: %s\nID: %s\nURL: %s", kind, name, created.ID, drive.NodeURL(sh.opts.BaseURL, created))
}

// cmdTouch creates an empty plain-text file, refusing names already taken
// by a file in the working folder.
func (sh *Shell) cmdTouch(ctx context.Context, sessionID string, args []string) Result {
	if len(args) == 0 {
		return fail("Error: Usage: touch <name>")
	}

	name := strings.Join(args, " ")
	folder, err := sh.currentFolder(ctx, sessionID)
	if err != nil {
		return failf("Error: %v", err)
	}

	if _, err := sh.drive.FindChildFileByName(ctx, folder.ID, name); err == nil {
		return failf("Error: File '%s' already exists.", name)
	}

	created, err := sh.createFile(ctx, folder, name, drive.MimeText)
	if err != nil {
		return failf("Error: %v", err)
	}
	return okf("Created: %s\nID: %s", name, created.ID)
}

// cmdMkdir creates a folder, refusing names already taken by a folder in
// the working folder.
func (sh *Shell) cmdMkdir(ctx context.Context, sessionID string, args []string) Result {
	if len(args) == 0 {
		return fail("Error: Usage: mkdir <name>")
	}

	name := strings.Join(args, " ")
	folder, err := sh.currentFolder(ctx, sessionID)
	if err != nil {
		return failf("Error: %v", err)
	}

	if _, err := sh.drive.FindChildFolderByName(ctx, folder.ID, name); err == nil {
		return failf("Error: Folder '%s' already exists.", name)
	}

	created, err := sh.drive.CreateFolder(ctx, folder.ID, name)
	if err != nil {
		return failf("Error: %v", err)
	}
	return okf("Created directory: %s\nID: %s", name, created.ID)
}

// createFile writes empty content first, then the node referencing it, so
// a node never points at a missing body.
func (sh *Shell) createFile(ctx context.Context, folder *drive.Node, name, mimeType string) (*drive.Node, error) {
	contentID := drive.NewContentID()
	if err := sh.content.Write(ctx, contentID, nil); err != nil {
		return nil, err
	}
	return sh.drive.CreateFile(ctx, folder.ID, name, mimeType, 0, contentID)
}
