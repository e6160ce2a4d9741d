package shell

import (
	"context"
	"strings"

	"github.com/math-u-t/Drive-CLI/pkg/store/drive"
)

// cmdStat prints the full metadata block for a named child, folders
// shadowing files.
func (sh *Shell) cmdStat(ctx context.Context, sessionID string, args []string) Result {
	if len(args) == 0 {
		return fail("Error: Usage: stat <name>")
	}

	name := strings.Join(args, " ")
	folder, err := sh.currentFolder(ctx, sessionID)
	if err != nil {
		return failf("Error: %v", err)
	}
	node, err := sh.resolveChild(ctx, folder, name)
	if err != nil {
		return failf("Error: %v", err)
	}

	var b strings.Builder
	if node.IsFolder() {
		b.WriteString("=== Directory Statistics ===\n\n")
	} else {
		b.WriteString("=== File Statistics ===\n\n")
	}
	b.WriteString("Name:       " + node.Name + "\n")
	b.WriteString("ID:         " + node.ID.String() + "\n")
	if !node.IsFolder() {
		b.WriteString("Type:       " + node.MimeType + "\n")
		b.WriteString("Size:       " + formatBytes(node.Size) + "\n")
	}
	b.WriteString("Created:    " + formatSecond(node.CreatedAt) + "\n")
	b.WriteString("Modified:   " + formatSecond(node.ModifiedAt) + "\n")
	b.WriteString("Owner:      " + node.Owner + "\n")
	b.WriteString("URL:        " + drive.NodeURL(sh.opts.BaseURL, node) + "\n")
	b.WriteString("Access:     " + accessSummary(node) + "\n")

	return ok(b.String())
}

// cmdURL prints the node URL.
func (sh *Shell) cmdURL(ctx context.Context, sessionID string, args []string) Result {
	if len(args) == 0 {
		return fail("Error: Usage: url <name>")
	}
	node, res := sh.lookupNamed(ctx, sessionID, args)
	if node == nil {
		return res
	}
	return ok(drive.NodeURL(sh.opts.BaseURL, node))
}

// cmdOpen prints the node URL with the open action hint so the terminal
// opens it.
func (sh *Shell) cmdOpen(ctx context.Context, sessionID string, args []string) Result {
	if len(args) == 0 {
		return fail("Error: Usage: open <name>")
	}
	node, res := sh.lookupNamed(ctx, sessionID, args)
	if node == nil {
		return res
	}
	return Result{Success: true, Output: drive.NodeURL(sh.opts.BaseURL, node), Action: ActionOpen}
}

// cmdCat prints the body of a plain-text file, bounded by CatMaxBytes.
func (sh *Shell) cmdCat(ctx context.Context, sessionID string, args []string) Result {
	if len(args) == 0 {
		return fail("Error: Usage: cat <name>")
	}

	name := strings.Join(args, " ")
	folder, err := sh.currentFolder(ctx, sessionID)
	if err != nil {
		return failf("Error: %v", err)
	}
	node, err := sh.resolveChild(ctx, folder, name)
	if err != nil {
		return failf("Error: %v", err)
	}
	if node.IsFolder() {
		return failf("Error: '%s' is a directory", name)
	}
	if node.MimeType != drive.MimeText {
		return failf("Error: '%s' is not a plain text file", name)
	}
	if node.Size > sh.opts.CatMaxBytes {
		return failf("Error: '%s' is too large to display", name)
	}

	data, err := sh.content.Read(ctx, node.ContentID)
	if err != nil {
		return failf("Error: %v", err)
	}
	return ok(string(data))
}

// lookupNamed resolves a joined-name argument in the working folder.
// Returns (nil, failure) when resolution fails.
func (sh *Shell) lookupNamed(ctx context.Context, sessionID string, args []string) (*drive.Node, Result) {
	name := strings.Join(args, " ")
	folder, err := sh.currentFolder(ctx, sessionID)
	if err != nil {
		return nil, failf("Error: %v", err)
	}
	node, err := sh.resolveChild(ctx, folder, name)
	if err != nil {
		return nil, failf("Error: %v", err)
	}
	return node, Result{}
}

// accessSummary renders a node's sharing state as "SCOPE (role)".
func accessSummary(node *drive.Node) string {
	if node.Sharing.Scope == drive.AccessAnyoneWithLink {
		return node.Sharing.Scope.String() + " (" + strings.ToLower(node.Sharing.LinkRole.String()) + ")"
	}
	return node.Sharing.Scope.String() + " (none)"
}
