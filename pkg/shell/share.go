package shell

import (
	"context"
	"strings"

	"github.com/math-u-t/Drive-CLI/pkg/store/drive"
)

const shareUsage = "Error: Usage: share <name> <email> <type>\nTypes: view, edit, comment"

// cmdShare manages sharing state. Three sub-modes:
//
//	share <name> <email> <type>      grant a user a role
//	share <name> --link [type]       enable anyone-with-link access
//	share <name> --list              print the node's sharing state
func (sh *Shell) cmdShare(ctx context.Context, sessionID string, args []string) Result {
	if len(args) >= 2 && args[len(args)-1] == "--list" {
		return sh.shareList(ctx, sessionID, strings.Join(args[:len(args)-1], " "))
	}

	for i, arg := range args {
		if arg == "--link" {
			name := strings.Join(args[:i], " ")
			role := "view"
			if i+1 < len(args) {
				role = strings.ToLower(args[i+1])
			}
			return sh.shareLink(ctx, sessionID, name, role)
		}
	}

	if len(args) < 3 {
		return fail(shareUsage)
	}

	kind := strings.ToLower(args[len(args)-1])
	email := args[len(args)-2]
	name := strings.Join(args[:len(args)-2], " ")
	return sh.shareGrant(ctx, sessionID, name, email, kind)
}

func (sh *Shell) shareGrant(ctx context.Context, sessionID, name, email, kind string) Result {
	role, err := drive.ParseRole(kind)
	if err != nil {
		return failf("Error: Unknown permission type '%s'", kind)
	}

	node, res := sh.lookupNamed(ctx, sessionID, []string{name})
	if node == nil {
		return res
	}
	if err := sh.drive.AddGrant(ctx, node.ID, email, role); err != nil {
		return failf("Error: %v", err)
	}
	return okf("Shared %s with %s (%s)", name, email, kind)
}

func (sh *Shell) shareLink(ctx context.Context, sessionID, name, kind string) Result {
	if name == "" {
		return fail("Error: Usage: share <name> --link [view|comment|edit]")
	}

	role, err := drive.ParseRole(kind)
	if err != nil {
		return failf("Error: Unknown permission type '%s'", kind)
	}

	node, res := sh.lookupNamed(ctx, sessionID, []string{name})
	if node == nil {
		return res
	}
	if err := sh.drive.SetLinkAccess(ctx, node.ID, role); err != nil {
		return failf("Error: %v", err)
	}
	return okf("Link sharing enabled for %s (%s)\n%s", name, kind, drive.NodeURL(sh.opts.BaseURL, node))
}

func (sh *Shell) shareList(ctx context.Context, sessionID, name string) Result {
	if name == "" {
		return fail("Error: Usage: share <name> --list")
	}

	node, res := sh.lookupNamed(ctx, sessionID, []string{name})
	if node == nil {
		return res
	}

	var b strings.Builder
	b.WriteString("=== Sharing: " + node.Name + " ===\n")
	b.WriteString("Access:     " + accessSummary(node) + "\n")
	if len(node.Sharing.Grants) == 0 {
		b.WriteString("Grants:     none\n")
	} else {
		b.WriteString("Grants:\n")
		for _, grant := range node.Sharing.Grants {
			b.WriteString("  " + grant.Email + " (" + strings.ToLower(grant.Role.String()) + ")\n")
		}
	}
	return ok(b.String())
}
