package shell

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/math-u-t/Drive-CLI/pkg/store/drive"
)

// renderTree walks the subtree under folder and draws it with branch
// glyphs, last children getting the corner glyph. Folders precede files
// and both sort with the listing collation. Files are capped per folder
// by TreeFileLimit; folders recurse without a cap. The visited set guards
// against cycles the store should never produce but might after a
// corruption.
func (sh *Shell) renderTree(ctx context.Context, folder *drive.Node) (string, error) {
	var b strings.Builder
	visited := make(map[uuid.UUID]bool)
	if err := sh.treeWalk(ctx, &b, folder, "", true, visited); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (sh *Shell) treeWalk(ctx context.Context, b *strings.Builder, folder *drive.Node, prefix string, isLast bool, visited map[uuid.UUID]bool) error {
	b.WriteString(prefix)
	b.WriteString(branchGlyph(isLast))
	b.WriteString(folder.Name)
	b.WriteString("/\n")

	if visited[folder.ID] {
		return nil
	}
	visited[folder.ID] = true

	subfolders, err := sh.drive.ListChildFolders(ctx, folder.ID)
	if err != nil {
		return err
	}
	files, err := sh.drive.ListChildFiles(ctx, folder.ID)
	if err != nil {
		return err
	}
	if len(files) > sh.opts.TreeFileLimit {
		files = files[:sh.opts.TreeFileLimit]
	}

	sh.sortNodes(subfolders)
	sh.sortNodes(files)

	childPrefix := prefix + continuationGlyph(isLast)
	total := len(subfolders) + len(files)
	count := 0

	for _, sub := range subfolders {
		count++
		if err := sh.treeWalk(ctx, b, sub, childPrefix, count == total, visited); err != nil {
			return err
		}
	}
	for _, file := range files {
		count++
		b.WriteString(childPrefix)
		b.WriteString(branchGlyph(count == total))
		b.WriteString(file.Name)
		b.WriteString("\n")
	}
	return nil
}

func branchGlyph(isLast bool) string {
	if isLast {
		return "└── "
	}
	return "├── "
}

func continuationGlyph(isLast bool) string {
	if isLast {
		return "    "
	}
	return "│   "
}
