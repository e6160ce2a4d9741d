package shell

import (
	"sort"
	"strconv"
	"strings"

	"github.com/math-u-t/Drive-CLI/pkg/store/drive"
)

// sortNodes orders folders before files, then locale-aware by name
// within each kind. Shared by the flat listing and the tree renderer so
// the two views agree on ordering.
func (sh *Shell) sortNodes(nodes []*drive.Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		a, b := nodes[i], nodes[j]
		if a.IsFolder() != b.IsFolder() {
			return a.IsFolder()
		}
		return sh.collator.CompareString(a.Name, b.Name) < 0
	})
}

// renderListing produces the flat directory table: count line, header,
// rule, one row per child. Folder names are bracketed, folder sizes
// render as a dash.
func (sh *Shell) renderListing(folders, files []*drive.Node) string {
	items := make([]*drive.Node, 0, len(folders)+len(files))
	items = append(items, folders...)
	items = append(items, files...)

	if len(items) == 0 {
		return "Empty directory."
	}

	sh.sortNodes(items)

	var b strings.Builder
	b.WriteString("Total: ")
	b.WriteString(itoa(len(items)))
	b.WriteString(" item(s)\n\n")
	b.WriteString(padRight("NAME", 35))
	b.WriteString(padRight("TYPE", 15))
	b.WriteString(padRight("SIZE", 12))
	b.WriteString("MODIFIED\n")
	b.WriteString(strings.Repeat("-", 90))
	b.WriteString("\n")

	for _, item := range items {
		name := item.Name
		typeTag := mimeTag(item.MimeType)
		size := formatBytes(item.Size)
		if item.IsFolder() {
			name = "[" + item.Name + "]"
			typeTag = "DIR"
			size = "-"
		}
		b.WriteString(padRight(name, 35))
		b.WriteString(padRight(typeTag, 15))
		b.WriteString(padRight(size, 12))
		b.WriteString(formatMinute(item.ModifiedAt))
		b.WriteString("\n")
	}
	return b.String()
}

// renderTrashListing produces the trash table: no size column, and the
// trashed-at timestamp instead of last-modified.
func renderTrashListing(folders, files []*drive.Node) string {
	total := len(folders) + len(files)
	if total == 0 {
		return "Trash is empty."
	}

	var b strings.Builder
	b.WriteString("Trash: ")
	b.WriteString(itoa(total))
	b.WriteString(" item(s)\n\n")
	b.WriteString(padRight("NAME", 40))
	b.WriteString(padRight("TYPE", 15))
	b.WriteString("TRASHED\n")
	b.WriteString(strings.Repeat("-", 80))
	b.WriteString("\n")

	for _, folder := range folders {
		b.WriteString(padRight("["+folder.Name+"]", 40))
		b.WriteString(padRight("DIR", 15))
		b.WriteString(formatSecond(folder.TrashedAt))
		b.WriteString("\n")
	}
	for _, file := range files {
		b.WriteString(padRight(file.Name, 40))
		b.WriteString(padRight(mimeTag(file.MimeType), 15))
		b.WriteString(formatSecond(file.TrashedAt))
		b.WriteString("\n")
	}
	return b.String()
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
