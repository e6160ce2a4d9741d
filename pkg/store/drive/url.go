package drive

import "strings"

// NodeURL builds the browser URL for a node.
//
// Folders render as <base>/folders/<id>, files as <base>/file/<id>/view,
// mirroring the path shapes of the hosted drive UI the shell fronts.
func NodeURL(baseURL string, n *Node) string {
	base := strings.TrimRight(baseURL, "/")
	if n.IsFolder() {
		return base + "/folders/" + n.ID.String()
	}
	return base + "/file/" + n.ID.String() + "/view"
}
