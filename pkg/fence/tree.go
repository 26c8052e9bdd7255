package fence

import (
	"fmt"
	"sort"
	"strings"
)

// treeNode is one entry in the preamble tree.
type treeNode struct {
	name     string
	isDir    bool
	children []*treeNode
	index    map[string]*treeNode
}

func newTreeNode(name string, isDir bool) *treeNode {
	return &treeNode{name: name, isDir: isDir, index: map[string]*treeNode{}}
}

// BuildTree renders a directory-tree preamble from the entries that made it
// into the output. The hierarchy is reconstructed from the flat entry list;
// intermediate directories appear even though traversal never emits them as
// entries of their own.
func BuildTree(rootName string, entries []PathEntry) string {
	root := newTreeNode(rootName, true)

	for _, entry := range entries {
		parts := strings.Split(entry.RelPath, "/")
		node := root
		for i, part := range parts {
			isDir := i < len(parts)-1
			child, ok := node.index[part]
			if !ok {
				child = newTreeNode(part, isDir)
				node.index[part] = child
				node.children = append(node.children, child)
			}
			node = child
		}
	}

	sortTree(root)

	var b strings.Builder
	b.WriteString(rootName + "/\n")
	writeTree(&b, root.children, "")
	return b.String()
}

// sortTree orders children directories first, then files, alphabetically
// and case-insensitively.
func sortTree(node *treeNode) {
	sort.Slice(node.children, func(i, j int) bool {
		a, b := node.children[i], node.children[j]
		if a.isDir != b.isDir {
			return a.isDir
		}
		return strings.ToLower(a.name) < strings.ToLower(b.name)
	})
	for _, child := range node.children {
		sortTree(child)
	}
}

func writeTree(b *strings.Builder, children []*treeNode, prefix string) {
	for i, node := range children {
		connector := "├── "
		extension := "│   "
		if i == len(children)-1 {
			connector = "└── "
			extension = "    "
		}

		name := node.name
		if node.isDir {
			name += "/"
		}
		fmt.Fprintf(b, "%s%s%s\n", prefix, connector, name)

		if node.isDir {
			writeTree(b, node.children, prefix+extension)
		}
	}
}
