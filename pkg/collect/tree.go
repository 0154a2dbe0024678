package collect

import (
	"sort"
	"strings"
)

// treeNode is one entry of the rendered file tree.
type treeNode struct {
	name     string
	isDir    bool
	children map[string]*treeNode
}

func newDirNode(name string) *treeNode {
	return &treeNode{name: name, isDir: true, children: make(map[string]*treeNode)}
}

// buildTree turns slash-separated relative paths into a tree rooted at rootName.
func buildTree(rootName string, paths []string) *treeNode {
	root := newDirNode(rootName)
	for _, p := range paths {
		parts := strings.Split(p, "/")
		node := root
		for i, part := range parts {
			if i == len(parts)-1 {
				node.children[part] = &treeNode{name: part}
				break
			}
			child, ok := node.children[part]
			if !ok {
				child = newDirNode(part)
				node.children[part] = child
			}
			node = child
		}
	}
	return root
}

// GenerateTree renders the included files as an indented tree.
func GenerateTree(rootName string, paths []string) string {
	root := buildTree(rootName, paths)

	var b strings.Builder
	b.WriteString(root.name + "/\n")
	writeTreeRecursively(&b, root, "")
	return b.String()
}

// writeTreeRecursively renders children sorted directories first, then alphabetically.
func writeTreeRecursively(b *strings.Builder, node *treeNode, prefix string) {
	entries := make([]*treeNode, 0, len(node.children))
	for _, child := range node.children {
		entries = append(entries, child)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].isDir != entries[j].isDir {
			return entries[i].isDir
		}
		return strings.ToLower(entries[i].name) < strings.ToLower(entries[j].name)
	})

	for i, entry := range entries {
		connector := "├── "
		extension := "│   "
		if i == len(entries)-1 {
			connector = "└── "
			extension = "    "
		}

		b.WriteString(prefix + connector + entry.name)
		if entry.isDir {
			b.WriteString("/\n")
			writeTreeRecursively(b, entry, prefix+extension)
			continue
		}
		b.WriteString("\n")
	}
}
