package ast

import "strings"

// Tree is a built abstract syntax tree.
type Tree struct {
	root Node
}

// NewTree wraps root in a Tree.
func NewTree(root Node) *Tree {
	return &Tree{root: root}
}

// Root returns the root node.
func (t *Tree) Root() Node {
	return t.root
}

// String renders the tree with box-drawing connectors, one node per line:
//
//	File
//	└── Block
//	    └── Lines
//	        ├── Assignment =
//	        │   ├── Leaf x
//	        │   └── Leaf 1
//	        └── Print print
//	            └── Leaf x
func (t *Tree) String() string {
	if t == nil || t.root == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(label(t.root))
	sb.WriteByte('\n')
	writeChildren(&sb, t.root, "")
	return sb.String()
}

func writeChildren(sb *strings.Builder, n Node, prefix string) {
	children := n.Children()
	for i, c := range children {
		connector, next := "├── ", "│   "
		if i == len(children)-1 {
			connector, next = "└── ", "    "
		}
		sb.WriteString(prefix)
		sb.WriteString(connector)
		sb.WriteString(label(c))
		sb.WriteByte('\n')
		writeChildren(sb, c, prefix+next)
	}
}

func label(n Node) string {
	if v := n.Value(); v != "" {
		return n.Role().String() + " " + v
	}
	return n.Role().String()
}
