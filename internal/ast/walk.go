package ast

// Walk traverses the tree depth-first in pre-order, calling fn for each
// node. If fn returns false, the node's children are skipped.
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}
	for _, c := range node.Children() {
		Walk(c, fn)
	}
}

// Count returns the number of nodes with the given role.
func Count(node Node, role Role) int {
	n := 0
	Walk(node, func(x Node) bool {
		if x.Role() == role {
			n++
		}
		return true
	})
	return n
}
