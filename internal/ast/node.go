// Package ast defines the abstract syntax tree for Copyex programs.
//
// The tree has two node shapes:
//
//	Node (interface)
//	├── FixedNode - at most two children (operators, statements, control)
//	└── ListNode  - ordered children (file, blocks, signatures, arguments)
//
// Every node carries a Role chosen by the builder when the node is created.
// The role is never derived from the node's value, so an identifier that
// happens to spell a keyword cannot be mistaken for one. Expression nodes
// also carry a Shape (numeric or boolean) computed at construction.
//
// Nodes have no exported mutators; a tree is fixed once built.
package ast

import "github.com/kolkov/copyex/internal/token"

// Node is the interface implemented by all AST nodes.
type Node interface {
	// Value returns the literal, operator, keyword or name text of the node.
	Value() string

	// Role returns the semantic category assigned at construction.
	Role() Role

	// Shape returns the expression shape, ShapeNone for statements.
	Shape() Shape

	// Pos returns the position of the construct the node was built from.
	Pos() token.Position

	// Children returns the node's children in order.
	Children() []Node
}

type base struct {
	value string
	role  Role
	shape Shape
	pos   token.Position
}

func (b *base) Value() string       { return b.value }
func (b *base) Role() Role          { return b.role }
func (b *base) Shape() Shape        { return b.shape }
func (b *base) Pos() token.Position { return b.pos }

// FixedNode is a node with an optional left and right child.
// Unary nodes use Left only; leaves have neither.
type FixedNode struct {
	base
	left  Node
	right Node
}

// Left returns the first child, or nil.
func (n *FixedNode) Left() Node { return n.left }

// Right returns the second child, or nil.
func (n *FixedNode) Right() Node { return n.right }

// Children returns the non-nil children in left, right order.
func (n *FixedNode) Children() []Node {
	switch {
	case n.left != nil && n.right != nil:
		return []Node{n.left, n.right}
	case n.left != nil:
		return []Node{n.left}
	case n.right != nil:
		return []Node{n.right}
	}
	return nil
}

// ListNode is a node with any number of ordered children.
type ListNode struct {
	base
	items []Node
}

// Children returns a copy of the node's children.
func (n *ListNode) Children() []Node {
	out := make([]Node, len(n.items))
	copy(out, n.items)
	return out
}

// Len returns the number of children.
func (n *ListNode) Len() int { return len(n.items) }

// At returns the i-th child.
func (n *ListNode) At(i int) Node { return n.items[i] }

// -----------------------------------------------------------------------------
// Constructors
// -----------------------------------------------------------------------------

// NewLeaf creates a childless node holding a literal or identifier.
func NewLeaf(value string, shape Shape, pos token.Position) *FixedNode {
	return &FixedNode{base: base{value: value, role: Leaf, shape: shape, pos: pos}}
}

// NewName creates the function-name leaf of a signature.
func NewName(value string, pos token.Position) *FixedNode {
	return &FixedNode{base: base{value: value, role: Name, pos: pos}}
}

// NewArg creates a parameter leaf of a signature.
func NewArg(value string, shape Shape, pos token.Position) *FixedNode {
	return &FixedNode{base: base{value: value, role: Arg, shape: shape, pos: pos}}
}

// NewFixed creates a node with up to two children. Pass nil for a
// missing child.
func NewFixed(role Role, value string, shape Shape, pos token.Position, left, right Node) *FixedNode {
	return &FixedNode{
		base:  base{value: value, role: role, shape: shape, pos: pos},
		left:  left,
		right: right,
	}
}

// NewList creates a variable-arity node. The items slice is copied.
func NewList(role Role, value string, pos token.Position, items ...Node) *ListNode {
	n := &ListNode{base: base{value: value, role: role, pos: pos}}
	n.items = append(n.items, items...)
	return n
}

// NewCall creates a call node: value is the callee, items are arguments.
// The shape is the callee's return shape.
func NewCall(name string, shape Shape, pos token.Position, args ...Node) *ListNode {
	n := NewList(Call, name, pos, args...)
	n.shape = shape
	return n
}
