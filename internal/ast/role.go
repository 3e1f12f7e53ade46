package ast

import "fmt"

// Role is the semantic category of a node. It selects the rendering rule
// in the code generator.
type Role uint8

const (
	InfixOp Role = iota // binary arithmetic, comparison or logic operator

	Leaf     // literal or variable
	Negation // unary operator with one operand
	Group    // parenthesized expression

	// Statements
	Print
	Assignment // plain or augmented; value holds the operator
	Return
	Call     // function call expression
	ExprStmt // call used as a statement
	Global   // global declaration line at the top of a function body

	// Control flow
	Condition
	If
	Else
	Loop
	Body

	// Structure
	File
	Block
	Lines
	Function
	Signature
	Name
	Arg
)

var roleNames = [...]string{
	InfixOp:    "InfixOp",
	Leaf:       "Leaf",
	Negation:   "Negation",
	Group:      "Group",
	Print:      "Print",
	Assignment: "Assignment",
	Return:     "Return",
	Call:       "Call",
	ExprStmt:   "ExprStmt",
	Global:     "Global",
	Condition:  "Condition",
	If:         "If",
	Else:       "Else",
	Loop:       "Loop",
	Body:       "Body",
	File:       "File",
	Block:      "Block",
	Lines:      "Lines",
	Function:   "Function",
	Signature:  "Signature",
	Name:       "Name",
	Arg:        "Arg",
}

func (r Role) String() string {
	if int(r) < len(roleNames) {
		return roleNames[r]
	}
	return fmt.Sprintf("Role(%d)", r)
}

// IsContainer reports whether nodes of this role only concatenate their
// children's rendering.
func (r Role) IsContainer() bool {
	switch r {
	case File, Block, Lines, If, Else, Body:
		return true
	}
	return false
}

// IsStatement reports whether the role renders as a complete line.
func (r Role) IsStatement() bool {
	switch r {
	case Print, Assignment, Return, ExprStmt, Global:
		return true
	}
	return false
}

// Shape is the static type of an expression node.
type Shape uint8

const (
	ShapeNone Shape = iota
	ShapeNumeric
	ShapeBoolean
)

func (s Shape) String() string {
	switch s {
	case ShapeNumeric:
		return "num"
	case ShapeBoolean:
		return "bool"
	}
	return "none"
}
