// Package cst defines the concrete syntax tree handed from the parser to
// the semantic stage.
//
// A CST node is rule-shaped: it names the grammar rule that matched, the
// source text the rule covered, its sub-rule nodes in positional order, and
// the position of the rule's first token. Tokens the semantic stage needs
// (names, type keywords, operators) appear as Terminal children at fixed
// positions; punctuation does not appear at all.
//
// Child layouts per rule:
//
//	File            (Function | CodeBlock)*
//	CodeBlock       (Lines | Conditional | Loop)*
//	Lines           statement*
//	Declaration     type name
//	Initialization  type name "=" (expr | Call)
//	Assignment      name "=" expr
//	CallAssignment  name "=" Call
//	Augmented       name op expr
//	Print           "print" expr
//	Call            name Arguments
//	Arguments       expr*
//	Conditional     "if" expr CodeBlock ["else" CodeBlock]
//	Loop            "while" expr CodeBlock
//	Function        name Parameters type CodeBlock [Return]
//	Parameters      Parameter*
//	Parameter       type name
//	Return          "return" expr
//	BinaryOperation left op right
//	Comparison      left op right
//	LogicOperation  left op right
//	Negation        "-" (Variable | Number | Grouping | Negation)
//	NotOperation    "not" expr
//	Grouping        expr
//	Number, Boolean, Variable, Terminal: no children
//
// The type terminal of a Function has empty text when the function
// returns nothing.
package cst

import (
	"fmt"
	"strings"

	"github.com/kolkov/copyex/internal/token"
)

// Rule identifies the grammar production a node was matched by.
type Rule uint8

const (
	Invalid Rule = iota
	File
	CodeBlock
	Lines
	Declaration
	Initialization
	Assignment
	CallAssignment
	Augmented
	Print
	Call
	Arguments
	Conditional
	Loop
	Function
	Parameters
	Parameter
	Return
	BinaryOperation
	Comparison
	LogicOperation
	Negation
	NotOperation
	Grouping
	Number
	Boolean
	Variable
	Terminal
)

var ruleNames = [...]string{
	Invalid:         "invalid",
	File:            "file",
	CodeBlock:       "codeBlock",
	Lines:           "lines",
	Declaration:     "declaration",
	Initialization:  "initialization",
	Assignment:      "assignment",
	CallAssignment:  "callAssignment",
	Augmented:       "augmented",
	Print:           "print",
	Call:            "call",
	Arguments:       "arguments",
	Conditional:     "conditional",
	Loop:            "loop",
	Function:        "function",
	Parameters:      "parameters",
	Parameter:       "parameter",
	Return:          "return",
	BinaryOperation: "binaryOperation",
	Comparison:      "comparison",
	LogicOperation:  "logicOperation",
	Negation:        "negation",
	NotOperation:    "notOperation",
	Grouping:        "grouping",
	Number:          "number",
	Boolean:         "boolean",
	Variable:        "variable",
	Terminal:        "terminal",
}

// String returns the grammar name of the rule.
func (r Rule) String() string {
	if int(r) < len(ruleNames) {
		return ruleNames[r]
	}
	return fmt.Sprintf("rule(%d)", r)
}

// IsExpr reports whether the rule produces an expression.
func (r Rule) IsExpr() bool {
	return r >= BinaryOperation && r <= Variable
}

// Node is a concrete syntax tree node.
type Node struct {
	Rule     Rule
	Text     string         // source text matched by the rule
	Pos      token.Position // position of the first token
	Children []*Node
}

// New creates a node with the given children.
func New(rule Rule, text string, pos token.Position, children ...*Node) *Node {
	return &Node{Rule: rule, Text: text, Pos: pos, Children: children}
}

// Term creates a Terminal node for a token.
func Term(text string, pos token.Position) *Node {
	return &Node{Rule: Terminal, Text: text, Pos: pos}
}

// Len returns the number of children.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	return len(n.Children)
}

// Child returns the i-th child, or nil when out of range.
func (n *Node) Child(i int) *Node {
	if n == nil || i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// Add appends children to the node.
func (n *Node) Add(children ...*Node) {
	n.Children = append(n.Children, children...)
}

// String renders the node as an s-expression, e.g.
// (initialization num x = (number 1)). An empty terminal prints as "_".
func (n *Node) String() string {
	var sb strings.Builder
	n.write(&sb)
	return sb.String()
}

func (n *Node) write(sb *strings.Builder) {
	if n == nil {
		sb.WriteString("<nil>")
		return
	}
	if n.Rule == Terminal {
		if n.Text == "" {
			sb.WriteString("_")
		} else {
			sb.WriteString(n.Text)
		}
		return
	}
	sb.WriteByte('(')
	sb.WriteString(n.Rule.String())
	if n.Rule == Number || n.Rule == Boolean || n.Rule == Variable {
		sb.WriteByte(' ')
		sb.WriteString(n.Text)
	}
	for _, c := range n.Children {
		sb.WriteByte(' ')
		c.write(sb)
	}
	sb.WriteByte(')')
}
