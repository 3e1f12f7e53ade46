// Package codegen renders a checked AST as Python source.
//
// Rendering is a pure function of a node and its indentation depth. It does
// no checking of its own: every tree the semantic builder accepts renders.
package codegen

import (
	"strings"

	"github.com/kolkov/copyex/internal/ast"
	"github.com/kolkov/copyex/internal/python"
)

// DefaultIndentWidth is the number of spaces per indentation level.
const DefaultIndentWidth = 4

// Options configures code generation.
type Options struct {
	// IndentWidth is the number of spaces per level. Zero means
	// DefaultIndentWidth.
	IndentWidth int
}

func (o Options) width() int {
	if o.IndentWidth <= 0 {
		return DefaultIndentWidth
	}
	return o.IndentWidth
}

// Generate renders the whole tree.
func Generate(tree *ast.Tree, opts Options) string {
	if tree == nil || tree.Root() == nil {
		return ""
	}
	return Render(tree.Root(), 0, opts)
}

// Render renders node n as if it appeared at the given depth.
func Render(n ast.Node, depth int, opts Options) string {
	g := generator{width: opts.width()}
	var sb strings.Builder
	g.render(&sb, n, depth)
	return sb.String()
}

type generator struct {
	width int
}

func (g generator) indent(sb *strings.Builder, depth int) {
	sb.WriteString(python.Indent(depth, g.width))
}

func (g generator) render(sb *strings.Builder, n ast.Node, depth int) {
	if n == nil {
		return
	}

	switch n.Role() {
	case ast.File, ast.Block, ast.Lines:
		g.container(sb, n, depth)

	case ast.If, ast.Else, ast.Body:
		// Suites must not be empty.
		if len(n.Children()) == 0 {
			g.indent(sb, depth)
			sb.WriteString("pass\n")
			return
		}
		g.container(sb, n, depth)

	case ast.Leaf:
		if n.Shape() == ast.ShapeBoolean {
			sb.WriteString(python.Bool(n.Value()))
		} else {
			sb.WriteString(n.Value())
		}

	case ast.Name, ast.Arg:
		sb.WriteString(n.Value())

	case ast.Assignment:
		left, right := pair(n)
		g.render(sb, left, depth)
		sb.WriteByte(' ')
		sb.WriteString(n.Value())
		sb.WriteByte(' ')
		g.render(sb, right, depth)
		sb.WriteByte('\n')

	case ast.Negation:
		operand, _ := pair(n)
		sb.WriteString(n.Value())
		if isWord(n.Value()) {
			sb.WriteByte(' ')
		}
		g.render(sb, operand, depth)

	case ast.Group:
		inner, _ := pair(n)
		sb.WriteByte('(')
		g.render(sb, inner, depth)
		sb.WriteByte(')')

	case ast.InfixOp:
		left, right := pair(n)
		g.render(sb, left, depth)
		sb.WriteByte(' ')
		sb.WriteString(n.Value())
		sb.WriteByte(' ')
		g.render(sb, right, depth)

	case ast.Return:
		value, _ := pair(n)
		sb.WriteString("return ")
		g.render(sb, value, depth)
		sb.WriteByte('\n')

	case ast.Print:
		value, _ := pair(n)
		sb.WriteString("print(")
		g.render(sb, value, depth)
		sb.WriteString(")\n")

	case ast.ExprStmt:
		call, _ := pair(n)
		g.render(sb, call, depth)
		sb.WriteByte('\n')

	case ast.Call:
		sb.WriteString(n.Value())
		sb.WriteByte('(')
		g.list(sb, n.Children(), depth)
		sb.WriteByte(')')

	case ast.Global:
		sb.WriteString("global ")
		g.list(sb, n.Children(), depth)
		sb.WriteByte('\n')

	case ast.Condition:
		parts := n.Children()
		sb.WriteString("if ")
		g.render(sb, at(parts, 0), depth)
		sb.WriteString(":\n")
		g.render(sb, at(parts, 1), depth+1)
		if otherwise := at(parts, 2); otherwise != nil {
			g.indent(sb, depth)
			sb.WriteString("else:\n")
			g.render(sb, otherwise, depth+1)
		}

	case ast.Loop:
		cond, body := pair(n)
		sb.WriteString("while ")
		g.render(sb, cond, depth)
		sb.WriteString(":\n")
		g.render(sb, body, depth+1)

	case ast.Function:
		sig, body := pair(n)
		sb.WriteString("def ")
		g.render(sb, sig, depth)
		sb.WriteString(":\n")
		g.render(sb, body, depth+1)
		sb.WriteByte('\n')

	case ast.Signature:
		parts := n.Children()
		g.render(sb, at(parts, 0), depth)
		sb.WriteByte('(')
		if len(parts) > 1 {
			g.list(sb, parts[1:], depth)
		}
		sb.WriteByte(')')
	}
}

// container renders children in order. Children that are not containers
// themselves start a line and get the depth's indentation.
func (g generator) container(sb *strings.Builder, n ast.Node, depth int) {
	for _, c := range n.Children() {
		if !c.Role().IsContainer() {
			g.indent(sb, depth)
		}
		g.render(sb, c, depth)
	}
}

// list renders nodes separated by ", ".
func (g generator) list(sb *strings.Builder, nodes []ast.Node, depth int) {
	for i, c := range nodes {
		if i > 0 {
			sb.WriteString(", ")
		}
		g.render(sb, c, depth)
	}
}

// pair returns the first two children of n, or nil for missing ones.
func pair(n ast.Node) (ast.Node, ast.Node) {
	if f, ok := n.(*ast.FixedNode); ok {
		return f.Left(), f.Right()
	}
	c := n.Children()
	return at(c, 0), at(c, 1)
}

func at(nodes []ast.Node, i int) ast.Node {
	if i < len(nodes) {
		return nodes[i]
	}
	return nil
}

// isWord reports whether op is spelled with letters, like "not".
func isWord(op string) bool {
	return op != "" && op[0] >= 'a' && op[0] <= 'z'
}
