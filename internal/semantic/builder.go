package semantic

import (
	"github.com/kolkov/copyex/internal/ast"
	"github.com/kolkov/copyex/internal/cst"
	"github.com/kolkov/copyex/internal/python"
)

// Builder turns one CST into an AST, checking the program on the way.
// A Builder holds the symbols of the program it built and must not be
// reused for another one.
type Builder struct {
	ctx  *Context
	used bool
}

// NewBuilder creates a builder with a fresh context.
func NewBuilder() *Builder {
	return &Builder{ctx: NewContext()}
}

// Build checks root and returns its AST, using a fresh Builder.
func Build(root *cst.Node) (*ast.Tree, error) {
	return NewBuilder().Build(root)
}

// Context returns the builder's scopes and functions.
func (b *Builder) Context() *Context {
	return b.ctx
}

// Build checks root and returns its AST. The first error stops the build
// and no tree is returned.
func (b *Builder) Build(root *cst.Node) (*ast.Tree, error) {
	if b.used {
		return nil, ErrBuilderReused
	}
	b.used = true

	file, err := b.buildFile(root)
	if err != nil {
		return nil, err
	}
	return ast.NewTree(file), nil
}

// -----------------------------------------------------------------------------
// Program structure
// -----------------------------------------------------------------------------

func (b *Builder) buildFile(n *cst.Node) (ast.Node, error) {
	if n == nil || n.Rule != cst.File {
		return nil, malformed(n, "expected file")
	}

	global := b.ctx.Scopes.Global()
	items := make([]ast.Node, 0, n.Len())
	for _, c := range n.Children {
		var item ast.Node
		var err error
		switch c.Rule {
		case cst.Function:
			item, err = b.buildFunction(c)
		case cst.CodeBlock:
			item, err = b.buildBlock(global, c, ast.Block)
		default:
			err = malformed(c, "unexpected %s in file", c.Rule)
		}
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return ast.NewList(ast.File, "", n.Pos, items...), nil
}

// buildBlock builds a code block as a container node of the given role.
func (b *Builder) buildBlock(sc Scope, n *cst.Node, role ast.Role) (*ast.ListNode, error) {
	items, err := b.buildItems(sc, n)
	if err != nil {
		return nil, err
	}
	return ast.NewList(role, "", n.Pos, items...), nil
}

// buildItems builds the lines, conditionals and loops of a code block.
// Lines holding only declarations are dropped.
func (b *Builder) buildItems(sc Scope, n *cst.Node) ([]ast.Node, error) {
	if n == nil || n.Rule != cst.CodeBlock {
		return nil, malformed(n, "expected code block")
	}

	items := make([]ast.Node, 0, n.Len())
	for _, c := range n.Children {
		switch c.Rule {
		case cst.Lines:
			lines, err := b.buildLines(sc, c)
			if err != nil {
				return nil, err
			}
			if lines.Len() > 0 {
				items = append(items, lines)
			}
		case cst.Conditional:
			cond, err := b.buildConditional(sc, c)
			if err != nil {
				return nil, err
			}
			items = append(items, cond)
		case cst.Loop:
			loop, err := b.buildLoop(sc, c)
			if err != nil {
				return nil, err
			}
			items = append(items, loop)
		default:
			return nil, malformed(c, "unexpected %s in code block", c.Rule)
		}
	}
	return items, nil
}

func (b *Builder) buildLines(sc Scope, n *cst.Node) (*ast.ListNode, error) {
	stmts := make([]ast.Node, 0, n.Len())
	for _, c := range n.Children {
		stmt, err := b.buildStatement(sc, c)
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	return ast.NewList(ast.Lines, "", n.Pos, stmts...), nil
}

// buildConditional builds "if cond { } [else { }]" as
// Condition[cond, If, Else?].
func (b *Builder) buildConditional(sc Scope, n *cst.Node) (ast.Node, error) {
	if n.Len() != 3 && n.Len() != 5 {
		return nil, malformed(n, "conditional has %d children", n.Len())
	}
	cond, err := b.buildCondition(sc, n.Child(1), "if")
	if err != nil {
		return nil, err
	}
	then, err := b.buildBlock(sc, n.Child(2), ast.If)
	if err != nil {
		return nil, err
	}
	parts := []ast.Node{cond, then}

	if n.Len() == 5 {
		otherwise, err := b.buildBlock(sc, n.Child(4), ast.Else)
		if err != nil {
			return nil, err
		}
		parts = append(parts, otherwise)
	}
	return ast.NewList(ast.Condition, "if", n.Pos, parts...), nil
}

func (b *Builder) buildLoop(sc Scope, n *cst.Node) (ast.Node, error) {
	if n.Len() != 3 {
		return nil, malformed(n, "loop has %d children", n.Len())
	}
	cond, err := b.buildCondition(sc, n.Child(1), "while")
	if err != nil {
		return nil, err
	}
	body, err := b.buildBlock(sc, n.Child(2), ast.Body)
	if err != nil {
		return nil, err
	}
	return ast.NewFixed(ast.Loop, "while", ast.ShapeNone, n.Pos, cond, body), nil
}

// buildCondition builds the condition of an if or while, which must be
// boolean.
func (b *Builder) buildCondition(sc Scope, n *cst.Node, keyword string) (ast.Node, error) {
	cond, err := b.buildExpr(sc, n)
	if err != nil {
		return nil, err
	}
	if cond.Shape() != ast.ShapeBoolean {
		return nil, errorf(TypeMismatch, keyword, n.Pos, errConditionType, keyword)
	}
	return cond, nil
}

// -----------------------------------------------------------------------------
// Functions
// -----------------------------------------------------------------------------

// buildFunction builds a function definition as
// Function(Signature[Name, Arg...], Body[Global?, items..., Return?]).
//
// The function is registered before its body is visited so that it can
// call itself. Its parameters are assigned in a fresh scope that is active
// only while the body is built.
func (b *Builder) buildFunction(n *cst.Node) (ast.Node, error) {
	if n.Len() != 4 && n.Len() != 5 {
		return nil, malformed(n, "function has %d children", n.Len())
	}
	nameNode, params, retNode, body := n.Child(0), n.Child(1), n.Child(2), n.Child(3)
	name := nameNode.Text
	if params.Rule != cst.Parameters || body.Rule != cst.CodeBlock {
		return nil, malformed(n, "unexpected function layout")
	}
	if err := checkName(nameNode); err != nil {
		return nil, err
	}

	ret, err := parseType(retNode, true)
	if err != nil {
		return nil, err
	}
	if !b.ctx.Functions.Define(name, ret) {
		return nil, errorf(FunctionRedefined, name, nameNode.Pos, errFuncRedefined, name)
	}

	prev := b.ctx.Scopes.Active()
	sc := b.ctx.Scopes.Enter(name)
	defer b.ctx.Scopes.Restore(prev)

	sig := []ast.Node{ast.NewName(python.Mangle(name), nameNode.Pos)}
	for _, p := range params.Children {
		if p.Rule != cst.Parameter || p.Len() != 2 {
			return nil, malformed(p, "expected parameter")
		}
		typ, err := parseType(p.Child(0), false)
		if err != nil {
			return nil, err
		}
		pname := p.Child(1)
		if err := checkName(pname); err != nil {
			return nil, err
		}
		if sc.table.IsDeclared(pname.Text) {
			return nil, errorf(DuplicateParameter, pname.Text, pname.Pos, errDuplicateParam, pname.Text, name)
		}
		sc.table.Assign(pname.Text, typ)
		sig = append(sig, ast.NewArg(python.Mangle(pname.Text), typ, pname.Pos))
	}

	items, err := b.buildItems(sc, body)
	if err != nil {
		return nil, err
	}

	if n.Len() == 5 {
		r, err := b.buildReturn(sc, n.Child(4), name, ret)
		if err != nil {
			return nil, err
		}
		items = append(items, r)
	} else if ret != ast.ShapeNone {
		return nil, errorf(InvalidReturnUsage, name+"()", nameNode.Pos, errMissingReturn, name, typeName(ret))
	}

	if writes := sc.table.GlobalWrites(); len(writes) > 0 {
		names := make([]ast.Node, len(writes))
		for i, w := range writes {
			names[i] = ast.NewLeaf(python.Mangle(w), ast.ShapeNone, body.Pos)
		}
		global := ast.NewList(ast.Global, "global", body.Pos, names...)
		items = append([]ast.Node{global}, items...)
	}

	signature := ast.NewList(ast.Signature, "", n.Pos, sig...)
	return ast.NewFixed(ast.Function, "def", ast.ShapeNone, n.Pos,
		signature, ast.NewList(ast.Body, "", body.Pos, items...)), nil
}

func (b *Builder) buildReturn(sc Scope, n *cst.Node, fn string, ret ast.Shape) (ast.Node, error) {
	if n.Rule != cst.Return || n.Len() != 2 {
		return nil, malformed(n, "expected return")
	}
	if ret == ast.ShapeNone {
		return nil, errorf(InvalidReturnUsage, fn+"()", n.Pos, errReturnInVoid, fn)
	}
	value, err := b.buildExpr(sc, n.Child(1))
	if err != nil {
		return nil, err
	}
	if value.Shape() != ret {
		return nil, errorf(TypeMismatch, fn+"()", n.Child(1).Pos, errReturnType,
			fn, typeName(ret), typeName(value.Shape()))
	}
	return ast.NewFixed(ast.Return, "return", ast.ShapeNone, n.Pos, value, nil), nil
}

// parseType converts a type terminal to a shape. An empty terminal means
// void and is only accepted when allowVoid is set.
func parseType(n *cst.Node, allowVoid bool) (ast.Shape, error) {
	if n == nil || n.Rule != cst.Terminal {
		return ast.ShapeNone, malformed(n, "expected type")
	}
	switch n.Text {
	case "num":
		return ast.ShapeNumeric, nil
	case "bool":
		return ast.ShapeBoolean, nil
	case "":
		if allowVoid {
			return ast.ShapeNone, nil
		}
	}
	return ast.ShapeNone, malformed(n, "unknown type %q", n.Text)
}
