package semantic

import (
	"github.com/kolkov/copyex/internal/ast"
	"github.com/kolkov/copyex/internal/cst"
	"github.com/kolkov/copyex/internal/python"
)

// buildExpr builds an expression and computes its shape.
func (b *Builder) buildExpr(sc Scope, n *cst.Node) (ast.Node, error) {
	if n == nil {
		return nil, malformed(n, "missing expression")
	}

	switch n.Rule {
	case cst.Number:
		return ast.NewLeaf(python.Number(n.Text), ast.ShapeNumeric, n.Pos), nil

	case cst.Boolean:
		return ast.NewLeaf(n.Text, ast.ShapeBoolean, n.Pos), nil

	case cst.Variable:
		typ, err := b.read(sc, n)
		if err != nil {
			return nil, err
		}
		return variable(n.Text, typ, n.Pos), nil

	case cst.Grouping:
		if n.Len() != 1 {
			return nil, malformed(n, "grouping has %d children", n.Len())
		}
		inner, err := b.buildExpr(sc, n.Child(0))
		if err != nil {
			return nil, err
		}
		return ast.NewFixed(ast.Group, "()", inner.Shape(), n.Pos, inner, nil), nil

	case cst.Negation:
		return b.buildUnary(sc, n, ast.ShapeNumeric)

	case cst.NotOperation:
		return b.buildUnary(sc, n, ast.ShapeBoolean)

	case cst.BinaryOperation:
		return b.buildBinary(sc, n, ast.ShapeNumeric, ast.ShapeNumeric)

	case cst.LogicOperation:
		return b.buildBinary(sc, n, ast.ShapeBoolean, ast.ShapeBoolean)

	case cst.Comparison:
		if op := n.Child(1); op != nil && (op.Text == "==" || op.Text == "!=") {
			return b.buildBinary(sc, n, ast.ShapeNone, ast.ShapeBoolean)
		}
		return b.buildBinary(sc, n, ast.ShapeNumeric, ast.ShapeBoolean)

	case cst.Call:
		return b.buildValue(sc, n)
	}

	return nil, malformed(n, "unexpected %s in expression", n.Rule)
}

// read checks a variable read and returns the variable's type.
func (b *Builder) read(sc Scope, n *cst.Node) (ast.Shape, error) {
	if err := checkName(n); err != nil {
		return ast.ShapeNone, err
	}
	name := n.Text
	owner, ok := b.ctx.Scopes.Owner(sc, name)
	if !ok {
		return ast.ShapeNone, errorf(UndeclaredVariable, name, n.Pos, errUndeclared, name)
	}
	if !b.readable(sc, owner, name) {
		return ast.ShapeNone, errorf(UninitializedRead, name, n.Pos, errUninitialized, name)
	}
	if owner.IsGlobal() && !sc.IsGlobal() {
		sc.table.NoteGlobalRead(name)
	}
	typ, _ := owner.table.TypeOf(name)
	return typ, nil
}

// buildUnary builds "-x" or "not x". The operand must have shape want,
// which is also the result shape.
func (b *Builder) buildUnary(sc Scope, n *cst.Node, want ast.Shape) (ast.Node, error) {
	if n.Len() != 2 {
		return nil, malformed(n, "%s has %d children", n.Rule, n.Len())
	}
	op := n.Child(0)
	operand, err := b.buildExpr(sc, n.Child(1))
	if err != nil {
		return nil, err
	}
	if operand.Shape() != want {
		return nil, errorf(TypeMismatch, op.Text, op.Pos, errOperandType, op.Text, typeName(want))
	}
	return ast.NewFixed(ast.Negation, op.Text, want, n.Pos, operand, nil), nil
}

// buildBinary builds "left op right". Both operands must have shape
// operand; ShapeNone means they only have to agree.
func (b *Builder) buildBinary(sc Scope, n *cst.Node, operand, result ast.Shape) (ast.Node, error) {
	if n.Len() != 3 {
		return nil, malformed(n, "%s has %d children", n.Rule, n.Len())
	}
	op := n.Child(1)

	left, err := b.buildExpr(sc, n.Child(0))
	if err != nil {
		return nil, err
	}
	right, err := b.buildExpr(sc, n.Child(2))
	if err != nil {
		return nil, err
	}

	if operand == ast.ShapeNone {
		if left.Shape() != right.Shape() {
			return nil, errorf(TypeMismatch, op.Text, op.Pos, errOperandsDiffer,
				op.Text, typeName(left.Shape()), typeName(right.Shape()))
		}
	} else if left.Shape() != operand || right.Shape() != operand {
		return nil, errorf(TypeMismatch, op.Text, op.Pos, errOperandType, op.Text, typeName(operand))
	}

	return ast.NewFixed(ast.InfixOp, op.Text, result, n.Pos, left, right), nil
}
