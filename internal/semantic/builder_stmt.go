package semantic

import (
	"github.com/kolkov/copyex/internal/ast"
	"github.com/kolkov/copyex/internal/cst"
	"github.com/kolkov/copyex/internal/python"
	"github.com/kolkov/copyex/internal/token"
)

// buildStatement builds one statement. A bare declaration only updates the
// symbol table and yields a nil node.
func (b *Builder) buildStatement(sc Scope, n *cst.Node) (ast.Node, error) {
	switch n.Rule {
	case cst.Declaration:
		return nil, b.buildDeclaration(sc, n)
	case cst.Initialization:
		return b.buildInitialization(sc, n)
	case cst.Assignment, cst.CallAssignment:
		return b.buildAssignment(sc, n)
	case cst.Augmented:
		return b.buildAugmented(sc, n)
	case cst.Print:
		return b.buildPrint(sc, n)
	case cst.Call:
		call, err := b.buildCall(sc, n)
		if err != nil {
			return nil, err
		}
		return ast.NewFixed(ast.ExprStmt, "", ast.ShapeNone, n.Pos, call, nil), nil
	}
	return nil, malformed(n, "unexpected %s in lines", n.Rule)
}

// buildDeclaration handles "type name".
func (b *Builder) buildDeclaration(sc Scope, n *cst.Node) error {
	if n.Len() != 2 {
		return malformed(n, "declaration has %d children", n.Len())
	}
	typ, err := parseType(n.Child(0), false)
	if err != nil {
		return err
	}
	target := n.Child(1)
	if err := b.declarable(sc, target); err != nil {
		return err
	}
	sc.table.Declare(target.Text, typ)
	return nil
}

// buildInitialization handles "type name = value". The value is built
// before the name is declared, so it cannot refer to the name itself.
func (b *Builder) buildInitialization(sc Scope, n *cst.Node) (ast.Node, error) {
	if n.Len() != 4 {
		return nil, malformed(n, "initialization has %d children", n.Len())
	}
	typ, err := parseType(n.Child(0), false)
	if err != nil {
		return nil, err
	}
	target, op := n.Child(1), n.Child(2)

	value, err := b.buildValue(sc, n.Child(3))
	if err != nil {
		return nil, err
	}
	if value.Shape() != typ {
		return nil, errorf(TypeMismatch, target.Text, target.Pos, errCannotHold, target.Text, typeName(typ), typeName(value.Shape()))
	}
	if err := b.declarable(sc, target); err != nil {
		return nil, err
	}

	sc.table.Assign(target.Text, typ)
	return assignment(target, op.Text, typ, value), nil
}

// buildAssignment handles "name = value". The type of the value selects
// which declaration the name must have.
func (b *Builder) buildAssignment(sc Scope, n *cst.Node) (ast.Node, error) {
	if n.Len() != 3 {
		return nil, malformed(n, "assignment has %d children", n.Len())
	}
	target, op := n.Child(0), n.Child(1)
	if err := checkName(target); err != nil {
		return nil, err
	}

	value, err := b.buildValue(sc, n.Child(2))
	if err != nil {
		return nil, err
	}

	owner, ok := b.ctx.Scopes.Owner(sc, target.Text)
	if !ok {
		return nil, errorf(UndeclaredVariable, target.Text, target.Pos, errUndeclared, target.Text)
	}
	if declared, _ := owner.table.TypeOf(target.Text); declared != value.Shape() {
		return nil, errorf(TypeMismatch, target.Text, target.Pos, errCannotHold, target.Text, typeName(declared), typeName(value.Shape()))
	}

	b.write(sc, owner, target.Text, value.Shape())
	return assignment(target, op.Text, value.Shape(), value), nil
}

// buildAugmented handles "name op= expr" on an assigned numeric variable.
func (b *Builder) buildAugmented(sc Scope, n *cst.Node) (ast.Node, error) {
	if n.Len() != 3 {
		return nil, malformed(n, "augmented assignment has %d children", n.Len())
	}
	target, op := n.Child(0), n.Child(1)
	if err := checkName(target); err != nil {
		return nil, err
	}

	value, err := b.buildExpr(sc, n.Child(2))
	if err != nil {
		return nil, err
	}
	if value.Shape() != ast.ShapeNumeric {
		return nil, errorf(TypeMismatch, op.Text, op.Pos, errOperandType, op.Text, "number")
	}

	owner, ok := b.ctx.Scopes.Owner(sc, target.Text)
	if !ok {
		return nil, errorf(UndeclaredVariable, target.Text, target.Pos, errUndeclared, target.Text)
	}
	if declared, _ := owner.table.TypeOf(target.Text); declared != ast.ShapeNumeric {
		return nil, errorf(TypeMismatch, target.Text, target.Pos, errNotOfType, target.Text, "number")
	}
	if !b.readable(sc, owner, target.Text) {
		return nil, errorf(UninitializedRead, target.Text, target.Pos, errUninitialized, target.Text)
	}

	b.write(sc, owner, target.Text, ast.ShapeNumeric)
	return assignment(target, op.Text, ast.ShapeNumeric, value), nil
}

func (b *Builder) buildPrint(sc Scope, n *cst.Node) (ast.Node, error) {
	if n.Len() != 2 {
		return nil, malformed(n, "print has %d children", n.Len())
	}
	value, err := b.buildExpr(sc, n.Child(1))
	if err != nil {
		return nil, err
	}
	return ast.NewFixed(ast.Print, "print", ast.ShapeNone, n.Pos, value, nil), nil
}

// buildValue builds the right-hand side of an assignment: an expression or
// a call, which must return a value.
func (b *Builder) buildValue(sc Scope, n *cst.Node) (ast.Node, error) {
	if n == nil {
		return nil, malformed(n, "missing value")
	}
	if n.Rule != cst.Call {
		return b.buildExpr(sc, n)
	}
	call, err := b.buildCall(sc, n)
	if err != nil {
		return nil, err
	}
	if call.Shape() == ast.ShapeNone {
		name := n.Child(0).Text
		return nil, errorf(InvalidReturnUsage, name+"()", n.Pos, errNoReturnValue, name)
	}
	return call, nil
}

// buildCall handles "name(args)". The callee must already be registered.
func (b *Builder) buildCall(sc Scope, n *cst.Node) (*ast.ListNode, error) {
	if n.Len() != 2 || n.Child(0).Rule != cst.Terminal || n.Child(1).Rule != cst.Arguments {
		return nil, malformed(n, "unexpected call layout")
	}
	if err := checkName(n.Child(0)); err != nil {
		return nil, err
	}
	name := n.Child(0).Text

	ret, ok := b.ctx.Functions.Lookup(name)
	if !ok {
		return nil, errorf(UndefinedFunctionCall, name+"()", n.Pos, errUndefinedFunc, name)
	}

	args := make([]ast.Node, 0, n.Child(1).Len())
	for _, a := range n.Child(1).Children {
		arg, err := b.buildExpr(sc, a)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return ast.NewCall(python.Mangle(name), ret, n.Pos, args...), nil
}

// readable reports whether name, owned by owner, holds a value when read
// from sc. A function may read a global it has written itself.
func (b *Builder) readable(sc, owner Scope, name string) bool {
	if owner.table.IsAssigned(name) {
		return true
	}
	return owner.IsGlobal() && !sc.IsGlobal() && sc.table.WritesGlobal(name)
}

// declarable checks that target may be declared in sc. Inside a function,
// a name that already referred to a global cannot become a local: Python
// decides per function whether a name is local or global.
func (b *Builder) declarable(sc Scope, target *cst.Node) error {
	if err := checkName(target); err != nil {
		return err
	}
	if !sc.IsGlobal() && sc.table.UsesGlobal(target.Text) {
		return errorf(ShadowedGlobal, target.Text, target.Pos, errShadowsGlobal, target.Text, sc.Name)
	}
	return nil
}

// checkName rejects name terminals that are not identifiers.
func checkName(n *cst.Node) error {
	if n == nil || !python.IsIdentifier(n.Text) {
		return malformed(n, "invalid name %q", textOf(n))
	}
	return nil
}

func textOf(n *cst.Node) string {
	if n == nil {
		return ""
	}
	return n.Text
}

// write marks name as assigned. Writes to a global from inside a function
// are recorded on the function so the body can declare them global.
func (b *Builder) write(sc, owner Scope, name string, typ ast.Shape) {
	if owner.IsGlobal() && !sc.IsGlobal() {
		sc.table.NoteGlobalWrite(name)
		return
	}
	owner.table.Assign(name, typ)
}

func assignment(target *cst.Node, op string, typ ast.Shape, value ast.Node) ast.Node {
	return ast.NewFixed(ast.Assignment, op, ast.ShapeNone, target.Pos,
		variable(target.Text, typ, target.Pos), value)
}

func variable(name string, typ ast.Shape, pos token.Position) *ast.FixedNode {
	return ast.NewLeaf(python.Mangle(name), typ, pos)
}
