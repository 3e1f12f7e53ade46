package semantic

import "github.com/kolkov/copyex/internal/ast"

// typeName returns the user-facing name of a declared type.
func typeName(s ast.Shape) string {
	switch s {
	case ast.ShapeNumeric:
		return "number"
	case ast.ShapeBoolean:
		return "boolean"
	}
	return "void"
}

// nameSet is a set of variable names.
type nameSet map[string]struct{}

func (s nameSet) add(name string)    { s[name] = struct{}{} }
func (s nameSet) remove(name string) { delete(s, name) }

func (s nameSet) has(name string) bool {
	_, ok := s[name]
	return ok
}

// SymbolTable tracks the variables of one scope.
//
// A name is in at most one of the declared sets. Being assigned implies
// being declared with the same type; the converse does not hold.
type SymbolTable struct {
	declaredNumeric nameSet
	declaredBoolean nameSet
	assignedNumeric nameSet
	assignedBoolean nameSet

	// Globals written by a function, in first-write order.
	globalWrites []string
	globalSet    nameSet
	globalReads  nameSet
}

// NewSymbolTable creates an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		declaredNumeric: nameSet{},
		declaredBoolean: nameSet{},
		assignedNumeric: nameSet{},
		assignedBoolean: nameSet{},
		globalSet:       nameSet{},
		globalReads:     nameSet{},
	}
}

func (t *SymbolTable) sets(s ast.Shape) (declared, assigned nameSet) {
	if s == ast.ShapeBoolean {
		return t.declaredBoolean, t.assignedBoolean
	}
	return t.declaredNumeric, t.assignedNumeric
}

func other(s ast.Shape) ast.Shape {
	if s == ast.ShapeBoolean {
		return ast.ShapeNumeric
	}
	return ast.ShapeBoolean
}

// Declare records name with type s and no value. A previous declaration
// or assignment of either type is dropped.
func (t *SymbolTable) Declare(name string, s ast.Shape) {
	od, oa := t.sets(other(s))
	od.remove(name)
	oa.remove(name)
	d, a := t.sets(s)
	d.add(name)
	a.remove(name)
}

// Assign records name as declared with type s and holding a value.
// A declaration of the other type is dropped.
func (t *SymbolTable) Assign(name string, s ast.Shape) {
	od, oa := t.sets(other(s))
	od.remove(name)
	oa.remove(name)
	d, a := t.sets(s)
	d.add(name)
	a.add(name)
}

// TypeOf returns the declared type of name.
func (t *SymbolTable) TypeOf(name string) (ast.Shape, bool) {
	switch {
	case t.declaredNumeric.has(name):
		return ast.ShapeNumeric, true
	case t.declaredBoolean.has(name):
		return ast.ShapeBoolean, true
	}
	return ast.ShapeNone, false
}

// IsDeclared reports whether name is declared with either type.
func (t *SymbolTable) IsDeclared(name string) bool {
	_, ok := t.TypeOf(name)
	return ok
}

// IsAssigned reports whether name holds a value.
func (t *SymbolTable) IsAssigned(name string) bool {
	return t.assignedNumeric.has(name) || t.assignedBoolean.has(name)
}

// NoteGlobalWrite records that the scope's function writes global name.
func (t *SymbolTable) NoteGlobalWrite(name string) {
	if t.globalSet.has(name) {
		return
	}
	t.globalSet.add(name)
	t.globalWrites = append(t.globalWrites, name)
}

// WritesGlobal reports whether the scope's function has written global name.
func (t *SymbolTable) WritesGlobal(name string) bool {
	return t.globalSet.has(name)
}

// NoteGlobalRead records that the scope's function reads global name.
func (t *SymbolTable) NoteGlobalRead(name string) {
	t.globalReads.add(name)
}

// UsesGlobal reports whether the scope's function has read or written
// global name.
func (t *SymbolTable) UsesGlobal(name string) bool {
	return t.globalSet.has(name) || t.globalReads.has(name)
}

// GlobalWrites returns the globals written so far, in first-write order.
func (t *SymbolTable) GlobalWrites() []string {
	out := make([]string, len(t.globalWrites))
	copy(out, t.globalWrites)
	return out
}

// Len returns the number of declared names.
func (t *SymbolTable) Len() int {
	return len(t.declaredNumeric) + len(t.declaredBoolean)
}
