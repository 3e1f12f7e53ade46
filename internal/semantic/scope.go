package semantic

import (
	"sort"

	"github.com/kolkov/copyex/internal/ast"
)

// Scope is a handle to one scope: the global scope or a function's.
type Scope struct {
	Name  string // function name, empty for the global scope
	table *SymbolTable
}

// IsGlobal reports whether s is the global scope.
func (s Scope) IsGlobal() bool { return s.Name == "" }

// Table returns the scope's symbol table.
func (s Scope) Table() *SymbolTable { return s.table }

// String returns "global" or the function name.
func (s Scope) String() string {
	if s.IsGlobal() {
		return "global"
	}
	return s.Name
}

// ScopeRegistry holds the global scope, one scope per function and the
// active scope. Function scopes never nest.
type ScopeRegistry struct {
	global    *SymbolTable
	functions map[string]*SymbolTable
	active    Scope
}

// NewScopeRegistry creates a registry whose active scope is global.
func NewScopeRegistry() *ScopeRegistry {
	r := &ScopeRegistry{
		global:    NewSymbolTable(),
		functions: make(map[string]*SymbolTable),
	}
	r.active = r.Global()
	return r
}

// Global returns the global scope.
func (r *ScopeRegistry) Global() Scope {
	return Scope{table: r.global}
}

// Active returns the active scope.
func (r *ScopeRegistry) Active() Scope {
	return r.active
}

// Enter creates a fresh scope for function name and makes it active.
func (r *ScopeRegistry) Enter(name string) Scope {
	t := NewSymbolTable()
	r.functions[name] = t
	r.active = Scope{Name: name, table: t}
	return r.active
}

// Restore makes s the active scope again.
func (r *ScopeRegistry) Restore(s Scope) {
	r.active = s
}

// Function returns the scope of function name.
func (r *ScopeRegistry) Function(name string) (Scope, bool) {
	t, ok := r.functions[name]
	if !ok {
		return Scope{}, false
	}
	return Scope{Name: name, table: t}, true
}

// Owner returns the scope that name refers to when used in active: the
// active scope if it declares name, otherwise the global scope if that
// does.
func (r *ScopeRegistry) Owner(active Scope, name string) (Scope, bool) {
	if active.table.IsDeclared(name) {
		return active, true
	}
	if !active.IsGlobal() && r.global.IsDeclared(name) {
		return r.Global(), true
	}
	return Scope{}, false
}

// FunctionRegistry maps function names to their return types. A void
// function has ShapeNone.
type FunctionRegistry struct {
	returns map[string]ast.Shape
}

// NewFunctionRegistry creates an empty registry.
func NewFunctionRegistry() *FunctionRegistry {
	return &FunctionRegistry{returns: make(map[string]ast.Shape)}
}

// Define registers a function. It returns false if name is already defined.
func (r *FunctionRegistry) Define(name string, ret ast.Shape) bool {
	if _, ok := r.returns[name]; ok {
		return false
	}
	r.returns[name] = ret
	return true
}

// Lookup returns the return type of function name.
func (r *FunctionRegistry) Lookup(name string) (ast.Shape, bool) {
	s, ok := r.returns[name]
	return s, ok
}

// Names returns the defined function names, sorted.
func (r *FunctionRegistry) Names() []string {
	names := make([]string, 0, len(r.returns))
	for name := range r.returns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Context is the state of one compilation: its scopes and functions.
type Context struct {
	Scopes    *ScopeRegistry
	Functions *FunctionRegistry
}

// NewContext creates an empty context.
func NewContext() *Context {
	return &Context{
		Scopes:    NewScopeRegistry(),
		Functions: NewFunctionRegistry(),
	}
}
