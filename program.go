package copyex

import (
	"github.com/kolkov/copyex/internal/ast"
	"github.com/kolkov/copyex/internal/codegen"
)

// Program represents a checked Copyex program ready for rendering.
// It is immutable and safe for concurrent use.
type Program struct {
	tree      *ast.Tree
	source    string // Original source for debugging
	functions []string
	stmts     int
}

// Python renders the program as Python source.
// If config is nil, default configuration is used.
func (p *Program) Python(config *Config) string {
	cfg := configOrDefault(config)
	return codegen.Generate(p.tree, codegen.Options{IndentWidth: cfg.IndentWidth})
}

// Tree returns a box-drawing dump of the abstract syntax tree.
// Useful for debugging and understanding program structure.
func (p *Program) Tree() string {
	return p.tree.String()
}

// Source returns the original Copyex source code.
func (p *Program) Source() string {
	return p.source
}

// Functions returns the names of the functions the program defines, sorted.
func (p *Program) Functions() []string {
	out := make([]string, len(p.functions))
	copy(out, p.functions)
	return out
}

// Statements returns the number of statements, conditionals and loops.
func (p *Program) Statements() int {
	return p.stmts
}
