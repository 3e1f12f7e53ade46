package copyex

import (
	"io"

	"github.com/kolkov/copyex/internal/ast"
	"github.com/kolkov/copyex/internal/parser"
	"github.com/kolkov/copyex/internal/semantic"
)

// Version is the copyex version string.
const Version = "0.1.0"

// Transpile compiles a Copyex program and returns its Python source.
// This is a convenience function for one-off translation.
//
// If config is nil, default configuration is used.
//
// Example:
//
//	out, err := copyex.Transpile("num x = 1\nprint(x)", nil)
//	// out: "x = 1\nprint(x)\n"
func Transpile(source string, config *Config) (string, error) {
	cfg := configOrDefault(config)
	prog, err := compile(source, cfg.Filename)
	if err != nil {
		return "", err
	}
	return prog.Python(&cfg), nil
}

// Compile parses and checks a Copyex program.
//
// Example:
//
//	prog, err := copyex.Compile("num x = 1\nprint(x)")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(prog.Python(nil))
func Compile(source string) (*Program, error) {
	return compile(source, "")
}

// CompileFile is like Compile but reports errors against filename.
func CompileFile(filename, source string) (*Program, error) {
	return compile(source, filename)
}

// Exec compiles source and writes the Python translation to output.
//
// Example:
//
//	err := copyex.Exec(src, os.Stdout, nil)
func Exec(source string, output io.Writer, config *Config) error {
	out, err := Transpile(source, config)
	if err != nil {
		return err
	}
	_, err = io.WriteString(output, out)
	return err
}

// MustCompile is like Compile but panics if the program cannot be compiled.
// It simplifies initialization of global program variables.
func MustCompile(source string) *Program {
	prog, err := Compile(source)
	if err != nil {
		panic(err)
	}
	return prog
}

// compile runs both front-end stages. The tree builder is created here,
// once per program.
func compile(source, filename string) (*Program, error) {
	file, err := parser.Parse(source)
	if err != nil {
		return nil, convertError(err, filename)
	}

	builder := semantic.NewBuilder()
	tree, err := builder.Build(file)
	if err != nil {
		return nil, convertError(err, filename)
	}

	return &Program{
		tree:      tree,
		source:    source,
		functions: builder.Context().Functions.Names(),
		stmts:     countStatements(tree),
	}, nil
}

func configOrDefault(config *Config) Config {
	var cfg Config
	if config != nil {
		cfg = *config
	}
	cfg.applyDefaults()
	return cfg
}

func countStatements(tree *ast.Tree) int {
	n := 0
	ast.Walk(tree.Root(), func(node ast.Node) bool {
		switch r := node.Role(); {
		case r.IsStatement(), r == ast.Condition, r == ast.Loop:
			n++
		}
		return true
	})
	return n
}
