// Package copyex transpiles Copyex programs to Python.
//
// Copyex is a small statically typed language with two types (num and
// bool), functions, if/else, while and print. Programs are checked while
// their syntax tree is built and then rendered as indented Python.
//
// # Quick Start
//
//	out, err := copyex.Transpile("num x = 1\nprint(x)", nil)
//	// out: "x = 1\nprint(x)\n"
//
// # Compiled Programs
//
// Compile checks a program once; the result can be rendered with different
// settings or inspected:
//
//	prog, err := copyex.Compile(src)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(prog.Python(&copyex.Config{IndentWidth: 2}))
//	fmt.Print(prog.Tree())
//
// # Checking Rules
//
// Variables must be declared before use and assigned before they are
// read. Each name has one type per scope. The program body is the global
// scope; each function has one flat scope that its if, else and while
// bodies share. Functions must be defined before they are called.
//
// # Error Handling
//
// Compilation stops at the first error. Errors are returned as specific
// types for detailed handling:
//   - [ParseError]: syntax errors in Copyex source
//   - [CompileError]: checking errors, classified by [ErrorKind]
//
// [IsIncomplete] reports whether a parse error means the source simply
// ended too early, which interactive front ends use to ask for more input.
//
// # Thread Safety
//
// Compiled [Program] values are immutable and safe for concurrent use.
// Every compilation uses its own symbol tables.
package copyex
