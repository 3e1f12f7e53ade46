// copyex - Copyex to Python transpiler
//
// Reads a Copyex program from a file, the command line or standard input
// and writes the equivalent Python. With -i it starts an interactive
// session that translates each entry as it is typed.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/kolkov/copyex"
)

// version is set at build time via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const (
	shortUsage = "usage: copyex [-o out.py] [-w N] [-d] [-v] [-e 'prog' | file | -]"
	longUsage  = `Input:
  file              translate file; output goes to file with a .py extension
  -                 read the program from standard input (default)
  -e prog           translate prog given on the command line

Output:
  -o file           write Python to file ("-" for standard output)
  -w N              indent width of the generated code (default 4)

Debugging arguments:
  -d                print the checked tree to stderr
  -v                print a program summary to stderr

Other:
  -i                start an interactive session
  -h, --help        show this help message
  -version          show copyex version and exit
`

	historyFile = ".copyex_history"
	promptMain  = "copyex> "
	promptCont  = "   ...> "
)

//nolint:gocyclo,funlen // CLI argument parsing is inherently complex
func main() {
	var inline string
	hasInline := false
	outPath := ""
	indent := copyex.DefaultIndentWidth
	debug := false
	summary := false
	interactive := false

	var i int
	for i = 1; i < len(os.Args); i++ {
		arg := os.Args[i]
		if arg == "--" {
			i++
			break
		}
		if arg == "-" || !strings.HasPrefix(arg, "-") {
			break
		}

		switch arg {
		case "-e":
			if i+1 >= len(os.Args) {
				errorExitf("flag needs an argument: -e")
			}
			i++
			inline, hasInline = os.Args[i], true
		case "-o":
			if i+1 >= len(os.Args) {
				errorExitf("flag needs an argument: -o")
			}
			i++
			outPath = os.Args[i]
		case "-w":
			if i+1 >= len(os.Args) {
				errorExitf("flag needs an argument: -w")
			}
			i++
			indent = parseIndent(os.Args[i])
		case "-d":
			debug = true
		case "-v":
			summary = true
		case "-i":
			interactive = true
		case "-h", "--help":
			fmt.Printf("copyex %s - Copyex to Python transpiler\n\n%s\n\n%s", version, shortUsage, longUsage)
			os.Exit(0)
		case "-version", "--version":
			fmt.Printf("copyex version %s\n", version)
			fmt.Printf("  commit: %s\n", commit)
			fmt.Printf("  built:  %s\n", date)
			os.Exit(0)
		default:
			// Attached forms: -oout.py, -w2
			switch {
			case strings.HasPrefix(arg, "-o"):
				outPath = arg[2:]
			case strings.HasPrefix(arg, "-w"):
				indent = parseIndent(arg[2:])
			default:
				errorExitf("flag provided but not defined: %s", arg)
			}
		}
	}

	config := &copyex.Config{IndentWidth: indent}

	if interactive {
		os.Exit(repl(config))
	}

	args := os.Args[i:]
	if len(args) > 1 || (hasInline && len(args) > 0) {
		errorExitf(shortUsage)
	}

	var source string
	switch {
	case hasInline:
		source = inline
	case len(args) == 0 || args[0] == "-":
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			errorExitf("cannot read standard input: %v", err)
		}
		source = string(data)
	default:
		data, err := os.ReadFile(args[0])
		if err != nil {
			errorExitf("cannot read program file %s: %v", args[0], err)
		}
		source = string(data)
		config.Filename = args[0]
		if outPath == "" {
			outPath = outputPath(args[0])
		}
	}

	prog, err := copyex.CompileFile(config.Filename, source)
	if err != nil {
		errorExit(err)
	}

	if debug {
		fmt.Fprint(os.Stderr, prog.Tree())
	}
	if summary {
		fmt.Fprint(os.Stderr, describe(prog))
	}

	if err := writeOutput(outPath, prog.Python(config)); err != nil {
		errorExit(err)
	}
}

// outputPath returns the Python file name for a program file.
func outputPath(input string) string {
	ext := filepath.Ext(input)
	if ext == ".py" {
		return input + ".py"
	}
	return strings.TrimSuffix(input, ext) + ".py"
}

func parseIndent(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		errorExitf("invalid indent width: %s", s)
	}
	return n
}

func describe(prog *copyex.Program) string {
	var sb strings.Builder
	fns := prog.Functions()
	fmt.Fprintf(&sb, "functions:  %d", len(fns))
	if len(fns) > 0 {
		fmt.Fprintf(&sb, " (%s)", strings.Join(fns, ", "))
	}
	fmt.Fprintf(&sb, "\nstatements: %d\n", prog.Statements())
	return sb.String()
}

func writeOutput(path, code string) error {
	if path == "" || path == "-" {
		w := bufio.NewWriter(os.Stdout)
		if _, err := w.WriteString(code); err != nil {
			return err
		}
		return w.Flush()
	}
	return os.WriteFile(path, []byte(code), 0o644)
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

// session accumulates accepted entries. Every entry is checked together
// with everything before it, so declarations and functions carry over.
type session struct {
	config *copyex.Config
	source string
	python string
	prog   *copyex.Program
}

// add compiles the session with entry appended and returns the Python
// produced by the entry alone. A rejected entry leaves the session as it was.
// Error lines count from the first line of the entry.
func (s *session) add(entry string) (string, error) {
	src := entry
	if s.source != "" {
		src = s.source + "\n" + entry
	}
	prog, err := copyex.CompileFile(s.config.Filename, src)
	if err != nil {
		return "", s.relative(err)
	}
	code := prog.Python(s.config)
	added := strings.TrimPrefix(code, s.python)
	s.source, s.python, s.prog = src, code, prog
	return added, nil
}

// relative moves the line of an error inside the entry so that it counts
// from the entry instead of the session.
func (s *session) relative(err error) error {
	if s.source == "" {
		return err
	}
	offset := strings.Count(s.source, "\n") + 1

	var pe *copyex.ParseError
	var ce *copyex.CompileError
	switch {
	case errors.As(err, &pe):
		if pe.Line > offset {
			pe.Line -= offset
		}
	case errors.As(err, &ce):
		if ce.Line > offset {
			ce.Line -= offset
		}
	}
	return err
}

func (s *session) reset() {
	s.source, s.python, s.prog = "", "", nil
}

func repl(config *copyex.Config) int {
	fmt.Printf("copyex %s. Type :help for commands.\n", version)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	s := &session{config: config}
	for {
		code, ok := readByParseProbe(ln, promptMain, promptCont)
		if !ok {
			fmt.Println()
			return 0
		}

		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit", ":q":
				return 0
			case ":reset":
				s.reset()
			case ":tree":
				if s.prog != nil {
					fmt.Print(s.prog.Tree())
				}
			case ":source":
				fmt.Println(s.source)
			case ":help":
				fmt.Println(":tree  :source  :reset  :quit")
				fmt.Println("error lines count from the start of the entry")
			default:
				fmt.Println("unknown command. Type :help for commands.")
			}
			continue
		}

		out, err := s.add(code)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		fmt.Print(out)
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}
}

// readByParseProbe reads lines until they form a program that either parses
// or fails for a reason other than running out of input.
func readByParseProbe(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		if _, perr := copyex.Compile(src); copyex.IsIncomplete(perr) {
			continue
		}
		return src, true
	}
}

// errorExitf prints formatted error message and exits with code 1
func errorExitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "copyex: "+format+"\n", args...)
	os.Exit(1)
}

// errorExit prints error and exits with code 1
func errorExit(err error) {
	fmt.Fprintf(os.Stderr, "copyex: %v\n", err)
	os.Exit(1)
}
