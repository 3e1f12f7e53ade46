package copyex

import (
	"errors"
	"fmt"

	"github.com/kolkov/copyex/internal/parser"
	"github.com/kolkov/copyex/internal/semantic"
)

// ParseError represents a syntax error in Copyex source code.
type ParseError struct {
	Filename string // Source file name, if known
	Line     int    // 1-based line number
	Column   int    // 0-based column number
	Message  string // Error description

	incomplete bool
}

func (e *ParseError) Error() string {
	return location(e.Filename, e.Line, e.Column) + e.Message
}

// IsIncomplete reports whether err is a ParseError caused by input that
// ended before the program was complete, such as an unclosed block.
func IsIncomplete(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe) && pe.incomplete
}

// ErrorKind classifies a CompileError.
type ErrorKind int

const (
	ErrInternal           ErrorKind = iota // malformed input to the checker
	UndeclaredVariable                     // read or write of an unknown name
	TypeMismatch                           // num used where bool is required or vice versa
	UninitializedRead                      // declared but never assigned
	UndefinedFunctionCall                  // call to an unknown function
	InvalidReturnUsage                     // value of a void call used, or bad return
	FunctionRedefined                      // function defined twice
	DuplicateParameter                     // parameter name repeated
	ShadowedGlobal                         // local declared after the global was used
)

var kindNames = [...]string{
	ErrInternal:           "internal",
	UndeclaredVariable:    "undeclared variable",
	TypeMismatch:          "type mismatch",
	UninitializedRead:     "uninitialized read",
	UndefinedFunctionCall: "undefined function",
	InvalidReturnUsage:    "invalid return usage",
	FunctionRedefined:     "function redefined",
	DuplicateParameter:    "duplicate parameter",
	ShadowedGlobal:        "shadowed global",
}

func (k ErrorKind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// CompileError represents a checking error found while building the tree.
type CompileError struct {
	Kind     ErrorKind
	Subject  string // Offending name, or call text such as "f()"
	Filename string // Source file name, if known
	Line     int    // 1-based line number
	Column   int    // 0-based column number
	Message  string // Error description
}

func (e *CompileError) Error() string {
	return location(e.Filename, e.Line, e.Column) + e.Message
}

// IsCompileError reports whether err is a CompileError and returns its kind.
func IsCompileError(err error) (ErrorKind, bool) {
	var ce *CompileError
	if errors.As(err, &ce) {
		return ce.Kind, true
	}
	return 0, false
}

func location(filename string, line, col int) string {
	switch {
	case line <= 0:
		return ""
	case filename != "":
		return fmt.Sprintf("%s:%d:%d: ", filename, line, col)
	default:
		return fmt.Sprintf("%d:%d: ", line, col)
	}
}

// convertError maps internal errors to the public error types.
func convertError(err error, filename string) error {
	var pe *parser.ParseError
	if errors.As(err, &pe) {
		return &ParseError{
			Filename: filename,
			Line:     pe.Pos.Line,
			Column:   pe.Pos.Column,
			Message:  pe.Message,

			incomplete: parser.IsIncomplete(pe),
		}
	}

	var se *semantic.Error
	if errors.As(err, &se) {
		return &CompileError{
			Kind:     kindOf(se.Kind),
			Subject:  se.Subject,
			Filename: filename,
			Line:     se.Pos.Line,
			Column:   se.Pos.Column,
			Message:  se.Message,
		}
	}

	return &CompileError{Kind: ErrInternal, Filename: filename, Message: err.Error()}
}

func kindOf(k semantic.Kind) ErrorKind {
	switch k {
	case semantic.UndeclaredVariable:
		return UndeclaredVariable
	case semantic.TypeMismatch:
		return TypeMismatch
	case semantic.UninitializedRead:
		return UninitializedRead
	case semantic.UndefinedFunctionCall:
		return UndefinedFunctionCall
	case semantic.InvalidReturnUsage:
		return InvalidReturnUsage
	case semantic.FunctionRedefined:
		return FunctionRedefined
	case semantic.DuplicateParameter:
		return DuplicateParameter
	case semantic.ShadowedGlobal:
		return ShadowedGlobal
	}
	return ErrInternal
}
