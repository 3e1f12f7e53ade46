// Package semantic builds the abstract syntax tree from a concrete syntax
// tree and checks the program while doing so.
//
// Checking happens in a single forward pass:
//   - Declaration before use: reads must find an assigned name in the
//     active scope or in the global scope
//   - Single static type per scope: a name is either num or bool
//   - Initialization before read: declared but unassigned names are a
//     distinct error
//   - Calls: the callee must be defined earlier (or be the function being
//     defined) and its return type must fit the use
//   - A function that has used a global may not later declare a local of
//     the same name
//
// Scopes are two-level. The program body is the global scope and each
// function has one flat scope of its own; if, else and while bodies do not
// open new scopes. The first violation aborts the build.
package semantic

import (
	"errors"
	"fmt"

	"github.com/kolkov/copyex/internal/cst"
	"github.com/kolkov/copyex/internal/token"
)

// Kind classifies a semantic error.
type Kind uint8

const (
	UndeclaredVariable Kind = iota + 1
	TypeMismatch
	UninitializedRead
	UndefinedFunctionCall
	InvalidReturnUsage
	FunctionRedefined
	DuplicateParameter
	ShadowedGlobal
)

func (k Kind) String() string {
	switch k {
	case UndeclaredVariable:
		return "UndeclaredVariable"
	case TypeMismatch:
		return "TypeMismatch"
	case UninitializedRead:
		return "UninitializedRead"
	case UndefinedFunctionCall:
		return "UndefinedFunctionCall"
	case InvalidReturnUsage:
		return "InvalidReturnUsage"
	case FunctionRedefined:
		return "FunctionRedefined"
	case DuplicateParameter:
		return "DuplicateParameter"
	case ShadowedGlobal:
		return "ShadowedGlobal"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Error is a semantic error with source location.
type Error struct {
	Kind    Kind
	Subject string // offending name, or call text such as "f()"
	Pos     token.Position
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// ErrMalformedTree is wrapped by errors reporting a CST that does not have
// the rule layout the builder expects.
var ErrMalformedTree = errors.New("malformed syntax tree")

// ErrBuilderReused is returned when a Builder is asked to build twice.
var ErrBuilderReused = errors.New("builder already used; create one per compilation")

// errorf creates a new semantic error.
func errorf(kind Kind, subject string, pos token.Position, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Subject: subject,
		Pos:     pos,
		Message: fmt.Sprintf(format, args...),
	}
}

func malformed(n *cst.Node, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if n != nil && n.Pos.IsValid() {
		return fmt.Errorf("%w: %s: %s", ErrMalformedTree, n.Pos, msg)
	}
	return fmt.Errorf("%w: %s", ErrMalformedTree, msg)
}

// Common error messages as constants for consistency.
const (
	errUndeclared     = "'%s' is not a defined variable"
	errNotOfType      = "'%s' is not of type %s"
	errCannotHold     = "'%s' is of type %s and cannot hold a %s value"
	errUninitialized  = "'%s' has not been initialized yet"
	errUndefinedFunc  = "'%s'() is not a defined function"
	errNoReturnValue  = "'%s'() does not return a value"
	errReturnInVoid   = "'%s'() has no return type but returns a value"
	errMissingReturn  = "'%s'() must return a %s value"
	errReturnType     = "'%s'() must return a %s value, not %s"
	errOperandType    = "operator '%s' requires %s operands"
	errOperandsDiffer = "operator '%s' compares %s with %s"
	errConditionType  = "condition of '%s' must be of type boolean"
	errFuncRedefined  = "function '%s' is already defined"
	errDuplicateParam = "duplicate parameter '%s' in function '%s'"
	errShadowsGlobal  = "'%s' already refers to the global variable in '%s'()"
)
