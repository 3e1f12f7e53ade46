// Package parser provides a recursive descent parser for Copyex that
// produces concrete syntax trees (see package cst).
package parser

import (
	"errors"
	"fmt"

	"github.com/kolkov/copyex/internal/token"
)

// ParseError represents a syntax error encountered during parsing.
// It implements the error interface and includes source position information.
type ParseError struct {
	Pos     token.Position // Position where the error occurred
	Message string         // Human-readable error message
	Got     string         // Token/value that was found (optional)
	Want    string         // Token/value that was expected (optional)

	atEOF bool // the offending token was end of input
}

// Error returns a formatted error message with position information.
func (e *ParseError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s", e.Pos, e.Message)
	}
	return e.Message
}

// IsIncomplete reports whether err was caused by input ending early, i.e.
// more lines could still turn the source into a valid program.
func IsIncomplete(err error) bool {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.atEOF
	}
	return false
}

// errorf creates a ParseError at the given position with formatted message.
func errorf(pos token.Position, format string, args ...any) *ParseError {
	return &ParseError{
		Pos:     pos,
		Message: fmt.Sprintf(format, args...),
	}
}

// expectedError creates a ParseError for unexpected token.
func expectedError(pos token.Position, want string, got string) *ParseError {
	return &ParseError{
		Pos:     pos,
		Message: fmt.Sprintf("input mismatch: got %s but expected %s", got, want),
		Want:    want,
		Got:     got,
	}
}
