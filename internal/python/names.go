// Package python holds the target-language conventions used by the code
// generator and the tree builder: reserved words, identifier mangling and
// literal spelling.
package python

import (
	"strings"

	"github.com/coregx/coregex"
)

// Reserved lists the Python keywords plus the builtins that generated code
// calls. A Copyex identifier spelled like one of these would break or
// shadow the output, so it is renamed.
var Reserved = []string{
	"False", "None", "True", "and", "as", "assert", "async", "await",
	"break", "class", "continue", "def", "del", "elif", "else", "except",
	"finally", "for", "from", "global", "if", "import", "in", "is",
	"lambda", "nonlocal", "not", "or", "pass", "raise", "return", "try",
	"while", "with", "yield",
	"print",
}

var (
	// reservedRe matches a reserved word followed by any number of
	// underscores, i.e. every name whose spelling mangling may produce.
	reservedRe = mustCompile(`^(?:` + strings.Join(Reserved, "|") + `)_*$`)

	identRe = mustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

func mustCompile(pattern string) *coregex.Regexp {
	re, err := coregex.Compile(pattern)
	if err != nil {
		panic("python: bad pattern " + pattern + ": " + err.Error())
	}
	re.Longest()
	return re
}

// IsReserved reports whether name is a reserved word.
func IsReserved(name string) bool {
	return reservedRe.MatchString(name) && !strings.HasSuffix(name, "_")
}

// IsIdentifier reports whether name is a valid identifier in both languages.
func IsIdentifier(name string) bool {
	return identRe.MatchString(name)
}

// Mangle returns the Python spelling of a Copyex identifier. Reserved
// words get a trailing underscore. Names that already look like a mangled
// reserved word get one more, so distinct source names stay distinct:
//
//	class  -> class_
//	class_ -> class__
//	total  -> total
func Mangle(name string) string {
	if reservedRe.MatchString(name) {
		return name + "_"
	}
	return name
}

// Bool returns the Python spelling of a Copyex boolean literal.
func Bool(lit string) string {
	switch lit {
	case "true":
		return "True"
	case "false":
		return "False"
	}
	return lit
}

// Number returns the Python spelling of a Copyex number literal. Python
// rejects decimal integers with leading zeros, so they are dropped from the
// integer part; a fraction is kept as written.
//
//	007   -> 7
//	00.50 -> 0.50
//	0     -> 0
func Number(lit string) string {
	intPart, frac, hasFrac := strings.Cut(lit, ".")
	intPart = strings.TrimLeft(intPart, "0")
	if intPart == "" {
		intPart = "0"
	}
	if hasFrac {
		return intPart + "." + frac
	}
	return intPart
}

// Indent returns the indentation for depth levels of width spaces.
func Indent(depth, width int) string {
	if depth <= 0 || width <= 0 {
		return ""
	}
	return strings.Repeat(" ", depth*width)
}
