// Package token defines lexical tokens for Copyex.
package token

import "strconv"

// Token represents a lexical token type.
type Token uint8

const (
	// Special tokens
	ILLEGAL Token = iota // <illegal>
	EOF                  // EOF
	NEWLINE              // <newline>

	// Operators and delimiters
	operatorStart
	ADD        // +
	ADD_ASSIGN // +=
	SUB        // -
	SUB_ASSIGN // -=
	MUL        // *
	MUL_ASSIGN // *=
	DIV        // /
	DIV_ASSIGN // /=
	MOD        // %
	MOD_ASSIGN // %=

	ASSIGN     // =
	EQUALS     // ==
	NOT_EQUALS // !=
	LESS       // <
	LTE        // <=
	GREATER    // >
	GTE        // >=

	LPAREN    // (
	RPAREN    // )
	LBRACE    // {
	RBRACE    // }
	COMMA     // ,
	SEMICOLON // ;
	operatorEnd

	// Keywords
	keywordStart
	NUM    // num
	BOOL   // bool
	FUNC   // func
	IF     // if
	ELSE   // else
	WHILE  // while
	RETURN // return
	PRINT  // print
	AND    // and
	OR     // or
	NOT    // not
	TRUE   // true
	FALSE  // false
	keywordEnd

	// Literals
	NAME   // name
	NUMBER // number
)

// IsOperator returns true if the token is an operator or delimiter.
func (t Token) IsOperator() bool {
	return t > operatorStart && t < operatorEnd
}

// IsKeyword returns true if the token is a keyword.
func (t Token) IsKeyword() bool {
	return t > keywordStart && t < keywordEnd
}

// IsLiteral returns true if the token is a literal (name or number).
func (t Token) IsLiteral() bool {
	return t == NAME || t == NUMBER
}

// IsAugmentedAssign returns true for the compound assignment operators.
func (t Token) IsAugmentedAssign() bool {
	switch t {
	case ADD_ASSIGN, SUB_ASSIGN, MUL_ASSIGN, DIV_ASSIGN, MOD_ASSIGN:
		return true
	}
	return false
}

// IsComparison returns true for the relational operators.
func (t Token) IsComparison() bool {
	switch t {
	case EQUALS, NOT_EQUALS, LESS, LTE, GREATER, GTE:
		return true
	}
	return false
}

// IsType returns true for the primitive type keywords.
func (t Token) IsType() bool {
	return t == NUM || t == BOOL
}

// keywords maps keyword strings to their token types.
var keywords = map[string]Token{
	"num":    NUM,
	"bool":   BOOL,
	"func":   FUNC,
	"if":     IF,
	"else":   ELSE,
	"while":  WHILE,
	"return": RETURN,
	"print":  PRINT,
	"and":    AND,
	"or":     OR,
	"not":    NOT,
	"true":   TRUE,
	"false":  FALSE,
}

// LookupIdent returns the token type for a given identifier.
// Returns a keyword token if found, otherwise NAME.
func LookupIdent(ident string) Token {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return NAME
}

// names holds the source spelling of operators and keywords.
var names = map[Token]string{
	ILLEGAL: "illegal",
	EOF:     "end of file",
	NEWLINE: "newline",

	ADD:        "+",
	ADD_ASSIGN: "+=",
	SUB:        "-",
	SUB_ASSIGN: "-=",
	MUL:        "*",
	MUL_ASSIGN: "*=",
	DIV:        "/",
	DIV_ASSIGN: "/=",
	MOD:        "%",
	MOD_ASSIGN: "%=",
	ASSIGN:     "=",
	EQUALS:     "==",
	NOT_EQUALS: "!=",
	LESS:       "<",
	LTE:        "<=",
	GREATER:    ">",
	GTE:        ">=",
	LPAREN:     "(",
	RPAREN:     ")",
	LBRACE:     "{",
	RBRACE:     "}",
	COMMA:      ",",
	SEMICOLON:  ";",

	NAME:   "name",
	NUMBER: "number",
}

// String returns the source spelling of operators and keywords and a
// descriptive name for everything else.
func (t Token) String() string {
	if s, ok := names[t]; ok {
		return s
	}
	for kw, tok := range keywords {
		if tok == t {
			return kw
		}
	}
	return "token(" + strconv.Itoa(int(t)) + ")"
}
