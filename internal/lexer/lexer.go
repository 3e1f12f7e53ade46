// Package lexer provides Copyex source code tokenization.
package lexer

import (
	"github.com/kolkov/copyex/internal/token"
)

// Lexer tokenizes Copyex source code.
type Lexer struct {
	src     []byte         // Source code
	ch      byte           // Current character (0 at EOF)
	offset  int            // Current byte offset
	pos     token.Position // Current position
	nextPos token.Position // Position of next character
}

// New creates a new Lexer for the given source code.
func New(src []byte) *Lexer {
	l := &Lexer{
		src: src,
		nextPos: token.Position{
			Line:   1,
			Column: 0,
		},
	}
	l.next() // Initialize first character
	return l
}

// NewFromString creates a new Lexer from a string.
func NewFromString(src string) *Lexer {
	return New([]byte(src))
}

// Token represents a scanned token with its position and value.
type Token struct {
	Type  token.Token
	Pos   token.Position
	Value string
}

// Scan scans and returns the next token.
func (l *Lexer) Scan() Token {
	l.skipWhitespace()

	// Skip comments
	if l.ch == '#' {
		l.skipComment()
	}

	// Record position
	pos := l.pos

	// EOF
	if l.ch == 0 && l.offset >= len(l.src) {
		return Token{Type: token.EOF, Pos: pos}
	}

	switch l.ch {
	case '\n':
		l.next()
		return Token{Type: token.NEWLINE, Pos: pos}

	case '+':
		return l.scanOperator(pos, token.ADD, token.ADD_ASSIGN)
	case '-':
		return l.scanOperator(pos, token.SUB, token.SUB_ASSIGN)
	case '*':
		return l.scanOperator(pos, token.MUL, token.MUL_ASSIGN)
	case '/':
		return l.scanOperator(pos, token.DIV, token.DIV_ASSIGN)
	case '%':
		return l.scanOperator(pos, token.MOD, token.MOD_ASSIGN)
	case '=':
		return l.scanOperator(pos, token.ASSIGN, token.EQUALS)
	case '<':
		return l.scanOperator(pos, token.LESS, token.LTE)
	case '>':
		return l.scanOperator(pos, token.GREATER, token.GTE)

	case '!':
		l.next()
		if l.ch == '=' {
			l.next()
			return Token{Type: token.NOT_EQUALS, Pos: pos, Value: "!="}
		}
		return Token{Type: token.ILLEGAL, Pos: pos, Value: "unexpected '!' (use 'not')"}

	case '(':
		l.next()
		return Token{Type: token.LPAREN, Pos: pos, Value: "("}
	case ')':
		l.next()
		return Token{Type: token.RPAREN, Pos: pos, Value: ")"}
	case '{':
		l.next()
		return Token{Type: token.LBRACE, Pos: pos, Value: "{"}
	case '}':
		l.next()
		return Token{Type: token.RBRACE, Pos: pos, Value: "}"}
	case ',':
		l.next()
		return Token{Type: token.COMMA, Pos: pos, Value: ","}
	case ';':
		l.next()
		return Token{Type: token.SEMICOLON, Pos: pos, Value: ";"}

	default:
		if isDigit(l.ch) {
			return l.scanNumber(pos)
		}
		if isIdentStart(l.ch) {
			return l.scanIdent(pos)
		}
		ch := l.ch
		l.next()
		return Token{Type: token.ILLEGAL, Pos: pos, Value: "unexpected character " + quoteByte(ch)}
	}
}

// scanOperator scans a one-character operator that may be followed by '='.
func (l *Lexer) scanOperator(pos token.Position, single, withEq token.Token) Token {
	l.next()
	if l.ch == '=' {
		l.next()
		return Token{Type: withEq, Pos: pos, Value: withEq.String()}
	}
	return Token{Type: single, Pos: pos, Value: single.String()}
}

// scanNumber scans an integer or decimal literal. Leading zeros are kept;
// the tree builder respells literals for the output.
// A trailing '.' without digits is not consumed.
func (l *Lexer) scanNumber(pos token.Position) Token {
	start := pos.Offset
	for isDigit(l.ch) {
		l.next()
	}
	if l.ch == '.' && l.offset < len(l.src) && isDigit(l.src[l.offset]) {
		l.next()
		for isDigit(l.ch) {
			l.next()
		}
	}
	return Token{Type: token.NUMBER, Pos: pos, Value: string(l.src[start:l.endOffset()])}
}

func (l *Lexer) scanIdent(pos token.Position) Token {
	start := pos.Offset
	for isIdentContinue(l.ch) {
		l.next()
	}
	name := string(l.src[start:l.endOffset()])
	return Token{Type: token.LookupIdent(name), Pos: pos, Value: name}
}

// endOffset returns the correct end offset for slicing l.src.
func (l *Lexer) endOffset() int {
	if l.ch == 0 && l.offset >= len(l.src) {
		return len(l.src)
	}
	return l.pos.Offset
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
		l.next()
	}
}

func (l *Lexer) skipComment() {
	for l.ch != '\n' && !(l.ch == 0 && l.offset >= len(l.src)) {
		l.next()
	}
}

func (l *Lexer) next() {
	l.pos = l.nextPos
	if l.offset >= len(l.src) {
		l.ch = 0
		return
	}

	l.ch = l.src[l.offset]
	l.offset++
	l.nextPos.Column++
	l.nextPos.Offset = l.offset

	if l.ch == '\n' {
		l.nextPos.Line++
		l.nextPos.Column = 0
	}
}

// Helper functions

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isIdentContinue(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

func quoteByte(ch byte) string {
	if ch >= 0x20 && ch < 0x7f {
		return "'" + string(ch) + "'"
	}
	const hex = "0123456789abcdef"
	return "'\\x" + string(hex[ch>>4]) + string(hex[ch&0xf]) + "'"
}
