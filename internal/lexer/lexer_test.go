package lexer

import (
	"testing"

	"github.com/kolkov/copyex/internal/token"
)

func TestScanBasicTokens(t *testing.T) {
	tests := []struct {
		input    string
		expected []token.Token
	}{
		{"+", []token.Token{token.ADD, token.EOF}},
		{"-", []token.Token{token.SUB, token.EOF}},
		{"*", []token.Token{token.MUL, token.EOF}},
		{"/", []token.Token{token.DIV, token.EOF}},
		{"%", []token.Token{token.MOD, token.EOF}},
		{"+=", []token.Token{token.ADD_ASSIGN, token.EOF}},
		{"-=", []token.Token{token.SUB_ASSIGN, token.EOF}},
		{"*=", []token.Token{token.MUL_ASSIGN, token.EOF}},
		{"x /= 1", []token.Token{token.NAME, token.DIV_ASSIGN, token.NUMBER, token.EOF}},
		{"%=", []token.Token{token.MOD_ASSIGN, token.EOF}},
		{"=", []token.Token{token.ASSIGN, token.EOF}},
		{"==", []token.Token{token.EQUALS, token.EOF}},
		{"!=", []token.Token{token.NOT_EQUALS, token.EOF}},
		{"<", []token.Token{token.LESS, token.EOF}},
		{"<=", []token.Token{token.LTE, token.EOF}},
		{">", []token.Token{token.GREATER, token.EOF}},
		{">=", []token.Token{token.GTE, token.EOF}},
		{"(", []token.Token{token.LPAREN, token.EOF}},
		{")", []token.Token{token.RPAREN, token.EOF}},
		{"{", []token.Token{token.LBRACE, token.EOF}},
		{"}", []token.Token{token.RBRACE, token.EOF}},
		{",", []token.Token{token.COMMA, token.EOF}},
		{";", []token.Token{token.SEMICOLON, token.EOF}},
		{"\n", []token.Token{token.NEWLINE, token.EOF}},
		{"a<=b", []token.Token{token.NAME, token.LTE, token.NAME, token.EOF}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			l := NewFromString(tt.input)
			for i, exp := range tt.expected {
				tok := l.Scan()
				if tok.Type != exp {
					t.Errorf("token[%d]: expected %v, got %v", i, exp, tok.Type)
				}
			}
		})
	}
}

func TestScanKeywords(t *testing.T) {
	tests := []struct {
		input    string
		expected token.Token
	}{
		{"num", token.NUM},
		{"bool", token.BOOL},
		{"func", token.FUNC},
		{"if", token.IF},
		{"else", token.ELSE},
		{"while", token.WHILE},
		{"return", token.RETURN},
		{"print", token.PRINT},
		{"and", token.AND},
		{"or", token.OR},
		{"not", token.NOT},
		{"true", token.TRUE},
		{"false", token.FALSE},
		{"number", token.NAME},
		{"iffy", token.NAME},
		{"_tmp1", token.NAME},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok := NewFromString(tt.input).Scan()
			if tok.Type != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, tok.Type)
			}
			if tok.Value != tt.input {
				t.Errorf("expected value %q, got %q", tt.input, tok.Value)
			}
		})
	}
}

func TestScanNumbers(t *testing.T) {
	tests := []struct {
		input string
		value string
	}{
		{"0", "0"},
		{"42", "42"},
		{"3.14", "3.14"},
		{"10.", "10"},
		{"7;", "7"},
		{"007", "007"},
		{"00.50", "00.50"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok := NewFromString(tt.input).Scan()
			if tok.Type != token.NUMBER {
				t.Fatalf("expected NUMBER, got %v", tok.Type)
			}
			if tok.Value != tt.value {
				t.Errorf("expected %q, got %q", tt.value, tok.Value)
			}
		})
	}
}

func TestScanPositions(t *testing.T) {
	src := "num x = 1\n  print(x)"
	want := []struct {
		typ  token.Token
		line int
		col  int
	}{
		{token.NUM, 1, 0},
		{token.NAME, 1, 4},
		{token.ASSIGN, 1, 6},
		{token.NUMBER, 1, 8},
		{token.NEWLINE, 1, 9},
		{token.PRINT, 2, 2},
		{token.LPAREN, 2, 7},
		{token.NAME, 2, 8},
		{token.RPAREN, 2, 9},
		{token.EOF, 2, 10},
	}

	l := NewFromString(src)
	for i, w := range want {
		tok := l.Scan()
		if tok.Type != w.typ {
			t.Fatalf("token[%d]: expected %v, got %v", i, w.typ, tok.Type)
		}
		if tok.Pos.Line != w.line || tok.Pos.Column != w.col {
			t.Errorf("token[%d] %v: expected %d:%d, got %d:%d", i, w.typ, w.line, w.col, tok.Pos.Line, tok.Pos.Column)
		}
	}
}

func TestScanComments(t *testing.T) {
	l := NewFromString("x # trailing comment\n# whole line\ny")
	want := []token.Token{token.NAME, token.NEWLINE, token.NEWLINE, token.NAME, token.EOF}
	for i, exp := range want {
		tok := l.Scan()
		if tok.Type != exp {
			t.Errorf("token[%d]: expected %v, got %v", i, exp, tok.Type)
		}
	}
}

func TestScanIllegal(t *testing.T) {
	tests := []string{"!", "&", "$", "\"str\""}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			tok := NewFromString(input).Scan()
			if tok.Type != token.ILLEGAL {
				t.Errorf("expected ILLEGAL, got %v", tok.Type)
			}
			if tok.Value == "" {
				t.Error("expected a description in Value")
			}
		})
	}
}
