package parser_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/kolkov/copyex/internal/cst"
	"github.com/kolkov/copyex/internal/parser"
)

// TestParseEmpty tests parsing an empty program.
func TestParseEmpty(t *testing.T) {
	for _, src := range []string{"", "\n\n", "# only a comment\n", ";;"} {
		file, err := parser.Parse(src)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", src, err)
		}
		if file.Rule != cst.File {
			t.Errorf("Parse(%q) rule = %v, want file", src, file.Rule)
		}
		if file.Len() != 0 {
			t.Errorf("Parse(%q) children = %d, want 0", src, file.Len())
		}
	}
}

func TestParseExpr(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"42", "(number 42)"},
		{"3.5", "(number 3.5)"},
		{"true", "(boolean true)"},
		{"x", "(variable x)"},
		{"1 + 2 * 3", "(binaryOperation (number 1) + (binaryOperation (number 2) * (number 3)))"},
		{"1 - 2 - 3", "(binaryOperation (binaryOperation (number 1) - (number 2)) - (number 3))"},
		{"a % b / c", "(binaryOperation (binaryOperation (variable a) % (variable b)) / (variable c))"},
		{"-x", "(negation - (variable x))"},
		{"--x", "(negation - (negation - (variable x)))"},
		{"-(a + 1)", "(negation - (grouping (binaryOperation (variable a) + (number 1))))"},
		{"a == b", "(comparison (variable a) == (variable b))"},
		{"a + 1 >= b", "(comparison (binaryOperation (variable a) + (number 1)) >= (variable b))"},
		{"not a", "(notOperation not (variable a))"},
		{"not a and b", "(logicOperation (notOperation not (variable a)) and (variable b))"},
		{"a or b and c", "(logicOperation (variable a) or (logicOperation (variable b) and (variable c)))"},
		{"(a or b) and c", "(logicOperation (grouping (logicOperation (variable a) or (variable b))) and (variable c))"},
		{"not x < 3", "(notOperation not (comparison (variable x) < (number 3)))"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			expr, err := parser.ParseExpr(tt.src)
			if err != nil {
				t.Fatalf("ParseExpr() error = %v", err)
			}
			if got := expr.String(); got != tt.want {
				t.Errorf("ParseExpr()\n got: %s\nwant: %s", got, tt.want)
			}
		})
	}
}

func TestParseExprText(t *testing.T) {
	expr, err := parser.ParseExpr("( a +  1 ) * b")
	if err != nil {
		t.Fatalf("ParseExpr() error = %v", err)
	}
	if expr.Text != "( a +  1 ) * b" {
		t.Errorf("Text = %q", expr.Text)
	}
	if got := expr.Child(0).Text; got != "( a +  1 )" {
		t.Errorf("grouping Text = %q", got)
	}
}

func TestParseStatements(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "declaration",
			src:  "num x",
			want: "(file (codeBlock (lines (declaration num x))))",
		},
		{
			name: "initialization",
			src:  "bool b = true",
			want: "(file (codeBlock (lines (initialization bool b = (boolean true)))))",
		},
		{
			name: "initialization from call",
			src:  "num y = f(2)",
			want: "(file (codeBlock (lines (initialization num y = (call f (arguments (number 2)))))))",
		},
		{
			name: "assignment",
			src:  "x = x + 1",
			want: "(file (codeBlock (lines (assignment x = (binaryOperation (variable x) + (number 1))))))",
		},
		{
			name: "call assignment",
			src:  "x = f(1, y)",
			want: "(file (codeBlock (lines (callAssignment x = (call f (arguments (number 1) (variable y)))))))",
		},
		{
			name: "augmented",
			src:  "x *= 2",
			want: "(file (codeBlock (lines (augmented x *= (number 2)))))",
		},
		{
			name: "print",
			src:  "print(x)",
			want: "(file (codeBlock (lines (print print (variable x)))))",
		},
		{
			name: "call statement",
			src:  "f()",
			want: "(file (codeBlock (lines (call f (arguments)))))",
		},
		{
			name: "semicolons",
			src:  "num x = 1; print(x)",
			want: "(file (codeBlock (lines (initialization num x = (number 1)) (print print (variable x)))))",
		},
		{
			name: "conditional",
			src:  "if a {\n  print(1)\n} else {\n}",
			want: "(file (codeBlock (conditional if (variable a) (codeBlock (lines (print print (number 1)))) else (codeBlock))))",
		},
		{
			name: "else if",
			src:  "if a { } else if b { }",
			want: "(file (codeBlock (conditional if (variable a) (codeBlock) else (codeBlock (conditional if (variable b) (codeBlock))))))",
		},
		{
			name: "loop",
			src:  "while x < 3 { x += 1 }",
			want: "(file (codeBlock (loop while (comparison (variable x) < (number 3)) (codeBlock (lines (augmented x += (number 1)))))))",
		},
		{
			name: "function",
			src:  "func f(num a, bool b) num {\n  return a\n}",
			want: "(file (function f (parameters (parameter num a) (parameter bool b)) num (codeBlock) (return return (variable a))))",
		},
		{
			name: "void function",
			src:  "func g() {\n  print(1)\n}",
			want: "(file (function g (parameters) _ (codeBlock (lines (print print (number 1))))))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, err := parser.Parse(tt.src)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if got := file.String(); got != tt.want {
				t.Errorf("Parse()\n got: %s\nwant: %s", got, tt.want)
			}
		})
	}
}

// TestParseGrouping checks how statements are grouped into blocks and lines.
func TestParseGrouping(t *testing.T) {
	src := `num x = 1
print(x)
if x > 0 {
}
print(x)
func f() {
}
print(x)
`
	file, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	rules := func(n *cst.Node) []cst.Rule {
		var out []cst.Rule
		for _, c := range n.Children {
			out = append(out, c.Rule)
		}
		return out
	}

	wantTop := []cst.Rule{cst.CodeBlock, cst.Function, cst.CodeBlock}
	if got := rules(file); !equalRules(got, wantTop) {
		t.Fatalf("file children = %v, want %v", got, wantTop)
	}

	wantFirst := []cst.Rule{cst.Lines, cst.Conditional, cst.Lines}
	first := file.Child(0)
	if got := rules(first); !equalRules(got, wantFirst) {
		t.Errorf("first block children = %v, want %v", got, wantFirst)
	}
	if n := first.Child(0).Len(); n != 2 {
		t.Errorf("first lines has %d statements, want 2", n)
	}
}

func TestParsePositions(t *testing.T) {
	file, err := parser.Parse("num x = 1\nif x > 0 {\n  x = 2\n}")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	cond := file.Child(0).Child(1)
	if cond.Rule != cst.Conditional {
		t.Fatalf("expected conditional, got %v", cond.Rule)
	}
	if cond.Pos.Line != 2 || cond.Pos.Column != 0 {
		t.Errorf("conditional at %v, want 2:0", cond.Pos)
	}
	assign := cond.Child(2).Child(0).Child(0)
	if assign.Rule != cst.Assignment {
		t.Fatalf("expected assignment, got %v", assign.Rule)
	}
	if assign.Pos.Line != 3 || assign.Pos.Column != 2 {
		t.Errorf("assignment at %v, want 3:2", assign.Pos)
	}
	if assign.Text != "x = 2" {
		t.Errorf("assignment text = %q", assign.Text)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name       string
		src        string
		wantMsg    string
		incomplete bool
	}{
		{"missing value", "num x = ", "expected expression", true},
		{"open block", "if x {\n  print(x)\n", "expected '}'", true},
		{"open paren", "print((1 + 2)", "expected ')'", true},
		{"double assign", "x = = 1", "input mismatch", false},
		{"bare name", "x\n", "expected assignment operator", false},
		{"junk after statement", "num x = 1 2", "expected newline", false},
		{"nested function", "func f() {\n func g() {}\n}", "only allowed at top level", false},
		{"nested call", "print(f(x))", "only allowed as a statement", false},
		{"chained comparison", "bool b = a < b < c", "cannot be chained", false},
		{"return outside function", "if x { return 1 }", "last statement of a function body", false},
		{"statement after return", "func f() num {\n return 1\n print(2)\n}", "after return", false},
		{"illegal character", "num x = 1 & 2", "unexpected character '&'", false},
		{"bang", "bool b = !x", "use 'not'", false},
		{"missing type", "func f(a) {}", "type 'num' or 'bool'", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.Parse(tt.src)
			if err == nil {
				t.Fatal("expected error")
			}
			var pe *parser.ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("expected *ParseError, got %T", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not contain %q", err, tt.wantMsg)
			}
			if got := parser.IsIncomplete(err); got != tt.incomplete {
				t.Errorf("IsIncomplete() = %v, want %v", got, tt.incomplete)
			}
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := parser.Parse("num x = 1\nx = = 2")
	var pe *parser.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if pe.Pos.Line != 2 || pe.Pos.Column != 4 {
		t.Errorf("error at %v, want 2:4", pe.Pos)
	}
	if pe.Got != "'='" || pe.Want != "expression" {
		t.Errorf("Got/Want = %q/%q", pe.Got, pe.Want)
	}
	if !strings.HasPrefix(err.Error(), "2:4: ") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestIsIncompleteOther(t *testing.T) {
	if parser.IsIncomplete(nil) {
		t.Error("IsIncomplete(nil) = true")
	}
	if parser.IsIncomplete(errors.New("boom")) {
		t.Error("IsIncomplete(plain error) = true")
	}
}

func equalRules(a, b []cst.Rule) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
