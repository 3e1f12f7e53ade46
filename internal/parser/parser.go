package parser

import (
	"strings"

	"github.com/kolkov/copyex/internal/cst"
	"github.com/kolkov/copyex/internal/lexer"
	"github.com/kolkov/copyex/internal/token"
)

// Parser is a recursive descent parser for Copyex programs.
// Parsing stops at the first syntax error.
type Parser struct {
	lexer   *lexer.Lexer // Lexer instance
	src     []byte       // Source, for rule text
	tok     lexer.Token  // Current token
	ahead   *lexer.Token // One-token lookahead, if scanned
	prevEnd int          // Byte offset just past the previous token
}

// bailout is raised by fail and recovered by the entry points.
type bailout struct {
	err *ParseError
}

// Parse parses a Copyex program from source code.
func Parse(src string) (*cst.Node, error) {
	return ParseBytes([]byte(src))
}

// ParseBytes parses a Copyex program from byte slice.
func ParseBytes(src []byte) (file *cst.Node, err error) {
	p := newParser(src)
	defer p.recover(&err)

	file = p.parseFile()
	return file, nil
}

// ParseExpr parses a single expression (useful for testing).
func ParseExpr(src string) (expr *cst.Node, err error) {
	p := newParser([]byte(src))
	defer p.recover(&err)

	expr = p.parseExpr()
	p.skipNewlines()
	if p.tok.Type != token.EOF {
		p.fail(expectedError(p.tok.Pos, "end of expression", p.tokenDesc()))
	}
	return expr, nil
}

func newParser(src []byte) *Parser {
	p := &Parser{
		lexer: lexer.New(src),
		src:   src,
	}
	p.next() // Initialize first token
	return p
}

func (p *Parser) recover(err *error) {
	if r := recover(); r != nil {
		b, ok := r.(bailout)
		if !ok {
			panic(r)
		}
		*err = b.err
	}
}

// -----------------------------------------------------------------------------
// Token handling
// -----------------------------------------------------------------------------

// next advances to the next token.
func (p *Parser) next() {
	p.prevEnd = p.tok.Pos.Offset + len(p.tok.Value)
	if p.ahead != nil {
		p.tok = *p.ahead
		p.ahead = nil
		return
	}
	p.tok = p.lexer.Scan()
}

// peek returns the token after the current one without consuming anything.
func (p *Parser) peek() lexer.Token {
	if p.ahead == nil {
		t := p.lexer.Scan()
		p.ahead = &t
	}
	return *p.ahead
}

// expect checks that the current token is tok and advances.
func (p *Parser) expect(tok token.Token) lexer.Token {
	if p.tok.Type != tok {
		p.fail(expectedError(p.tok.Pos, quote(tok.String()), p.tokenDesc()))
	}
	t := p.tok
	p.next()
	return t
}

// expectName expects a NAME token and returns it as a terminal.
func (p *Parser) expectName() *cst.Node {
	t := p.expect(token.NAME)
	return cst.Term(t.Value, t.Pos)
}

// expectType expects a type keyword and returns it as a terminal.
func (p *Parser) expectType() *cst.Node {
	if !p.tok.Type.IsType() {
		p.fail(expectedError(p.tok.Pos, "type 'num' or 'bool'", p.tokenDesc()))
	}
	return p.terminal()
}

// terminal consumes the current token as a Terminal node.
func (p *Parser) terminal() *cst.Node {
	n := cst.Term(p.tok.Value, p.tok.Pos)
	p.next()
	return n
}

// tokenDesc returns a description of the current token for error messages.
func (p *Parser) tokenDesc() string {
	switch p.tok.Type {
	case token.NAME, token.NUMBER:
		return quote(p.tok.Value)
	case token.ILLEGAL:
		return p.tok.Value
	case token.NEWLINE:
		return "newline"
	case token.EOF:
		return "end of file"
	default:
		return quote(p.tok.Type.String())
	}
}

// fail aborts parsing with err.
func (p *Parser) fail(err *ParseError) {
	if p.tok.Type == token.EOF {
		err.atEOF = true
	}
	panic(bailout{err: err})
}

// text returns the trimmed source text from start up to the previous token.
func (p *Parser) text(start token.Position) string {
	if p.prevEnd <= start.Offset || p.prevEnd > len(p.src) {
		return ""
	}
	return strings.TrimSpace(string(p.src[start.Offset:p.prevEnd]))
}

func quote(s string) string {
	return "'" + s + "'"
}

// -----------------------------------------------------------------------------
// Newline and terminator handling
// -----------------------------------------------------------------------------

// skipNewlines skips newlines and semicolons.
func (p *Parser) skipNewlines() {
	for p.tok.Type == token.NEWLINE || p.tok.Type == token.SEMICOLON {
		p.next()
	}
}

// terminator consumes a statement terminator. A closing brace or the end
// of input also ends a statement but is left for the caller.
func (p *Parser) terminator() {
	switch p.tok.Type {
	case token.NEWLINE, token.SEMICOLON:
		p.next()
	case token.RBRACE, token.EOF:
	default:
		p.fail(expectedError(p.tok.Pos, "newline", p.tokenDesc()))
	}
}

// -----------------------------------------------------------------------------
// Program structure
// -----------------------------------------------------------------------------

// parseFile parses a complete program. Consecutive top-level statements
// share one CodeBlock; every function definition starts a new one.
func (p *Parser) parseFile() *cst.Node {
	file := cst.New(cst.File, "", p.tok.Pos)
	var block *cst.Node

	for {
		p.skipNewlines()
		if p.tok.Type == token.EOF {
			break
		}
		if p.tok.Type == token.FUNC {
			file.Add(p.parseFunction())
			block = nil
			continue
		}
		if block == nil {
			block = cst.New(cst.CodeBlock, "", p.tok.Pos)
			file.Add(block)
		}
		start := block.Pos
		p.parseItem(block)
		block.Text = p.text(start)
	}

	file.Text = strings.TrimSpace(string(p.src))
	return file
}

// parseItem parses one statement, conditional or loop into block.
func (p *Parser) parseItem(block *cst.Node) {
	switch p.tok.Type {
	case token.IF:
		block.Add(p.parseConditional())
	case token.WHILE:
		block.Add(p.parseLoop())
	case token.FUNC:
		p.fail(errorf(p.tok.Pos, "function definitions are only allowed at top level"))
	case token.RETURN:
		p.fail(errorf(p.tok.Pos, "return is only allowed as the last statement of a function body"))
	default:
		stmt := p.parseStatement()
		p.terminator()

		lines := block.Child(block.Len() - 1)
		if lines == nil || lines.Rule != cst.Lines {
			lines = cst.New(cst.Lines, "", stmt.Pos)
			block.Add(lines)
		}
		lines.Add(stmt)
		lines.Text = p.text(lines.Pos)
	}
}

// parseBraceBlock parses "{ item* }". When allowReturn is set, a trailing
// return statement is accepted and returned separately.
func (p *Parser) parseBraceBlock(allowReturn bool) (block, ret *cst.Node) {
	p.expect(token.LBRACE)
	block = cst.New(cst.CodeBlock, "", p.tok.Pos)

	for {
		p.skipNewlines()
		switch p.tok.Type {
		case token.RBRACE:
			block.Text = p.text(block.Pos)
			p.next()
			return block, ret
		case token.EOF:
			p.fail(expectedError(p.tok.Pos, quote("}"), p.tokenDesc()))
		case token.RETURN:
			if !allowReturn {
				break
			}
			block.Text = p.text(block.Pos)
			ret = p.parseReturn()
			p.terminator()
			p.skipNewlines()
			if p.tok.Type != token.RBRACE {
				p.fail(expectedError(p.tok.Pos, quote("}")+" after return", p.tokenDesc()))
			}
			p.next()
			return block, ret
		}
		p.parseItem(block)
	}
}

// parseFunction parses a function definition.
func (p *Parser) parseFunction() *cst.Node {
	start := p.tok.Pos
	p.expect(token.FUNC)

	name := p.expectName()
	params := cst.New(cst.Parameters, "", p.tok.Pos)
	p.expect(token.LPAREN)

	for p.tok.Type != token.RPAREN {
		if params.Len() > 0 {
			p.expect(token.COMMA)
			for p.tok.Type == token.NEWLINE {
				p.next()
			}
		}
		pstart := p.tok.Pos
		typ := p.expectType()
		pname := p.expectName()
		params.Add(cst.New(cst.Parameter, p.text(pstart), pstart, typ, pname))
	}
	p.expect(token.RPAREN)
	params.Text = p.text(params.Pos)

	var ret *cst.Node
	if p.tok.Type.IsType() {
		ret = p.terminal()
	} else {
		ret = cst.Term("", p.tok.Pos)
	}

	body, retStmt := p.parseBraceBlock(true)
	fn := cst.New(cst.Function, "", start, name, params, ret, body)
	if retStmt != nil {
		fn.Add(retStmt)
	}
	fn.Text = p.text(start)
	return fn
}

func (p *Parser) parseReturn() *cst.Node {
	start := p.tok.Pos
	kw := p.terminal()
	value := p.parseExpr()
	return cst.New(cst.Return, p.text(start), start, kw, value)
}

// parseConditional parses "if expr { ... } [else { ... } | else if ...]".
func (p *Parser) parseConditional() *cst.Node {
	start := p.tok.Pos
	kw := p.terminal()
	cond := p.parseExpr()
	then, _ := p.parseBraceBlock(false)
	node := cst.New(cst.Conditional, "", start, kw, cond, then)

	if p.tok.Type == token.ELSE {
		elseKw := p.terminal()
		var otherwise *cst.Node
		if p.tok.Type == token.IF {
			// else if: the nested conditional is the whole else block.
			otherwise = cst.New(cst.CodeBlock, "", p.tok.Pos)
			otherwise.Add(p.parseConditional())
			otherwise.Text = p.text(otherwise.Pos)
		} else {
			otherwise, _ = p.parseBraceBlock(false)
		}
		node.Add(elseKw, otherwise)
	}
	node.Text = p.text(start)
	return node
}

// parseLoop parses "while expr { ... }".
func (p *Parser) parseLoop() *cst.Node {
	start := p.tok.Pos
	kw := p.terminal()
	cond := p.parseExpr()
	body, _ := p.parseBraceBlock(false)
	return cst.New(cst.Loop, p.text(start), start, kw, cond, body)
}

// -----------------------------------------------------------------------------
// Statements
// -----------------------------------------------------------------------------

func (p *Parser) parseStatement() *cst.Node {
	start := p.tok.Pos

	switch p.tok.Type {
	case token.NUM, token.BOOL:
		typ := p.terminal()
		name := p.expectName()
		if p.tok.Type != token.ASSIGN {
			return cst.New(cst.Declaration, p.text(start), start, typ, name)
		}
		op := p.terminal()
		value := p.parseValue()
		return cst.New(cst.Initialization, p.text(start), start, typ, name, op, value)

	case token.PRINT:
		kw := p.terminal()
		p.expect(token.LPAREN)
		value := p.parseExpr()
		p.expect(token.RPAREN)
		return cst.New(cst.Print, p.text(start), start, kw, value)

	case token.NAME:
		if p.peek().Type == token.LPAREN {
			return p.parseCall()
		}
		name := p.terminal()
		switch {
		case p.tok.Type == token.ASSIGN:
			op := p.terminal()
			value := p.parseValue()
			rule := cst.Assignment
			if value.Rule == cst.Call {
				rule = cst.CallAssignment
			}
			return cst.New(rule, p.text(start), start, name, op, value)
		case p.tok.Type.IsAugmentedAssign():
			op := p.terminal()
			value := p.parseExpr()
			return cst.New(cst.Augmented, p.text(start), start, name, op, value)
		default:
			p.fail(expectedError(p.tok.Pos, "assignment operator or '('", p.tokenDesc()))
		}
	}

	p.fail(expectedError(p.tok.Pos, "statement", p.tokenDesc()))
	return nil
}

// parseValue parses the right-hand side of an assignment, which is either
// a whole call or an expression.
func (p *Parser) parseValue() *cst.Node {
	if p.tok.Type == token.NAME && p.peek().Type == token.LPAREN {
		return p.parseCall()
	}
	return p.parseExpr()
}

// parseCall parses "name(args)".
func (p *Parser) parseCall() *cst.Node {
	start := p.tok.Pos
	name := p.expectName()
	args := cst.New(cst.Arguments, "", p.tok.Pos)
	p.expect(token.LPAREN)

	for p.tok.Type != token.RPAREN {
		if args.Len() > 0 {
			p.expect(token.COMMA)
		}
		args.Add(p.parseExpr())
	}
	p.expect(token.RPAREN)
	args.Text = p.text(args.Pos)
	return cst.New(cst.Call, p.text(start), start, name, args)
}

// -----------------------------------------------------------------------------
// Expressions
// -----------------------------------------------------------------------------

// parseExpr parses an expression:
//
//	or      := and { "or" and }
//	and     := not { "and" not }
//	not     := "not" not | compare
//	compare := sum [ relop sum ]
//	sum     := term { ("+" | "-") term }
//	term    := unary { ("*" | "/" | "%") unary }
//	unary   := "-" unary | primary
func (p *Parser) parseExpr() *cst.Node {
	return p.parseOr()
}

func (p *Parser) parseOr() *cst.Node {
	return p.parseBinaryLeft(p.parseAnd, cst.LogicOperation, token.OR)
}

func (p *Parser) parseAnd() *cst.Node {
	return p.parseBinaryLeft(p.parseNot, cst.LogicOperation, token.AND)
}

func (p *Parser) parseNot() *cst.Node {
	if p.tok.Type != token.NOT {
		return p.parseCompare()
	}
	start := p.tok.Pos
	op := p.terminal()
	operand := p.parseNot()
	return cst.New(cst.NotOperation, p.text(start), start, op, operand)
}

func (p *Parser) parseCompare() *cst.Node {
	start := p.tok.Pos
	left := p.parseSum()
	if !p.tok.Type.IsComparison() {
		return left
	}
	op := p.terminal()
	right := p.parseSum()
	if p.tok.Type.IsComparison() {
		p.fail(errorf(p.tok.Pos, "comparison operators cannot be chained; use 'and'"))
	}
	return cst.New(cst.Comparison, p.text(start), start, left, op, right)
}

func (p *Parser) parseSum() *cst.Node {
	return p.parseBinaryLeft(p.parseTerm, cst.BinaryOperation, token.ADD, token.SUB)
}

func (p *Parser) parseTerm() *cst.Node {
	return p.parseBinaryLeft(p.parseUnary, cst.BinaryOperation, token.MUL, token.DIV, token.MOD)
}

func (p *Parser) parseUnary() *cst.Node {
	if p.tok.Type != token.SUB {
		return p.parsePrimary()
	}
	start := p.tok.Pos
	op := p.terminal()
	operand := p.parseUnary()
	return cst.New(cst.Negation, p.text(start), start, op, operand)
}

func (p *Parser) parsePrimary() *cst.Node {
	start := p.tok.Pos

	switch p.tok.Type {
	case token.NUMBER:
		t := p.terminal()
		return cst.New(cst.Number, t.Text, start)

	case token.TRUE, token.FALSE:
		t := p.terminal()
		return cst.New(cst.Boolean, t.Text, start)

	case token.NAME:
		if p.peek().Type == token.LPAREN {
			p.fail(errorf(start, "call to %q is only allowed as a statement or as the whole value of an assignment", p.tok.Value))
		}
		t := p.terminal()
		return cst.New(cst.Variable, t.Text, start)

	case token.LPAREN:
		p.next()
		inner := p.parseExpr()
		p.expect(token.RPAREN)
		return cst.New(cst.Grouping, p.text(start), start, inner)
	}

	p.fail(expectedError(p.tok.Pos, "expression", p.tokenDesc()))
	return nil
}

// parseBinaryLeft parses a left-associative chain of binary operators.
func (p *Parser) parseBinaryLeft(higher func() *cst.Node, rule cst.Rule, ops ...token.Token) *cst.Node {
	start := p.tok.Pos
	left := higher()
	for p.match(ops...) {
		op := p.terminal()
		right := higher()
		left = cst.New(rule, p.text(start), start, left, op, right)
	}
	return left
}

// match returns true if current token matches any of the given types.
func (p *Parser) match(types ...token.Token) bool {
	for _, t := range types {
		if p.tok.Type == t {
			return true
		}
	}
	return false
}
