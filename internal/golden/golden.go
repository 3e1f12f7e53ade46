// Package golden extracts transpiler test cases from Markdown documents.
//
// A case starts at a heading "Test: <name>" and holds one copyex fence with
// the program and one python or error fence with the expected result:
//
//	## Test: print a variable
//
//	```copyex
//	num x = 1
//	print(x)
//	```
//
//	```python
//	x = 1
//	print(x)
//	```
//
// Prose and unlabeled code blocks are ignored. Any other fence language is
// an error, so typos in test files do not silently drop assertions.
package golden

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Fence languages.
const (
	LangCopyex = "copyex"
	LangPython = "python"
	LangError  = "error"
)

const headingPrefix = "Test: "

// Case is one golden test case.
type Case struct {
	Name   string
	Line   int    // line of the heading
	Input  string // copyex source
	Python string // expected output, if WantError is false
	Error  string // expected error text, if WantError is true

	WantError bool
	hasWant   bool
}

// Extract parses a Markdown document and returns its test cases in order.
func Extract(markdown string) ([]Case, error) {
	source := []byte(markdown)
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var cases []Case
	var cur *Case

	finish := func() error {
		if cur == nil {
			return nil
		}
		if err := cur.validate(); err != nil {
			return err
		}
		cases = append(cases, *cur)
		return nil
	}

	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.Heading:
			title := nodeText(n, source)
			if !strings.HasPrefix(title, headingPrefix) {
				return ast.WalkContinue, nil
			}
			if err := finish(); err != nil {
				return ast.WalkStop, err
			}
			cur = &Case{
				Name: strings.TrimSpace(strings.TrimPrefix(title, headingPrefix)),
				Line: lineOf(n, source),
			}
			return ast.WalkSkipChildren, nil

		case *ast.FencedCodeBlock:
			lang := string(n.Language(source))
			if lang == "" {
				return ast.WalkContinue, nil
			}
			line := lineOf(n, source)
			if cur == nil {
				return ast.WalkStop, fmt.Errorf("line %d: %s fence outside of a test case", line, lang)
			}
			if err := cur.add(lang, fenceContent(n, source), line); err != nil {
				return ast.WalkStop, err
			}
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("golden: %w", err)
	}
	if err := finish(); err != nil {
		return nil, fmt.Errorf("golden: %w", err)
	}
	return cases, nil
}

func (c *Case) add(lang, content string, line int) error {
	switch lang {
	case LangCopyex:
		if c.Input != "" {
			return fmt.Errorf("line %d: test %q has more than one %s fence", line, c.Name, lang)
		}
		c.Input = strings.TrimRight(content, "\n")
	case LangPython, LangError:
		if c.hasWant {
			return fmt.Errorf("line %d: test %q has more than one expectation", line, c.Name)
		}
		c.hasWant = true
		if lang == LangError {
			c.WantError = true
			c.Error = strings.TrimSpace(content)
		} else {
			c.Python = content
		}
	default:
		return fmt.Errorf("line %d: unknown fence language %q in test %q", line, lang, c.Name)
	}
	return nil
}

func (c *Case) validate() error {
	if c.Input == "" {
		return fmt.Errorf("line %d: test %q has no %s fence", c.Line, c.Name, LangCopyex)
	}
	if !c.hasWant {
		return fmt.Errorf("line %d: test %q has no %s or %s fence", c.Line, c.Name, LangPython, LangError)
	}
	return nil
}

// nodeText returns the plain text of an inline container such as a heading.
func nodeText(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := n.(*ast.Text); ok && entering {
			buf.Write(t.Segment.Value(source))
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

func fenceContent(block *ast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer
	lines := block.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	return buf.String()
}

// lineOf returns the 1-based line where node's content starts.
func lineOf(node ast.Node, source []byte) int {
	lines := node.Lines()
	if lines.Len() == 0 {
		return 1
	}
	start := lines.At(0).Start
	if start > len(source) {
		start = len(source)
	}
	return bytes.Count(source[:start], []byte("\n")) + 1
}
