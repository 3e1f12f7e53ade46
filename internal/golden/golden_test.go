package golden

import (
	"strings"
	"testing"

	"github.com/nalgeon/be"
)

const doc = "# Examples\n\nSome prose.\n\n" +
	"## Test: print\n\n" +
	"```copyex\nnum x = 1\nprint(x)\n```\n\n" +
	"```python\nx = 1\nprint(x)\n```\n\n" +
	"## Not a test\n\n" +
	"```\nunlabeled blocks are ignored\n```\n\n" +
	"## Test: undeclared\n\n" +
	"```copyex\nprint(y)\n```\n\n" +
	"```error\n1:6: 'y' is not a defined variable\n```\n"

func TestExtract(t *testing.T) {
	cases, err := Extract(doc)
	be.Err(t, err, nil)
	be.Equal(t, len(cases), 2)

	first := cases[0]
	be.Equal(t, first.Name, "print")
	be.Equal(t, first.Input, "num x = 1\nprint(x)")
	be.Equal(t, first.Python, "x = 1\nprint(x)\n")
	be.True(t, !first.WantError)
	be.Equal(t, first.Line, 5)

	second := cases[1]
	be.Equal(t, second.Name, "undeclared")
	be.True(t, second.WantError)
	be.Equal(t, second.Error, "1:6: 'y' is not a defined variable")
}

func TestExtractEmptyPython(t *testing.T) {
	src := "## Test: nothing\n\n```copyex\nnum x\n```\n\n```python\n```\n"
	cases, err := Extract(src)
	be.Err(t, err, nil)
	be.Equal(t, len(cases), 1)
	be.Equal(t, cases[0].Python, "")
	be.True(t, !cases[0].WantError)
}

func TestExtractErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			"no input",
			"## Test: a\n\n```python\nx\n```\n",
			"has no copyex fence",
		},
		{
			"no expectation",
			"## Test: a\n\n```copyex\nnum x\n```\n",
			"has no python or error fence",
		},
		{
			"two inputs",
			"## Test: a\n\n```copyex\nnum x\n```\n\n```copyex\nnum y\n```\n",
			"more than one copyex fence",
		},
		{
			"two expectations",
			"## Test: a\n\n```copyex\nnum x\n```\n\n```python\n```\n\n```error\nboom\n```\n",
			"more than one expectation",
		},
		{
			"unknown language",
			"## Test: a\n\n```copyx\nnum x\n```\n",
			`unknown fence language "copyx"`,
		},
		{
			"fence outside test",
			"# Intro\n\n```python\nx\n```\n",
			"outside of a test case",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Extract(tt.src)
			be.Err(t, err)
			be.True(t, strings.Contains(err.Error(), tt.want))
		})
	}
}
