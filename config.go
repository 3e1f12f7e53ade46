package copyex

// DefaultIndentWidth is the number of spaces per Python indentation level.
const DefaultIndentWidth = 4

// Config holds options for compiling and rendering a program.
type Config struct {
	// Filename is reported in error positions (optional).
	Filename string

	// IndentWidth is the number of spaces per indentation level
	// (default: 4).
	IndentWidth int
}

// applyDefaults fills in default values for unset Config fields.
func (c *Config) applyDefaults() {
	if c.IndentWidth <= 0 {
		c.IndentWidth = DefaultIndentWidth
	}
}
