package ticket

import (
	"strings"
)

// Document builds a fixed-width plain-text ticket line by line.
type Document struct {
	lines []string
	width int // ticket width in characters (32 for 58mm paper)
}

// NewDocument creates an empty document with the given character width.
func NewDocument(width int) *Document {
	if width <= 0 {
		width = 32
	}
	return &Document{width: width}
}

// Width returns the document character width.
func (d *Document) Width() int {
	return d.width
}

// Text appends raw lines as they are.
func (d *Document) Text(lines ...string) *Document {
	d.lines = append(d.lines, lines...)
	return d
}

// Separator appends a full-width line made of char.
func (d *Document) Separator(char rune) *Document {
	d.lines = append(d.lines, strings.Repeat(string(char), d.width))
	return d
}

// Centered wraps text to wrapWidth and centers each line in the document width.
func (d *Document) Centered(text string, wrapWidth int) *Document {
	d.lines = append(d.lines, CenterBlock(text, wrapWidth, d.width)...)
	return d
}

// CenteredIn centers a single line in width, which may differ from the document width.
func (d *Document) CenteredIn(text string, width int) *Document {
	d.lines = append(d.lines, Center(text, width))
	return d
}

// AmountLine appends a label with an amount flushed to the right edge.
// Example: "СУМА                      198.40"
func (d *Document) AmountLine(label, amount string) *Document {
	d.lines = append(d.lines, AddSpaceBetween(label, amount, d.width)...)
	return d
}

// String joins the lines with "\n", without a trailing newline.
func (d *Document) String() string {
	return strings.Join(d.lines, "\n")
}
