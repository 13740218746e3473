package ticket

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// amountGap is the minimum room, besides the amount itself, that a label line
// must leave for the amount to share it.
const amountGap = 10

// labelReserve is subtracted from the ticket width when wrapping labels.
const labelReserve = 7

var lower = cases.Lower(language.Und)

// Center pads s on both sides to width columns. When the margin is odd the extra
// space goes to the right, unless both margin and width are odd.
func Center(s string, width int) string {
	marg := width - Len(s)
	if marg <= 0 {
		return s
	}
	left := marg/2 + (marg & width & 1)
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", marg-left)
}

// RJust left-pads s with spaces to width columns.
func RJust(s string, width int) string {
	pad := width - Len(s)
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}

// CenterBlock wraps text to wrapWidth and centers every line in centerWidth.
func CenterBlock(text string, wrapWidth, centerWidth int) []string {
	lines := Wrap(text, wrapWidth)
	for i, l := range lines {
		lines[i] = Center(l, centerWidth)
	}
	return lines
}

// AddSpaceBetween lays out a label on the left and an amount on the right edge
// of a width-wide line. The label is wrapped first; the amount joins its last
// line when there is room and gets a line of its own otherwise.
func AddSpaceBetween(label, amount string, width int) []string {
	lines := Wrap(label, width-labelReserve)
	if len(lines) == 0 {
		lines = []string{""}
	}

	last := len(lines) - 1
	lastLen := Len(lines[last])
	if lastLen+Len(amount)+amountGap <= width {
		lines[last] += RJust(amount, width-lastLen)
	} else {
		lines = append(lines, RJust(amount, width))
	}
	return lines
}

// Capitalize upper-cases the first rune of s and lower-cases the rest.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	rs := []rune(s)
	first := strings.ToTitle(string(rs[0]))
	return first + lower.String(string(rs[1:]))
}
