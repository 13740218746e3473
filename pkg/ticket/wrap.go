package ticket

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const tabSize = 8

// Wrap splits text into lines of at most width columns.
//
// Whitespace is collapsed into single-space chunks and dropped at line edges
// (except leading whitespace on the first line). Words longer than width are
// broken, preferring the last hyphen that fits. Hyphenated words may break
// right after the hyphen. Text with no words yields no lines.
//
// Columns are counted on the NFC form of the text but the lines keep the
// input code points, so combining marks never end up on a line of their own.
func Wrap(text string, width int) []string {
	chunks := splitChunks(glyphs(cleanWhitespace(text)))
	return wrapChunks(chunks, width)
}

// glyph is one normalisation segment of the input: a starter and the marks
// that follow it.
type glyph struct {
	text  string
	base  rune
	width int
}

func glyphs(s string) []glyph {
	var out []glyph
	for len(s) > 0 {
		n := norm.NFC.NextBoundaryInString(s, true)
		if n <= 0 {
			n = len(s)
		}
		seg := s[:n]
		base, _ := utf8.DecodeRuneInString(seg)
		out = append(out, glyph{text: seg, base: base, width: Len(seg)})
		s = s[n:]
	}
	return out
}

func chunkWidth(chunk []glyph) int {
	w := 0
	for _, g := range chunk {
		w += g.width
	}
	return w
}

// cleanWhitespace expands tabs and turns every ASCII whitespace rune into a space.
func cleanWhitespace(s string) string {
	var b strings.Builder
	col := 0
	for _, r := range s {
		switch r {
		case '\t':
			n := tabSize - col%tabSize
			b.WriteString(strings.Repeat(" ", n))
			col += n
		case '\n', '\r':
			b.WriteByte(' ')
			col = 0
		case '\v', '\f':
			b.WriteByte(' ')
			col++
		default:
			b.WriteRune(r)
			col++
		}
	}
	return b.String()
}

func isSpace(r rune) bool {
	return r == ' '
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

func isLetter(r rune) bool {
	return isWordRune(r) && !unicode.IsDigit(r)
}

func isWordPunct(r rune) bool {
	if isWordRune(r) {
		return true
	}
	switch r {
	case '!', '"', '\'', '&', '.', ',', '?':
		return true
	}
	return false
}

// splitChunks breaks text into whitespace runs, em-dashes and words.
// A word ends before whitespace, after a hyphen that joins letters, or before
// an em-dash (two or more hyphens followed by a word rune).
func splitChunks(gs []glyph) [][]glyph {
	var chunks [][]glyph
	n := len(gs)
	at := func(i int) rune {
		if i < 0 || i >= n {
			return 0
		}
		return gs[i].base
	}
	// dashRun reports whether gs[i:] starts with two or more hyphens followed by a word rune.
	dashRun := func(i int) (int, bool) {
		j := i
		for j < n && at(j) == '-' {
			j++
		}
		if j-i >= 2 && j < n && isWordRune(at(j)) {
			return j, true
		}
		return 0, false
	}

	for i := 0; i < n; {
		if isSpace(at(i)) {
			j := i
			for j < n && isSpace(at(j)) {
				j++
			}
			chunks = append(chunks, gs[i:j])
			i = j
			continue
		}

		if at(i) == '-' && i > 0 && isWordPunct(at(i-1)) {
			if j, ok := dashRun(i); ok {
				chunks = append(chunks, gs[i:j])
				i = j
				continue
			}
		}

		end := n
		for k := i + 1; k <= n; k++ {
			// hyphen joining letters: "ab-cd" or "a-b-cd"
			if at(k) == '-' {
				behind := (isLetter(at(k-2)) && isLetter(at(k-1))) ||
					(isLetter(at(k-3)) && at(k-2) == '-' && isLetter(at(k-1)))
				ahead := isLetter(at(k+1)) &&
					(isLetter(at(k+2)) || (at(k+2) == '-' && isLetter(at(k+3))))
				if behind && ahead {
					end = k + 1
					break
				}
			}
			if k == n || isSpace(at(k)) {
				end = k
				break
			}
			if isWordPunct(at(k-1)) && at(k) == '-' {
				if _, ok := dashRun(k); ok {
					end = k
					break
				}
			}
		}
		chunks = append(chunks, gs[i:end])
		i = end
	}
	return chunks
}

func isBlank(chunk []glyph) bool {
	for _, g := range chunk {
		if !unicode.IsSpace(g.base) {
			return false
		}
	}
	return true
}

func wrapChunks(chunks [][]glyph, width int) []string {
	var lines []string

	// chunks are consumed from the front; long words are split in place
	for len(chunks) > 0 {
		var cur [][]glyph
		curLen := 0

		if isBlank(chunks[0]) && len(lines) > 0 {
			chunks = chunks[1:]
		}

		for len(chunks) > 0 {
			l := chunkWidth(chunks[0])
			if curLen+l > width {
				break
			}
			cur = append(cur, chunks[0])
			curLen += l
			chunks = chunks[1:]
		}

		if len(chunks) > 0 && chunkWidth(chunks[0]) > width {
			head, tail := breakLongWord(chunks[0], width, curLen)
			cur = append(cur, head)
			chunks[0] = tail
		}

		if len(cur) > 0 && isBlank(cur[len(cur)-1]) {
			cur = cur[:len(cur)-1]
		}

		if len(cur) > 0 {
			var b strings.Builder
			for _, c := range cur {
				for _, g := range c {
					b.WriteString(g.text)
				}
			}
			lines = append(lines, b.String())
		}
	}
	return lines
}

// breakLongWord returns the part of chunk that fits into the space left on the
// current line and the remainder.
func breakLongWord(chunk []glyph, width, curLen int) ([]glyph, []glyph) {
	spaceLeft := width - curLen
	if width < 1 {
		spaceLeft = 1
	}

	// glyphs that fit into spaceLeft columns
	fit, used := 0, 0
	for fit < len(chunk) && used+chunk[fit].width <= spaceLeft {
		used += chunk[fit].width
		fit++
	}
	if fit == 0 && curLen == 0 {
		fit = 1
	}

	end := fit
	if chunkWidth(chunk) > spaceLeft {
		hyphen := -1
		for i := fit - 1; i > 0; i-- {
			if chunk[i].base == '-' {
				hyphen = i
				break
			}
		}
		if hyphen > 0 {
			for _, g := range chunk[:hyphen] {
				if g.base != '-' {
					end = hyphen + 1
					break
				}
			}
		}
	}
	return chunk[:end], chunk[end:]
}

// Len is the display length of s in runes after NFC normalisation.
func Len(s string) int {
	return utf8.RuneCountInString(norm.NFC.String(s))
}
