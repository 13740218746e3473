package printer

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// ESC/POS command constants
const (
	ESC = 0x1B
	GS  = 0x1D
	LF  = 0x0A
)

// Text alignment
const (
	AlignLeft   = 0
	AlignCenter = 1
	AlignRight  = 2
)

// CodePageWPC1251 is the ESC t table number of Windows-1251 (Cyrillic) on Epson-compatible printers.
const CodePageWPC1251 = 46

// Document builds an ESC/POS byte stream for thermal printers.
type Document struct {
	buf     bytes.Buffer
	width   int // print width in characters (default 32 for 58mm, 48 for 80mm)
	encoder *encoding.Encoder
	err     error
}

// NewDocument creates a new ESC/POS document with the given character width.
// Text is encoded as Windows-1251; runes outside it are replaced.
func NewDocument(charWidth int) *Document {
	if charWidth <= 0 {
		charWidth = 32
	}
	d := &Document{
		width:   charWidth,
		encoder: encoding.ReplaceUnsupported(charmap.Windows1251.NewEncoder()),
	}
	d.Init()
	d.SetCodePage(CodePageWPC1251)
	return d
}

// Width returns the print width in characters.
func (d *Document) Width() int {
	return d.width
}

// Init sends the ESC @ (initialize printer) command.
func (d *Document) Init() *Document {
	d.buf.Write([]byte{ESC, '@'})
	return d
}

// SetCodePage selects the character table with ESC t n.
func (d *Document) SetCodePage(n byte) *Document {
	d.buf.Write([]byte{ESC, 't', n})
	return d
}

// SetAlign sets text alignment: AlignLeft, AlignCenter, AlignRight.
func (d *Document) SetAlign(align int) *Document {
	d.buf.Write([]byte{ESC, 'a', byte(align)})
	return d
}

// FeedLines sends n line feeds.
func (d *Document) FeedLines(n int) *Document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(LF)
	}
	return d
}

// Text writes a line of text followed by a line feed.
func (d *Document) Text(s string) *Document {
	encoded, err := d.encoder.String(s)
	if err != nil && d.err == nil {
		d.err = fmt.Errorf("printer: failed to encode %q: %w", s, err)
	}
	d.buf.WriteString(encoded)
	d.buf.WriteByte(LF)
	return d
}

// PartialCut sends the partial cut command.
func (d *Document) PartialCut() *Document {
	d.buf.Write([]byte{GS, 'V', 0x01})
	return d
}

// Bytes returns the accumulated ESC/POS byte stream.
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}

// Err returns the first encoding error, if any.
func (d *Document) Err() error {
	return d.err
}

// EncodeTicket wraps an already laid out plain-text ticket into an ESC/POS
// job: init, code page, left-aligned lines, feed and partial cut.
func EncodeTicket(text string, charWidth int) ([]byte, error) {
	doc := NewDocument(charWidth).SetAlign(AlignLeft)
	for _, line := range strings.Split(text, "\n") {
		doc.Text(line)
	}
	doc.FeedLines(3).PartialCut()
	if err := doc.Err(); err != nil {
		return nil, err
	}
	return doc.Bytes(), nil
}
