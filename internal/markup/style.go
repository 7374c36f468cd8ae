// Package markup turns a page of positioned, styled words into a plain-text
// stream with nested emphasis markers, indentation and heading prefixes.
package markup

import "strings"

// Inline markers written around styled runs.
const (
	ItalicMarker = "_"
	BoldMarker   = "**"
	StruckMarker = "~~"
)

// Style is the emphasis requested for one token.
type Style struct {
	Bold   bool
	Italic bool
	Struck bool
}

// Any reports whether any emphasis is requested.
func (s Style) Any() bool { return s.Bold || s.Italic || s.Struck }

// Formatter tracks which markers are open in the emitted stream and writes
// the minimal transition in front of each token. Each kind is open at most
// once, so markers open in the order italic, bold, struck and close in the
// order struck, bold, italic; pairing only needs the same literal marker.
//
// The zero value has nothing open.
type Formatter struct {
	open Style
}

// Open returns the markers currently open.
func (f *Formatter) Open() Style { return f.open }

// Reset forgets every open marker without closing it.
func (f *Formatter) Reset() { f.open = Style{} }

// Format returns the text to append for token rendered with style s.
func (f *Formatter) Format(s Style, token string) string {
	var b strings.Builder
	if s.Any() {
		b.WriteByte(' ')
	}

	if s.Italic && !f.open.Italic {
		f.open.Italic = true
		b.WriteString(ItalicMarker)
	}
	if s.Bold && !f.open.Bold {
		f.open.Bold = true
		b.WriteString(BoldMarker)
	}
	if s.Struck && !f.open.Struck {
		f.open.Struck = true
		b.WriteString(StruckMarker)
	}

	closed := false
	if !s.Struck && f.open.Struck {
		f.open.Struck = false
		b.WriteString(StruckMarker)
		closed = true
	}
	if !s.Bold && f.open.Bold {
		f.open.Bold = false
		b.WriteString(BoldMarker)
		closed = true
	}
	if !s.Italic && f.open.Italic {
		f.open.Italic = false
		b.WriteString(ItalicMarker)
		closed = true
	}
	if closed {
		b.WriteByte(' ')
	}

	if b.Len() == 0 {
		b.WriteByte(' ')
	}
	b.WriteString(token)
	return b.String()
}

// Flush closes every open marker and appends token unstyled.
func (f *Formatter) Flush(token string) string {
	return f.Format(Style{}, token)
}
