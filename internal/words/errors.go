package words

import (
	"fmt"
	"math"
)

// MalformedWordError is an input-contract violation: a word is missing a
// required field or carries an impossible value. It is fatal for the run.
type MalformedWordError struct {
	Page   int
	Index  int // position of the word in its page or source, -1 if unknown
	Field  string
	Reason string
}

func (e *MalformedWordError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("malformed word on page %d: %s: %s", e.Page, e.Field, e.Reason)
	}
	return fmt.Sprintf("malformed word %d on page %d: %s: %s", e.Index, e.Page, e.Field, e.Reason)
}

// Validate checks the fields reconstruction depends on. Empty text is
// allowed: extractors emit it for spacing glyphs.
func Validate(w Word, index int) error {
	bad := func(field, reason string) error {
		return &MalformedWordError{Page: w.Page, Index: index, Field: field, Reason: reason}
	}
	if w.Page < 1 {
		return bad("page", fmt.Sprintf("invalid page number %d", w.Page))
	}
	for _, c := range []struct {
		name string
		v    float64
	}{{"ulx", w.Box.X1}, {"uly", w.Box.Y1}, {"lrx", w.Box.X2}, {"lry", w.Box.Y2}} {
		if math.IsNaN(c.v) || math.IsInf(c.v, 0) {
			return bad(c.name, "not a finite number")
		}
	}
	if w.Box.X2 < w.Box.X1 {
		return bad("lrx", fmt.Sprintf("right edge %g left of left edge %g", w.Box.X2, w.Box.X1))
	}
	if w.Box.Y2 < w.Box.Y1 {
		return bad("lry", fmt.Sprintf("bottom edge %g above top edge %g", w.Box.Y2, w.Box.Y1))
	}
	if math.IsNaN(w.FontSize) || math.IsInf(w.FontSize, 0) || w.FontSize <= 0 {
		return bad("fontSize", fmt.Sprintf("invalid font size %g", w.FontSize))
	}
	return nil
}
