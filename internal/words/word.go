// Package words defines the positioned word records every source produces
// and the checks applied to them before reconstruction.
package words

import (
	"fmt"
	"sort"
	"strings"
)

// Box is a word bounding box in raster coordinates: (X1, Y1) is the upper
// left corner, (X2, Y2) the lower right.
type Box struct {
	X1, Y1, X2, Y2 float64
}

// Scale multiplies every coordinate by f.
func (b Box) Scale(f float64) Box {
	return Box{X1: b.X1 * f, Y1: b.Y1 * f, X2: b.X2 * f, Y2: b.Y2 * f}
}

// Within reports whether b lies entirely inside o.
func (b Box) Within(o Box) bool {
	return b.X1 >= o.X1 && b.Y1 >= o.Y1 && b.X2 <= o.X2 && b.Y2 <= o.Y2
}

// Word is one positioned token of a rendered page.
type Word struct {
	Page     int // 1-based
	Box      Box
	Text     string
	Font     string
	FontSize float64
	Bold     bool
	Italic   bool
}

// Classify derives the emphasis flags from a font name the way PDF producers
// name their faces, e.g. "TimesNewRomanPS-BoldItalicMT".
func Classify(font string) (bold, italic bool) {
	f := strings.ToLower(font)
	return strings.Contains(f, "bold"), strings.Contains(f, "italic")
}

// MaxPage is the highest page number accepted.
const MaxPage = 100000

// GroupByPage splits ws into pages 1..N, where N is the highest page number
// seen. Pages without words come back as nil slices. Word order inside each
// page is preserved.
func GroupByPage(ws []Word) ([][]Word, error) {
	last := 0
	for i, w := range ws {
		if w.Page < 1 {
			return nil, &MalformedWordError{Page: w.Page, Index: i, Field: "page", Reason: "page numbers start at 1"}
		}
		if w.Page > MaxPage {
			return nil, &MalformedWordError{Page: w.Page, Index: i, Field: "page", Reason: fmt.Sprintf("page number above %d", MaxPage)}
		}
		last = max(last, w.Page)
	}
	pages := make([][]Word, last)
	for _, w := range ws {
		pages[w.Page-1] = append(pages[w.Page-1], w)
	}
	return pages, nil
}

// SortReadingOrder orders the words of one page top-to-bottom, then
// left-to-right. Words sharing a top edge keep their relative order when
// their left edges tie.
func SortReadingOrder(ws []Word) {
	sort.SliceStable(ws, func(i, j int) bool {
		if ws[i].Page != ws[j].Page {
			return ws[i].Page < ws[j].Page
		}
		if ws[i].Box.Y1 != ws[j].Box.Y1 {
			return ws[i].Box.Y1 < ws[j].Box.Y1
		}
		return ws[i].Box.X1 < ws[j].Box.X1
	})
}
