package markup

import (
	"fmt"
	"io"

	"github.com/thywilljoshua/redline/internal/words"
)

// Document appends rendered pages to w in ascending page order. Only the
// page being rendered is buffered.
type Document struct {
	w    io.Writer
	rec  *Reconstructor
	last int
}

// NewDocument writes pages rendered by rec to w. A nil rec uses the defaults.
func NewDocument(w io.Writer, rec *Reconstructor) *Document {
	if rec == nil {
		rec = NewReconstructor()
	}
	return &Document{w: w, rec: rec}
}

// WritePage renders and appends page number page. Pages must arrive in
// strictly increasing order. An empty page returns ErrEmptyPage and writes
// nothing; the document stays usable.
func (d *Document) WritePage(page int, ws []words.Word, st StrikeTester) error {
	if page <= d.last {
		return fmt.Errorf("page %d written after page %d", page, d.last)
	}
	d.last = page
	for i, w := range ws {
		if w.Page != page {
			return &words.MalformedWordError{
				Page: w.Page, Index: i, Field: "page",
				Reason: fmt.Sprintf("word handed in with page %d", page),
			}
		}
	}
	text, err := d.rec.Page(ws, st)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(d.w, text); err != nil {
		return fmt.Errorf("write page %d: %w", page, err)
	}
	return nil
}
