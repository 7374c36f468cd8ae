package source

import (
	"context"
	"fmt"
	"os"
	"strings"

	rpdf "rsc.io/pdf"

	"github.com/thywilljoshua/redline/internal/words"
)

// wordGap is the horizontal gap, as a fraction of the font size, above which
// two glyphs on one baseline belong to different words.
const wordGap = 0.15

// descent approximates how far glyphs reach below the baseline.
const descent = 0.2

// defaultPageHeight is US Letter, used when a page carries no MediaBox.
const defaultPageHeight = 792.0

// PDFSource reads words straight from a PDF's text layer.
type PDFSource struct {
	Path  string
	Scale float64
}

// Words implements Source.
func (s *PDFSource) Words(ctx context.Context) (out []words.Word, err error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	doc, err := rpdf.NewReader(f, fi.Size())
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.Path, err)
	}

	// rsc.io/pdf panics on content streams it cannot interpret
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("read %s: malformed PDF content: %v", s.Path, r)
		}
	}()

	scale := scaleOrOne(s.Scale)
	for i := 1; i <= doc.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p := doc.Page(i)
		if p.V.IsNull() {
			continue
		}
		ws := groupGlyphs(p.Content().Text, i, pageHeight(p.V), scale)
		words.SortReadingOrder(ws)
		out = append(out, ws...)
	}
	return out, nil
}

// pageHeight reads the MediaBox height, walking up the page tree since the
// box is inheritable.
func pageHeight(v rpdf.Value) float64 {
	for !v.IsNull() {
		if mb := v.Key("MediaBox"); mb.Len() == 4 {
			return mb.Index(3).Float64() - mb.Index(1).Float64()
		}
		v = v.Key("Parent")
	}
	return defaultPageHeight
}

// groupGlyphs joins the positioned glyphs of one page into words. A word ends
// at whitespace, at a change of font, size or baseline, or at a gap wider
// than wordGap. PDF y grows upwards, so boxes are flipped against height
// before scaling into raster space.
func groupGlyphs(glyphs []rpdf.Text, page int, height, scale float64) []words.Word {
	var (
		out  []words.Word
		cur  *rpdf.Text
		x2   float64
		text strings.Builder
	)
	flush := func() {
		if cur == nil {
			return
		}
		w := words.Word{
			Page: page,
			Box: words.Box{
				X1: cur.X,
				Y1: height - cur.Y - cur.FontSize,
				X2: x2,
				Y2: height - cur.Y + cur.FontSize*descent,
			}.Scale(scale),
			Text:     text.String(),
			Font:     cur.Font,
			FontSize: cur.FontSize,
		}
		w.Bold, w.Italic = words.Classify(w.Font)
		out = append(out, w)
		cur = nil
		text.Reset()
	}

	for i := range glyphs {
		g := &glyphs[i]
		if strings.TrimSpace(g.S) == "" {
			flush()
			continue
		}
		if cur != nil && (g.Font != cur.Font || g.FontSize != cur.FontSize || g.Y != cur.Y ||
			g.X < cur.X || g.X-x2 > wordGap*g.FontSize) {
			flush()
		}
		if cur == nil {
			cur = g
			x2 = g.X
		}
		text.WriteString(g.S)
		x2 = max(x2, g.X+g.W)
	}
	flush()
	return out
}
