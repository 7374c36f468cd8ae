package source

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gardar/ocrchestra/pkg/hocr"

	"github.com/thywilljoshua/redline/internal/words"
)

// HOCRSource reads an hOCR document whose pixel coordinates match the page
// rasters. Pages are numbered by their position in the document.
type HOCRSource struct {
	Path string
}

// Words implements Source.
func (s *HOCRSource) Words(ctx context.Context) ([]words.Word, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, err
	}
	ws, err := ReadHOCR(data)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.Path, err)
	}
	return ws, nil
}

// ReadHOCR parses hOCR markup into words.
func ReadHOCR(data []byte) ([]words.Word, error) {
	doc, err := hocr.ParseHOCR(data)
	if err != nil {
		return nil, err
	}
	var out []words.Word
	for i, p := range doc.Pages {
		out = append(out, pageWords(p, i+1)...)
	}
	return out, nil
}

// pageWords flattens one hOCR page in reading order. Words inside an
// ocr_line take the line's top edge so a recognised line reads as one
// visual line even when individual glyph boxes wobble.
func pageWords(p hocr.Page, page int) []words.Word {
	var out []words.Word
	addLine := func(l hocr.Line) {
		for _, w := range l.Words {
			if ww, ok := hocrWord(w, &l, page); ok {
				out = append(out, ww)
			}
		}
	}
	addLoose := func(ws []hocr.Word) {
		for _, w := range ws {
			if ww, ok := hocrWord(w, nil, page); ok {
				out = append(out, ww)
			}
		}
	}
	addParagraph := func(par hocr.Paragraph) {
		for _, l := range par.Lines {
			addLine(l)
		}
		addLoose(par.Words)
	}

	for _, a := range p.Areas {
		for _, par := range a.Paragraphs {
			addParagraph(par)
		}
		for _, l := range a.Lines {
			addLine(l)
		}
		addLoose(a.Words)
	}
	for _, par := range p.Paragraphs {
		addParagraph(par)
	}
	for _, l := range p.Lines {
		addLine(l)
	}

	words.SortReadingOrder(out)
	return out
}

func hocrWord(w hocr.Word, line *hocr.Line, page int) (words.Word, bool) {
	text := strings.TrimSpace(w.Text)
	if text == "" {
		return words.Word{}, false
	}
	box := words.Box{X1: w.BBox.X1, Y1: w.BBox.Y1, X2: w.BBox.X2, Y2: w.BBox.Y2}
	if line != nil && line.BBox.Y2 > line.BBox.Y1 {
		box.Y1 = min(line.BBox.Y1, box.Y2)
	}

	size := metaFloat(w.Metadata, "x_fsize")
	if size <= 0 && line != nil {
		size = metaFloat(line.Metadata, "x_size")
	}
	if size <= 0 {
		size = box.Y2 - box.Y1
	}

	out := words.Word{
		Page:     page,
		Box:      box,
		Text:     text,
		Font:     w.Metadata["x_font"],
		FontSize: size,
	}
	out.Bold, out.Italic = words.Classify(out.Font)
	return out, true
}

func metaFloat(meta map[string]string, key string) float64 {
	v, ok := meta[key]
	if !ok {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0
	}
	return f
}
