package markup

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/thywilljoshua/redline/internal/words"
)

// ErrEmptyPage is returned for a page without words. It is a warning: the
// page contributes no output and processing continues.
var ErrEmptyPage = errors.New("page has no words")

// lineBreak is flushed at the end of every visual line; two trailing spaces
// make a hard line break in Markdown renderers.
const lineBreak = "  "

// StrikeTester answers whether a word box is crossed by a strikethrough rule.
type StrikeTester interface {
	Struck(box words.Box) bool
}

// Reconstructor renders pages. It holds configuration only; all formatting
// state lives in a per-page value so pages never leak markers into each other.
type Reconstructor struct {
	HeaderThreshold float64
}

// NewReconstructor returns a Reconstructor using the default header threshold.
func NewReconstructor() *Reconstructor {
	return &Reconstructor{HeaderThreshold: DefaultHeaderThreshold}
}

// Page renders one page. ws must be a single page's words in reading order;
// st may be nil when no strike data exists for the page.
func (r *Reconstructor) Page(ws []words.Word, st StrikeTester) (string, error) {
	if len(ws) == 0 {
		return "", ErrEmptyPage
	}
	page := ws[0].Page
	for i, w := range ws {
		if err := words.Validate(w, i); err != nil {
			return "", err
		}
		if w.Page != page {
			return "", &words.MalformedWordError{
				Page: w.Page, Index: i, Field: "page",
				Reason: fmt.Sprintf("word does not belong to page %d", page),
			}
		}
	}

	p := newPageState(ws, r.HeaderThreshold)
	for _, w := range ws {
		p.add(w, st)
	}
	return p.finish(), nil
}

// pageState is the line-start / mid-line machine for one page.
type pageState struct {
	out       strings.Builder
	fmt       Formatter
	levels    HeaderLevels
	leftmost  float64
	prevY     float64
	lineStart bool
	header    int
}

func newPageState(ws []words.Word, threshold float64) *pageState {
	sizes := make([]float64, len(ws))
	leftmost := ws[0].Box.X1
	for i, w := range ws {
		sizes[i] = w.FontSize
		leftmost = math.Min(leftmost, w.Box.X1)
	}
	first := ws[0]
	return &pageState{
		levels:   NewHeaderLevels(sizes, threshold),
		leftmost: leftmost,
		// start one blank line above the first word so it opens a line
		prevY:     first.Box.Y1 - first.FontSize*2,
		lineStart: true,
	}
}

func (p *pageState) add(w words.Word, st StrikeTester) {
	if w.Box.Y1 != p.prevY {
		p.out.WriteString(p.fmt.Flush(lineBreak))
		p.out.WriteString(strings.Repeat("\n", newlines(w.Box.Y1-p.prevY, w.FontSize)))
		p.out.WriteString(strings.Repeat(" ", indent(w.Box.X1-p.leftmost, w.FontSize)))
		p.header = p.levels.Level(w.FontSize)
		if p.header > 0 {
			p.out.WriteString(strings.Repeat("#", p.header))
			p.out.WriteByte(' ')
		}
		p.lineStart = true
		p.prevY = w.Box.Y1
	}

	// heading markers replace inline emphasis for the whole line
	var style Style
	if p.header == 0 {
		style = Style{Bold: w.Bold, Italic: w.Italic, Struck: st != nil && st.Struck(w.Box)}
	}
	text := p.fmt.Format(style, w.Text)
	if p.lineStart {
		text = strings.TrimLeftFunc(text, unicode.IsSpace)
		p.lineStart = false
	}
	p.out.WriteString(text)
}

func (p *pageState) finish() string {
	p.out.WriteString(p.fmt.Flush(""))
	p.out.WriteByte('\n')
	return p.out.String()
}

// newlines is the number of line feeds between two visual lines dy apart:
// one blank line per extra line height, capped at two and never negative.
func newlines(dy, fontSize float64) int {
	n := int(math.Floor(dy/fontSize)) - 1
	return max(0, min(2, n))
}

// indent is the number of spaces for a line starting dx right of the page's
// leftmost text.
func indent(dx, fontSize float64) int {
	return max(0, int(math.Floor(dx/fontSize)))
}
