package strike

import (
	"sort"

	"github.com/thywilljoshua/redline/internal/words"
)

// IsStruck reports whether any segment crosses box: the segment's row lies
// within the box's vertical span and the horizontal extents overlap.
func IsStruck(segments []Segment, box words.Box) bool {
	for _, s := range segments {
		if crosses(s, box) {
			return true
		}
	}
	return false
}

func crosses(s Segment, box words.Box) bool {
	y := float64(s.Y1)
	return box.Y1 <= y && box.Y2 >= y &&
		box.X1 <= float64(s.X2) && box.X2 >= float64(s.X1)
}

// Index holds one page's segments ordered by row so a word only looks at the
// rows its box spans. A nil *Index has no segments.
type Index struct {
	segs []Segment
}

// NewIndex copies segs into a row-ordered index.
func NewIndex(segs []Segment) *Index {
	sorted := make([]Segment, len(segs))
	copy(sorted, segs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Y1 < sorted[j].Y1 })
	return &Index{segs: sorted}
}

// Len returns the number of indexed segments.
func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.segs)
}

// Segments returns the indexed segments in row order.
func (ix *Index) Segments() []Segment {
	if ix == nil {
		return nil
	}
	return ix.segs
}

// Struck answers IsStruck for box against the indexed page.
func (ix *Index) Struck(box words.Box) bool {
	if ix == nil || len(ix.segs) == 0 {
		return false
	}
	first := sort.Search(len(ix.segs), func(i int) bool { return float64(ix.segs[i].Y1) >= box.Y1 })
	for _, s := range ix.segs[first:] {
		if float64(s.Y1) > box.Y2 {
			break
		}
		if crosses(s, box) {
			return true
		}
	}
	return false
}
