// Package strike finds strikethrough rules on page rasters and answers
// whether a word box is crossed by one.
package strike

import (
	"fmt"

	"github.com/thywilljoshua/redline/internal/raster"
)

// DefaultDarkThreshold is the intensity below which a sample counts as ink.
const DefaultDarkThreshold uint8 = 200

// Segment is a maximal run of dark samples on a single raster row.
// Y1 always equals Y2 and X1 <= X2; both ends are inclusive.
type Segment struct {
	X1, Y1, X2, Y2 int
}

// Len returns the number of samples in the run.
func (s Segment) Len() int { return s.X2 - s.X1 + 1 }

func (s Segment) String() string {
	return fmt.Sprintf("(%d, %d, %d, %d)", s.X1, s.Y1, s.X2, s.Y2)
}

// Extract scans r once, row by row and left to right, and returns every
// maximal horizontal run of samples darker than threshold. A run ends at the
// first light sample or at the end of its row; runs never join across rows
// or across a gap, so a rule broken by a single light sample yields two
// segments.
func Extract(r *raster.Raster, threshold uint8) []Segment {
	w := r.Width
	if w <= 0 || r.Height <= 0 {
		return nil
	}

	var segs []Segment
	open := false
	startX, row := 0, 0
	for i, v := range r.Pix {
		x, y := i%w, i/w
		if open && y != row {
			segs = append(segs, Segment{X1: startX, Y1: row, X2: w - 1, Y2: row})
			open = false
		}
		if v < threshold {
			if !open {
				open, startX, row = true, x, y
			}
			continue
		}
		if open {
			segs = append(segs, Segment{X1: startX, Y1: row, X2: x - 1, Y2: row})
			open = false
		}
	}
	if open {
		segs = append(segs, Segment{X1: startX, Y1: row, X2: w - 1, Y2: row})
	}
	return segs
}
