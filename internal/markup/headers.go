package markup

import "sort"

// DefaultHeaderThreshold is the largest font size still treated as body text.
const DefaultHeaderThreshold = 12.0

// HeaderLevels maps the font sizes of one page to heading levels. Sizes above
// the threshold are ranked largest first and numbered 1, 2, 3, ... by rank,
// not by absolute size; every other size maps to 0.
type HeaderLevels map[float64]int

// NewHeaderLevels ranks the distinct sizes in sizes.
func NewHeaderLevels(sizes []float64, threshold float64) HeaderLevels {
	distinct := make([]float64, 0, len(sizes))
	seen := make(map[float64]bool, len(sizes))
	for _, s := range sizes {
		if !seen[s] {
			seen[s] = true
			distinct = append(distinct, s)
		}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(distinct)))

	levels := make(HeaderLevels, len(distinct))
	next := 1
	for _, s := range distinct {
		if s > threshold {
			levels[s] = next
			next++
			continue
		}
		levels[s] = 0
	}
	return levels
}

// Level returns the heading level of size, 0 for body text.
func (h HeaderLevels) Level(size float64) int {
	return h[size]
}
