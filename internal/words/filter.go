package words

// DefaultIgnore lists the regions of a bill page (2x raster coordinates) that
// never carry body text: the page number and the footer.
func DefaultIgnore() []Box {
	return []Box{
		{X1: 600, Y1: 180, X2: 625, Y2: 210},
		{X1: 310, Y1: 1380, X2: 520, Y2: 1420},
	}
}

// Filter drops words lying entirely within any ignore box. The input slice
// is not modified.
func Filter(ws []Word, ignore []Box) []Word {
	if len(ignore) == 0 {
		return ws
	}
	out := make([]Word, 0, len(ws))
	for _, w := range ws {
		if !ignored(w.Box, ignore) {
			out = append(out, w)
		}
	}
	return out
}

func ignored(b Box, ignore []Box) bool {
	for _, i := range ignore {
		if b.Within(i) {
			return true
		}
	}
	return false
}
