package strike

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thywilljoshua/redline/internal/raster"
	"github.com/thywilljoshua/redline/internal/words"
)

// ink paints a horizontal run of black samples.
func ink(r *raster.Raster, x1, x2, y int) {
	for x := x1; x <= x2; x++ {
		r.Set(x, y, 0)
	}
}

func TestExtractSingleRuns(t *testing.T) {
	r := raster.New(20, 4)
	ink(r, 3, 8, 1)
	ink(r, 12, 12, 1)
	ink(r, 0, 4, 3)

	assert.Equal(t, []Segment{
		{3, 1, 8, 1},
		{12, 1, 12, 1},
		{0, 3, 4, 3},
	}, Extract(r, DefaultDarkThreshold))
}

func TestExtractNeverJoinsRows(t *testing.T) {
	r := raster.New(10, 3)
	ink(r, 6, 9, 0) // runs to the right edge
	ink(r, 0, 2, 1) // starts at the left edge of the next row
	ink(r, 0, 9, 2) // whole last row

	assert.Equal(t, []Segment{
		{6, 0, 9, 0},
		{0, 1, 2, 1},
		{0, 2, 9, 2},
	}, Extract(r, DefaultDarkThreshold))
}

func TestExtractSplitsOnSingleGap(t *testing.T) {
	r := raster.New(12, 1)
	ink(r, 1, 10, 0)
	r.Set(5, 0, 230) // one anti-aliased sample

	assert.Equal(t, []Segment{{1, 0, 4, 0}, {6, 0, 10, 0}}, Extract(r, DefaultDarkThreshold))
}

func TestExtractThreshold(t *testing.T) {
	r := raster.New(3, 1)
	r.Pix = []uint8{199, 200, 201}
	assert.Equal(t, []Segment{{0, 0, 0, 0}}, Extract(r, 200))
	assert.Empty(t, Extract(raster.New(0, 0), 200))
}

func randomRaster(seed int64, w, h int) *raster.Raster {
	rng := rand.New(rand.NewSource(seed))
	r := raster.New(w, h)
	for i := range r.Pix {
		r.Pix[i] = uint8(rng.Intn(256))
	}
	return r
}

func TestExtractContiguityAndDeterminism(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		r := randomRaster(seed, 37, 23)
		segs := Extract(r, DefaultDarkThreshold)
		require.Equal(t, segs, Extract(r, DefaultDarkThreshold), "deterministic")

		dark := 0
		for _, v := range r.Pix {
			if v < DefaultDarkThreshold {
				dark++
			}
		}
		covered := 0
		for _, s := range segs {
			require.Equal(t, s.Y1, s.Y2)
			require.LessOrEqual(t, s.X1, s.X2)
			for x := s.X1; x <= s.X2; x++ {
				require.Less(t, r.At(x, s.Y1), DefaultDarkThreshold, "segment %v sample %d", s, x)
			}
			if s.X1 > 0 {
				require.GreaterOrEqual(t, r.At(s.X1-1, s.Y1), DefaultDarkThreshold, "segment %v not maximal on the left", s)
			}
			if s.X2 < r.Width-1 {
				require.GreaterOrEqual(t, r.At(s.X2+1, s.Y1), DefaultDarkThreshold, "segment %v not maximal on the right", s)
			}
			covered += s.Len()
		}
		assert.Equal(t, dark, covered, "every dark sample belongs to exactly one segment")
	}
}

func TestDetectRespectsMasks(t *testing.T) {
	r := &raster.Raster{Width: 400, Height: 400, Pix: make([]uint8, 400*400)}
	d := DefaultDetector()
	rects := make([]raster.Rect, 0, len(d.Masks))
	for _, m := range d.Masks {
		rects = append(rects, m.Resolve(r.Width, r.Height))
	}

	segs := d.Detect(r)
	require.NotEmpty(t, segs)
	for _, s := range segs {
		for _, rect := range rects {
			inside := rect.Contains(s.X1, s.Y1) && rect.Contains(s.X2, s.Y2)
			assert.False(t, inside, "segment %v inside mask %v", s, rect)
		}
	}
	for _, rect := range rects {
		assert.Equal(t, raster.White, r.At(rect.X1, rect.Y1))
	}
}

func TestIsStruck(t *testing.T) {
	segs := []Segment{{100, 200, 250, 200}}

	assert.True(t, IsStruck(segs, words.Box{X1: 120, Y1: 195, X2: 180, Y2: 205}))
	assert.False(t, IsStruck(segs, words.Box{X1: 300, Y1: 195, X2: 350, Y2: 205}), "no horizontal overlap")
	assert.False(t, IsStruck(segs, words.Box{X1: 120, Y1: 201, X2: 180, Y2: 215}), "rule above the word")
	assert.True(t, IsStruck(segs, words.Box{X1: 250, Y1: 200, X2: 260, Y2: 200}), "edges touch")
	assert.False(t, IsStruck(nil, words.Box{X1: 120, Y1: 195, X2: 180, Y2: 205}))
}

func TestIndexMatchesLinearScan(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	var segs []Segment
	for i := 0; i < 200; i++ {
		x := rng.Intn(500)
		y := rng.Intn(500)
		segs = append(segs, Segment{x, y, x + rng.Intn(60), y})
	}
	ix := NewIndex(segs)
	require.Equal(t, len(segs), ix.Len())

	for i := 0; i < 500; i++ {
		x, y := float64(rng.Intn(500)), float64(rng.Intn(500))
		box := words.Box{X1: x, Y1: y, X2: x + float64(rng.Intn(80)), Y2: y + float64(rng.Intn(20))}
		require.Equal(t, IsStruck(segs, box), ix.Struck(box), "box %+v", box)
	}
}

func TestNilIndex(t *testing.T) {
	var ix *Index
	assert.Equal(t, 0, ix.Len())
	assert.Nil(t, ix.Segments())
	assert.False(t, ix.Struck(words.Box{X2: 10, Y2: 10}))
}
