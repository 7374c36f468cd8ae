package raster

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNewIsWhite(t *testing.T) {
	r := New(4, 3)
	require.Len(t, r.Pix, 12)
	for _, v := range r.Pix {
		assert.Equal(t, White, v)
	}
	assert.Equal(t, White, r.At(-1, 0), "out of bounds reads are white")
}

func TestClone(t *testing.T) {
	r := New(3, 2)
	r.Set(1, 1, 0)
	c := r.Clone()
	assert.Equal(t, r, c)

	c.Mask(Region{X1: Abs(0), Y1: Abs(0), X2: FromWidth(0), Y2: FromHeight(0)})
	assert.Equal(t, uint8(0), r.At(1, 1))
	assert.Equal(t, White, c.At(1, 1))
}

func TestCoordParse(t *testing.T) {
	tests := []struct {
		in   string
		want Coord
	}{
		{"120", Abs(120)},
		{"h-170", FromHeight(-170)},
		{"H - 70", FromHeight(-70)},
		{"w", FromWidth(0)},
		{"w+2", FromWidth(2)},
		{"-5", Abs(-5)},
	}
	for _, tt := range tests {
		got, err := ParseCoord(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, got, mustParse(t, got.String()), "round trip of %q", tt.in)
	}

	for _, bad := range []string{"", "x", "h170", "w-", "12px"} {
		_, err := ParseCoord(bad)
		assert.Error(t, err, bad)
	}
}

func mustParse(t *testing.T, s string) Coord {
	t.Helper()
	c, err := ParseCoord(s)
	require.NoError(t, err)
	return c
}

func TestRegionYAML(t *testing.T) {
	var regions []Region
	err := yaml.Unmarshal([]byte(`
- {x1: 120, y1: h-170, x2: 230, y2: h-70}
- {x1: 0, y1: h-3, x2: w, y2: h}
`), &regions)
	require.NoError(t, err)
	assert.Equal(t, DefaultMasks(), regions)
}

func TestDefaultMasksResolve(t *testing.T) {
	masks := DefaultMasks()
	assert.Equal(t, Rect{120, 830, 230, 930}, masks[0].Resolve(600, 1000))
	assert.Equal(t, Rect{0, 997, 600, 1000}, masks[1].Resolve(600, 1000))
}

func TestMaskWhitensRegions(t *testing.T) {
	r := &Raster{Width: 300, Height: 300, Pix: make([]uint8, 300*300)} // all black
	rects := r.Mask(DefaultMasks()...)
	require.Len(t, rects, 2)

	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			inside := rects[0].Contains(x, y) || rects[1].Contains(x, y)
			if inside {
				require.Equal(t, White, r.At(x, y), "masked sample (%d,%d)", x, y)
			} else {
				require.Equal(t, uint8(0), r.At(x, y), "unmasked sample (%d,%d)", x, y)
			}
		}
	}
}

func TestFillClipsToRaster(t *testing.T) {
	r := &Raster{Width: 5, Height: 5, Pix: make([]uint8, 25)}
	r.Fill(Rect{X1: -10, Y1: 3, X2: 100, Y2: 100}, 7)
	assert.Equal(t, uint8(0), r.At(0, 2))
	assert.Equal(t, uint8(7), r.At(0, 3))
	assert.Equal(t, uint8(7), r.At(4, 4))

	// inverted rectangles are a no-op
	r.Fill(Rect{X1: 3, Y1: 0, X2: 1, Y2: 0}, 9)
	assert.Equal(t, uint8(0), r.At(2, 0))
}

func TestFromImageComposesAlphaOverWhite(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	img.Set(0, 0, color.NRGBA{0, 0, 0, 255})
	img.Set(1, 0, color.NRGBA{0, 0, 0, 0})
	img.Set(2, 0, color.NRGBA{255, 255, 255, 255})

	r := FromImage(img)
	assert.Equal(t, []uint8{0, 255, 255}, r.Pix)
}

func TestFromImageGraySubImage(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 4, 4))
	for i := range g.Pix {
		g.Pix[i] = uint8(i)
	}
	sub := g.SubImage(image.Rect(1, 1, 3, 3)).(*image.Gray)
	r := FromImage(sub)
	assert.Equal(t, 2, r.Width)
	assert.Equal(t, []uint8{5, 6, 9, 10}, r.Pix)
}

func TestDecodeAndLocator(t *testing.T) {
	dir := t.TempDir()
	g := image.NewGray(image.Rect(0, 0, 20, 10))
	for i := range g.Pix {
		g.Pix[i] = 255
	}
	g.SetGray(3, 4, color.Gray{Y: 10})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, g))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bga.png"), buf.Bytes(), 0o644))

	loc := Locator{Dir: dir}
	assert.Equal(t, filepath.Join(dir, "bga.png"), loc.Path(10))
	assert.True(t, loc.Exists(10))

	r, err := loc.Load(10)
	require.NoError(t, err)
	assert.Equal(t, 20, r.Width)
	assert.Equal(t, uint8(10), r.At(3, 4))
	assert.Equal(t, g.Pix, r.Image().Pix)
}

func TestLoadFailuresAreDecodeErrors(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bg2.png"), []byte("not an image"), 0o644))

	loc := Locator{Dir: dir}
	for _, page := range []int{1, 2} {
		_, err := loc.Load(page)
		var de *DecodeError
		require.True(t, errors.As(err, &de), "page %d", page)
		assert.Equal(t, page, de.Page)
		assert.Contains(t, de.Error(), loc.Path(page))
	}
}
