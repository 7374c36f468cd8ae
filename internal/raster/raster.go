// Package raster holds greyscale page images and the masking applied to them
// before strike detection.
//
// A Raster is a flattened, row-major grid of 8-bit intensity samples where 0
// is black and 255 is white. Rasters are transient: one is decoded per page,
// masked in place, scanned once and dropped.
package raster

import (
	"image"
	"image/color"
)

// White is the intensity written into masked regions.
const White uint8 = 255

// Raster is a width x height grid of intensity samples.
type Raster struct {
	Width  int
	Height int
	Pix    []uint8 // row-major, len == Width*Height
}

// New returns an all-white raster of the given size.
func New(width, height int) *Raster {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	pix := make([]uint8, width*height)
	for i := range pix {
		pix[i] = White
	}
	return &Raster{Width: width, Height: height, Pix: pix}
}

// At returns the sample at (x, y). Out of bounds reads are white.
func (r *Raster) At(x, y int) uint8 {
	if !r.InBounds(x, y) {
		return White
	}
	return r.Pix[y*r.Width+x]
}

// Set writes the sample at (x, y); out of bounds writes are ignored.
func (r *Raster) Set(x, y int, v uint8) {
	if !r.InBounds(x, y) {
		return
	}
	r.Pix[y*r.Width+x] = v
}

// InBounds reports whether (x, y) addresses a sample.
func (r *Raster) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < r.Width && y < r.Height
}

// Clone returns a copy that does not share samples with r.
func (r *Raster) Clone() *Raster {
	pix := make([]uint8, len(r.Pix))
	copy(pix, r.Pix)
	return &Raster{Width: r.Width, Height: r.Height, Pix: pix}
}

// Image exposes the raster as an *image.Gray sharing the same samples.
func (r *Raster) Image() *image.Gray {
	return &image.Gray{
		Pix:    r.Pix,
		Stride: r.Width,
		Rect:   image.Rect(0, 0, r.Width, r.Height),
	}
}

// FromImage converts any decoded image into a Raster. Colour images are
// reduced to luma with the ITU-R 601 weights; partially transparent pixels
// are composited over white first so empty canvas does not read as ink.
func FromImage(img image.Image) *Raster {
	b := img.Bounds()
	r := &Raster{Width: b.Dx(), Height: b.Dy(), Pix: make([]uint8, b.Dx()*b.Dy())}

	if g, ok := img.(*image.Gray); ok {
		for y := 0; y < r.Height; y++ {
			start := (y+b.Min.Y-g.Rect.Min.Y)*g.Stride + (b.Min.X - g.Rect.Min.X)
			copy(r.Pix[y*r.Width:(y+1)*r.Width], g.Pix[start:start+r.Width])
		}
		return r
	}

	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			cr, cg, cb, ca := img.At(x, y).RGBA()
			if ca < 0xffff {
				// premultiplied: add the white that shows through
				cr += 0xffff - ca
				cg += 0xffff - ca
				cb += 0xffff - ca
			}
			r.Pix[i] = color.GrayModel.Convert(color.RGBA64{
				R: uint16(min(cr, 0xffff)),
				G: uint16(min(cg, 0xffff)),
				B: uint16(min(cb, 0xffff)),
				A: 0xffff,
			}).(color.Gray).Y
			i++
		}
	}
	return r
}
