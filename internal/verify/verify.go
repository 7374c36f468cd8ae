// Package verify renders a diagnostic PDF showing what strike detection saw:
// each page raster with its detected segments drawn over it and the boxes of
// struck words outlined.
package verify

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"io"
	"os"

	"codeberg.org/go-pdf/fpdf"

	"github.com/thywilljoshua/redline/internal/raster"
	"github.com/thywilljoshua/redline/internal/strike"
	"github.com/thywilljoshua/redline/internal/words"
)

// Page is one raster and what was found on it.
type Page struct {
	Raster   *raster.Raster
	Segments []strike.Segment
	Struck   []words.Box
}

// palette cycles through every mix of 0, 127 and 255 per channel except pure
// black and pure white, so neighbouring segments are told apart.
var palette = func() [][3]int {
	levels := []int{0, 127, 255}
	var out [][3]int
	for _, r := range levels {
		for _, g := range levels {
			for _, b := range levels {
				out = append(out, [3]int{r, g, b})
			}
		}
	}
	return out[1 : len(out)-1]
}()

// Write renders pages to w, one PDF page per raster at the raster's pixel
// size in points.
func Write(w io.Writer, pages []Page) error {
	if len(pages) == 0 {
		return errors.New("verify: no pages to render")
	}
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, p := range pages {
		if p.Raster == nil {
			return fmt.Errorf("verify: page %d has no raster", i+1)
		}
		wd, ht := float64(p.Raster.Width), float64(p.Raster.Height)
		pdf.AddPageFormat("P", fpdf.SizeType{Wd: wd, Ht: ht})

		var img bytes.Buffer
		if err := png.Encode(&img, p.Raster.Image()); err != nil {
			return fmt.Errorf("verify: encode page %d: %w", i+1, err)
		}
		name := fmt.Sprintf("page%d", i+1)
		opts := fpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
		pdf.RegisterImageOptionsReader(name, opts, &img)
		pdf.ImageOptions(name, 0, 0, wd, ht, false, opts, 0, "")

		pdf.SetLineWidth(1)
		for j, s := range p.Segments {
			c := palette[j%len(palette)]
			pdf.SetDrawColor(c[0], c[1], c[2])
			y := float64(s.Y1) + 0.5
			pdf.Line(float64(s.X1), y, float64(s.X2+1), y)
		}

		pdf.SetDrawColor(255, 0, 0)
		for _, b := range p.Struck {
			pdf.Rect(b.X1, b.Y1, b.X2-b.X1, b.Y2-b.Y1, "D")
		}
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	return pdf.Output(w)
}

// WriteFile renders pages to a new file at path.
func WriteFile(path string, pages []Page) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, pages); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
