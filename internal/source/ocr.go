//go:build ocr

package source

import (
	"context"
	"fmt"

	"github.com/gardar/ocrchestra/pkg/hocr"
	"github.com/otiai10/gosseract/v2"

	"github.com/thywilljoshua/redline/internal/raster"
	"github.com/thywilljoshua/redline/internal/words"
)

// OCRSource recognises the page rasters with Tesseract. Pages are read from
// 1 upwards until the locator finds no image.
type OCRSource struct {
	Rasters   raster.Locator
	Languages []string
}

// Words implements Source.
func (s *OCRSource) Words(ctx context.Context) ([]words.Word, error) {
	client := gosseract.NewClient()
	defer client.Close()
	if len(s.Languages) > 0 {
		if err := client.SetLanguage(s.Languages...); err != nil {
			return nil, fmt.Errorf("set OCR language: %w", err)
		}
	}

	var out []words.Word
	for page := 1; s.Rasters.Exists(page); page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := s.Rasters.Path(page)
		if err := client.SetImage(path); err != nil {
			return nil, fmt.Errorf("page %d: set image %s: %w", page, path, err)
		}
		markup, err := client.HOCRText()
		if err != nil {
			return nil, fmt.Errorf("page %d: OCR failed: %w", page, err)
		}
		doc, err := hocr.ParseHOCR([]byte(markup))
		if err != nil {
			return nil, fmt.Errorf("page %d: parse hOCR: %w", page, err)
		}
		for _, p := range doc.Pages {
			out = append(out, pageWords(p, page)...)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no text recognised in %s", s.Rasters.Path(1))
	}
	return out, nil
}
