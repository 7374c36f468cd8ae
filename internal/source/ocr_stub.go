//go:build !ocr

package source

import (
	"context"

	"github.com/thywilljoshua/redline/internal/raster"
	"github.com/thywilljoshua/redline/internal/words"
)

// OCRSource is the stub used when the "ocr" build tag is not set.
type OCRSource struct {
	Rasters   raster.Locator
	Languages []string
}

// Words always returns ErrOCRNotEnabled.
func (s *OCRSource) Words(ctx context.Context) ([]words.Word, error) {
	return nil, ErrOCRNotEnabled
}
