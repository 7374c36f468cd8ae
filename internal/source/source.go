// Package source reads positioned word rows from the formats upstream tools
// produce: textricator CSV, a PDF's own text layer, hOCR, and (with the
// "ocr" build tag) Tesseract run directly on the page rasters.
//
// Every source returns words ordered by ascending page and, within a page,
// in reading order, with boxes in raster coordinates.
package source

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/thywilljoshua/redline/internal/raster"
	"github.com/thywilljoshua/redline/internal/words"
)

// Source produces the words of a document.
type Source interface {
	Words(ctx context.Context) ([]words.Word, error)
}

// Format names an input format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
	FormatHOCR Format = "hocr"
	FormatOCR  Format = "ocr"
)

// ErrOCRNotEnabled is returned by the OCR source in builds without the "ocr"
// tag. Rebuild with -tags ocr (Tesseract must be installed).
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// Options carries the settings sources need besides the input path.
type Options struct {
	// Scale converts source coordinates (PDF points) to raster pixels.
	// Ignored by hOCR and OCR input, which are already in pixels.
	Scale float64
	// Rasters locates page images; used by the OCR source.
	Rasters raster.Locator
	// Languages passed to Tesseract, e.g. "eng".
	Languages []string
}

// DetectFormat guesses the format from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".pdf":
		return FormatPDF, nil
	case ".hocr", ".html", ".htm", ".xhtml":
		return FormatHOCR, nil
	}
	return "", fmt.Errorf("cannot tell the input format of %s; pass --format", path)
}

// New builds the source for format reading path.
func New(format Format, path string, opts Options) (Source, error) {
	switch format {
	case FormatCSV:
		return &CSVSource{Path: path, Scale: opts.Scale}, nil
	case FormatPDF:
		return &PDFSource{Path: path, Scale: opts.Scale}, nil
	case FormatHOCR:
		return &HOCRSource{Path: path}, nil
	case FormatOCR:
		return &OCRSource{Rasters: opts.Rasters, Languages: opts.Languages}, nil
	}
	return nil, fmt.Errorf("unsupported input format %q", format)
}

func scaleOrOne(s float64) float64 {
	if s <= 0 {
		return 1
	}
	return s
}
