package raster

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	// Decoders registered for image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DecodeError reports a page raster that could not be read as an intensity
// grid. Callers treat it as "no strike data" for the page, not as fatal.
type DecodeError struct {
	Page int // 0 when not known
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Page > 0 {
		return fmt.Sprintf("page %d: cannot decode raster %s: %v", e.Page, e.Path, e.Err)
	}
	return fmt.Sprintf("cannot decode raster %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Decode reads an encoded image (PNG, JPEG, GIF, BMP, TIFF or WebP).
func Decode(r io.Reader) (*Raster, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("image has no pixels")
	}
	return FromImage(img), nil
}

// Load opens and decodes the image at path. Every failure is a *DecodeError.
func Load(path string) (*Raster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	defer f.Close()
	r, err := Decode(f)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	return r, nil
}

// DefaultPattern matches the background images pdf2htmlEX writes with
// --embed-image 0: bg1.png, bg2.png, ... bga.png, numbered in hex.
const DefaultPattern = "bg%x.png"

// Locator maps page numbers to raster files.
type Locator struct {
	Dir     string
	Pattern string // printf pattern receiving the 1-based page number
}

// Path returns the raster path for page.
func (l Locator) Path(page int) string {
	pattern := l.Pattern
	if pattern == "" {
		pattern = DefaultPattern
	}
	return filepath.Join(l.Dir, fmt.Sprintf(pattern, page))
}

// Load decodes the raster of page, tagging any error with the page number.
func (l Locator) Load(page int) (*Raster, error) {
	r, err := Load(l.Path(page))
	if err != nil {
		if de, ok := err.(*DecodeError); ok {
			de.Page = page
		}
		return nil, err
	}
	return r, nil
}

// Exists reports whether the raster of page is present on disk.
func (l Locator) Exists(page int) bool {
	_, err := os.Stat(l.Path(page))
	return err == nil
}
