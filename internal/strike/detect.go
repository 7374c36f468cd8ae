package strike

import (
	"github.com/thywilljoshua/redline/internal/raster"
)

// Detector masks a page raster and extracts its segments.
type Detector struct {
	Masks     []raster.Region
	Threshold uint8
}

// DefaultDetector uses the bill page masks and the standard ink threshold.
func DefaultDetector() Detector {
	return Detector{Masks: raster.DefaultMasks(), Threshold: DefaultDarkThreshold}
}

// Detect masks r in place and returns its segments.
func (d Detector) Detect(r *raster.Raster) []Segment {
	threshold := d.Threshold
	if threshold == 0 {
		threshold = DefaultDarkThreshold
	}
	r.Mask(d.Masks...)
	return Extract(r, threshold)
}

// DetectFile loads, masks and scans the raster at path.
func (d Detector) DetectFile(path string) ([]Segment, error) {
	r, err := raster.Load(path)
	if err != nil {
		return nil, err
	}
	return d.Detect(r), nil
}
