package raster

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Rect is an integer pixel rectangle. Both corners are inclusive.
type Rect struct {
	X1, Y1, X2, Y2 int
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X1 && x <= r.X2 && y >= r.Y1 && y <= r.Y2
}

// Edge is the reference a Coord offset is measured from.
type Edge int

const (
	EdgeOrigin Edge = iota // absolute pixel
	EdgeWidth              // offset from the raster width
	EdgeHeight             // offset from the raster height
)

// Coord is a mask coordinate that may depend on the raster size, written as
// "120", "w", "h-170" or "w-3".
type Coord struct {
	Edge   Edge
	Offset int
}

// Abs returns an absolute coordinate.
func Abs(v int) Coord { return Coord{Edge: EdgeOrigin, Offset: v} }

// FromWidth returns a coordinate measured from the raster width.
func FromWidth(off int) Coord { return Coord{Edge: EdgeWidth, Offset: off} }

// FromHeight returns a coordinate measured from the raster height.
func FromHeight(off int) Coord { return Coord{Edge: EdgeHeight, Offset: off} }

// Resolve turns the coordinate into a pixel value for a width x height raster.
func (c Coord) Resolve(width, height int) int {
	switch c.Edge {
	case EdgeWidth:
		return width + c.Offset
	case EdgeHeight:
		return height + c.Offset
	default:
		return c.Offset
	}
}

func (c Coord) String() string {
	var base string
	switch c.Edge {
	case EdgeWidth:
		base = "w"
	case EdgeHeight:
		base = "h"
	default:
		return strconv.Itoa(c.Offset)
	}
	switch {
	case c.Offset > 0:
		return fmt.Sprintf("%s+%d", base, c.Offset)
	case c.Offset < 0:
		return fmt.Sprintf("%s%d", base, c.Offset)
	}
	return base
}

// ParseCoord parses the textual coordinate form accepted in config files.
func ParseCoord(s string) (Coord, error) {
	s = strings.ReplaceAll(strings.TrimSpace(strings.ToLower(s)), " ", "")
	if s == "" {
		return Coord{}, fmt.Errorf("empty coordinate")
	}
	var c Coord
	switch s[0] {
	case 'w':
		c.Edge = EdgeWidth
		s = s[1:]
	case 'h':
		c.Edge = EdgeHeight
		s = s[1:]
	}
	if s == "" {
		return c, nil
	}
	if c.Edge != EdgeOrigin && s[0] != '+' && s[0] != '-' {
		return Coord{}, fmt.Errorf("invalid coordinate offset %q", s)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return Coord{}, fmt.Errorf("invalid coordinate %q: %w", s, err)
	}
	c.Offset = n
	return c, nil
}

// UnmarshalYAML accepts both plain integers and "h-170" style strings.
func (c *Coord) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: coordinate must be a scalar", value.Line)
	}
	parsed, err := ParseCoord(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*c = parsed
	return nil
}

// MarshalYAML writes the coordinate in its textual form.
func (c Coord) MarshalYAML() (interface{}, error) {
	return c.String(), nil
}

// Region is a mask rectangle expressed relative to the raster size.
type Region struct {
	X1 Coord `yaml:"x1"`
	Y1 Coord `yaml:"y1"`
	X2 Coord `yaml:"x2"`
	Y2 Coord `yaml:"y2"`
}

// Resolve returns the pixel rectangle of the region for a raster size.
func (g Region) Resolve(width, height int) Rect {
	return Rect{
		X1: g.X1.Resolve(width, height),
		Y1: g.Y1.Resolve(width, height),
		X2: g.X2.Resolve(width, height),
		Y2: g.Y2.Resolve(width, height),
	}
}

// DefaultMasks covers the state seal printed in the lower left of bill pages
// and a 3px strip along the bottom edge left over by the renderer.
func DefaultMasks() []Region {
	return []Region{
		{X1: Abs(120), Y1: FromHeight(-170), X2: Abs(230), Y2: FromHeight(-70)},
		{X1: Abs(0), Y1: FromHeight(-3), X2: FromWidth(0), Y2: FromHeight(0)},
	}
}

// Fill sets every sample inside rect to v, clipping to the raster.
func (r *Raster) Fill(rect Rect, v uint8) {
	x1, x2 := max(rect.X1, 0), min(rect.X2, r.Width-1)
	y1, y2 := max(rect.Y1, 0), min(rect.Y2, r.Height-1)
	if x1 > x2 || y1 > y2 {
		return
	}
	for y := y1; y <= y2; y++ {
		row := r.Pix[y*r.Width : (y+1)*r.Width]
		for x := x1; x <= x2; x++ {
			row[x] = v
		}
	}
}

// Mask whitens every region in place and returns the resolved rectangles.
func (r *Raster) Mask(regions ...Region) []Rect {
	rects := make([]Rect, 0, len(regions))
	for _, g := range regions {
		rect := g.Resolve(r.Width, r.Height)
		r.Fill(rect, White)
		rects = append(rects, rect)
	}
	return rects
}
