package geometry

import (
	"math"

	"github.com/paulmach/orb"
)

// Size is the extent of a bounding box in planar units.
type Size struct {
	Width, Height float64
}

// Min returns the smaller side.
func (s Size) Min() float64 { return math.Min(s.Width, s.Height) }

// Max returns the larger side.
func (s Size) Max() float64 { return math.Max(s.Width, s.Height) }

// Bounds returns the planar bounding box of points. It is the zero Bound for
// an empty slice.
func Bounds(points []orb.Point) orb.Bound {
	if len(points) == 0 {
		return orb.Bound{}
	}
	return orb.MultiPoint(points).Bound()
}

// ClampedSize returns the size of b with each side at least minSide. A
// positive aspect (width / height) widens the shorter side until the box
// has that aspect ratio.
func ClampedSize(b orb.Bound, minSide, aspect float64) Size {
	s := Size{
		Width:  math.Max(minSide, math.Abs(b.Right()-b.Left())),
		Height: math.Max(minSide, math.Abs(b.Top()-b.Bottom())),
	}
	if aspect <= 0 {
		return s
	}
	ratio := s.Width / s.Height
	if ratio > aspect {
		s.Height = s.Width / aspect
	} else if ratio < aspect {
		s.Width = s.Height * aspect
	}
	return s
}
