/*
Package geometry holds the planar primitives used to replay a track: vectors,
interpolation, the spherical Mercator projection and the camera heading
between two projected points.

Planar points are orb.Point values in projected meters. Geographic positions
are kept apart as LatLng so the two spaces cannot be mixed up by accident.
*/
package geometry

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Vector is the directed difference between two planar points.
type Vector struct {
	DX, DY float64
}

// NewVector returns the vector pointing from p1 to p2.
func NewVector(p1, p2 orb.Point) Vector {
	return Vector{DX: p2.X() - p1.X(), DY: p2.Y() - p1.Y()}
}

// Length is the magnitude of v.
func (v Vector) Length() float64 {
	return math.Hypot(v.DX, v.DY)
}

// Angle is the polar angle of v in degrees, in (-180, 180].
func (v Vector) Angle() float64 {
	return math.Atan2(v.DY, v.DX) / math.Pi * 180.0
}

// Angle returns the polar angle in degrees of the vector from p1 to p2.
func Angle(p1, p2 orb.Point) float64 {
	return NewVector(p1, p2).Angle()
}

// AngleBetween returns the signed angle in degrees turning from v1 to v2,
// in [-360, 360].
func AngleBetween(v1, v2 Vector) float64 {
	return v2.Angle() - v1.Angle()
}

// Interpolate returns the point at ratio along the segment p1 -> p2.
// Ratios outside [0, 1] extrapolate.
func Interpolate(p1, p2 orb.Point, ratio float64) orb.Point {
	v := NewVector(p1, p2)
	return orb.Point{p1.X() + ratio*v.DX, p1.Y() + ratio*v.DY}
}

// Distance is the euclidean distance between two planar points.
func Distance(p1, p2 orb.Point) float64 {
	return planar.Distance(p1, p2)
}

// PathLength sums the distances between consecutive points.
func PathLength(points []orb.Point) float64 {
	var l float64
	for i := 1; i < len(points); i++ {
		l += Distance(points[i-1], points[i])
	}
	return l
}
