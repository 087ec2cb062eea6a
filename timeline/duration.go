package timeline

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"gps_flyover/geometry"
)

// Breakpoints of the duration curve, in laps. Tuned by eye together with
// the durations below; the curve is continuous at each breakpoint.
const (
	lapsShort  = 1.0
	lapsMedium = 4.0
	lapsLong   = 10.0

	maxDuration = 57.0
)

// DurationForLaps maps the effective number of laps around the route's
// bounding box to a replay duration in time units.
func DurationForLaps(laps float64) float64 {
	switch {
	case laps < lapsShort:
		return laps*10 + 10
	case laps < lapsMedium:
		return (laps-lapsShort)*20/3 + 20
	case laps < lapsLong:
		return (laps-lapsMedium)*17/6 + 40
	default:
		return maxDuration
	}
}

// aspectCorrection weights laps by how square the bounds are: ratio 1
// counts full laps, a very elongated route counts about 0.71 of them.
func aspectCorrection(ratio float64) float64 {
	c := math.Sqrt(0.5)
	return -(1-c)*ratio*ratio + 2*(1-c)*ratio + c
}

// Laps estimates how many times the path length goes around the perimeter
// of the route's clamped bounding box.
func Laps(segments [][]geometry.TrackPoint, minSide float64) float64 {
	lengths := make([]float64, 0, len(segments))
	var all []geometry.TrackPoint
	for _, seg := range segments {
		lengths = append(lengths, geometry.PathLength(geometry.PlanarPoints(seg)))
		all = append(all, seg...)
	}
	fullLen := floats.Sum(lengths)

	size := geometry.ClampedSize(geometry.Bounds(geometry.PlanarPoints(all)), minSide, 0)
	perimeter := (size.Width + size.Height) * 2
	ratio := size.Min() / size.Max()
	return fullLen / perimeter * aspectCorrection(ratio)
}

// EstimateDuration returns the replay duration of a route from its shape.
func EstimateDuration(segments [][]geometry.TrackPoint, minSide float64) float64 {
	return DurationForLaps(Laps(segments, minSide))
}
