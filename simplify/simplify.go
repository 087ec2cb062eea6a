/*
Package simplify reduces recorded tracks with a time-synchronized variant of
the Douglas-Peucker algorithm.

The classic algorithm measures how far a point lies from the chord between
the kept neighbours. Here the point is compared with the position on the
chord at the point's own key fraction instead, so a point that is spatially
on the line but far ahead or behind in key (time) is still significant.
*/
package simplify

import (
	"github.com/npillmayer/schuko/tracing"

	"gps_flyover/geometry"
)

// tracer writes to trace with key 'flyover'
func tracer() tracing.Trace {
	return tracing.Select("flyover")
}

// SyncedDistance returns the time-synchronized distance of p to the chord
// first -> last. When first and last share a key the distance is the mean of
// the distances from p to both ends.
func SyncedDistance(first, last, p geometry.TrackPoint) float64 {
	span := last.Key - first.Key
	if span == 0 {
		return (geometry.Distance(p.Planar(), first.Planar()) +
			geometry.Distance(p.Planar(), last.Planar())) / 2
	}
	ratio := (p.Key - first.Key) / span
	onChord := geometry.Interpolate(first.Planar(), last.Planar(), ratio)
	return geometry.Distance(p.Planar(), onChord)
}

// DouglasPeucker returns the subsequence of points that must be kept so that
// no dropped point lies farther than tolerance from its chord. Sequences of
// fewer than 3 points are returned unchanged. The first and last point are
// always kept.
func DouglasPeucker(points []geometry.TrackPoint, tolerance float64) []geometry.TrackPoint {
	if len(points) < 3 {
		return points
	}
	keep := make([]bool, len(points))
	keep[0] = true
	keep[len(points)-1] = true
	reduce(points, 0, len(points)-1, tolerance, keep)

	out := make([]geometry.TrackPoint, 0, len(points))
	for i, k := range keep {
		if k {
			out = append(out, points[i])
		}
	}
	return out
}

func reduce(points []geometry.TrackPoint, first, last int, tolerance float64, keep []bool) {
	for last > first+1 {
		maxDist := 0.0
		maxIndex := 0
		for i := first + 1; i < last; i++ {
			d := SyncedDistance(points[first], points[last], points[i])
			if d > maxDist {
				maxDist = d
				maxIndex = i
			}
		}
		if maxDist <= tolerance {
			return
		}
		keep[maxIndex] = true
		reduce(points, first, maxIndex, tolerance, keep)
		first = maxIndex
	}
}
