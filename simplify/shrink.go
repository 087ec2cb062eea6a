package simplify

import "gps_flyover/geometry"

// Count returns the number of points across all segments.
func Count(segments [][]geometry.TrackPoint) int {
	n := 0
	for _, seg := range segments {
		n += len(seg)
	}
	return n
}

// Tolerances lists the escalating tolerances tried by ShrinkToTarget:
// base, 2*base, ..., attempts*base.
func Tolerances(base float64, attempts int) []float64 {
	if attempts < 1 {
		return nil
	}
	ts := make([]float64, attempts)
	for i := range ts {
		ts[i] = base * float64(i+1)
	}
	return ts
}

// Segments simplifies every segment independently at tolerance. Segment
// boundaries are preserved.
func Segments(segments [][]geometry.TrackPoint, tolerance float64) [][]geometry.TrackPoint {
	out := make([][]geometry.TrackPoint, len(segments))
	for i, seg := range segments {
		out[i] = DouglasPeucker(seg, tolerance)
	}
	return out
}

// ShrinkToTarget simplifies segments with escalating tolerances until the
// total point count is at most target. Input that already fits is returned
// unchanged. If no tolerance meets the budget, the result of the last one
// is returned.
func ShrinkToTarget(segments [][]geometry.TrackPoint, base float64, target, attempts int) [][]geometry.TrackPoint {
	count := Count(segments)
	tracer().Debugf("shrink start: %d points, target %d", count, target)
	if count <= target {
		return segments
	}
	result := segments
	for _, tol := range Tolerances(base, attempts) {
		result = Segments(segments, tol)
		count = Count(result)
		tracer().Debugf("shrink at tolerance %.4g: %d points", tol, count)
		if count <= target {
			break
		}
	}
	tracer().Debugf("shrink end: %d points", count)
	return result
}
