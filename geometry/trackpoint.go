package geometry

import "github.com/paulmach/orb"

// TrackPoint is a retained track position together with its key, the
// cumulative distance along the track. Keys are non-decreasing within a
// segment and double as the time axis of the replay.
type TrackPoint struct {
	Pos    LatLng
	Key    float64
	planar orb.Point
}

// NewTrackPoint projects pos once and keeps the result alongside it.
func NewTrackPoint(pos LatLng, key float64) TrackPoint {
	return TrackPoint{Pos: pos, Key: key, planar: ToPlanar(pos)}
}

// PlanarTrackPoint builds a track point from an already projected position.
func PlanarTrackPoint(p orb.Point, key float64) TrackPoint {
	return TrackPoint{Pos: ToLatLng(p), Key: key, planar: p}
}

// Planar is the Mercator projection of the point's position.
func (tp TrackPoint) Planar() orb.Point {
	return tp.planar
}

// Flatten concatenates segments into one point sequence.
func Flatten(segments [][]TrackPoint) []TrackPoint {
	n := 0
	for _, seg := range segments {
		n += len(seg)
	}
	flat := make([]TrackPoint, 0, n)
	for _, seg := range segments {
		flat = append(flat, seg...)
	}
	return flat
}

// PlanarPoints returns the projected positions of points.
func PlanarPoints(points []TrackPoint) []orb.Point {
	out := make([]orb.Point, len(points))
	for i, p := range points {
		out[i] = p.planar
	}
	return out
}
