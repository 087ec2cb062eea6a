/*
Package camera synthesizes a camera path along a simplified route: where the
camera looks at a given key and how it rotates.

Headings follow the map rotation convention: the camera heading for a
segment is the negated geometry.Heading of that segment, so the direction of
travel points up on screen. A nil heading means "keep the current heading".

Short routes are followed point by point, rotating only at turn indexes,
points spaced roughly TurnSpacing time units of travel apart. Routes whose
replay takes longer than StableAfter pin the camera on a fixed anchor.

A Route is immutable. The sequential state of a replay lives in a Cursor
that callers thread through Position calls with non-decreasing keys.
*/
package camera

import (
	"github.com/npillmayer/schuko/tracing"
	"github.com/paulmach/orb"

	"gps_flyover/geometry"
)

// tracer writes to trace with key 'flyover'
func tracer() tracing.Trace {
	return tracing.Select("flyover")
}

// Options are the calibration constants of the camera.
type Options struct {
	StableAfter float64 // replay duration above which the camera is pinned
	TurnSpacing float64 // time units of travel between turn indexes
	RampSteps   int     // number of updates a heading ramp takes
}

// DefaultOptions returns the tuned camera constants.
func DefaultOptions() Options {
	return Options{
		StableAfter: 50,
		TurnSpacing: 3,
		RampSteps:   21,
	}
}

// Pose is where the camera looks at one instant.
type Pose struct {
	Index    int             // route segment the pose was resolved on
	Target   orb.Point       // planar look-at position
	Position geometry.LatLng // Target in geographic coordinates
	Heading  *float64        // nil: keep the previous heading
}

// Cursor carries the sequential state of a replay between Position calls.
type Cursor struct {
	Index int // last resolved route segment, only ever moves forward
	Ramp  Ramp
}

// Route answers camera queries along a point sequence.
type Route struct {
	points []geometry.TrackPoint
	anchor orb.Point
	stable bool
	turns  []int
	isTurn map[int]bool
	opts   Options
}

// NewRoute prepares a route over points. anchor is the look-at position in
// stable mode and duration the estimated replay duration.
func NewRoute(points []geometry.TrackPoint, anchor orb.Point, duration float64, opts Options) *Route {
	r := &Route{
		points: points,
		anchor: anchor,
		stable: duration > opts.StableAfter,
		opts:   opts,
	}
	r.turns = turnIndexes(points, duration, opts.TurnSpacing)
	r.isTurn = make(map[int]bool, len(r.turns))
	for _, i := range r.turns {
		r.isTurn[i] = true
	}
	tracer().Debugf("camera route: %d points, stable=%v, turns %v", len(points), r.stable, r.turns)
	return r
}

// turnIndexes marks point i as a turn when the next point or the previous
// turn is at least one interval of key away. The interval is the key
// covered in spacing time units.
func turnIndexes(points []geometry.TrackPoint, duration, spacing float64) []int {
	if duration <= 0 || len(points) <= 2 {
		return nil
	}
	span := points[len(points)-1].Key - points[0].Key
	interval := span / duration * spacing
	var turns []int
	lastTurn := 0
	for i := 1; i < len(points)-1; i++ {
		if points[i+1].Key-points[i].Key >= interval || points[i].Key-points[lastTurn].Key >= interval {
			turns = append(turns, i)
			lastTurn = i
		}
	}
	return turns
}

// Points returns the route's point sequence.
func (r *Route) Points() []geometry.TrackPoint { return r.points }

// Turns returns the turn indexes in ascending order.
func (r *Route) Turns() []int { return r.turns }

// Stable reports whether the camera is pinned to the anchor.
func (r *Route) Stable() bool { return r.stable }

// Anchor is the stable mode look-at position.
func (r *Route) Anchor() orb.Point { return r.anchor }

func (r *Route) pose(index int, p orb.Point, heading *float64) Pose {
	return Pose{Index: index, Target: p, Position: geometry.ToLatLng(p), Heading: heading}
}

func headingPtr(h float64) *float64 { return &h }

// segmentHeading is the camera heading while travelling from point i to i+1.
func (r *Route) segmentHeading(i int) float64 {
	return -geometry.Heading(r.points[i].Planar(), r.points[i+1].Planar())
}

// Start returns the pose for the first frame. ok is false for an empty
// route in follow mode.
func (r *Route) Start() (Pose, bool) {
	if r.stable {
		return r.pose(0, r.anchor, headingPtr(0)), true
	}
	switch len(r.points) {
	case 0:
		return Pose{}, false
	case 1:
		return r.pose(0, r.points[0].Planar(), nil), true
	}
	return r.pose(0, r.points[0].Planar(), headingPtr(r.segmentHeading(0))), true
}

// NewCursor returns the cursor positioned at the start pose.
func (r *Route) NewCursor() Cursor {
	var held float64
	if p, ok := r.Start(); ok && p.Heading != nil {
		held = *p.Heading
	}
	return Cursor{Index: 0, Ramp: NewRamp(held)}
}

// Position resolves the pose at key, searching forward from c.Index only.
// Keys must not decrease between calls on the same cursor. ok is false for
// an empty route or an invalid cursor.
func (r *Route) Position(key float64, c Cursor) (Pose, Cursor, bool) {
	if r.stable {
		return r.pose(c.Index, r.anchor, headingPtr(0)), c, true
	}
	if len(r.points) == 0 || c.Index < 0 {
		return Pose{}, c, false
	}
	last := len(r.points) - 1
	if c.Index >= last {
		c.Index = last
		return r.pose(last, r.points[last].Planar(), nil), c, true
	}

	index := -1
	for i := c.Index; i < last; i++ {
		if key < r.points[i].Key || key > r.points[i+1].Key {
			continue
		}
		index = i
		break
	}
	if index < 0 {
		c.Index = last
		return r.pose(last, r.points[last].Planar(), nil), c, true
	}

	current, next := r.points[index], r.points[index+1]
	if current.Key == next.Key {
		c.Index = index
		return r.pose(index, current.Planar(), nil), c, true
	}
	ratio := (key - current.Key) / (next.Key - current.Key)
	p := geometry.Interpolate(current.Planar(), next.Planar(), ratio)

	var heading *float64
	c.Ramp, heading = c.Ramp.Next(RampQuery{
		EntersTurn: index != c.Index && r.isTurn[index],
		Heading:    r.segmentHeading(index),
	}, r.opts.RampSteps)
	c.Index = index
	return r.pose(index, p, heading), c, true
}
