package camera

import "gps_flyover/geometry"

// Ramp is the heading easing state of a camera following a route. The zero
// value is idle with a held heading of 0.
//
// While idle the camera keeps whatever heading it last showed. Entering a
// turn starts a ramp that moves the heading from Base towards the heading of
// the current segment in Steps equal increments, always along the shorter
// arc.
//
// A turn entered while a ramp is still running restarts the ramp from the
// heading shown at that moment, not from Held. Starting over from Held would
// make the view jump back by the part of the previous turn already shown.
type Ramp struct {
	Active bool
	Step   int
	Base   float64 // heading the ramp started from, in (-180, 180]
	Target float64 // latest target, possibly shifted by 360 to stay near Base
	Held   float64 // baseline for the next ramp
}

// RampQuery is one camera update as seen by the ramp.
type RampQuery struct {
	EntersTurn bool    // the camera moved onto a turn segment it was not on before
	Heading    float64 // camera heading of the current segment
}

// NewRamp returns an idle ramp holding heading.
func NewRamp(heading float64) Ramp {
	return Ramp{Held: heading}
}

// Value is the heading emitted at the current step.
func (r Ramp) Value(steps int) float64 {
	if !r.Active || steps <= 0 {
		return r.Held
	}
	return r.Base + (r.Target-r.Base)/float64(steps)*float64(r.Step)
}

// Next advances the ramp by one query. It returns the new state and the
// heading to show, or nil when the camera should keep its current heading.
func (r Ramp) Next(q RampQuery, steps int) (Ramp, *float64) {
	if q.EntersTurn {
		base := r.Held
		if r.Active {
			base = r.Value(steps)
		}
		r = Ramp{Active: true, Base: geometry.NormalizeAngle(base), Held: r.Held}
	}
	if r.Active && r.Step < steps {
		r.Step++
		r.Target = shortestTarget(r.Base, q.Heading)
		h := r.Value(steps)
		return r, &h
	}
	if r.Active {
		// ramp finished: the segment heading becomes the baseline
		r = Ramp{Held: q.Heading}
	}
	return r, nil
}

// shortestTarget re-expresses target on the other side of the circle when
// the raw difference to base exceeds half a turn.
func shortestTarget(base, target float64) float64 {
	diff := target - base
	if diff > 180 || diff < -180 {
		if target > 0 {
			return target - 360
		}
		return target + 360
	}
	return target
}
