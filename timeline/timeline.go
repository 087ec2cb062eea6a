/*
Package timeline turns recorded track segments into a fixed-duration replay:
it simplifies the segments, estimates how long the replay should take,
and builds an ordered list of original and per-frame interpolated entries,
each frame carrying a camera pose.

Build runs once and is purely computational. The resulting Animation is
immutable.
*/
package timeline

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/npillmayer/schuko/tracing"

	"gps_flyover/camera"
	"gps_flyover/geometry"
	"gps_flyover/simplify"
)

// tracer writes to trace with key 'flyover'
func tracer() tracing.Trace {
	return tracing.Select("flyover")
}

var (
	// ErrEmptyRoute indicates that no record carried a full position and key.
	ErrEmptyRoute = errors.New("route has no usable points")
	// ErrInvalidFrameRate indicates a frame rate that is not a positive number
	// or that would need more than MaxFrameCount frames.
	ErrInvalidFrameRate = errors.New("invalid frame rate")
)

// OriginalFrame is the frame number of entries taken from the track itself.
const OriginalFrame = -1

// MaxFrameCount bounds the frames of one replay.
const MaxFrameCount = 1 << 20

// RawPoint is an input record. Records missing any field are dropped.
type RawPoint struct {
	Lat      *float64
	Lon      *float64
	Distance *float64 // cumulative distance along the track
}

// Entry is one node of the replay timeline.
type Entry struct {
	Distance float64
	Position geometry.LatLng
	Segment  int          // index into Animation.Segments
	Frame    int          // 1-based frame number, or OriginalFrame
	Camera   *camera.Pose // nil when the camera has nothing to say
}

// IsOriginal reports whether e is a retained track point rather than a
// synthesized frame.
func (e Entry) IsOriginal() bool {
	return e.Frame == OriginalFrame
}

// Animation is a built replay.
type Animation struct {
	segments   [][]geometry.TrackPoint
	splits     []int
	duration   float64
	frameRate  float64
	frameCount int
	center     geometry.LatLng
	route      *camera.Route
	entries    []Entry
}

// Segments returns the simplified route, one slice per recorded segment.
func (a *Animation) Segments() [][]geometry.TrackPoint { return a.segments }

// SplitIndexes returns the flattened index of the first point of every
// segment after the first.
func (a *Animation) SplitIndexes() []int { return a.splits }

// Duration is the estimated replay duration in time units.
func (a *Animation) Duration() float64 { return a.duration }

// FrameRate is the number of frames per time unit.
func (a *Animation) FrameRate() float64 { return a.frameRate }

// FrameCount is ceil(Duration * FrameRate).
func (a *Animation) FrameCount() int { return a.frameCount }

// Center is the center of the route's bounding box.
func (a *Animation) Center() geometry.LatLng { return a.center }

// Camera returns the camera route the poses were synthesized from.
func (a *Animation) Camera() *camera.Route { return a.route }

// Entries returns the whole timeline in ascending distance order.
func (a *Animation) Entries() []Entry { return a.entries }

// Frames returns the synthesized entries only, in frame order.
func (a *Animation) Frames() []Entry {
	frames := make([]Entry, 0, a.frameCount)
	for _, e := range a.entries {
		if !e.IsOriginal() {
			frames = append(frames, e)
		}
	}
	return frames
}

// TotalDistance is the distance of the last retained point.
func (a *Animation) TotalDistance() float64 {
	for i := len(a.entries) - 1; i >= 0; i-- {
		if a.entries[i].IsOriginal() {
			return a.entries[i].Distance
		}
	}
	return 0
}

// Build prepares the replay of records, one slice per recorded segment.
func Build(records [][]RawPoint, frameRate float64, cal Calibration) (*Animation, error) {
	if !(frameRate > 0) || math.IsInf(frameRate, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFrameRate, frameRate)
	}
	if err := cal.Validate(); err != nil {
		return nil, err
	}
	segments := trackPoints(records)
	count := simplify.Count(segments)
	if count == 0 {
		return nil, ErrEmptyRoute
	}
	tracer().Infof("points before simplification: %d", count)

	bounds := geometry.Bounds(geometry.PlanarPoints(geometry.Flatten(segments)))
	renderSize := geometry.ClampedSize(bounds, cal.MinBoundsSide, cal.RenderAspectRatio)
	small := simplify.ShrinkToTarget(segments, renderSize.Min()*cal.RenderToleranceFactor,
		cal.RenderTarget, cal.RenderAttempts)
	tracer().Infof("points after simplification: %d", simplify.Count(small))

	a := &Animation{
		segments:  small,
		splits:    splitIndexes(small),
		frameRate: frameRate,
	}
	a.duration = EstimateDuration(small, cal.MinBoundsSide)
	frames := math.Ceil(a.duration * frameRate)
	if !(frames >= 1) || frames > MaxFrameCount {
		return nil, fmt.Errorf("%w: %v needs %v frames", ErrInvalidFrameRate, frameRate, frames)
	}
	a.frameCount = int(frames)
	tracer().Infof("duration %.2f, %d frames", a.duration, a.frameCount)

	flat := geometry.Flatten(small)
	smallBounds := geometry.Bounds(geometry.PlanarPoints(flat))
	anchor := smallBounds.Center()
	a.center = geometry.ToLatLng(anchor)

	size := geometry.ClampedSize(smallBounds, cal.MinBoundsSide, 0)
	cameraPoints := simplify.ShrinkToTarget([][]geometry.TrackPoint{flat},
		size.Min()*cal.CameraToleranceFactor, cal.CameraTarget, cal.CameraAttempts)[0]
	tracer().Debugf("camera points: %d", len(cameraPoints))
	a.route = camera.NewRoute(cameraPoints, anchor, a.duration, cal.cameraOptions())

	a.entries = a.buildEntries(flat)
	return a, nil
}

// trackPoints keeps the complete records and drops segments left empty.
func trackPoints(records [][]RawPoint) [][]geometry.TrackPoint {
	segments := make([][]geometry.TrackPoint, 0, len(records))
	for _, recs := range records {
		var seg []geometry.TrackPoint
		for _, r := range recs {
			if r.Lat == nil || r.Lon == nil || r.Distance == nil {
				continue
			}
			seg = append(seg, geometry.NewTrackPoint(geometry.LatLng{Lat: *r.Lat, Lon: *r.Lon}, *r.Distance))
		}
		if len(seg) > 0 {
			segments = append(segments, seg)
		}
	}
	return segments
}

func splitIndexes(segments [][]geometry.TrackPoint) []int {
	var splits []int
	if len(segments) <= 1 {
		return splits
	}
	count := len(segments[0])
	for _, seg := range segments[1:] {
		splits = append(splits, count)
		count += len(seg)
	}
	return splits
}

// segmentOf returns the segment owning flattened index i.
func segmentOf(splits []int, i int) int {
	return sort.Search(len(splits), func(k int) bool { return splits[k] > i })
}

func isSplit(splits []int, i int) bool {
	k := sort.SearchInts(splits, i)
	return k < len(splits) && splits[k] == i
}

// buildEntries merges the retained points with one synthesized entry per
// frame. A frame is placed after every entry whose distance does not exceed
// its target distance.
func (a *Animation) buildEntries(flat []geometry.TrackPoint) []Entry {
	originals := make([]Entry, len(flat))
	for i, p := range flat {
		originals[i] = Entry{
			Distance: p.Key,
			Position: p.Pos,
			Segment:  segmentOf(a.splits, i),
			Frame:    OriginalFrame,
		}
	}

	entries := make([]Entry, 0, len(originals)+a.frameCount)
	interval := originals[len(originals)-1].Distance / float64(a.frameCount)
	cursor := a.route.NewCursor()
	emitted := 0
	for f := 1; f <= a.frameCount; f++ {
		target := interval * float64(f)
		e := frameEntry(originals, a.splits, target, f)

		var pose camera.Pose
		var ok bool
		if f == 1 {
			pose, ok = a.route.Start()
		} else {
			pose, cursor, ok = a.route.Position(target, cursor)
		}
		if ok {
			e.Camera = &pose
		}

		for emitted < len(originals) && originals[emitted].Distance <= target {
			entries = append(entries, originals[emitted])
			emitted++
		}
		entries = append(entries, e)
	}
	return append(entries, originals[emitted:]...)
}

// frameEntry interpolates the position at target between the last original
// before it and the first original at or after it. Frames never interpolate
// across a segment boundary; they snap to the earlier point instead.
func frameEntry(originals []Entry, splits []int, target float64, frame int) Entry {
	next := sort.Search(len(originals), func(i int) bool { return originals[i].Distance >= target })
	start := 0
	if next > 0 {
		start = next - 1
	}
	if next == len(originals) {
		next = len(originals) - 1
	}
	s, n := originals[start], originals[next]
	if isSplit(splits, next) {
		return Entry{Distance: s.Distance, Position: s.Position, Segment: s.Segment, Frame: frame}
	}
	ratio := 1.0
	if s.Distance != n.Distance {
		ratio = (target - s.Distance) / (n.Distance - s.Distance)
	}
	return Entry{
		Distance: target,
		Position: s.Position.Lerp(n.Position, ratio),
		Segment:  s.Segment,
		Frame:    frame,
	}
}
