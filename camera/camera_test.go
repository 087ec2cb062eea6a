package camera

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gps_flyover/geometry"
)

func pt(x, y, key float64) geometry.TrackPoint {
	return geometry.PlanarTrackPoint(orb.Point{x, y}, key)
}

// square runs right, up, then left, 10 units of key per side.
func square() []geometry.TrackPoint {
	return []geometry.TrackPoint{
		pt(0, 0, 0),
		pt(1000, 0, 10),
		pt(1000, 1000, 20),
		pt(0, 1000, 30),
	}
}

func TestTurnIndexes(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()

	points := []geometry.TrackPoint{
		pt(0, 0, 0), pt(1, 0, 1), pt(2, 0, 2), pt(3, 0, 10),
		pt(4, 0, 11), pt(5, 0, 12), pt(6, 0, 13), pt(7, 0, 30),
	}
	assert.Equal(t, []int{3, 6}, turnIndexes(points, 10, 3))
	assert.Nil(t, turnIndexes(points, 0, 3))
	assert.Nil(t, turnIndexes(points[:2], 10, 3))

	r := NewRoute(square(), orb.Point{}, 10, DefaultOptions())
	assert.Equal(t, []int{1, 2}, r.Turns())
	assert.False(t, r.Stable())
}

func TestStart(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()

	r := NewRoute(square(), orb.Point{}, 10, DefaultOptions())
	pose, ok := r.Start()
	require.True(t, ok)
	require.NotNil(t, pose.Heading)
	assert.InDelta(t, 90, *pose.Heading, 1e-9)
	assert.Equal(t, orb.Point{0, 0}, pose.Target)
	assert.InDelta(t, 90, r.NewCursor().Ramp.Held, 1e-9)

	_, ok = NewRoute(nil, orb.Point{}, 10, DefaultOptions()).Start()
	assert.False(t, ok)

	single := NewRoute([]geometry.TrackPoint{pt(5, 5, 0)}, orb.Point{}, 10, DefaultOptions())
	pose, ok = single.Start()
	require.True(t, ok)
	assert.Nil(t, pose.Heading)
	assert.Equal(t, orb.Point{5, 5}, pose.Target)
}

func TestStableMode(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()

	anchor := orb.Point{500, 500}
	r := NewRoute(square(), anchor, 50.5, DefaultOptions())
	require.True(t, r.Stable())

	pose, ok := r.Start()
	require.True(t, ok)
	assert.Equal(t, anchor, pose.Target)
	require.NotNil(t, pose.Heading)
	assert.Equal(t, 0.0, *pose.Heading)

	c := r.NewCursor()
	for key := 0.0; key <= 40; key += 0.7 {
		pose, c, ok = r.Position(key, c)
		require.True(t, ok)
		assert.Equal(t, anchor, pose.Target)
		require.NotNil(t, pose.Heading)
		assert.Equal(t, 0.0, *pose.Heading)
		assert.Equal(t, 0, c.Index)
	}
}

func TestPositionEdgeCases(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()

	r := NewRoute(square(), orb.Point{}, 10, DefaultOptions())

	_, _, ok := r.Position(5, Cursor{Index: -1})
	assert.False(t, ok, "negative index")

	_, _, ok = NewRoute(nil, orb.Point{}, 10, DefaultOptions()).Position(5, Cursor{})
	assert.False(t, ok, "empty route")

	pose, c, ok := r.Position(5, Cursor{Index: 3})
	require.True(t, ok)
	assert.Equal(t, orb.Point{0, 1000}, pose.Target)
	assert.Nil(t, pose.Heading)
	assert.Equal(t, 3, c.Index)

	pose, c, ok = r.Position(1000, r.NewCursor())
	require.True(t, ok, "past the end")
	assert.Equal(t, orb.Point{0, 1000}, pose.Target)
	assert.Nil(t, pose.Heading)
	assert.Equal(t, 3, c.Index)

	// never searches backwards
	pose, _, ok = r.Position(5, Cursor{Index: 2})
	require.True(t, ok)
	assert.Equal(t, 3, pose.Index)
	assert.Nil(t, pose.Heading)

	dup := NewRoute([]geometry.TrackPoint{
		pt(0, 0, 0), pt(10, 0, 5), pt(20, 0, 5), pt(30, 0, 10),
	}, orb.Point{}, 10, DefaultOptions())
	pose, c, ok = dup.Position(5, Cursor{Index: 1})
	require.True(t, ok)
	assert.Equal(t, orb.Point{10, 0}, pose.Target)
	assert.Nil(t, pose.Heading)
	assert.Equal(t, 1, c.Index)

	single := NewRoute([]geometry.TrackPoint{pt(5, 5, 0)}, orb.Point{}, 10, DefaultOptions())
	pose, _, ok = single.Position(0, single.NewCursor())
	require.True(t, ok)
	assert.Equal(t, orb.Point{5, 5}, pose.Target)
	assert.Nil(t, pose.Heading)
}

func TestPositionInterpolatesAndRamps(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()

	r := NewRoute(square(), orb.Point{}, 10, DefaultOptions())
	c := r.NewCursor()

	pose, c, ok := r.Position(5, c)
	require.True(t, ok)
	assert.InDelta(t, 500, pose.Target.X(), 1e-9)
	assert.InDelta(t, 0, pose.Target.Y(), 1e-9)
	assert.Nil(t, pose.Heading, "no turn on the first segment")
	assert.Equal(t, 0, c.Index)

	key := 10.2
	for step := 1; step <= 21; step++ {
		pose, c, ok = r.Position(key, c)
		require.True(t, ok)
		require.NotNil(t, pose.Heading, "step %d", step)
		assert.InDelta(t, 90-90*float64(step)/21, *pose.Heading, 1e-9, "step %d", step)
		assert.Equal(t, 1, pose.Index)
		key += 0.1
	}

	pose, c, ok = r.Position(key, c)
	require.True(t, ok)
	assert.Nil(t, pose.Heading, "ramp finished")
	assert.False(t, c.Ramp.Active)
	assert.InDelta(t, 0, c.Ramp.Held, 1e-9)

	// next turn: up -> left, from 0 to -90
	pose, _, ok = r.Position(25, c)
	require.True(t, ok)
	assert.Equal(t, 2, pose.Index)
	require.NotNil(t, pose.Heading)
	assert.InDelta(t, -90.0/21, *pose.Heading, 1e-9)
}

func TestRampShortestArc(t *testing.T) {
	r := NewRamp(170)
	var got []float64
	for i := 0; i < 21; i++ {
		var h *float64
		r, h = r.Next(RampQuery{EntersTurn: i == 0, Heading: -170}, 21)
		require.NotNil(t, h)
		got = append(got, *h)
	}
	prev := 170.0
	for i, h := range got {
		assert.Greater(t, h, prev, "step %d must move forward", i+1)
		assert.LessOrEqual(t, h, 190.0+1e-9)
		prev = h
	}
	assert.InDelta(t, 190, got[20], 1e-9)
	assert.InDelta(t, 170+20.0/21, got[0], 1e-9)

	r, h := r.Next(RampQuery{Heading: -170}, 21)
	assert.Nil(t, h)
	assert.Equal(t, Ramp{Held: -170}, r)
}

func TestRampRestartsOnNewTurn(t *testing.T) {
	r := NewRamp(0)
	for i := 0; i < 7; i++ {
		r, _ = r.Next(RampQuery{EntersTurn: i == 0, Heading: 21}, 21)
	}
	assert.InDelta(t, 7, r.Value(21), 1e-9)

	r, h := r.Next(RampQuery{EntersTurn: true, Heading: -14}, 21)
	require.NotNil(t, h)
	assert.Equal(t, 1, r.Step)
	assert.InDelta(t, 7, r.Base, 1e-9)
	assert.InDelta(t, 7-21.0/21, *h, 1e-9)
}

func TestRampIdle(t *testing.T) {
	r := NewRamp(45)
	r2, h := r.Next(RampQuery{Heading: -120}, 21)
	assert.Nil(t, h)
	assert.Equal(t, r, r2, "idle queries keep the held heading")
	assert.Equal(t, 45.0, r2.Value(21))
}
