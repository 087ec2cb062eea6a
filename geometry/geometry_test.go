package geometry

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

func TestProjectionRoundTrip(t *testing.T) {
	for lat := -84.5; lat < 85; lat += 6.5 {
		for lon := -179.5; lon < 180; lon += 13.25 {
			in := LatLng{Lat: lat, Lon: lon}
			out := ToLatLng(ToPlanar(in))
			assert.InDelta(t, in.Lat, out.Lat, 1e-6, "lat for %v", in)
			assert.InDelta(t, in.Lon, out.Lon, 1e-6, "lon for %v", in)
		}
	}
}

func TestProjectionKnownValues(t *testing.T) {
	p := ToPlanar(LatLng{Lat: 0, Lon: 180})
	assert.InDelta(t, HalfCircumference, p.X(), 1e-6)
	assert.InDelta(t, 0, p.Y(), 1e-6)

	// 1 degree of longitude on the equator is ~111.3 km in Mercator meters.
	p = ToPlanar(LatLng{Lat: 0, Lon: 1})
	assert.InDelta(t, 111319.49, p.X(), 0.01)

	north := ToPlanar(LatLng{Lat: 45, Lon: 0})
	south := ToPlanar(LatLng{Lat: -45, Lon: 0})
	assert.InDelta(t, -north.Y(), south.Y(), 1e-6)
	assert.Greater(t, north.Y(), 0.0)
}

func TestProjectionConstantAndPoles(t *testing.T) {
	assert.InDelta(t, 20037508.34, HalfCircumference, 0.01)

	// matches the closed form y = ln(tan((90+lat)*pi/360)) * R
	for _, ll := range []LatLng{{48.1, 11.5}, {-33.9, 151.2}, {84, -179}} {
		p := ToPlanar(ll)
		want := math.Log(math.Tan((90+ll.Lat)*math.Pi/360)) * orb.EarthRadius
		assert.InDelta(t, want, p.Y(), 1e-6, "%v", ll)
		assert.InDelta(t, ll.Lon*HalfCircumference/180, p.X(), 1e-6, "%v", ll)
	}

	north := ToPlanar(LatLng{Lat: 90, Lon: 0})
	assert.False(t, math.IsInf(north.Y(), 0))
	assert.InDelta(t, HalfCircumference, north.Y(), 1e-6)
}

func TestVector(t *testing.T) {
	v := NewVector(orb.Point{1, 1}, orb.Point{4, 5})
	assert.Equal(t, 3.0, v.DX)
	assert.Equal(t, 4.0, v.DY)
	assert.Equal(t, 5.0, v.Length())

	assert.InDelta(t, 90, Angle(orb.Point{0, 0}, orb.Point{0, 1}), 1e-9)
	assert.InDelta(t, 180, Angle(orb.Point{0, 0}, orb.Point{-1, 0}), 1e-9)
	assert.InDelta(t, -45, Angle(orb.Point{0, 0}, orb.Point{1, -1}), 1e-9)

	assert.InDelta(t, 90, AngleBetween(Vector{1, 0}, Vector{0, 1}), 1e-9)
	assert.InDelta(t, -270, AngleBetween(Vector{-1, 1e-12}, Vector{0, -1}), 1e-6)
}

func TestInterpolate(t *testing.T) {
	p := Interpolate(orb.Point{0, 0}, orb.Point{10, -20}, 0.25)
	assert.Equal(t, orb.Point{2.5, -5}, p)
	assert.Equal(t, orb.Point{0, 0}, Interpolate(orb.Point{0, 0}, orb.Point{10, -20}, 0))
	assert.Equal(t, orb.Point{10, -20}, Interpolate(orb.Point{0, 0}, orb.Point{10, -20}, 1))

	ll := LatLng{Lat: 10, Lon: 20}.Lerp(LatLng{Lat: 20, Lon: 40}, 0.5)
	assert.Equal(t, LatLng{Lat: 15, Lon: 30}, ll)
}

func TestPathLength(t *testing.T) {
	assert.Equal(t, 0.0, PathLength(nil))
	assert.Equal(t, 0.0, PathLength([]orb.Point{{1, 1}}))
	assert.Equal(t, 12.0, PathLength([]orb.Point{{0, 0}, {3, 4}, {3, 11}}))
}

func TestHeading(t *testing.T) {
	tests := []struct {
		name string
		to   orb.Point
		want float64
	}{
		{"Up", orb.Point{0, 1}, 0},
		{"Down", orb.Point{0, -1}, 180},
		{"Right", orb.Point{1, 0}, -90},
		{"Left", orb.Point{-1, 0}, 90},
		{"Up Right", orb.Point{1, 1}, -45},
		{"Up Left", orb.Point{-1, 1}, 45},
		{"Down Left", orb.Point{-1, -1}, 135},
		{"Down Right", orb.Point{1, -1}, -135},
		{"Same Point", orb.Point{0, 0}, 180},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Heading(orb.Point{0, 0}, tt.to), 1e-9)
		})
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := map[float64]float64{
		0:    0,
		180:  180,
		-180: 180,
		190:  -170,
		-190: 170,
		540:  180,
		725:  5,
		-725: -5,
	}
	for in, want := range tests {
		assert.InDelta(t, want, NormalizeAngle(in), 1e-9, "NormalizeAngle(%v)", in)
	}
}

func TestClampedSize(t *testing.T) {
	b := orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{1000, 40}}
	assert.Equal(t, Size{Width: 1000, Height: 100}, ClampedSize(b, 100, 0))
	assert.Equal(t, Size{Width: 1000, Height: 2000}, ClampedSize(b, 100, 0.5))

	tall := orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{200, 1000}}
	assert.Equal(t, Size{Width: 500, Height: 1000}, ClampedSize(tall, 100, 0.5))

	assert.Equal(t, Size{Width: 100, Height: 100}, ClampedSize(orb.Bound{}, 100, 0))
	assert.Equal(t, 100.0, ClampedSize(orb.Bound{}, 100, 0).Min())
}

func TestBoundsAndFlatten(t *testing.T) {
	segs := [][]TrackPoint{
		{PlanarTrackPoint(orb.Point{0, 0}, 0), PlanarTrackPoint(orb.Point{10, 5}, 1)},
		{},
		{PlanarTrackPoint(orb.Point{-3, 8}, 2)},
	}
	flat := Flatten(segs)
	assert.Len(t, flat, 3)
	assert.Equal(t, 2.0, flat[2].Key)

	b := Bounds(PlanarPoints(flat))
	assert.Equal(t, orb.Point{-3, 0}, b.Min)
	assert.Equal(t, orb.Point{10, 8}, b.Max)

	tp := NewTrackPoint(LatLng{Lat: 48, Lon: 11}, 3)
	assert.False(t, math.IsNaN(tp.Planar().Y()))
	assert.InDelta(t, 48, ToLatLng(tp.Planar()).Lat, 1e-9)
}
