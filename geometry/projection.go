package geometry

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

// HalfCircumference is the spherical Mercator x coordinate of longitude 180.
const HalfCircumference = orb.EarthRadius * math.Pi

// LatLng is a geographic position in degrees.
type LatLng struct {
	Lat, Lon float64
}

// Lerp interpolates linearly between two geographic positions. It is only
// meant for the short hops between neighbouring track points.
func (p LatLng) Lerp(other LatLng, ratio float64) LatLng {
	return LatLng{
		Lat: p.Lat + (other.Lat-p.Lat)*ratio,
		Lon: p.Lon + (other.Lon-p.Lon)*ratio,
	}
}

// Point returns p as an orb.Point in lon/lat order.
func (p LatLng) Point() orb.Point {
	return orb.Point{p.Lon, p.Lat}
}

// ToPlanar projects a geographic position to spherical Mercator meters.
// Latitudes beyond the Mercator range are clamped to ±HalfCircumference.
func ToPlanar(p LatLng) orb.Point {
	return project.Point(p.Point(), project.WGS84.ToMercator)
}

// ToLatLng is the inverse of ToPlanar.
func ToLatLng(p orb.Point) LatLng {
	g := project.Point(p, project.Mercator.ToWGS84)
	return LatLng{Lat: g.Lat(), Lon: g.Lon()}
}
