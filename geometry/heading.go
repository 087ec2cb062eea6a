package geometry

import (
	"math"

	"github.com/paulmach/orb"
)

// Heading returns the direction of travel from p1 to p2 in the rotation
// convention of the map camera: 0 when moving up (north), -90 when moving
// right, 90 when moving left and 180 when moving down. The camera rotation
// that keeps the direction of travel pointing up is the negated heading.
func Heading(p1, p2 orb.Point) float64 {
	dx := p2.X() - p1.X()
	dy := p2.Y() - p1.Y()
	if dx == 0 {
		if dy > 0 {
			return 0
		}
		return 180
	}
	slope := dy / dx
	if slope == 0 {
		if dx > 0 {
			return -90
		}
		return 90
	}
	var delta float64
	if dy*slope < 0 {
		delta = 180
	}
	return 180*math.Atan(slope)/math.Pi + delta - 90
}

// NormalizeAngle maps an angle in degrees into (-180, 180].
func NormalizeAngle(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg > 180 {
		deg -= 360
	} else if deg <= -180 {
		deg += 360
	}
	return deg
}
