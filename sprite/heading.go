package sprite

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Rot is measured in degrees clockwise from north (screen up). A heading of
// 90 points along +X.

var north = r2.Vec{Y: -1}

// Heading returns the unit vector for rotDeg.
func Heading(rotDeg float64) r2.Vec {
	return Rotate(north, rotDeg)
}

// Rotate turns v by rotDeg around the origin.
func Rotate(v r2.Vec, rotDeg float64) r2.Vec {
	return r2.NewRotation(rotDeg*math.Pi/180, r2.Vec{}).Rotate(v)
}

// Bearing returns the heading of v in degrees in [0, 360).
// The zero vector has bearing 0.
func Bearing(v r2.Vec) float64 {
	if v.X == 0 && v.Y == 0 {
		return 0
	}
	deg := math.Atan2(v.X, -v.Y) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return deg
}
