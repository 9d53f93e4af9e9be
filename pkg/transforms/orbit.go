package transforms

import (
	"math"

	"github.com/golang/geo/r3"
)

// Orbit turns the world as seen by a camera circling the y axis.
type Orbit struct {
	// Angle is the camera's position around the y axis, in radians.
	Angle float64

	// Tilt is how far the camera looks down onto the x/z plane, in radians.
	Tilt float64
}

func (o Orbit) Next(v r3.Vector) r3.Vector {
	sin, cos := math.Sincos(o.Angle)
	x := v.X*cos - v.Z*sin
	z := v.X*sin + v.Z*cos

	sinT, cosT := math.Sincos(o.Tilt)
	return r3.Vector{
		X: x,
		Y: v.Y*cosT + z*sinT,
		Z: z*cosT - v.Y*sinT,
	}
}
