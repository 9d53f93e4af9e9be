package geometry

import (
	"github.com/golang/geo/r3"
)

// XY is a point on the image plane.
type XY struct {
	X, Y float64
}

func (xy XY) Add(o XY) XY {
	return XY{X: xy.X + o.X, Y: xy.Y + o.Y}
}

func (xy XY) Scale(s float64) XY {
	return XY{X: xy.X * s, Y: xy.Y * s}
}

// Average returns the centroid of points, or the origin if there are none.
func Average(points ...r3.Vector) r3.Vector {
	if len(points) == 0 {
		return r3.Vector{}
	}

	sum := r3.Vector{}
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Mul(1.0 / float64(len(points)))
}
