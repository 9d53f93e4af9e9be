package transforms

import (
	"github.com/golang/geo/r3"
)

// A Transform moves a point in world space.
type Transform interface {
	Next(r3.Vector) r3.Vector
}

// Chain applies its Transforms in order.
type Chain []Transform

func (c Chain) Next(v r3.Vector) r3.Vector {
	for _, t := range c {
		v = t.Next(v)
	}
	return v
}

var (
	_ Transform = Chain{}
	_ Transform = Linear{}
	_ Transform = Orbit{}
)
