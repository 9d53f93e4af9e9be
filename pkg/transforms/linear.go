package transforms

import (
	"github.com/golang/geo/r3"
)

// Linear scales a point uniformly and then offsets it.
type Linear struct {
	Multiply float64
	Add      r3.Vector
}

func (l Linear) Next(v r3.Vector) r3.Vector {
	return v.Mul(l.Multiply).Add(l.Add)
}
