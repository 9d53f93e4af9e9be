package transforms

import (
	"github.com/golang/geo/r3"

	"github.com/willbeason/lichtenberg/pkg/geometry"
)

// Projection maps world points onto image pixels orthographically.
//
// The world origin lands on Anchor. World +y points up the image.
type Projection struct {
	// Camera is applied before projecting. May be nil.
	Camera Transform

	// Scale is pixels per world unit.
	Scale float64

	Anchor geometry.XY
}

func (p Projection) ToScreen(v r3.Vector) geometry.XY {
	if p.Camera != nil {
		v = p.Camera.Next(v)
	}

	return geometry.XY{
		X: p.Anchor.X + v.X*p.Scale,
		Y: p.Anchor.Y - v.Y*p.Scale,
	}
}
