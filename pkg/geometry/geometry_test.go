package geometry

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
)

func TestAverage(t *testing.T) {
	assert.Equal(t, r3.Vector{}, Average())
	assert.Equal(t, r3.Vector{X: 1, Y: 2, Z: 3}, Average(r3.Vector{X: 1, Y: 2, Z: 3}))
	assert.Equal(t, r3.Vector{X: 1, Y: 4, Z: -1}, Average(
		r3.Vector{X: 0, Y: 2, Z: 0},
		r3.Vector{X: 2, Y: 6, Z: -2},
	))
}

func TestXY(t *testing.T) {
	assert.Equal(t, XY{X: 4, Y: 6}, XY{X: 1, Y: 2}.Add(XY{X: 3, Y: 4}))
	assert.Equal(t, XY{X: 2, Y: -4}, XY{X: 1, Y: -2}.Scale(2))
}
