package tree

import (
	"math"
	"math/rand"
	"time"
)

// A Source produces uniformly-distributed draws in [0, 1).
//
// Every random choice a Tree makes goes through its Source, so a scripted
// Source reproduces growth exactly. *rand.Rand satisfies Source.
type Source interface {
	Float64() float64
}

var _ Source = (*rand.Rand)(nil)

// NewSource returns a Source seeded with seed.
func NewSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

func defaultSource() Source {
	return NewSource(time.Now().UnixNano())
}

// RandSymmetricInt returns an integer in [-spreadRange, spreadRange) using a
// single draw from src.
func RandSymmetricInt(src Source, spreadRange float64) int {
	return int(math.Floor((src.Float64()*2 - 1) * spreadRange))
}
