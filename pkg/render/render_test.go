package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willbeason/lichtenberg/pkg/geometry"
	"github.com/willbeason/lichtenberg/pkg/tree"
)

// flatScene looks straight along z, so the stage collapses to a line.
func flatScene() Scene {
	return Scene{
		Width:       100,
		Height:      100,
		Scale:       1,
		Anchor:      geometry.XY{X: 50, Y: 90},
		TubeRadius:  2,
		StoneRadius: 4,
		StageRadius: 40,
		LightReach:  10,
	}
}

func rgb(t *testing.T, s Scene, paths []tree.Path, light r3.Vector, x, y int) (uint32, uint32, uint32) {
	t.Helper()
	img := s.Render(paths, light)
	require.Equal(t, 100, img.Bounds().Dx())
	r, g, b, _ := img.At(x, y).RGBA()
	return r >> 8, g >> 8, b >> 8
}

func TestRender_Path(t *testing.T) {
	paths := []tree.Path{{{Y: 10}, {Y: 60}}}

	r, g, b := rgb(t, flatScene(), paths, r3.Vector{}, 50, 55)
	assert.Greater(t, b, r)
	assert.Greater(t, g, r)
	assert.Greater(t, b, uint32(150))

	r, g, b = rgb(t, flatScene(), paths, r3.Vector{}, 10, 10)
	assert.Zero(t, r+g+b)
}

func TestRender_Stone(t *testing.T) {
	r, g, b := rgb(t, flatScene(), nil, r3.Vector{}, 50, 90)
	assert.Equal(t, uint32(StoneColor.R), r)
	assert.Equal(t, uint32(StoneColor.G), g)
	assert.Equal(t, uint32(StoneColor.B), b)
}

func TestRender_Light(t *testing.T) {
	dark, _, _ := rgb(t, flatScene(), nil, r3.Vector{Y: 50}, 50, 40)
	assert.Greater(t, dark, uint32(0))

	_, _, b := rgb(t, flatScene(), nil, r3.Vector{}, 50, 40)
	assert.Zero(t, b)
}

func TestRender_SkipsDegeneratePaths(t *testing.T) {
	paths := []tree.Path{{{Y: 30}, {Y: 30}}, {{Y: 30}}}

	r, g, b := rgb(t, flatScene(), paths, r3.Vector{}, 50, 60)
	assert.Zero(t, r+g+b)
}

func TestDefaultScene_WithOrbit(t *testing.T) {
	s := DefaultScene(640, 360)
	orbited := s.WithOrbit(1.5)

	assert.Equal(t, 1.5, orbited.Orbit.Angle)
	assert.Equal(t, s.Orbit.Tilt, orbited.Orbit.Tilt)
	assert.Zero(t, s.Orbit.Angle)
}

func TestScene_ProjectionKeepsFocusOnAnchor(t *testing.T) {
	s := DefaultScene(640, 360).WithOrbit(0.7)
	s.Focus = r3.Vector{X: 10, Y: -3, Z: 4}

	got := s.Projection().ToScreen(s.Focus)
	assert.InDelta(t, s.Anchor.X, got.X, 1e-9)
	assert.InDelta(t, s.Anchor.Y, got.Y, 1e-9)
}

func TestSavePNG(t *testing.T) {
	dir := t.TempDir()
	img := DefaultScene(64, 36).Render(nil, r3.Vector{})

	path := filepath.Join(dir, "frame.png")
	require.NoError(t, SavePNG(path, img))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	assert.Error(t, SavePNG(filepath.Join(dir, "missing", "frame.png"), img))
}
