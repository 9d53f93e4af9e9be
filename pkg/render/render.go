package render

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/willbeason/lichtenberg/pkg/geometry"
	"github.com/willbeason/lichtenberg/pkg/transforms"
	"github.com/willbeason/lichtenberg/pkg/tree"
)

var (
	LightningColor = color.NRGBA{R: 0xa8, G: 0xe2, B: 0xff, A: 0xcc}
	StoneColor     = color.NRGBA{R: 0x44, G: 0x18, B: 0x12, A: 0xff}
	StageColor     = color.NRGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xff}
	Background     = color.NRGBA{A: 0xff}
)

const (
	// stageSegments is how many edges approximate the stage's circle.
	stageSegments = 96

	// lightPerHeight is the tip light's intensity per world unit above the
	// stage.
	lightPerHeight = 0.03
)

// A Scene is everything needed to draw one frame besides the tree.
type Scene struct {
	Width, Height int

	// Focus is the world point the camera circles and keeps on Anchor.
	Focus r3.Vector

	Orbit transforms.Orbit

	// Scale is pixels per world unit.
	Scale float64

	Anchor geometry.XY

	// TubeRadius is the drawn half-width of each path, in world units.
	TubeRadius float64

	// StoneRadius is the radius of the stone at the world origin.
	StoneRadius float64

	// StageRadius is the radius of the stage plane around the origin.
	StageRadius float64

	// LightReach is how far the tip light's glow extends, in world units.
	LightReach float64
}

// DefaultScene frames a tree growing up from the origin in a width x height
// image.
func DefaultScene(width, height int) Scene {
	return Scene{
		Width:       width,
		Height:      height,
		Orbit:       transforms.Orbit{Tilt: math.Pi / 12},
		Scale:       float64(height) / 250.0,
		Anchor:      geometry.XY{X: float64(width) / 2, Y: float64(height) * 0.85},
		TubeRadius:  0.5,
		StoneRadius: 8,
		StageRadius: 400,
		LightReach:  60,
	}
}

// WithOrbit returns a copy of s viewed from angle around the y axis.
func (s Scene) WithOrbit(angle float64) Scene {
	s.Orbit.Angle = angle
	return s
}

// Projection is the camera of s.
func (s Scene) Projection() transforms.Projection {
	return transforms.Projection{
		Camera: transforms.Chain{
			transforms.Linear{Multiply: 1, Add: s.Focus.Mul(-1)},
			s.Orbit,
		},
		Scale:  s.Scale,
		Anchor: s.Anchor,
	}
}

// Render draws the stage, the stone, paths and the tip light at light.
func (s Scene) Render(paths []tree.Path, light r3.Vector) image.Image {
	dc := gg.NewContext(s.Width, s.Height)
	dc.SetColor(Background)
	dc.Clear()

	p := s.Projection()
	s.drawStage(dc, p)
	s.drawStone(dc, p)
	s.drawPaths(dc, p, paths)
	s.drawLight(dc, p, light)

	return dc.Image()
}

func (s Scene) drawStage(dc *gg.Context, proj transforms.Projection) {
	for i := 0; i < stageSegments; i++ {
		theta := 2 * math.Pi * float64(i) / stageSegments
		p := proj.ToScreen(r3.Vector{
			X: s.StageRadius * math.Cos(theta),
			Z: s.StageRadius * math.Sin(theta),
		})
		dc.LineTo(p.X, p.Y)
	}
	dc.ClosePath()
	dc.SetColor(StageColor)
	dc.Fill()
}

func (s Scene) drawStone(dc *gg.Context, proj transforms.Projection) {
	center := proj.ToScreen(r3.Vector{})
	dc.DrawRegularPolygon(6, center.X, center.Y, s.StoneRadius*s.Scale, math.Pi/6)
	dc.SetColor(StoneColor)
	dc.Fill()
}

func (s Scene) drawPaths(dc *gg.Context, proj transforms.Projection, paths []tree.Path) {
	drawable := lo.Filter(paths, func(p tree.Path, _ int) bool {
		return len(p) > 1 && p.Length() > 0
	})

	dc.SetColor(LightningColor)
	dc.SetLineWidth(math.Max(1, 2*s.TubeRadius*s.Scale))
	dc.SetLineCapRound()
	dc.SetLineJoinRound()

	for _, path := range drawable {
		dc.NewSubPath()
		for _, v := range path {
			p := proj.ToScreen(v)
			dc.LineTo(p.X, p.Y)
		}
		dc.Stroke()
	}
}

func (s Scene) drawLight(dc *gg.Context, proj transforms.Projection, light r3.Vector) {
	intensity := math.Min(1, math.Max(0, light.Y*lightPerHeight))
	if intensity == 0 {
		return
	}

	center := proj.ToScreen(light)
	reach := s.LightReach * s.Scale

	glow := LightningColor
	glow.A = uint8(0x80 * intensity)
	faded := LightningColor
	faded.A = 0

	gradient := gg.NewRadialGradient(center.X, center.Y, 0, center.X, center.Y, reach)
	gradient.AddColorStop(0, glow)
	gradient.AddColorStop(1, faded)

	dc.DrawCircle(center.X, center.Y, reach)
	dc.SetFillStyle(gradient)
	dc.Fill()
}

// SavePNG writes img to path.
func SavePNG(path string, img image.Image) error {
	return errors.Wrapf(gg.SavePNG(path, img), "writing frame %q", path)
}
