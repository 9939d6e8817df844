// Package inspect draws diagnostics of hemicubes and form factor runs.
package inspect

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	lin "github.com/sgreben/piecewiselinear"

	"github.com/jdginn/go-radiosity/radiosity"
)

// Colors for covered pixels, chosen by patch ID.
var palette = []color.RGBA{
	{0xe6, 0x19, 0x4b, 0xff},
	{0x3c, 0xb4, 0x4b, 0xff},
	{0x43, 0x63, 0xd8, 0xff},
	{0xf5, 0x82, 0x31, 0xff},
	{0x91, 0x1e, 0xb4, 0xff},
	{0x42, 0xd4, 0xf4, 0xff},
	{0xf0, 0x32, 0xe6, 0xff},
	{0xbf, 0xef, 0x45, 0xff},
}

// HemicubeView draws a hemicube unfolded into a cross: the front face in the middle with each
// side face folded flat against the front edge it shares.
type HemicubeView struct {
	Cube *radiosity.Hemicube
	// Image pixels per hemicube pixel
	CellSize int
	// Maps relative pixel weight in [0, 1] to brightness. Zero value uses DefaultToneCurve.
	ToneCurve lin.Function
}

// DefaultToneCurve lifts the light side face pixels so the rim stays visible next to the front face.
var DefaultToneCurve = lin.Function{
	X: []float64{0, 0.1, 0.4, 1},
	Y: []float64{0, 0.35, 0.75, 1},
}

func (v HemicubeView) shade(relWeight float64) float64 {
	curve := v.ToneCurve
	if len(curve.X) == 0 {
		curve = DefaultToneCurve
	}
	return math.Min(1, math.Max(0, curve.At(relWeight)))
}

// Size is the width and height of the image in image pixels.
func (v HemicubeView) Size() int {
	cfg := v.Cube.Config()
	return int(math.Round(2*cfg.SideLength/cfg.PixelPitch)) * v.CellSize
}

// unfold maps a point on the hemicube to the plane of the front face, in units of the half side.
// Side faces are rotated about their shared edge with the front face.
func (v HemicubeView) unfold(p radiosity.Pixel) (float64, float64) {
	h := v.Cube.Config().SideLength / 2
	rel := p.Center.Sub(v.Cube.Origin())
	x, y, z := rel.Dot(v.Cube.X), rel.Dot(v.Cube.Y), rel.Dot(v.Cube.Z)
	switch p.Face {
	case radiosity.Left:
		x = 2*h - z
	case radiosity.Right:
		x = z - 2*h
	case radiosity.Up:
		y = 2*h - z
	case radiosity.Down:
		y = z - 2*h
	}
	return x / h, y / h
}

// toImage maps unfolded coordinates in [-2, 2] to image coordinates, Y up.
func (v HemicubeView) toImage(x, y float64) (float64, float64) {
	s := float64(v.Size()) / 4
	return (x + 2) * s, (2 - y) * s
}

// Draw shades every pixel by its weight relative to the heaviest pixel. Pixels in cov are painted
// in the color of the patch covering them; cov may be nil.
func (v HemicubeView) Draw(cov radiosity.Coverage) image.Image {
	size := v.Size()
	c := gg.NewContext(size, size)
	c.SetRGB(0, 0, 0)
	c.Clear()

	pixels := v.Cube.Pixels()
	var maxWeight float64
	for _, p := range pixels {
		maxWeight = math.Max(maxWeight, p.Weight)
	}

	cell := float64(v.CellSize)
	for _, p := range pixels {
		x, y := v.toImage(v.unfold(p))
		shade := 0.0
		if maxWeight > 0 {
			shade = v.shade(p.Weight / maxWeight)
		}
		if id, ok := cov[p.ID]; ok {
			col := palette[((id%len(palette))+len(palette))%len(palette)]
			c.SetRGB(shade*float64(col.R)/255, shade*float64(col.G)/255, shade*float64(col.B)/255)
		} else {
			c.SetRGB(shade, shade, shade)
		}
		c.DrawRectangle(x-cell/2, y-cell/2, cell, cell)
		c.Fill()
	}
	return c.Image()
}

// DrawHemicube renders h unfolded with cellSize image pixels per hemicube pixel.
func DrawHemicube(h *radiosity.Hemicube, cov radiosity.Coverage, cellSize int) image.Image {
	return HemicubeView{Cube: h, CellSize: cellSize}.Draw(cov)
}

// SavePNG writes img to path.
func SavePNG(path string, img image.Image) error {
	return gg.SavePNG(path, img)
}
