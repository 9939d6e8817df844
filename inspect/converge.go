package inspect

import (
	"fmt"

	"github.com/fogleman/pt/pt"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/jdginn/go-radiosity/radiosity"
)

// ConvergencePoint is one hemicube estimate at a given pixel pitch.
type ConvergencePoint struct {
	PixelPitch float64
	FormFactor float64
}

// ParallelPlates estimates the form factor from the center of a unit square to a unit square
// distance above it, once per pitch. The result is compared against DifferentialToParallelRect.
func ParallelPlates(distance float64, base radiosity.Config, pitches []float64) ([]ConvergencePoint, error) {
	shooter, err := radiosity.NewPatch(0, square(0), radiosity.V(0, 0, 1), 0)
	if err != nil {
		return nil, err
	}
	receiver, err := radiosity.NewPatch(1, square(distance), radiosity.V(0, 0, -1), 0)
	if err != nil {
		return nil, err
	}

	points := make([]ConvergencePoint, 0, len(pitches))
	for _, pitch := range pitches {
		cfg := base
		cfg.PixelPitch = pitch
		ff, err := radiosity.FormFactor(shooter, receiver, cfg)
		if err != nil {
			return nil, fmt.Errorf("pitch %g: %w", pitch, err)
		}
		points = append(points, ConvergencePoint{PixelPitch: pitch, FormFactor: ff})
	}
	return points, nil
}

func square(z float64) []pt.Vector {
	return []pt.Vector{
		radiosity.V(-0.5, -0.5, z),
		radiosity.V(0.5, -0.5, z),
		radiosity.V(0.5, 0.5, z),
		radiosity.V(-0.5, 0.5, z),
	}
}

// PlotConvergence charts estimates against pixel pitch with the exact value as a reference line
// and saves the chart to path. The file extension picks the format.
func PlotConvergence(points []ConvergencePoint, exact float64, width, height vg.Length, path string) error {
	p := plot.New()
	p.Title.Text = "Hemicube convergence"
	p.X.Label.Text = "Pixel pitch"
	p.Y.Label.Text = "Form factor"

	xys := make(plotter.XYs, len(points))
	for i, c := range points {
		xys[i].X = c.PixelPitch
		xys[i].Y = c.FormFactor
	}
	line, scatter, err := plotter.NewLinePoints(xys)
	if err != nil {
		return err
	}
	p.Add(line, scatter)
	p.Legend.Add("hemicube", line, scatter)

	ref := plotter.NewFunction(func(float64) float64 { return exact })
	ref.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	p.Add(ref)
	p.Legend.Add("analytic", ref)

	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("saving plot: %w", err)
	}
	return nil
}
