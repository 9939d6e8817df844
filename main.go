package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"slices"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fogleman/pt/pt"
	"github.com/pkg/profile"
	"gonum.org/v1/plot/vg"

	"github.com/jdginn/go-radiosity/inspect"
	"github.com/jdginn/go-radiosity/radiosity"
	"github.com/jdginn/go-radiosity/radiosity/config"
	"github.com/jdginn/go-radiosity/radiosity/experiment"
	"github.com/jdginn/go-radiosity/scene"
)

var CLI struct {
	Simulate SimulateCmd `cmd:"" help:"Compute the form factor matrix of a room"`
	Validate ValidateCmd `cmd:"" help:"Check an experiment config without running it"`
	Hemicube HemicubeCmd `cmd:"" help:"Draw an unfolded hemicube shaded by pixel weight"`
	Converge ConvergeCmd `cmd:"" help:"Plot parallel plate form factors against pixel pitch"`
}

func loadConfig(path string) (*config.ExperimentConfig, error) {
	cfg, err := config.LoadFromFile(path, config.LoadOptions{
		ValidateImmediately: true,
		ResolvePaths:        true,
		MergeFiles:          true,
		RequireFiles:        true,
	})
	var failure config.ValidationFailure
	if errors.As(err, &failure) {
		fmt.Print(config.FormatValidationErrors(failure))
		return nil, fmt.Errorf("%s: invalid config", path)
	}
	return cfg, err
}

type SimulateCmd struct {
	Config  string `arg:"" name:"config" help:"experiment config (yaml)" type:"existingfile"`
	Profile bool   `name:"profile" help:"write a CPU profile into the experiment directory"`
}

func (c SimulateCmd) Run() error {
	cfg, err := loadConfig(c.Config)
	if err != nil {
		return err
	}

	run, err := experiment.NewRun(experiment.DefaultRoot)
	if err != nil {
		return err
	}
	if err := run.Archive(c.Config); err != nil {
		return err
	}
	log.Printf("experiment %s", run.ID)

	if c.Profile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(run.Dir), profile.NoShutdownHook).Stop()
	}

	patches, err := scene.Load3MF(cfg.Input.Mesh.Path, cfg.ReflectanceMap())
	if err != nil {
		return err
	}
	log.Printf("loaded %d patches from %s", len(patches), cfg.Input.Mesh.Path)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	m, err := radiosity.ComputeMatrix(ctx, patches, cfg.Hemicube.Create(), cfg.Simulation.Workers)
	if err != nil {
		return err
	}
	log.Printf("computed %d form factors in %v", len(patches)*len(patches), time.Since(start))

	if sums := m.RowSums(); len(sums) > 0 {
		log.Printf("row sums: min %.4f max %.4f", slices.Min(sums), slices.Max(sums))
	}

	out := run.Path("form_factors.json")
	if err := experiment.SaveFormFactors(out, patches, m, cfg.Simulation.MinFormFactor); err != nil {
		return err
	}
	log.Printf("wrote %s", out)
	return nil
}

type ValidateCmd struct {
	Config string `arg:"" name:"config" help:"experiment config (yaml)" type:"existingfile"`
}

func (c ValidateCmd) Run() error {
	if _, err := loadConfig(c.Config); err != nil {
		return err
	}
	fmt.Printf("%s: ok\n", c.Config)
	return nil
}

type HemicubeCmd struct {
	Out      string  `name:"out" required:"" help:"output image (png)"`
	Side     float64 `name:"side" default:"0.5" help:"hemicube side length"`
	Pitch    float64 `name:"pitch" default:"0.01" help:"pixel pitch"`
	Cell     int     `name:"cell" default:"4" help:"image pixels per hemicube pixel"`
	Receiver float64 `name:"receiver" help:"highlight a unit square this far above the shooter, 0 for none"`
}

func (c HemicubeCmd) Run() error {
	cfg := radiosity.DefaultConfig()
	cfg.SideLength = c.Side
	cfg.PixelPitch = c.Pitch

	h, err := radiosity.NewHemicube(radiosity.V(0, 0, 0), radiosity.V(0, 0, 1), cfg)
	if err != nil {
		return err
	}
	log.Printf("%d pixels, total weight %.6f", h.NumPixels(), h.TotalWeight())

	var cov radiosity.Coverage
	if c.Receiver > 0 {
		z := c.Receiver
		receiver, err := radiosity.NewPatch(1, []pt.Vector{
			radiosity.V(-0.5, -0.5, z), radiosity.V(0.5, -0.5, z), radiosity.V(0.5, 0.5, z), radiosity.V(-0.5, 0.5, z),
		}, radiosity.V(0, 0, -1), 0)
		if err != nil {
			return err
		}
		cov = make(radiosity.Coverage)
		if err := h.Project(receiver, cov); err != nil {
			return err
		}
		log.Printf("receiver covers %d pixels, form factor %.6f", len(cov), h.CoveredWeight(cov, receiver.ID))
	}

	return inspect.SavePNG(c.Out, inspect.DrawHemicube(h, cov, c.Cell))
}

type ConvergeCmd struct {
	Distance float64   `name:"distance" default:"1" help:"separation of the unit plates"`
	Out      string    `name:"out" required:"" help:"output chart (png, svg or pdf)"`
	Pitches  []float64 `name:"pitches" default:"0.05,0.025,0.0125,0.01,0.005,0.0025" help:"pixel pitches to try"`
}

func (c ConvergeCmd) Run() error {
	points, err := inspect.ParallelPlates(c.Distance, radiosity.DefaultConfig(), c.Pitches)
	if err != nil {
		return err
	}
	exact := radiosity.DifferentialToParallelRect(1, 1, c.Distance)
	for _, p := range points {
		log.Printf("pitch %-8g form factor %.6f error %+.2e", p.PixelPitch, p.FormFactor, p.FormFactor-exact)
	}
	return inspect.PlotConvergence(points, exact, 6*vg.Inch, 4*vg.Inch, c.Out)
}

func main() {
	ctx := kong.Parse(&CLI)
	err := ctx.Run()
	if err != nil {
		log.Fatal(err)
	}
}
