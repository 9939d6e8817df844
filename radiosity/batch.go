package radiosity

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Matrix holds form factors, Matrix[i][j] from shooter i to receiver j.
type Matrix [][]float64

// ComputeMatrix computes the form factor between every ordered pair of patches.
//
// Each row is computed by one goroutine owning the shooter's hemicube. At most workers rows run at
// once; workers <= 0 uses GOMAXPROCS. Cancelling ctx stops new rows from starting.
func ComputeMatrix(ctx context.Context, patches []*Patch, cfg Config, workers int) (Matrix, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	m := make(Matrix, len(patches))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range patches {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			row, err := shootRow(patches, i, cfg)
			if err != nil {
				return fmt.Errorf("shooting from %v: %w", patches[i], err)
			}
			m[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return m, nil
}

func shootRow(patches []*Patch, i int, cfg Config) ([]float64, error) {
	row := make([]float64, len(patches))
	shooter := patches[i]
	if !shooter.valid() {
		cfg.logger().Printf("form factor: skipping degenerate shooter %v", shooter)
		return row, nil
	}
	h, err := NewHemicube(shooter.Center(), shooter.Normal(), cfg)
	if err != nil {
		return nil, err
	}
	for j, receiver := range patches {
		if j == i || receiver == shooter {
			continue
		}
		ff, err := h.FormFactor(receiver)
		if err != nil {
			return nil, err
		}
		row[j] = ff
	}
	return row, nil
}

// RowSums returns the total form factor leaving each shooter. No row exceeds 1 for a closed
// scene without overlap.
func (m Matrix) RowSums() []float64 {
	sums := make([]float64, len(m))
	for i, row := range m {
		for _, v := range row {
			sums[i] += v
		}
	}
	return sums
}
