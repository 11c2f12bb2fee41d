package stein

import (
	"fmt"

	"github.com/san-kum/steinlab/internal/compute"
)

// FieldSampler evaluates the induced vector field at arbitrary query
// points against the engine's current ParticleSet. It is a pure reader:
// it never mutates particles or query points, and two calls with no
// intervening Step or Reset return identical output.
type FieldSampler struct {
	eng *Engine
}

func NewFieldSampler(e *Engine) *FieldSampler {
	return &FieldSampler{eng: e}
}

// Field computes the update direction at every query point using the
// same two-term formula as Step, with the query point in place of the
// moving particle. With FieldDisplacement configured, each vector is
// scaled by the step size to preview the displacement a particle at
// that point would receive.
func (f *FieldSampler) Field(points []Vector) ([]Vector, error) {
	e := f.eng
	for i, g := range points {
		if len(g) != e.dim {
			return nil, fmt.Errorf("grid point %d has %d components, want %d: %w", i, len(g), e.dim, ErrDimensionMismatch)
		}
	}

	// Scores are evaluated fresh against the current particles; the
	// engine's own cache may predate the last swap.
	scores := newParticleSet(e.n, e.dim)
	if e.cfg.Attraction {
		if err := e.evalScoresInto(scores); err != nil {
			return nil, err
		}
	}

	out := make([]Vector, len(points))
	errs := make([]error, len(points))
	compute.GetBackend().Run(len(points), minChunk, func(start, end int) {
		for i := start; i < end; i++ {
			v, err := e.force(points[i], scores)
			if err != nil {
				errs[i] = fmt.Errorf("grid point %d: %w", i, err)
				continue
			}
			if e.cfg.FieldScale == FieldDisplacement {
				v = v.Scale(e.cfg.StepSize)
			}
			out[i] = v
		}
	})
	for i := range errs {
		if errs[i] != nil {
			return nil, errs[i]
		}
	}
	return out, nil
}

// Grid builds a regular 2D lattice of query points spanning
// [x0,x1]x[y0,y1], row-major, for use with Field.
func Grid(x0, x1, y0, y1 float64, nx, ny int) []Vector {
	if nx < 2 || ny < 2 {
		return nil
	}
	points := make([]Vector, 0, nx*ny)
	dx := (x1 - x0) / float64(nx-1)
	dy := (y1 - y0) / float64(ny-1)
	for iy := 0; iy < ny; iy++ {
		for ix := 0; ix < nx; ix++ {
			points = append(points, Vector{x0 + float64(ix)*dx, y0 + float64(iy)*dy})
		}
	}
	return points
}
