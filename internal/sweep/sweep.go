// Package sweep runs grid searches over transport parameters
// (lengthscale, step size, ...) minimizing a final metric value.
package sweep

import (
	"context"
	"math"

	"github.com/san-kum/steinlab/internal/experiment"
)

type Grid struct {
	paramNames []string
	ranges     [][]float64
}

func NewGrid(params []string, ranges [][]float64) *Grid {
	return &Grid{paramNames: params, ranges: ranges}
}

// Search evaluates every grid cell by building and running an
// experiment, returning the parameter set with the smallest value of
// metricName. Cells whose build or run fails are skipped.
func (g *Grid) Search(
	ctx context.Context,
	build func(params map[string]float64) (*experiment.Experiment, error),
	metricName string,
) (map[string]float64, float64, error) {

	best := math.Inf(1)
	var bestParams map[string]float64

	g.searchRecursive(ctx, 0, make(map[string]float64), build, metricName, &best, &bestParams)

	return bestParams, best, nil
}

func (g *Grid) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	build func(map[string]float64) (*experiment.Experiment, error),
	metricName string,
	best *float64,
	bestParams *map[string]float64,
) {
	if ctx.Err() != nil {
		return
	}

	if depth == len(g.paramNames) {
		exp, err := build(current)
		if err != nil {
			return
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return
		}

		val := result.Metrics[metricName]
		if val < *best {
			*best = val
			*bestParams = make(map[string]float64)
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return
	}

	name := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		current[name] = val
		g.searchRecursive(ctx, depth+1, current, build, metricName, best, bestParams)
	}
	delete(current, name)
}
