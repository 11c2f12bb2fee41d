package stein

import (
	"context"
	"sync"
)

// Ensemble runs independent SVGD chains from seed-offset initial draws.
// Each chain gets its own Engine; final positions are collected per
// chain.
type Ensemble struct {
	score     ScoreFunc
	kernel    Kernel
	init      Init
	cfg       Config
	n         int
	numChains int
}

func NewEnsemble(score ScoreFunc, kernel Kernel, init Init, cfg Config, n, numChains int) *Ensemble {
	return &Ensemble{
		score:     score,
		kernel:    kernel,
		init:      init,
		cfg:       cfg,
		n:         n,
		numChains: numChains,
	}
}

func (e *Ensemble) Run(ctx context.Context, steps int) ([][]Vector, error) {
	results := make([][]Vector, e.numChains)
	errs := make([]error, e.numChains)

	var wg sync.WaitGroup
	for c := 0; c < e.numChains; c++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			initCopy := e.init
			initCopy.Seed = e.init.Seed + uint64(idx)

			eng, err := NewEngine(e.score, e.kernel, initCopy, e.n, e.cfg)
			if err != nil {
				errs[idx] = err
				return
			}

			for s := 0; s < steps; s++ {
				select {
				case <-ctx.Done():
					errs[idx] = ctx.Err()
					return
				default:
				}
				if err := eng.Step(); err != nil {
					errs[idx] = err
					return
				}
			}
			results[idx] = eng.Positions()
		}(c)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
