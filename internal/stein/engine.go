package stein

import (
	"fmt"
	"math"

	"github.com/san-kum/steinlab/internal/compute"
)

// minChunk is the smallest per-worker slice of the outer particle
// loop; below this the accumulation runs serially.
const minChunk = 16

// Engine owns a ParticleSet and transports it toward the target
// density one synchronous step at a time. Each step reads only the
// pre-step positions and either fully commits or leaves the set
// untouched.
type Engine struct {
	score  ScoreFunc
	kernel Kernel
	init   Init
	cfg    Config

	n, dim int
	cur    *ParticleSet
	next   *ParticleSet
	scores *ParticleSet
	steps  int
}

func NewEngine(score ScoreFunc, kernel Kernel, init Init, n int, cfg Config) (*Engine, error) {
	if score == nil {
		return nil, fmt.Errorf("nil score function: %w", ErrConfiguration)
	}
	if kernel == nil {
		return nil, fmt.Errorf("nil kernel: %w", ErrConfiguration)
	}
	if n <= 0 {
		return nil, &ConfigurationError{Field: "particle count", Value: float64(n)}
	}
	dim := score.Dim()
	if dim <= 0 {
		return nil, &ConfigurationError{Field: "dimension", Value: float64(dim)}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := init.validate(); err != nil {
		return nil, err
	}

	return &Engine{
		score:  score,
		kernel: kernel,
		init:   init,
		cfg:    cfg,
		n:      n,
		dim:    dim,
		cur:    init.Draw(n, dim),
		next:   newParticleSet(n, dim),
		scores: newParticleSet(n, dim),
	}, nil
}

func (e *Engine) Len() int       { return e.n }
func (e *Engine) Dim() int       { return e.dim }
func (e *Engine) Steps() int     { return e.steps }
func (e *Engine) Config() Config { return e.cfg }

// Positions returns copies of the current particle positions.
func (e *Engine) Positions() []Vector { return e.cur.Positions() }

// Position returns a copy of particle i's current position.
func (e *Engine) Position(i int) Vector { return e.cur.At(i) }

// Configure replaces the update policy. Takes effect on the next Step.
func (e *Engine) Configure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	e.cfg = cfg
	return nil
}

// Reset redraws the ParticleSet from the initial distribution with the
// fixed seed and clears scratch buffers. The redraw is byte-for-byte
// identical to the one performed at construction.
func (e *Engine) Reset() {
	e.cur = e.init.Draw(e.n, e.dim)
	e.next.zero()
	e.scores.zero()
	e.steps = 0
}

// Step applies one synchronous SVGD update:
//
//	dTheta_i = sum_j [ score(theta_j) * k(theta_i, theta_j) ]   (attraction)
//	         + sum_j [ grad_{theta_j} k(theta_j, theta_i) ]     (repulsion)
//	theta_i <- theta_i + eps * dTheta_i, all i simultaneously
//
// Every term is evaluated against the pre-step snapshot; updates land
// in the back buffer which is swapped in only when no particle
// produced a non-finite value.
func (e *Engine) Step() error {
	if !e.cfg.Attraction && !e.cfg.Repulsion {
		e.steps++
		return nil
	}

	if e.cfg.Attraction {
		if err := e.evalScoresInto(e.scores); err != nil {
			return err
		}
	}

	errs := make([]error, e.n)
	compute.GetBackend().Run(e.n, minChunk, func(start, end int) {
		for i := start; i < end; i++ {
			xi := e.cur.at(i)
			delta, err := e.force(xi, e.scores)
			if err != nil {
				errs[i] = fmt.Errorf("particle %d: %w", i, err)
				continue
			}
			out := e.next.at(i)
			for d := 0; d < e.dim; d++ {
				out[d] = xi[d] + e.cfg.StepSize*delta[d]
			}
		}
	})
	for i := 0; i < e.n; i++ {
		if errs[i] != nil {
			return errs[i]
		}
	}

	e.cur, e.next = e.next, e.cur
	e.steps++
	return nil
}

// evalScoresInto caches score(theta_j) for every particle so the pair
// loop costs n score evaluations instead of n^2.
func (e *Engine) evalScoresInto(dst *ParticleSet) error {
	for j := 0; j < e.n; j++ {
		s, err := e.score.Score(e.cur.at(j))
		if err != nil {
			return fmt.Errorf("score at particle %d: %w", j, err)
		}
		if len(s) != e.dim {
			return fmt.Errorf("score returned %d components, want %d: %w", len(s), e.dim, ErrDimensionMismatch)
		}
		if !s.IsFinite() {
			return &NumericalError{Particle: j, Position: e.cur.At(j), Detail: "score gradient"}
		}
		copy(dst.at(j), s)
	}
	return nil
}

// force sums the two-term update direction at an arbitrary query point
// against the current particles, ascending j for reproducibility.
// scores holds the cached per-particle score gradients; it is only read
// when attraction is enabled.
func (e *Engine) force(g Vector, scores *ParticleSet) (Vector, error) {
	delta := make(Vector, e.dim)
	for j := 0; j < e.n; j++ {
		xj := e.cur.at(j)

		if e.cfg.Attraction {
			k := e.kernel.Eval(g, xj)
			if math.IsNaN(k) || math.IsInf(k, 0) {
				return nil, &NumericalError{Particle: j, Position: g.Clone(), Detail: "kernel value"}
			}
			sj := scores.at(j)
			for d := 0; d < e.dim; d++ {
				delta[d] += sj[d] * k
			}
		}

		if e.cfg.Repulsion {
			grad := e.kernel.GradX(xj, g)
			if !grad.IsFinite() {
				return nil, &NumericalError{Particle: j, Position: g.Clone(), Detail: "kernel gradient"}
			}
			for d := 0; d < e.dim; d++ {
				delta[d] += grad[d]
			}
		}
	}
	return delta, nil
}
