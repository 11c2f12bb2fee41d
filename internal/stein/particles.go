package stein

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Init declares the initial particle distribution: i.i.d. Normal(Mean,
// Std) per coordinate, drawn with a fixed seed so every redraw is
// byte-for-byte identical.
type Init struct {
	Mean float64
	Std  float64
	Seed uint64
}

func DefaultInit() Init {
	return Init{Mean: 0, Std: 1, Seed: 1}
}

func (in Init) validate() error {
	if in.Std <= 0 {
		return &ConfigurationError{Field: "init std", Value: in.Std}
	}
	return nil
}

// Draw samples n particles of dimension dim. Sampling order is fixed
// (particle-major, then coordinate) so results depend only on the seed.
func (in Init) Draw(n, dim int) *ParticleSet {
	dist := distuv.Normal{
		Mu:    in.Mean,
		Sigma: in.Std,
		Src:   rand.NewSource(in.Seed),
	}
	p := newParticleSet(n, dim)
	for i := range p.data {
		p.data[i] = dist.Rand()
	}
	return p
}

// ParticleSet is an ordered, fixed-size collection of particle
// positions stored as a flat n*dim buffer. Order carries no meaning
// beyond stable indexing.
type ParticleSet struct {
	n, dim int
	data   []float64
}

func newParticleSet(n, dim int) *ParticleSet {
	return &ParticleSet{n: n, dim: dim, data: make([]float64, n*dim)}
}

func (p *ParticleSet) Len() int { return p.n }
func (p *ParticleSet) Dim() int { return p.dim }

// at returns a view into the backing buffer. Callers must not retain
// it across mutation.
func (p *ParticleSet) at(i int) Vector {
	return Vector(p.data[i*p.dim : (i+1)*p.dim])
}

// At returns a copy of particle i's position.
func (p *ParticleSet) At(i int) Vector {
	return p.at(i).Clone()
}

// Positions returns copies of all particle positions.
func (p *ParticleSet) Positions() []Vector {
	out := make([]Vector, p.n)
	for i := 0; i < p.n; i++ {
		out[i] = p.At(i)
	}
	return out
}

func (p *ParticleSet) zero() {
	for i := range p.data {
		p.data[i] = 0
	}
}
