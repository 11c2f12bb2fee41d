package targets

import (
	"github.com/san-kum/steinlab/internal/stein"
)

// Density is an unnormalized log-density over R^d.
type Density interface {
	LogDensity(x stein.Vector) float64
	Dim() int
}

// Gaussian is a diagonal-covariance normal density with closed-form
// score -(x - mean) / std^2.
type Gaussian struct {
	Mean stein.Vector
	Std  stein.Vector
}

// NewStandardGaussian returns N(0, I) in dim dimensions.
func NewStandardGaussian(dim int) *Gaussian {
	mean := make(stein.Vector, dim)
	std := make(stein.Vector, dim)
	for d := range std {
		std[d] = 1.0
	}
	return &Gaussian{Mean: mean, Std: std}
}

func NewGaussian(mean, std stein.Vector) (*Gaussian, error) {
	if len(mean) != len(std) {
		return nil, stein.ErrDimensionMismatch
	}
	for _, s := range std {
		if s <= 0 {
			return nil, &stein.ConfigurationError{Field: "gaussian std", Value: s}
		}
	}
	return &Gaussian{Mean: mean.Clone(), Std: std.Clone()}, nil
}

func (g *Gaussian) Dim() int { return len(g.Mean) }

func (g *Gaussian) LogDensity(x stein.Vector) float64 {
	sum := 0.0
	for d := range x {
		r := (x[d] - g.Mean[d]) / g.Std[d]
		sum -= 0.5 * r * r
	}
	return sum
}

func (g *Gaussian) Score(x stein.Vector) (stein.Vector, error) {
	s := make(stein.Vector, len(x))
	for d := range x {
		s[d] = -(x[d] - g.Mean[d]) / (g.Std[d] * g.Std[d])
	}
	if !s.IsFinite() {
		return nil, &stein.NumericalError{Position: x.Clone(), Detail: "gaussian score"}
	}
	return s, nil
}
