package kernels

import (
	"math"

	"github.com/san-kum/steinlab/internal/stein"
)

// IMQ is the inverse multiquadric kernel
//
//	k(x, y) = (c^2 + |x-y|^2)^(-1/2)
//
// whose heavier tail keeps distant particles coupled where the RBF
// kernel decays to zero.
type IMQ struct {
	c float64
}

func NewIMQ(c float64) (*IMQ, error) {
	if c <= 0 {
		return nil, &stein.ConfigurationError{Field: "imq offset", Value: c}
	}
	return &IMQ{c: c}, nil
}

func (k *IMQ) Eval(x, y stein.Vector) float64 {
	return 1.0 / math.Sqrt(k.c*k.c+sqDist(x, y))
}

func (k *IMQ) GradX(x, y stein.Vector) stein.Vector {
	base := k.c*k.c + sqDist(x, y)
	scale := -math.Pow(base, -1.5)
	g := make(stein.Vector, len(x))
	for d := range x {
		g[d] = scale * (x[d] - y[d])
	}
	return g
}
