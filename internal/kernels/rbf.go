package kernels

import (
	"math"

	"github.com/san-kum/steinlab/internal/stein"
)

// RBF is the squared-exponential kernel
//
//	k(x, y) = exp(-|x-y|^2 / (2 l^2))
//
// with a constant lengthscale l. It is smooth and even, so its
// gradient vanishes at zero separation.
type RBF struct {
	lengthscale float64
}

func NewRBF(lengthscale float64) (*RBF, error) {
	if lengthscale <= 0 {
		return nil, &stein.ConfigurationError{Field: "lengthscale", Value: lengthscale}
	}
	return &RBF{lengthscale: lengthscale}, nil
}

func (k *RBF) Lengthscale() float64 { return k.lengthscale }

func (k *RBF) Eval(x, y stein.Vector) float64 {
	return math.Exp(-sqDist(x, y) / (2 * k.lengthscale * k.lengthscale))
}

// GradX is the closed-form gradient in the first argument:
// -(x-y)/l^2 * k(x,y).
func (k *RBF) GradX(x, y stein.Vector) stein.Vector {
	kv := k.Eval(x, y)
	inv := 1.0 / (k.lengthscale * k.lengthscale)
	g := make(stein.Vector, len(x))
	for d := range x {
		g[d] = -(x[d] - y[d]) * inv * kv
	}
	return g
}

func sqDist(x, y stein.Vector) float64 {
	sum := 0.0
	for d := range x {
		r := x[d] - y[d]
		sum += r * r
	}
	return sum
}
