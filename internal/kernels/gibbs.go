package kernels

import (
	"math"

	"github.com/san-kum/steinlab/internal/grad"
	"github.com/san-kum/steinlab/internal/stein"
)

// Lengthscale maps a position to a local kernel lengthscale, allowing
// the kernel to tighten in dense regions and widen in sparse ones.
type Lengthscale func(x stein.Vector) float64

// Constant adapts a scalar lengthscale to the pointwise form.
func Constant(l float64) Lengthscale {
	return func(stein.Vector) float64 { return l }
}

// Gibbs is the non-stationary generalization of the RBF kernel:
//
//	k(x, y) = (2 l(x) l(y) / (l(x)^2 + l(y)^2))^(d/2)
//	          * exp(-|x-y|^2 / (l(x)^2 + l(y)^2))
//
// It reduces to RBF when l is constant and stays symmetric and
// positive definite for any positive lengthscale function. The
// gradient in the first argument goes through the oracle since l may
// be arbitrary. A lengthscale function returning a non-positive value
// yields NaN, which the engine surfaces as a NumericalError.
type Gibbs struct {
	ls     Lengthscale
	oracle grad.Oracle
}

func NewGibbs(ls Lengthscale, oracle grad.Oracle) (*Gibbs, error) {
	if ls == nil {
		return nil, &stein.ConfigurationError{Field: "lengthscale function", Value: 0}
	}
	if oracle == nil {
		oracle = grad.NewCentralDifference(0)
	}
	return &Gibbs{ls: ls, oracle: oracle}, nil
}

func (k *Gibbs) Eval(x, y stein.Vector) float64 {
	lx := k.ls(x)
	ly := k.ls(y)
	if lx <= 0 || ly <= 0 {
		return math.NaN()
	}
	denom := lx*lx + ly*ly
	prefactor := math.Pow(2*lx*ly/denom, float64(len(x))/2)
	return prefactor * math.Exp(-sqDist(x, y)/denom)
}

func (k *Gibbs) GradX(x, y stein.Vector) stein.Vector {
	g := k.oracle.Gradient(func(xx []float64) float64 {
		return k.Eval(stein.Vector(xx), y)
	}, x)
	return stein.Vector(g)
}
