// Package schedule provides step-size policies applied by the driver
// between engine steps.
package schedule

import (
	"math"

	"github.com/san-kum/steinlab/internal/stein"
)

// Schedule yields the step size to use at a given iteration.
type Schedule interface {
	Name() string
	At(step int) float64
}

// Constant keeps the step size fixed.
type Constant struct {
	Eps float64
}

func NewConstant(eps float64) (*Constant, error) {
	if eps <= 0 {
		return nil, &stein.ConfigurationError{Field: "step size", Value: eps}
	}
	return &Constant{Eps: eps}, nil
}

func (c *Constant) Name() string        { return "constant" }
func (c *Constant) At(step int) float64 { return c.Eps }

// Exponential decays the step size geometrically: eps0 * rate^step.
type Exponential struct {
	Eps0 float64
	Rate float64
}

func NewExponential(eps0, rate float64) (*Exponential, error) {
	if eps0 <= 0 {
		return nil, &stein.ConfigurationError{Field: "step size", Value: eps0}
	}
	if rate <= 0 || rate > 1 {
		return nil, &stein.ConfigurationError{Field: "decay rate", Value: rate}
	}
	return &Exponential{Eps0: eps0, Rate: rate}, nil
}

func (e *Exponential) Name() string { return "exponential" }

func (e *Exponential) At(step int) float64 {
	return e.Eps0 * math.Pow(e.Rate, float64(step))
}

// Inverse decays as eps0 / (1 + lambda*step), the classic
// stochastic-approximation schedule.
type Inverse struct {
	Eps0   float64
	Lambda float64
}

func NewInverse(eps0, lambda float64) (*Inverse, error) {
	if eps0 <= 0 {
		return nil, &stein.ConfigurationError{Field: "step size", Value: eps0}
	}
	if lambda < 0 {
		return nil, &stein.ConfigurationError{Field: "decay lambda", Value: lambda}
	}
	return &Inverse{Eps0: eps0, Lambda: lambda}, nil
}

func (i *Inverse) Name() string { return "inverse" }

func (i *Inverse) At(step int) float64 {
	return i.Eps0 / (1 + i.Lambda*float64(step))
}
