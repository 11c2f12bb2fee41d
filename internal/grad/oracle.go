// Package grad provides the gradient oracle consumed by score
// functions and kernels without closed-form derivatives.
package grad

// Oracle numerically or symbolically differentiates scalar-valued
// functions.
type Oracle interface {
	Gradient(f func([]float64) float64, x []float64) []float64
	Derivative(f func(float64) float64, x float64) float64
}

// CentralDifference is a second-order finite-difference oracle.
type CentralDifference struct {
	Step float64
}

// NewCentralDifference returns an oracle with step h; a non-positive h
// falls back to the default 1e-6.
func NewCentralDifference(h float64) *CentralDifference {
	if h <= 0 {
		h = 1e-6
	}
	return &CentralDifference{Step: h}
}

func (c *CentralDifference) Derivative(f func(float64) float64, x float64) float64 {
	h := c.Step
	return (f(x+h) - f(x-h)) / (2 * h)
}

func (c *CentralDifference) Gradient(f func([]float64) float64, x []float64) []float64 {
	h := c.Step
	g := make([]float64, len(x))
	probe := make([]float64, len(x))
	copy(probe, x)
	for i := range x {
		probe[i] = x[i] + h
		fp := f(probe)
		probe[i] = x[i] - h
		fm := f(probe)
		probe[i] = x[i]
		g[i] = (fp - fm) / (2 * h)
	}
	return g
}
