package targets

import (
	"github.com/san-kum/steinlab/internal/grad"
	"github.com/san-kum/steinlab/internal/stein"
)

// OracleScore differentiates any log-density through a gradient
// oracle, for target families without a closed-form score. A
// non-finite gradient is surfaced as a NumericalError, never clamped.
type OracleScore struct {
	density Density
	oracle  grad.Oracle
}

func NewOracleScore(density Density, oracle grad.Oracle) *OracleScore {
	if oracle == nil {
		oracle = grad.NewCentralDifference(0)
	}
	return &OracleScore{density: density, oracle: oracle}
}

func (o *OracleScore) Dim() int { return o.density.Dim() }

func (o *OracleScore) Score(x stein.Vector) (stein.Vector, error) {
	g := o.oracle.Gradient(func(xx []float64) float64 {
		return o.density.LogDensity(stein.Vector(xx))
	}, x)

	s := stein.Vector(g)
	if !s.IsFinite() {
		return nil, &stein.NumericalError{Position: x.Clone(), Detail: "oracle gradient of log-density"}
	}
	return s, nil
}
