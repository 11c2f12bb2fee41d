package targets

import (
	"github.com/san-kum/steinlab/internal/stein"
)

// DoubleWell is a bistable density p(x) proportional to
// exp(-sum_d A (x_d^2 - B)^2), with modes at +/- sqrt(B) on each axis.
type DoubleWell struct {
	A, B float64
	dim  int
}

func NewDoubleWell(dim int) *DoubleWell {
	return &DoubleWell{A: 1.0, B: 1.0, dim: dim}
}

func (d *DoubleWell) Dim() int { return d.dim }

func (d *DoubleWell) LogDensity(x stein.Vector) float64 {
	sum := 0.0
	for _, v := range x {
		w := v*v - d.B
		sum -= d.A * w * w
	}
	return sum
}

func (d *DoubleWell) Score(x stein.Vector) (stein.Vector, error) {
	s := make(stein.Vector, len(x))
	for i, v := range x {
		s[i] = -4 * d.A * v * (v*v - d.B)
	}
	if !s.IsFinite() {
		return nil, &stein.NumericalError{Position: x.Clone(), Detail: "double-well score"}
	}
	return s, nil
}

func (d *DoubleWell) GetParams() map[string]float64 {
	return map[string]float64{"A": d.A, "B": d.B}
}

func (d *DoubleWell) SetParam(name string, v float64) error {
	switch name {
	case "A":
		d.A = v
	case "B":
		d.B = v
	}
	return nil
}
