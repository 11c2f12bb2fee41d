package targets

import (
	"math"

	"github.com/san-kum/steinlab/internal/stein"
)

// Mixture is a weighted Gaussian mixture. The score is the
// responsibility-weighted average of component scores, computed with
// max-subtraction for numerical stability.
type Mixture struct {
	Components []*Gaussian
	Weights    []float64
}

func NewMixture(components []*Gaussian, weights []float64) (*Mixture, error) {
	if len(components) == 0 || len(components) != len(weights) {
		return nil, stein.ErrDimensionMismatch
	}
	dim := components[0].Dim()
	total := 0.0
	for i, c := range components {
		if c.Dim() != dim {
			return nil, stein.ErrDimensionMismatch
		}
		if weights[i] <= 0 {
			return nil, &stein.ConfigurationError{Field: "mixture weight", Value: weights[i]}
		}
		total += weights[i]
	}
	norm := make([]float64, len(weights))
	for i, w := range weights {
		norm[i] = w / total
	}
	return &Mixture{Components: components, Weights: norm}, nil
}

// NewBimodal is a convenience 1D-per-axis two-mode mixture at
// +/- sep/2 along the first axis.
func NewBimodal(dim int, sep float64) *Mixture {
	left := NewStandardGaussian(dim)
	right := NewStandardGaussian(dim)
	left.Mean[0] = -sep / 2
	right.Mean[0] = sep / 2
	m, _ := NewMixture([]*Gaussian{left, right}, []float64{0.5, 0.5})
	return m
}

func (m *Mixture) Dim() int { return m.Components[0].Dim() }

func (m *Mixture) LogDensity(x stein.Vector) float64 {
	logs := m.componentLogs(x)
	maxLog := logs[0]
	for _, l := range logs[1:] {
		if l > maxLog {
			maxLog = l
		}
	}
	sum := 0.0
	for _, l := range logs {
		sum += math.Exp(l - maxLog)
	}
	return maxLog + math.Log(sum)
}

func (m *Mixture) Score(x stein.Vector) (stein.Vector, error) {
	logs := m.componentLogs(x)
	maxLog := logs[0]
	for _, l := range logs[1:] {
		if l > maxLog {
			maxLog = l
		}
	}

	weights := make([]float64, len(logs))
	total := 0.0
	for i, l := range logs {
		weights[i] = math.Exp(l - maxLog)
		total += weights[i]
	}

	s := make(stein.Vector, len(x))
	for i, c := range m.Components {
		cs, err := c.Score(x)
		if err != nil {
			return nil, err
		}
		r := weights[i] / total
		for d := range s {
			s[d] += r * cs[d]
		}
	}
	if !s.IsFinite() {
		return nil, &stein.NumericalError{Position: x.Clone(), Detail: "mixture score"}
	}
	return s, nil
}

// componentLogs returns log(w_k) + log p_k(x) per component.
func (m *Mixture) componentLogs(x stein.Vector) []float64 {
	logs := make([]float64, len(m.Components))
	for i, c := range m.Components {
		logs[i] = math.Log(m.Weights[i]) + c.LogDensity(x)
	}
	return logs
}
