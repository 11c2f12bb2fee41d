package stein

import "math"

type Vector []float64

func (v Vector) Clone() Vector {
	c := make(Vector, len(v))
	copy(c, v)
	return c
}

func (v Vector) IsFinite() bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

func (v Vector) Norm() float64 {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

func (v Vector) Add(other Vector) Vector {
	result := make(Vector, len(v))
	for i := range v {
		if i < len(other) {
			result[i] = v[i] + other[i]
		} else {
			result[i] = v[i]
		}
	}
	return result
}

func (v Vector) Sub(other Vector) Vector {
	result := make(Vector, len(v))
	for i := range v {
		if i < len(other) {
			result[i] = v[i] - other[i]
		} else {
			result[i] = v[i]
		}
	}
	return result
}

func (v Vector) Scale(factor float64) Vector {
	result := make(Vector, len(v))
	for i := range v {
		result[i] = v[i] * factor
	}
	return result
}

// ScoreFunc evaluates the gradient of an (unnormalized) log-density.
// Implementations return a NumericalError when the gradient is not
// finite at the query point.
type ScoreFunc interface {
	Score(x Vector) (Vector, error)
	Dim() int
}

// Kernel is a symmetric positive semi-definite pairwise similarity
// function together with its gradient in the first argument.
type Kernel interface {
	Eval(x, y Vector) float64
	GradX(x, y Vector) Vector
}

// FieldScale selects how FieldSampler scales the induced vector field:
// the raw update direction, or the displacement the next Step would
// apply (direction times step size).
type FieldScale int

const (
	FieldVelocity FieldScale = iota
	FieldDisplacement
)

func (s FieldScale) String() string {
	if s == FieldDisplacement {
		return "displacement"
	}
	return "velocity"
}

// Config holds the per-step update policy. Attraction and Repulsion
// toggle the two force terms independently; with both false a Step is
// a no-op.
type Config struct {
	Attraction bool
	Repulsion  bool
	StepSize   float64
	FieldScale FieldScale
}

func DefaultConfig() Config {
	return Config{
		Attraction: true,
		Repulsion:  true,
		StepSize:   0.1,
		FieldScale: FieldVelocity,
	}
}

// Validate rejects a non-positive step size. Disabled force terms are
// a legal configuration.
func (c Config) Validate() error {
	if c.StepSize <= 0 {
		return &ConfigurationError{Field: "step size", Value: c.StepSize}
	}
	return nil
}

// Metric observes particle snapshots once per completed step.
type Metric interface {
	Name() string
	Observe(positions []Vector, step int)
	Value() float64
	Reset()
}

// Observer receives each post-step snapshot, for rendering or capture.
type Observer interface {
	OnStep(positions []Vector, step int)
}
