package stein

import (
	"errors"
	"math"
	"testing"
)

// unitGauss is the N(0, I) score, -x.
type unitGauss struct{ dim int }

func (g unitGauss) Dim() int { return g.dim }

func (g unitGauss) Score(x Vector) (Vector, error) {
	s := make(Vector, len(x))
	for d := range x {
		s[d] = -x[d]
	}
	return s, nil
}

// nanScore fails at every evaluation.
type nanScore struct{ dim int }

func (n nanScore) Dim() int { return n.dim }

func (n nanScore) Score(x Vector) (Vector, error) {
	s := make(Vector, len(x))
	for d := range s {
		s[d] = math.NaN()
	}
	return s, nil
}

// testRBF is a minimal squared-exponential kernel with unit
// lengthscale.
type testRBF struct{}

func (testRBF) Eval(x, y Vector) float64 {
	r2 := 0.0
	for d := range x {
		r := x[d] - y[d]
		r2 += r * r
	}
	return math.Exp(-r2 / 2)
}

func (k testRBF) GradX(x, y Vector) Vector {
	kv := k.Eval(x, y)
	g := make(Vector, len(x))
	for d := range x {
		g[d] = -(x[d] - y[d]) * kv
	}
	return g
}

func newTestEngine(t *testing.T, positions []float64, cfg Config) *Engine {
	t.Helper()
	eng, err := NewEngine(unitGauss{dim: 1}, testRBF{}, DefaultInit(), len(positions), cfg)
	if err != nil {
		t.Fatalf("engine construction failed: %v", err)
	}
	copy(eng.cur.data, positions)
	return eng
}

func TestStepUsesPreStepSnapshot(t *testing.T) {
	cfg := Config{Attraction: true, Repulsion: true, StepSize: 0.1}
	eng := newTestEngine(t, []float64{-1, 1}, cfg)

	if err := eng.Step(); err != nil {
		t.Fatalf("step failed: %v", err)
	}

	// Closed form for particles at {-1, 1}, N(0,1) target, RBF l=1:
	// dTheta(-1) = [1 - e^-2] + [-2 e^-2] = 1 - 3 e^-2, antisymmetric
	// for the particle at +1. Any read-after-write within the step
	// would break the antisymmetry.
	delta := 1 - 3*math.Exp(-2)
	want0 := -1 + 0.1*delta
	want1 := 1 - 0.1*delta

	got := eng.Positions()
	if math.Abs(got[0][0]-want0) > 1e-12 {
		t.Errorf("particle 0: got %.12f, want %.12f", got[0][0], want0)
	}
	if math.Abs(got[1][0]-want1) > 1e-12 {
		t.Errorf("particle 1: got %.12f, want %.12f", got[1][0], want1)
	}

	// Attraction dominates repulsion at this separation: both
	// particles moved strictly toward 0.
	if !(got[0][0] > -1 && got[0][0] < 0) {
		t.Errorf("particle 0 did not contract toward 0: %.6f", got[0][0])
	}
	if !(got[1][0] < 1 && got[1][0] > 0) {
		t.Errorf("particle 1 did not contract toward 0: %.6f", got[1][0])
	}
}

func TestCoincidentParticlesRepulsionOnly(t *testing.T) {
	cfg := Config{Attraction: false, Repulsion: true, StepSize: 0.1}
	eng := newTestEngine(t, []float64{0.7, 0.7}, cfg)

	if err := eng.Step(); err != nil {
		t.Fatalf("step failed: %v", err)
	}

	// A smooth even kernel has exactly zero gradient at zero
	// separation, so coincident particles must not move at all.
	for i, p := range eng.Positions() {
		if p[0] != 0.7 {
			t.Errorf("particle %d moved from 0.7 to %v", i, p[0])
		}
	}
}

func TestNoOpWhenBothTermsDisabled(t *testing.T) {
	cfg := Config{Attraction: false, Repulsion: false, StepSize: 0.5}
	eng := newTestEngine(t, []float64{-2, 0.3, 1.8}, cfg)

	before := eng.Positions()
	if err := eng.Step(); err != nil {
		t.Fatalf("step failed: %v", err)
	}

	for i, p := range eng.Positions() {
		if p[0] != before[i][0] {
			t.Errorf("particle %d moved during no-op step: %v -> %v", i, before[i][0], p[0])
		}
	}
}

func TestNumericalErrorLeavesParticlesUnchanged(t *testing.T) {
	cfg := Config{Attraction: true, Repulsion: true, StepSize: 0.1}
	eng, err := NewEngine(nanScore{dim: 1}, testRBF{}, DefaultInit(), 4, cfg)
	if err != nil {
		t.Fatalf("engine construction failed: %v", err)
	}

	before := eng.Positions()
	stepErr := eng.Step()
	if stepErr == nil {
		t.Fatal("expected NumericalError, got nil")
	}
	if !errors.Is(stepErr, ErrNumerical) {
		t.Fatalf("expected ErrNumerical, got %v", stepErr)
	}

	for i, p := range eng.Positions() {
		if p[0] != before[i][0] {
			t.Errorf("particle %d mutated by failed step: %v -> %v", i, before[i][0], p[0])
		}
	}
	if eng.Steps() != 0 {
		t.Errorf("failed step advanced the counter to %d", eng.Steps())
	}
}
