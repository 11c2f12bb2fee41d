package schedule

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/steinlab/internal/stein"
)

func TestConstant(t *testing.T) {
	s, err := NewConstant(0.1)
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}
	for _, step := range []int{0, 1, 1000} {
		if s.At(step) != 0.1 {
			t.Errorf("step %d: got %f, want 0.1", step, s.At(step))
		}
	}

	if _, err := NewConstant(0); !errors.Is(err, stein.ErrConfiguration) {
		t.Errorf("expected ErrConfiguration, got %v", err)
	}
}

func TestExponential(t *testing.T) {
	s, err := NewExponential(1.0, 0.5)
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}

	if s.At(0) != 1.0 {
		t.Errorf("step 0: got %f, want 1.0", s.At(0))
	}
	if math.Abs(s.At(3)-0.125) > 1e-12 {
		t.Errorf("step 3: got %f, want 0.125", s.At(3))
	}

	if _, err := NewExponential(1.0, 1.5); !errors.Is(err, stein.ErrConfiguration) {
		t.Errorf("expected ErrConfiguration for rate > 1, got %v", err)
	}
}

func TestInverse(t *testing.T) {
	s, err := NewInverse(1.0, 0.1)
	if err != nil {
		t.Fatalf("construction failed: %v", err)
	}

	if s.At(0) != 1.0 {
		t.Errorf("step 0: got %f, want 1.0", s.At(0))
	}
	if math.Abs(s.At(10)-0.5) > 1e-12 {
		t.Errorf("step 10: got %f, want 0.5", s.At(10))
	}

	if _, err := NewInverse(1.0, -1); !errors.Is(err, stein.ErrConfiguration) {
		t.Errorf("expected ErrConfiguration for negative lambda, got %v", err)
	}
}

func TestSchedulesStayPositive(t *testing.T) {
	scheds := []Schedule{
		&Constant{Eps: 0.1},
		&Exponential{Eps0: 0.1, Rate: 0.9},
		&Inverse{Eps0: 0.1, Lambda: 0.01},
	}
	for _, s := range scheds {
		for step := 0; step < 10000; step += 997 {
			if s.At(step) <= 0 {
				t.Errorf("%s: non-positive step size %g at step %d", s.Name(), s.At(step), step)
			}
		}
	}
}
