package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/steinlab/internal/stein"
)

func TestSpreadOfTwoPoints(t *testing.T) {
	s := NewSpread()
	s.Observe([]stein.Vector{{0, 0}, {3, 4}}, 0)

	if math.Abs(s.Value()-5) > 1e-12 {
		t.Errorf("got %f, want 5", s.Value())
	}
}

func TestSpreadDegenerate(t *testing.T) {
	s := NewSpread()
	s.Observe([]stein.Vector{{1, 1}}, 0)
	if s.Value() != 0 {
		t.Errorf("single particle spread should be 0, got %f", s.Value())
	}
}

func TestDriftTracksDisplacement(t *testing.T) {
	d := NewDrift()

	d.Observe([]stein.Vector{{0}, {1}}, 0)
	if d.Value() != 0 {
		t.Errorf("first observation should report 0 drift, got %f", d.Value())
	}

	d.Observe([]stein.Vector{{1}, {3}}, 1)
	if math.Abs(d.Value()-1.5) > 1e-12 {
		t.Errorf("got %f, want 1.5", d.Value())
	}
}

func TestDriftReset(t *testing.T) {
	d := NewDrift()
	d.Observe([]stein.Vector{{0}}, 0)
	d.Observe([]stein.Vector{{2}}, 1)
	d.Reset()

	d.Observe([]stein.Vector{{5}}, 0)
	if d.Value() != 0 {
		t.Errorf("drift after reset should report 0 on first observation, got %f", d.Value())
	}
}

func TestMaxMoveKeepsMaximum(t *testing.T) {
	m := NewMaxMove()

	m.Observe([]stein.Vector{{0}}, 0)
	m.Observe([]stein.Vector{{2}}, 1)
	m.Observe([]stein.Vector{{2.5}}, 2)

	if math.Abs(m.Value()-2) > 1e-12 {
		t.Errorf("got %f, want 2", m.Value())
	}
}
