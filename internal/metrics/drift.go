package metrics

import (
	"github.com/san-kum/steinlab/internal/stein"
)

// Drift tracks the mean displacement of the particle cloud since the
// previous observation; it shrinks as the transport settles.
type Drift struct {
	name    string
	prev    []stein.Vector
	current float64
}

func NewDrift() *Drift {
	return &Drift{name: "drift"}
}

func (d *Drift) Name() string { return d.name }

func (d *Drift) Observe(positions []stein.Vector, step int) {
	if d.prev == nil || len(d.prev) != len(positions) {
		d.prev = positions
		d.current = 0
		return
	}
	total := 0.0
	for i := range positions {
		total += positions[i].Sub(d.prev[i]).Norm()
	}
	d.current = total / float64(len(positions))
	d.prev = positions
}

func (d *Drift) Value() float64 { return d.current }

func (d *Drift) Reset() {
	d.prev = nil
	d.current = 0
}

// MaxMove tracks the largest single-particle displacement seen across
// all observations, a cheap blow-up detector.
type MaxMove struct {
	name string
	prev []stein.Vector
	max  float64
}

func NewMaxMove() *MaxMove {
	return &MaxMove{name: "max_move"}
}

func (m *MaxMove) Name() string { return m.name }

func (m *MaxMove) Observe(positions []stein.Vector, step int) {
	if m.prev == nil || len(m.prev) != len(positions) {
		m.prev = positions
		return
	}
	for i := range positions {
		move := positions[i].Sub(m.prev[i]).Norm()
		if move > m.max {
			m.max = move
		}
	}
	m.prev = positions
}

func (m *MaxMove) Value() float64 { return m.max }

func (m *MaxMove) Reset() {
	m.prev = nil
	m.max = 0
}
