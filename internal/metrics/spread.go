// Package metrics provides per-step summaries of a particle cloud,
// observed by the experiment runner after each engine step.
package metrics

import (
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/steinlab/internal/stein"
)

// Spread tracks the mean pairwise particle distance of the latest
// snapshot; collapse to a point mass drives it toward zero.
type Spread struct {
	name    string
	current float64
}

func NewSpread() *Spread {
	return &Spread{name: "spread"}
}

func (s *Spread) Name() string { return s.name }

func (s *Spread) Observe(positions []stein.Vector, step int) {
	n := len(positions)
	if n < 2 {
		s.current = 0
		return
	}
	total := 0.0
	pairs := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			total += floats.Distance(positions[i], positions[j], 2)
			pairs++
		}
	}
	s.current = total / float64(pairs)
}

func (s *Spread) Value() float64 { return s.current }

func (s *Spread) Reset() { s.current = 0 }
