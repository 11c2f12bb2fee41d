package targets

import (
	"github.com/san-kum/steinlab/internal/stein"
)

// Banana is the 2D curved density
//
//	log p(x, y) = -x^2/(2 s^2) - (y - b (x^2 - s^2))^2 / 2
//
// a standard stress case for samplers because its mass concentrates
// along a parabolic ridge.
type Banana struct {
	B, S float64
}

func NewBanana() *Banana {
	return &Banana{B: 0.5, S: 2.0}
}

func (b *Banana) Dim() int { return 2 }

func (b *Banana) LogDensity(x stein.Vector) float64 {
	u := x[0]
	v := x[1] - b.B*(u*u-b.S*b.S)
	return -u*u/(2*b.S*b.S) - v*v/2
}

func (b *Banana) Score(x stein.Vector) (stein.Vector, error) {
	u := x[0]
	v := x[1] - b.B*(u*u-b.S*b.S)
	s := stein.Vector{
		-u/(b.S*b.S) + v*2*b.B*u,
		-v,
	}
	if !s.IsFinite() {
		return nil, &stein.NumericalError{Position: x.Clone(), Detail: "banana score"}
	}
	return s, nil
}
