package viz

import (
	"math"
	"strings"

	"github.com/san-kum/steinlab/internal/stein"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800 // Empty braille char
		}
	}
	return c
}

// Set lights a dot at (x, y) in sub-pixel coordinates. The canvas size
// in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

func (c *Canvas) String() string {
	var sb strings.Builder
	for _, row := range c.Grid {
		sb.WriteString(string(row))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Bounds maps world coordinates onto the canvas.
type Bounds struct {
	X0, X1, Y0, Y1 float64
}

// FitBounds returns bounds covering all positions with a margin, for
// 2D (or higher; only the first two axes are used) particle clouds.
func FitBounds(positions []stein.Vector, margin float64) Bounds {
	b := Bounds{X0: -1, X1: 1, Y0: -1, Y1: 1}
	if len(positions) == 0 {
		return b
	}
	b.X0, b.X1 = positions[0][0], positions[0][0]
	b.Y0, b.Y1 = 0, 0
	if len(positions[0]) > 1 {
		b.Y0, b.Y1 = positions[0][1], positions[0][1]
	}
	for _, p := range positions {
		b.X0 = math.Min(b.X0, p[0])
		b.X1 = math.Max(b.X1, p[0])
		if len(p) > 1 {
			b.Y0 = math.Min(b.Y0, p[1])
			b.Y1 = math.Max(b.Y1, p[1])
		}
	}
	if b.X1-b.X0 < 1e-9 {
		b.X0, b.X1 = b.X0-1, b.X1+1
	}
	if b.Y1-b.Y0 < 1e-9 {
		b.Y0, b.Y1 = b.Y0-1, b.Y1+1
	}
	mx := (b.X1 - b.X0) * margin
	my := (b.Y1 - b.Y0) * margin
	return Bounds{X0: b.X0 - mx, X1: b.X1 + mx, Y0: b.Y0 - my, Y1: b.Y1 + my}
}

func (c *Canvas) toPixel(b Bounds, x, y float64) (int, int) {
	px := int((x - b.X0) / (b.X1 - b.X0) * float64(c.Width*2-1))
	// y grows upward in world space, downward on the canvas
	py := int((b.Y1 - y) / (b.Y1 - b.Y0) * float64(c.Height*4-1))
	return px, py
}

// Scatter plots particle positions. Particles in one dimension are
// rendered on the x axis.
func (c *Canvas) Scatter(positions []stein.Vector, b Bounds) {
	for _, p := range positions {
		y := 0.0
		if len(p) > 1 {
			y = p[1]
		}
		px, py := c.toPixel(b, p[0], y)
		c.Set(px, py)
	}
}

// Quiver draws the vector field as short segments rooted at each grid
// point, scaled so the longest arrow spans roughly two characters.
func (c *Canvas) Quiver(points, field []stein.Vector, b Bounds) {
	maxNorm := 0.0
	for _, v := range field {
		if n := v.Norm(); n > maxNorm {
			maxNorm = n
		}
	}
	if maxNorm == 0 {
		return
	}

	segLen := (b.X1 - b.X0) / float64(c.Width) * 2

	for i, p := range points {
		v := field[i]
		y, vy := 0.0, 0.0
		if len(p) > 1 {
			y = p[1]
			vy = v[1]
		}
		scale := segLen / maxNorm
		c.segment(b, p[0], y, p[0]+v[0]*scale, y+vy*scale)
	}
}

// segment rasterizes a short line in world coordinates.
func (c *Canvas) segment(b Bounds, x0, y0, x1, y1 float64) {
	const samples = 8
	for s := 0; s <= samples; s++ {
		t := float64(s) / samples
		px, py := c.toPixel(b, x0+(x1-x0)*t, y0+(y1-y0)*t)
		c.Set(px, py)
	}
}
