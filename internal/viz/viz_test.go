package viz

import (
	"strings"
	"testing"

	"github.com/san-kum/steinlab/internal/stein"
)

func TestCanvasSetAndString(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(0, 0)

	out := c.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if []rune(lines[0])[0] == 0x2800 {
		t.Error("expected first cell to be lit")
	}
}

func TestCanvasIgnoresOutOfBounds(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Set(-1, 0)
	c.Set(0, -5)
	c.Set(100, 100)

	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				t.Errorf("out-of-bounds set lit a cell: %x", r)
			}
		}
	}
}

func TestCanvasClear(t *testing.T) {
	c := NewCanvas(3, 3)
	c.Set(1, 1)
	c.Clear()

	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				t.Error("clear left a lit cell")
			}
		}
	}
}

func TestFitBoundsCoversAllPoints(t *testing.T) {
	positions := []stein.Vector{{-2, 1}, {3, -4}, {0, 0}}
	b := FitBounds(positions, 0.1)

	for _, p := range positions {
		if p[0] < b.X0 || p[0] > b.X1 || p[1] < b.Y0 || p[1] > b.Y1 {
			t.Errorf("point %v outside bounds %+v", p, b)
		}
	}
}

func TestFitBoundsDegenerateCloud(t *testing.T) {
	b := FitBounds([]stein.Vector{{1, 1}, {1, 1}}, 0.1)
	if b.X1 <= b.X0 || b.Y1 <= b.Y0 {
		t.Errorf("degenerate bounds: %+v", b)
	}
}

func TestScatterLightsCells(t *testing.T) {
	c := NewCanvas(10, 10)
	positions := []stein.Vector{{0, 0}, {1, 1}, {-1, -1}}
	c.Scatter(positions, FitBounds(positions, 0.1))

	lit := 0
	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("scatter lit no cells")
	}
}

func TestQuiverZeroFieldDrawsNothing(t *testing.T) {
	c := NewCanvas(10, 10)
	points := []stein.Vector{{0, 0}}
	field := []stein.Vector{{0, 0}}
	c.Quiver(points, field, Bounds{X0: -1, X1: 1, Y0: -1, Y1: 1})

	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				t.Error("zero field lit a cell")
			}
		}
	}
}

func TestHistogram(t *testing.T) {
	positions := []stein.Vector{{-1}, {-0.9}, {0}, {1}, {1.1}}
	out := Histogram(positions, 0, 4, 5)
	if out == "" {
		t.Error("expected non-empty histogram")
	}

	if Histogram(nil, 0, 4, 5) != "" {
		t.Error("expected empty output for no positions")
	}
	if Histogram(positions, 3, 4, 5) != "" {
		t.Error("expected empty output for invalid axis")
	}
}

func TestHistory(t *testing.T) {
	if History([]float64{1}, 5, "x") != "" {
		t.Error("expected empty output for a single value")
	}
	if History([]float64{1, 2, 3, 2, 1}, 5, "trace") == "" {
		t.Error("expected non-empty plot")
	}
}

func TestSparkline(t *testing.T) {
	out := Sparkline([]float64{0, 1, 2, 3, 4, 5}, 10)
	if len([]rune(out)) != 10 {
		t.Errorf("expected width 10, got %d", len([]rune(out)))
	}

	flat := Sparkline([]float64{2, 2, 2}, 5)
	if len([]rune(flat)) != 5 {
		t.Errorf("expected width 5, got %d", len([]rune(flat)))
	}
}

func TestCanvasToSVG(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(0, 0)
	c.Set(3, 5)

	svg := CanvasToSVG(c, 4)
	if !strings.Contains(svg, "<svg") {
		t.Error("missing svg header")
	}
	if !strings.Contains(svg, "<circle") {
		t.Error("missing dot circles")
	}
	if CanvasToSVG(nil, 4) != "" {
		t.Error("expected empty output for nil canvas")
	}
}
