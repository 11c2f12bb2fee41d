package viz

import (
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/steinlab/internal/stein"
)

// History plots a metric trace (spread, drift, ...) as an ascii line
// graph.
func History(values []float64, height int, caption string) string {
	if len(values) < 2 {
		return ""
	}
	return asciigraph.Plot(values,
		asciigraph.Height(height),
		asciigraph.Caption(caption),
	)
}

// Histogram renders the marginal distribution of one coordinate as an
// ascii bar graph with the given number of bins.
func Histogram(positions []stein.Vector, axis, bins, height int) string {
	if len(positions) == 0 || bins < 2 {
		return ""
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range positions {
		if axis >= len(p) {
			return ""
		}
		lo = math.Min(lo, p[axis])
		hi = math.Max(hi, p[axis])
	}
	if hi-lo < 1e-12 {
		lo, hi = lo-1, hi+1
	}

	counts := make([]float64, bins)
	for _, p := range positions {
		b := int((p[axis] - lo) / (hi - lo) * float64(bins))
		if b >= bins {
			b = bins - 1
		}
		counts[b]++
	}

	return asciigraph.Plot(counts,
		asciigraph.Height(height),
		asciigraph.Caption("marginal histogram"),
	)
}

// Sparkline compresses a trace into a one-line unicode bar string for
// compact status rows.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}
	bars := []rune("▁▂▃▄▅▆▇█")

	// Resample to width points.
	sampled := make([]float64, width)
	for i := 0; i < width; i++ {
		idx := i * (len(values) - 1) / max(width-1, 1)
		sampled[i] = values[idx]
	}

	lo, hi := sampled[0], sampled[0]
	for _, v := range sampled {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi-lo < 1e-12 {
		return strings.Repeat(string(bars[0]), width)
	}

	var sb strings.Builder
	for _, v := range sampled {
		level := int((v - lo) / (hi - lo) * float64(len(bars)-1))
		sb.WriteRune(bars[level])
	}
	return sb.String()
}
