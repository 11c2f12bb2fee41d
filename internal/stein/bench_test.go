package stein

import (
	"testing"
)

func benchEngine(b *testing.B, n int) *Engine {
	b.Helper()
	eng, err := NewEngine(unitGauss{dim: 2}, testRBF{}, DefaultInit(), n, DefaultConfig())
	if err != nil {
		b.Fatalf("engine construction failed: %v", err)
	}
	return eng
}

func BenchmarkStep100(b *testing.B) {
	eng := benchEngine(b, 100)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := eng.Step(); err != nil {
			b.Fatal(err)
		}
		// Keep positions bounded across iterations.
		if i%50 == 49 {
			eng.Reset()
		}
	}
}

func BenchmarkStep400(b *testing.B) {
	eng := benchEngine(b, 400)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := eng.Step(); err != nil {
			b.Fatal(err)
		}
		if i%50 == 49 {
			eng.Reset()
		}
	}
}

func BenchmarkField(b *testing.B) {
	eng := benchEngine(b, 100)
	sampler := NewFieldSampler(eng)
	grid := Grid(-3, 3, -3, 3, 16, 16)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := sampler.Field(grid); err != nil {
			b.Fatal(err)
		}
	}
}
