package stein_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/steinlab/internal/kernels"
	"github.com/san-kum/steinlab/internal/stein"
	"github.com/san-kum/steinlab/internal/targets"
)

func newEngine(n int, cfg stein.Config) *stein.Engine {
	score := targets.NewStandardGaussian(2)
	kern, err := kernels.NewRBF(1.0)
	Expect(err).NotTo(HaveOccurred())

	eng, err := stein.NewEngine(score, kern, stein.Init{Mean: 2, Std: 1, Seed: 7}, n, cfg)
	Expect(err).NotTo(HaveOccurred())
	return eng
}

var _ = Describe("Engine", func() {
	var eng *stein.Engine

	BeforeEach(func() {
		eng = newEngine(20, stein.DefaultConfig())
	})

	Describe("construction", func() {
		It("rejects a non-positive particle count", func() {
			score := targets.NewStandardGaussian(2)
			kern, _ := kernels.NewRBF(1.0)
			_, err := stein.NewEngine(score, kern, stein.DefaultInit(), 0, stein.DefaultConfig())
			Expect(err).To(MatchError(stein.ErrConfiguration))
		})

		It("rejects a non-positive step size", func() {
			score := targets.NewStandardGaussian(2)
			kern, _ := kernels.NewRBF(1.0)
			cfg := stein.DefaultConfig()
			cfg.StepSize = 0
			_, err := stein.NewEngine(score, kern, stein.DefaultInit(), 10, cfg)
			Expect(err).To(MatchError(stein.ErrConfiguration))
		})

		It("draws the declared number of particles", func() {
			Expect(eng.Len()).To(Equal(20))
			Expect(eng.Dim()).To(Equal(2))
			Expect(eng.Positions()).To(HaveLen(20))
		})
	})

	Describe("Configure", func() {
		It("rejects a non-positive step size without touching state", func() {
			before := eng.Config()
			cfg := before
			cfg.StepSize = -0.1
			Expect(eng.Configure(cfg)).To(MatchError(stein.ErrConfiguration))
			Expect(eng.Config()).To(Equal(before))
		})

		It("takes effect on the next step", func() {
			cfg := eng.Config()
			cfg.Attraction = false
			cfg.Repulsion = false
			Expect(eng.Configure(cfg)).To(Succeed())

			before := eng.Positions()
			Expect(eng.Step()).To(Succeed())
			Expect(eng.Positions()).To(Equal(before))
		})
	})

	Describe("Reset", func() {
		It("reproduces the construction draw after arbitrary stepping", func() {
			fresh := newEngine(20, stein.DefaultConfig())

			for i := 0; i < 5; i++ {
				Expect(eng.Step()).To(Succeed())
			}
			eng.Reset()

			Expect(eng.Positions()).To(Equal(fresh.Positions()))
			Expect(eng.Steps()).To(BeZero())
		})

		It("is itself repeatable", func() {
			eng.Reset()
			first := eng.Positions()
			Expect(eng.Step()).To(Succeed())
			eng.Reset()
			Expect(eng.Positions()).To(Equal(first))
		})
	})

	Describe("Step", func() {
		It("moves a displaced cloud toward the target mode", func() {
			// Initial draw is centered at (2, 2); the target sits at
			// the origin. The force is an unnormalized sum over n
			// particles, so the step size is kept small.
			cfg := eng.Config()
			cfg.StepSize = 0.002
			Expect(eng.Configure(cfg)).To(Succeed())

			meanBefore := meanNorm(eng.Positions())
			for i := 0; i < 100; i++ {
				Expect(eng.Step()).To(Succeed())
			}
			Expect(meanNorm(eng.Positions())).To(BeNumerically("<", meanBefore))
		})

		It("advances the step counter", func() {
			Expect(eng.Step()).To(Succeed())
			Expect(eng.Step()).To(Succeed())
			Expect(eng.Steps()).To(Equal(2))
		})
	})

	Describe("FieldSampler", func() {
		It("returns identical output for consecutive calls", func() {
			sampler := stein.NewFieldSampler(eng)
			grid := stein.Grid(-3, 3, -3, 3, 8, 8)

			first, err := sampler.Field(grid)
			Expect(err).NotTo(HaveOccurred())
			second, err := sampler.Field(grid)
			Expect(err).NotTo(HaveOccurred())
			Expect(second).To(Equal(first))
		})

		It("does not mutate particles or grid points", func() {
			sampler := stein.NewFieldSampler(eng)
			grid := stein.Grid(-3, 3, -3, 3, 4, 4)
			gridCopy := make([]stein.Vector, len(grid))
			for i := range grid {
				gridCopy[i] = grid[i].Clone()
			}
			before := eng.Positions()

			_, err := sampler.Field(grid)
			Expect(err).NotTo(HaveOccurred())
			Expect(eng.Positions()).To(Equal(before))
			Expect(grid).To(Equal(gridCopy))
		})

		It("changes after a step", func() {
			sampler := stein.NewFieldSampler(eng)
			grid := stein.Grid(-3, 3, -3, 3, 4, 4)

			first, err := sampler.Field(grid)
			Expect(err).NotTo(HaveOccurred())
			Expect(eng.Step()).To(Succeed())
			second, err := sampler.Field(grid)
			Expect(err).NotTo(HaveOccurred())
			Expect(second).NotTo(Equal(first))
		})

		It("scales by the step size in displacement mode", func() {
			grid := stein.Grid(-3, 3, -3, 3, 4, 4)
			sampler := stein.NewFieldSampler(eng)

			velocity, err := sampler.Field(grid)
			Expect(err).NotTo(HaveOccurred())

			cfg := eng.Config()
			cfg.FieldScale = stein.FieldDisplacement
			Expect(eng.Configure(cfg)).To(Succeed())

			displacement, err := sampler.Field(grid)
			Expect(err).NotTo(HaveOccurred())

			for i := range velocity {
				for d := range velocity[i] {
					Expect(displacement[i][d]).To(BeNumerically("~", velocity[i][d]*cfg.StepSize, 1e-12))
				}
			}
		})

		It("rejects grid points of the wrong dimension", func() {
			sampler := stein.NewFieldSampler(eng)
			_, err := sampler.Field([]stein.Vector{{1, 2, 3}})
			Expect(err).To(MatchError(stein.ErrDimensionMismatch))
		})
	})

	Describe("Ensemble", func() {
		It("runs independent chains to completion", func() {
			score := targets.NewStandardGaussian(2)
			kern, _ := kernels.NewRBF(1.0)
			ens := stein.NewEnsemble(score, kern, stein.Init{Std: 1, Seed: 3}, stein.DefaultConfig(), 10, 4)

			results, err := ens.Run(context.Background(), 5)
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(4))
			// Different seeds give different clouds.
			Expect(results[0]).NotTo(Equal(results[1]))
		})
	})
})

var _ = Describe("Grid", func() {
	It("builds a row-major lattice with exact corners", func() {
		grid := stein.Grid(-1, 1, 0, 2, 3, 3)
		Expect(grid).To(HaveLen(9))
		Expect(grid[0]).To(Equal(stein.Vector{-1, 0}))
		Expect(grid[2]).To(Equal(stein.Vector{1, 0}))
		Expect(grid[8]).To(Equal(stein.Vector{1, 2}))
	})

	It("returns nil for degenerate sizes", func() {
		Expect(stein.Grid(0, 1, 0, 1, 1, 5)).To(BeNil())
	})
})

func meanNorm(positions []stein.Vector) float64 {
	total := 0.0
	for _, p := range positions {
		total += p.Norm()
	}
	return total / float64(len(positions))
}
