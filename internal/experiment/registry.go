package experiment

import (
	"fmt"

	"github.com/san-kum/steinlab/internal/kernels"
	"github.com/san-kum/steinlab/internal/schedule"
	"github.com/san-kum/steinlab/internal/stein"
	"github.com/san-kum/steinlab/internal/targets"
)

type Registry struct {
	targets   map[string]func(dim int) stein.ScoreFunc
	kernels   map[string]func(lengthscale float64) (stein.Kernel, error)
	schedules map[string]func(eps, rate float64) (schedule.Schedule, error)
}

func NewRegistry() *Registry {
	r := &Registry{
		targets:   make(map[string]func(dim int) stein.ScoreFunc),
		kernels:   make(map[string]func(float64) (stein.Kernel, error)),
		schedules: make(map[string]func(float64, float64) (schedule.Schedule, error)),
	}

	r.targets["gaussian"] = func(dim int) stein.ScoreFunc { return targets.NewStandardGaussian(dim) }
	r.targets["bimodal"] = func(dim int) stein.ScoreFunc { return targets.NewBimodal(dim, 4.0) }
	r.targets["doublewell"] = func(dim int) stein.ScoreFunc { return targets.NewDoubleWell(dim) }
	r.targets["banana"] = func(dim int) stein.ScoreFunc {
		return targets.NewOracleScore(targets.NewBanana(), nil)
	}

	r.kernels["rbf"] = func(l float64) (stein.Kernel, error) { return kernels.NewRBF(l) }
	r.kernels["imq"] = func(l float64) (stein.Kernel, error) { return kernels.NewIMQ(l) }
	r.kernels["gibbs"] = func(l float64) (stein.Kernel, error) {
		return kernels.NewGibbs(kernels.Constant(l), nil)
	}

	r.schedules["constant"] = func(eps, _ float64) (schedule.Schedule, error) {
		return schedule.NewConstant(eps)
	}
	r.schedules["exponential"] = func(eps, rate float64) (schedule.Schedule, error) {
		if rate == 0 {
			rate = 0.995
		}
		return schedule.NewExponential(eps, rate)
	}
	r.schedules["inverse"] = func(eps, rate float64) (schedule.Schedule, error) {
		return schedule.NewInverse(eps, rate)
	}

	return r
}

func (r *Registry) Target(name string, dim int) (stein.ScoreFunc, error) {
	fn, ok := r.targets[name]
	if !ok {
		return nil, fmt.Errorf("unknown target: %s", name)
	}
	return fn(dim), nil
}

func (r *Registry) Kernel(name string, lengthscale float64) (stein.Kernel, error) {
	fn, ok := r.kernels[name]
	if !ok {
		return nil, fmt.Errorf("unknown kernel: %s", name)
	}
	return fn(lengthscale)
}

func (r *Registry) Schedule(name string, eps, rate float64) (schedule.Schedule, error) {
	fn, ok := r.schedules[name]
	if !ok {
		return nil, fmt.Errorf("unknown schedule: %s", name)
	}
	return fn(eps, rate)
}

func (r *Registry) Targets() []string   { return keys(r.targets) }
func (r *Registry) Kernels() []string   { return keys(r.kernels) }
func (r *Registry) Schedules() []string { return keys(r.schedules) }

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
