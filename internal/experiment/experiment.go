// Package experiment wires an engine, a step-size schedule, and
// metrics into a bounded run, and provides the registry of named
// targets, kernels, and schedules used by the CLI.
package experiment

import (
	"context"

	"github.com/san-kum/steinlab/internal/schedule"
	"github.com/san-kum/steinlab/internal/stein"
)

type Experiment struct {
	eng           *stein.Engine
	sched         schedule.Schedule
	metrics       []stein.Metric
	observers     []stein.Observer
	iterations    int
	snapshotEvery int
}

type Result struct {
	Positions     []stein.Vector
	Snapshots     [][]stein.Vector
	SnapshotSteps []int
	Metrics       map[string]float64
	StepsTaken    int
}

func New(eng *stein.Engine, sched schedule.Schedule, iterations int) *Experiment {
	return &Experiment{
		eng:        eng,
		sched:      sched,
		iterations: iterations,
		metrics:    make([]stein.Metric, 0),
		observers:  make([]stein.Observer, 0),
	}
}

func (e *Experiment) AddMetric(m stein.Metric)     { e.metrics = append(e.metrics, m) }
func (e *Experiment) AddObserver(o stein.Observer) { e.observers = append(e.observers, o) }

// SnapshotEvery records particle positions every k steps (0 disables
// snapshots; the final positions are always returned).
func (e *Experiment) SnapshotEvery(k int) { e.snapshotEvery = k }

func (e *Experiment) Engine() *stein.Engine { return e.eng }

func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	result := &Result{
		Metrics: make(map[string]float64),
	}

	for _, m := range e.metrics {
		m.Reset()
	}

	for i := 0; i < e.iterations; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if e.sched != nil {
			cfg := e.eng.Config()
			cfg.StepSize = e.sched.At(i)
			if err := e.eng.Configure(cfg); err != nil {
				return result, err
			}
		}

		if err := e.eng.Step(); err != nil {
			return result, err
		}
		result.StepsTaken++

		positions := e.eng.Positions()
		for _, m := range e.metrics {
			m.Observe(positions, i)
		}
		for _, obs := range e.observers {
			obs.OnStep(positions, i)
		}

		if e.snapshotEvery > 0 && (i+1)%e.snapshotEvery == 0 {
			result.Snapshots = append(result.Snapshots, positions)
			result.SnapshotSteps = append(result.SnapshotSteps, i+1)
		}
	}

	result.Positions = e.eng.Positions()
	for _, m := range e.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}
