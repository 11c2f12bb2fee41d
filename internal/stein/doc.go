// Package stein provides the core primitives for Stein Variational
// Gradient Descent (SVGD): particle transport toward a target density
// using only its score function.
//
// The package defines the fundamental types:
//
//   - [Vector]: position in R^d
//   - [ScoreFunc]: gradient of an (unnormalized) log-density
//   - [Kernel]: positive-definite pairwise similarity with gradient
//   - [ParticleSet]: the transported sample collection
//   - [Engine]: applies synchronous SVGD updates to a ParticleSet
//   - [FieldSampler]: evaluates the induced vector field at query points
//
// # Example
//
//	score := targets.NewStandardGaussian(2)
//	kern, _ := kernels.NewRBF(1.0)
//	eng, _ := stein.NewEngine(score, kern, stein.Init{Std: 1, Seed: 42}, 100, stein.DefaultConfig())
//	err := eng.Step()
//
// # Thread Safety
//
// Engine instances are NOT thread-safe; a ParticleSet is exclusively
// owned by one Engine. For parallel chains with independent seeds, use
// the [Ensemble] type.
package stein
