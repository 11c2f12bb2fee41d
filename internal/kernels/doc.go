// Package kernels provides positive-definite similarity kernels for
// particle transport: a stationary RBF kernel, a non-stationary Gibbs
// kernel with pointwise lengthscale, and an inverse multiquadric
// alternative, plus the median-distance bandwidth heuristic.
package kernels
