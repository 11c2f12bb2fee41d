// Package compute provides the parallel execution backend for the
// O(n^2) pairwise force accumulation. Work is split across the outer
// particle index only, so parallel and serial execution produce
// identical results.
package compute
