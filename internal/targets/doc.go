// Package targets provides target densities for particle transport.
// Each target exposes an unnormalized log-density and a score function
// (gradient of the log-density), closed-form where the family allows
// it and oracle-backed otherwise.
package targets
