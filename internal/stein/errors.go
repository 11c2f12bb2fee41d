package stein

import (
	"errors"
	"fmt"
)

// Domain errors for particle transport operations.
var (
	// ErrNumerical indicates a non-finite score or kernel value. The
	// computation is deterministic, so the error is surfaced rather
	// than clamped or retried.
	ErrNumerical = errors.New("stein: non-finite value (NaN or Inf detected)")

	// ErrConfiguration indicates an invalid engine or kernel parameter.
	ErrConfiguration = errors.New("stein: invalid configuration")

	// ErrDimensionMismatch indicates mismatched particle/score dimensions.
	ErrDimensionMismatch = errors.New("stein: dimension mismatch between particles and score")
)

// NumericalError reports where a non-finite value appeared. A failed
// Step leaves the ParticleSet unchanged.
type NumericalError struct {
	Particle int
	Position Vector
	Detail   string
}

func (e *NumericalError) Error() string {
	return fmt.Sprintf("particle %d: %s: %v", e.Particle, e.Detail, ErrNumerical)
}

func (e *NumericalError) Unwrap() error { return ErrNumerical }

// ConfigurationError reports a rejected parameter value.
type ConfigurationError struct {
	Field string
	Value float64
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s must be positive, got %g: %v", e.Field, e.Value, ErrConfiguration)
}

func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }
