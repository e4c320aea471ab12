package model

import (
	"errors"
	"fmt"

	"github.com/wildstyl3r/knudsen/internal/config"
)

var (
	// ErrConfiguration: the run is never started.
	ErrConfiguration = config.ErrConfiguration

	// ErrNumericalDivergence: the collision time could not be resolved.
	ErrNumericalDivergence = errors.New("numerical divergence")

	// ErrDegenerateGeometry: the inner bore crossing has no valid chord.
	ErrDegenerateGeometry = errors.New("degenerate geometry")
)

// SimulationError aborts a single particle run and carries the state it failed in.
type SimulationError struct {
	Particle  int
	Collision int
	Time      float64
	State     Particle
	Wrapped   error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("particle %d, collision %d, t=%g, %v: %v", e.Particle, e.Collision, e.Time, e.State, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
