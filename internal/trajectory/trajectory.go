package trajectory

import (
	"errors"
	"fmt"
)

// Domain errors for trajectory data.
var (
	// ErrEmpty indicates a trajectory with no timesteps.
	ErrEmpty = errors.New("trajectory: no timesteps")

	// ErrShapeMismatch indicates position/velocity arrays inconsistent with
	// the declared particle count or dimensionality.
	ErrShapeMismatch = errors.New("trajectory: inconsistent data shape")

	// ErrDimension indicates a dimensionality other than 2 or 3.
	ErrDimension = errors.New("trajectory: dimensionality must be 2 or 3")
)

// Trajectory holds the full time evolution of one particle system.
type Trajectory struct {
	Times      []float64
	Positions  [][][]float64 // [timestep][particle][axis]
	Velocities [][][]float64 // same shape as Positions
	Dim        int
}

// Timesteps returns the number of recorded timesteps.
func (t *Trajectory) Timesteps() int { return len(t.Times) }

// Particles returns the particle count, constant across timesteps.
func (t *Trajectory) Particles() int {
	if len(t.Positions) == 0 {
		return 0
	}
	return len(t.Positions[0])
}

// Validate checks the co-indexing invariants: equal sequence lengths,
// constant particle count, and a consistent axis count matching Dim.
func (t *Trajectory) Validate() error {
	if len(t.Times) == 0 {
		return ErrEmpty
	}
	if t.Dim != 2 && t.Dim != 3 {
		return fmt.Errorf("%w, got %d", ErrDimension, t.Dim)
	}
	if len(t.Positions) != len(t.Times) || len(t.Velocities) != len(t.Times) {
		return fmt.Errorf("%w: %d times, %d position sets, %d velocity sets",
			ErrShapeMismatch, len(t.Times), len(t.Positions), len(t.Velocities))
	}
	n := len(t.Positions[0])
	for k := range t.Positions {
		if len(t.Positions[k]) != n || len(t.Velocities[k]) != n {
			return fmt.Errorf("%w: particle count changes at timestep %d", ErrShapeMismatch, k)
		}
		for i := 0; i < n; i++ {
			if len(t.Positions[k][i]) != t.Dim || len(t.Velocities[k][i]) != t.Dim {
				return fmt.Errorf("%w: coordinate tuple at timestep %d particle %d has wrong arity",
					ErrShapeMismatch, k, i)
			}
		}
	}
	return nil
}
