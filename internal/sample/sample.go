// Package sample selects which trajectory timesteps to render given a
// frame budget.
package sample

import (
	"errors"
	"fmt"
)

// Domain errors for frame sampling.
var (
	// ErrFrameBudget indicates a frame budget below the minimum of 2.
	ErrFrameBudget = errors.New("sample: frame budget must be at least 2")

	// ErrNoTimesteps indicates an empty trajectory.
	ErrNoTimesteps = errors.New("sample: trajectory must have at least one timestep")
)

// Plan returns numFrames timestep indices covering [0, numTsteps-1]
// approximately uniformly. Indices are non-decreasing and the final entry
// is always numTsteps-1, so the last frame depicts the final timestep even
// when integer rounding would skip it. A budget larger than the trajectory
// yields repeated indices.
func Plan(numTsteps, numFrames int) ([]int, error) {
	if numTsteps < 1 {
		return nil, fmt.Errorf("%w, got %d", ErrNoTimesteps, numTsteps)
	}
	if numFrames < 2 {
		return nil, fmt.Errorf("%w, got %d", ErrFrameBudget, numFrames)
	}

	plan := make([]int, numFrames)
	for i := 0; i < numFrames-1; i++ {
		plan[i] = i * (numTsteps - 1) / (numFrames - 1)
	}
	plan[numFrames-1] = numTsteps - 1
	return plan, nil
}
