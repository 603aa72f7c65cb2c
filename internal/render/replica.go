package render

import "fmt"

// Offset is one translation of the replica offset set.
type Offset struct {
	Shift  []float64
	Center bool // true for the all-zero offset (the particle's true position)
}

// Offsets enumerates the replica offset set for the given dimensionality:
// the Cartesian product of {-L, 0, +L} over each axis. The zero vector is
// always present and tagged Center. Without neighbors only the zero vector
// is returned.
func Offsets(dim int, L float64, neighbors bool) ([]Offset, error) {
	if dim != 2 && dim != 3 {
		return nil, fmt.Errorf("%w, got %d", ErrDimension, dim)
	}

	if !neighbors {
		return []Offset{{Shift: make([]float64, dim), Center: true}}, nil
	}

	steps := []float64{-L, 0, +L}
	total := 1
	for d := 0; d < dim; d++ {
		total *= len(steps)
	}

	offsets := make([]Offset, 0, total)
	for k := 0; k < total; k++ {
		shift := make([]float64, dim)
		center := true
		rem := k
		for d := 0; d < dim; d++ {
			shift[d] = steps[rem%len(steps)]
			rem /= len(steps)
			if shift[d] != 0 {
				center = false
			}
		}
		offsets = append(offsets, Offset{Shift: shift, Center: center})
	}
	return offsets, nil
}

// Image is one rendered copy of a particle.
type Image struct {
	Pos    []float64
	Center bool // true position rather than a periodic replica
}

// ImagePositions returns every drawn image of a single particle position:
// the true position plus one translated copy per non-zero offset.
func ImagePositions(p []float64, L float64, neighbors bool) ([]Image, error) {
	offsets, err := Offsets(len(p), L, neighbors)
	if err != nil {
		return nil, err
	}
	images := make([]Image, len(offsets))
	for i, off := range offsets {
		shifted := make([]float64, len(p))
		for d := range p {
			shifted[d] = p[d] + off.Shift[d]
		}
		images[i] = Image{Pos: shifted, Center: off.Center}
	}
	return images, nil
}
