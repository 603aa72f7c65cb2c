package trajectory

import "math"

// MinimumImage computes, for every ordered particle pair (i, j), the
// displacement from particle i to the nearest periodic image of particle j
// in a cubic box of edge L, together with the corresponding distance.
//
// rel[i][j] is the per-axis displacement, dist[i][j] its norm. rel[i][i]
// is the zero vector.
func MinimumImage(pos [][]float64, L float64) (rel [][][]float64, dist [][]float64) {
	n := len(pos)
	rel = make([][][]float64, n)
	dist = make([][]float64, n)
	for i := 0; i < n; i++ {
		rel[i] = make([][]float64, n)
		dist[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			d := make([]float64, len(pos[i]))
			sum := 0.0
			for a := range d {
				delta := pos[j][a] - pos[i][a]
				delta -= L * math.Round(delta/L)
				d[a] = delta
				sum += delta * delta
			}
			rel[i][j] = d
			dist[i][j] = math.Sqrt(sum)
		}
	}
	return rel, dist
}
