package trajectory

// KineticEnergy returns the total kinetic energy of one timestep's
// velocity set in reduced units (unit particle mass).
func KineticEnergy(vel [][]float64) float64 {
	e := 0.0
	for _, v := range vel {
		for _, c := range v {
			e += 0.5 * c * c
		}
	}
	return e
}

// PotentialEnergy returns the total Lennard-Jones potential energy of one
// timestep's position set, using minimum-image pair separations.
func PotentialEnergy(pos [][]float64, L float64) float64 {
	_, dist := MinimumImage(pos, L)
	e := 0.0
	for i := range dist {
		for j := i + 1; j < len(dist); j++ {
			r := dist[i][j]
			if r == 0 {
				continue
			}
			r6 := 1 / (r * r * r * r * r * r)
			e += 4 * (r6*r6 - r6)
		}
	}
	return e
}

// TotalEnergy returns kinetic plus potential energy for one timestep.
func TotalEnergy(pos, vel [][]float64, L float64) float64 {
	return KineticEnergy(vel) + PotentialEnergy(pos, L)
}
