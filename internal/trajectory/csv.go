package trajectory

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Load reads a trajectory from a CSV dataset written by the simulation
// engine. The header determines particle count and dimensionality: position
// columns x0,y0[,z0],x1,... followed by matching velocity columns vx0,...
func Load(path string) (*Trajectory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%w in %s", ErrEmpty, path)
	}

	header := records[0]
	dim, n, err := parseHeader(header)
	if err != nil {
		return nil, fmt.Errorf("bad header in %s: %w", path, err)
	}

	want := 1 + 2*n*dim
	traj := &Trajectory{Dim: dim}
	for line, rec := range records[1:] {
		if len(rec) != want {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d",
				ErrShapeMismatch, line+2, len(rec), want)
		}
		vals := make([]float64, len(rec))
		for i, s := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return nil, fmt.Errorf("row %d column %d: %w", line+2, i+1, err)
			}
			vals[i] = v
		}

		pos := make([][]float64, n)
		vel := make([][]float64, n)
		for i := 0; i < n; i++ {
			pos[i] = vals[1+i*dim : 1+(i+1)*dim]
			vel[i] = vals[1+n*dim+i*dim : 1+n*dim+(i+1)*dim]
		}
		traj.Times = append(traj.Times, vals[0])
		traj.Positions = append(traj.Positions, pos)
		traj.Velocities = append(traj.Velocities, vel)
	}

	if err := traj.Validate(); err != nil {
		return nil, err
	}
	return traj, nil
}

// Save writes a trajectory in the same CSV layout Load expects.
func Save(path string, t *Trajectory) error {
	if err := t.Validate(); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	n := t.Particles()
	axes := []string{"x", "y", "z"}[:t.Dim]

	header := []string{"time"}
	for i := 0; i < n; i++ {
		for _, a := range axes {
			header = append(header, fmt.Sprintf("%s%d", a, i))
		}
	}
	for i := 0; i < n; i++ {
		for _, a := range axes {
			header = append(header, fmt.Sprintf("v%s%d", a, i))
		}
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for k := range t.Times {
		row := []string{strconv.FormatFloat(t.Times[k], 'f', 6, 64)}
		for i := 0; i < n; i++ {
			for d := 0; d < t.Dim; d++ {
				row = append(row, strconv.FormatFloat(t.Positions[k][i][d], 'f', 6, 64))
			}
		}
		for i := 0; i < n; i++ {
			for d := 0; d < t.Dim; d++ {
				row = append(row, strconv.FormatFloat(t.Velocities[k][i][d], 'f', 6, 64))
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// parseHeader returns (dim, particles) from a dataset header row.
func parseHeader(header []string) (int, int, error) {
	if len(header) == 0 || strings.TrimSpace(header[0]) != "time" {
		return 0, 0, fmt.Errorf("first column must be time")
	}

	dim := 2
	n := 0
	for _, col := range header[1:] {
		col = strings.TrimSpace(col)
		if strings.HasPrefix(col, "z") {
			dim = 3
		}
		if strings.HasPrefix(col, "x") {
			n++
		}
	}
	if n == 0 {
		return 0, 0, fmt.Errorf("no position columns")
	}
	if len(header) != 1+2*n*dim {
		return 0, 0, fmt.Errorf("%d columns inconsistent with %d particles in %dD",
			len(header), n, dim)
	}
	return dim, n, nil
}
