package charts

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/lkleijn/mdmovie/internal/trajectory"
)

func testTrajectory(tsteps int) *trajectory.Trajectory {
	traj := &trajectory.Trajectory{Dim: 2}
	for k := 0; k < tsteps; k++ {
		traj.Times = append(traj.Times, 0.01*float64(k))
		traj.Positions = append(traj.Positions, [][]float64{
			{2 + 0.01*float64(k), 5},
			{7, 5},
		})
		traj.Velocities = append(traj.Velocities, [][]float64{
			{1, 0},
			{-1, 0},
		})
	}
	return traj
}

func assertPNG(t *testing.T, path string) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("chart not written: %v", err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Errorf("chart is not a valid PNG: %v", err)
	}
}

func TestEnergyVsTime(t *testing.T) {
	dir := t.TempDir()
	traj := testTrajectory(50)

	path := filepath.Join(dir, "energy.png")
	if err := EnergyVsTime(traj, 10.0, false, path); err != nil {
		t.Fatalf("energy chart: %v", err)
	}
	assertPNG(t, path)

	path = filepath.Join(dir, "energy_kp.png")
	if err := EnergyVsTime(traj, 10.0, true, path); err != nil {
		t.Fatalf("energy chart with components: %v", err)
	}
	assertPNG(t, path)
}

func TestEnergyConservation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drift.png")
	if err := EnergyConservation(testTrajectory(50), 10.0, path); err != nil {
		t.Fatalf("drift chart: %v", err)
	}
	assertPNG(t, path)
}

func TestPairDistance(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dist.png")
	if err := PairDistance(testTrajectory(50), 0, 1, path); err != nil {
		t.Fatalf("pair distance chart: %v", err)
	}
	assertPNG(t, path)
}

func TestPairDistanceBadIndex(t *testing.T) {
	if err := PairDistance(testTrajectory(5), 0, 7, "unused.png"); err == nil {
		t.Error("expected error for out-of-range particle index")
	}
}

func TestChartsRejectEmptyTrajectory(t *testing.T) {
	traj := &trajectory.Trajectory{Dim: 2}
	if err := EnergyVsTime(traj, 10.0, false, "unused.png"); err == nil {
		t.Error("expected error for empty trajectory")
	}
}
