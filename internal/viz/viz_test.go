package viz

import (
	"math"
	"strings"
	"testing"

	"github.com/lkleijn/mdmovie/internal/trajectory"
)

func testTrajectory(nSteps, nParticles, dim int) *trajectory.Trajectory {
	traj := &trajectory.Trajectory{Dim: dim}
	for s := 0; s < nSteps; s++ {
		traj.Times = append(traj.Times, float64(s)*0.01)
		pos := make([][]float64, nParticles)
		vel := make([][]float64, nParticles)
		for p := 0; p < nParticles; p++ {
			pos[p] = make([]float64, dim)
			vel[p] = make([]float64, dim)
			for d := 0; d < dim; d++ {
				pos[p][d] = float64(p+1) + 0.1*float64(s)
				vel[p][d] = 0.5
			}
		}
		traj.Positions = append(traj.Positions, pos)
		traj.Velocities = append(traj.Velocities, vel)
	}
	return traj
}

func TestCanvasSetString(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(0, 0)

	lines := strings.Split(strings.TrimRight(c.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(lines))
	}
	if []rune(lines[0])[0] == 0x2800 {
		t.Error("top-left cell should have a dot set")
	}
	if []rune(lines[1])[0] != 0x2800 {
		t.Error("bottom row should be empty")
	}
}

func TestCanvasOutOfRangeIgnored(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(-1, 0)
	c.Set(0, -5)
	c.Set(100, 100)

	for _, row := range c.grid {
		for _, r := range row {
			if r != 0x2800 {
				t.Fatal("out-of-range Set should leave the canvas empty")
			}
		}
	}
}

func TestCanvasPlotYFlipped(t *testing.T) {
	c := NewCanvas(10, 10)
	c.SetWindow(0, 0, 1, 1)
	c.Plot(0, 1) // world top-left lands in raster row 0

	if c.grid[0][0] == 0x2800 {
		t.Error("world (0,1) should map to the top-left cell")
	}
}

func TestNewModelValidation(t *testing.T) {
	traj := testTrajectory(10, 2, 2)

	tests := []struct {
		name string
		plan []int
		opts Options
	}{
		{"empty plan", nil, Options{BoxLength: 10}},
		{"index out of range", []int{0, 10}, Options{BoxLength: 10}},
		{"negative index", []int{-1}, Options{BoxLength: 10}},
		{"bad box length", []int{0}, Options{BoxLength: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewModel(traj, tt.plan, tt.opts); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestNewModelPrecomputesEnergy(t *testing.T) {
	traj := testTrajectory(5, 3, 2)
	plan := []int{0, 2, 4}

	m, err := NewModel(traj, plan, Options{BoxLength: 10})
	if err != nil {
		t.Fatalf("NewModel failed: %v", err)
	}
	if len(m.total) != len(plan) || len(m.kinetic) != len(plan) {
		t.Fatalf("expected %d energy entries", len(plan))
	}
	// 3 particles, 2 components of 0.5 each: 3 * 2 * 0.5 * 0.25
	wantKin := 0.75
	if math.Abs(m.kinetic[0]-wantKin) > 1e-12 {
		t.Errorf("kinetic energy = %g, want %g", m.kinetic[0], wantKin)
	}
}

func TestViewShowsFrameCounter(t *testing.T) {
	traj := testTrajectory(5, 2, 2)
	m, err := NewModel(traj, []int{0, 2, 4}, Options{BoxLength: 10})
	if err != nil {
		t.Fatalf("NewModel failed: %v", err)
	}

	view := m.View()
	if !strings.Contains(view, "1/3") {
		t.Error("view should show the frame counter")
	}
	if !strings.Contains(view, "TRAJECTORY 2D") {
		t.Error("view should show the header")
	}
}

func TestDraw3DProjectsInsideWindow(t *testing.T) {
	traj := testTrajectory(3, 2, 3)
	m, err := NewModel(traj, []int{0, 1, 2}, Options{BoxLength: 10})
	if err != nil {
		t.Fatalf("NewModel failed: %v", err)
	}
	m.draw()

	set := 0
	for _, row := range m.canvas.grid {
		for _, r := range row {
			if r != 0x2800 {
				set++
			}
		}
	}
	if set == 0 {
		t.Error("3D draw should set cells for box edges and particles")
	}
}

func TestProjectorMatchesFrameCamera(t *testing.T) {
	p := newProjector(-60, 30)

	// the projection is linear
	a := []float64{1, 2, 3}
	b := []float64{4, 5, 6}
	au, aw := p.point(a)
	bu, bw := p.point(b)
	su, sw := p.point([]float64{5, 7, 9})
	if math.Abs(su-(au+bu)) > 1e-12 || math.Abs(sw-(aw+bw)) > 1e-12 {
		t.Error("projection should be linear")
	}

	// z maps straight up at any azimuth
	u, w := p.point([]float64{0, 0, 1})
	if math.Abs(u) > 1e-12 || w <= 0 {
		t.Errorf("z axis should project upward, got (%g, %g)", u, w)
	}
}

func TestCubeEdges(t *testing.T) {
	edges := cubeEdges(10)
	if len(edges) != 12 {
		t.Fatalf("expected 12 cube edges, got %d", len(edges))
	}
	for _, e := range edges {
		diff := 0
		for d := 0; d < 3; d++ {
			if e[0][d] != e[1][d] {
				diff++
			}
		}
		if diff != 1 {
			t.Errorf("edge endpoints should differ along exactly one axis: %v", e)
		}
	}
}
