package frames

import (
	"bytes"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lkleijn/mdmovie/internal/render"
	"github.com/lkleijn/mdmovie/internal/sample"
	"github.com/lkleijn/mdmovie/internal/trajectory"
)

func testTrajectory(tsteps int) *trajectory.Trajectory {
	traj := &trajectory.Trajectory{Dim: 2}
	for k := 0; k < tsteps; k++ {
		traj.Times = append(traj.Times, 0.01*float64(k))
		traj.Positions = append(traj.Positions, [][]float64{
			{1 + 0.05*float64(k), 2},
			{4, 5 - 0.05*float64(k)},
		})
		traj.Velocities = append(traj.Velocities, [][]float64{
			{0.1, 0},
			{0, -0.1},
		})
	}
	return traj
}

func newSequencer(t *testing.T, workDir string) *Sequencer {
	t.Helper()
	r, err := render.New(10.0, 2)
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	r.Width, r.Height = 160, 120
	s := New(r)
	s.WorkDir = workDir
	return s
}

func TestWriteSequentialFilenames(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	s := newSequencer(t, dir)
	traj := testTrajectory(20)

	plan, err := sample.Plan(traj.Timesteps(), 5)
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if err := s.Write(traj, plan); err != nil {
		t.Fatalf("write: %v", err)
	}

	for seq := 0; seq < 5; seq++ {
		path := FramePath(dir, DefaultPrefix, 2, seq)
		f, err := os.Open(path)
		if err != nil {
			t.Fatalf("expected frame %d at %s: %v", seq, path, err)
		}
		if _, err := png.Decode(f); err != nil {
			t.Errorf("frame %d is not a valid PNG: %v", seq, err)
		}
		f.Close()
	}

	// No extra frames beyond the plan.
	if _, err := os.Stat(FramePath(dir, DefaultPrefix, 2, 5)); !os.IsNotExist(err) {
		t.Error("unexpected sixth frame")
	}
}

func TestFramePathFormat(t *testing.T) {
	got := FramePath("tmp-plot", "pair_int_", 2, 7)
	want := filepath.Join("tmp-plot", "pair_int_2D00007.png")
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}

	got = FramePath("tmp-plot", "pair_int_", 3, 99999)
	want = filepath.Join("tmp-plot", "pair_int_3D99999.png")
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestWriteCreatesWorkDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "frames")
	s := newSequencer(t, dir)
	traj := testTrajectory(3)

	if err := s.Write(traj, []int{0, 2}); err != nil {
		t.Fatalf("write: %v", err)
	}
	// A second run into the same directory must not fail.
	if err := s.Write(traj, []int{0, 2}); err != nil {
		t.Fatalf("second write: %v", err)
	}
}

func TestWriteReportsProgress(t *testing.T) {
	dir := t.TempDir()
	s := newSequencer(t, dir)
	var buf bytes.Buffer
	s.Progress = &buf

	traj := testTrajectory(4)
	if err := s.Write(traj, []int{0, 1, 3}); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	for i := 1; i <= 3; i++ {
		if !strings.Contains(out, fmt.Sprintf("frame %d/3", i)) {
			t.Errorf("missing progress line for frame %d: %q", i, out)
		}
	}
}

func TestWriteRejectsBadPlan(t *testing.T) {
	s := newSequencer(t, t.TempDir())
	traj := testTrajectory(3)
	if err := s.Write(traj, []int{0, 5}); err == nil {
		t.Error("expected error for out-of-range plan index")
	}
}

func TestWriteAbortsOnIOFailure(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("directory permissions are not enforced for root")
	}
	dir := t.TempDir()
	if err := os.Chmod(dir, 0555); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	defer os.Chmod(dir, 0755)

	s := newSequencer(t, filepath.Join(dir, "frames"))
	if err := s.Write(testTrajectory(3), []int{0, 1}); err == nil {
		t.Error("expected error when working directory cannot be created")
	}
}
