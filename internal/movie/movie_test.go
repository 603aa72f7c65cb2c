package movie

import (
	"errors"
	"image/gif"
	"os"
	"path/filepath"
	"testing"

	"github.com/lkleijn/mdmovie/internal/frames"
	"github.com/lkleijn/mdmovie/internal/render"
	"github.com/lkleijn/mdmovie/internal/sample"
	"github.com/lkleijn/mdmovie/internal/trajectory"
)

// writeDataset persists a 2D dataset with the given number of timesteps.
func writeDataset(t *testing.T, path string, tsteps int) {
	t.Helper()
	traj := &trajectory.Trajectory{Dim: 2}
	for k := 0; k < tsteps; k++ {
		traj.Times = append(traj.Times, 0.01*float64(k))
		traj.Positions = append(traj.Positions, [][]float64{
			{1 + 0.02*float64(k), 5},
		})
		traj.Velocities = append(traj.Velocities, [][]float64{{2, 0}})
	}
	if err := trajectory.Save(path, traj); err != nil {
		t.Fatalf("save dataset: %v", err)
	}
}

func baseConfig(dir string) Config {
	return Config{
		Dataset:   filepath.Join(dir, "run.csv"),
		Output:    filepath.Join(dir, "movie.gif"),
		Format:    FormatGIF,
		Frames:    5,
		BoxLength: 10,
		Dim:       2,
		WorkDir:   filepath.Join(dir, "tmp-plot"),
		Width:     160,
		Height:    120,
	}
}

func TestRunEndToEnd(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, filepath.Join(dir, "run.csv"), 101)

	cfg := baseConfig(dir)
	if err := New(cfg).Run(); err != nil {
		t.Fatalf("run: %v", err)
	}

	// Five sequence-numbered frames 00000..00004 must exist.
	for seq := 0; seq < 5; seq++ {
		path := frames.FramePath(cfg.WorkDir, frames.DefaultPrefix, 2, seq)
		if _, err := os.Stat(path); err != nil {
			t.Errorf("missing frame %d: %v", seq, err)
		}
	}

	f, err := os.Open(cfg.Output)
	if err != nil {
		t.Fatalf("open animation: %v", err)
	}
	defer f.Close()
	decoded, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatalf("decode animation: %v", err)
	}
	if len(decoded.Image) != 5 {
		t.Errorf("expected 5 animation frames, got %d", len(decoded.Image))
	}
	// 3 s budget over 5 frames: 0.6 s each.
	for i, d := range decoded.Delay {
		if d != 60 {
			t.Errorf("frame %d: expected delay 60, got %d", i, d)
		}
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"one frame", func(c *Config) { c.Frames = 1 }, sample.ErrFrameBudget},
		{"zero frames", func(c *Config) { c.Frames = 0 }, sample.ErrFrameBudget},
		{"zero box", func(c *Config) { c.BoxLength = 0 }, render.ErrBoxLength},
		{"negative box", func(c *Config) { c.BoxLength = -1 }, render.ErrBoxLength},
		{"bad dim", func(c *Config) { c.Dim = 4 }, render.ErrDimension},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := baseConfig("x")
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	cfg := baseConfig("x")
	cfg.Format = "webm"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestRunRejectsBeforeIO(t *testing.T) {
	dir := t.TempDir()
	cfg := baseConfig(dir)
	cfg.Frames = 1

	// Validation must fail before the dataset is even opened: no dataset
	// exists, yet the error is the frame budget one.
	if err := New(cfg).Run(); !errors.Is(err, sample.ErrFrameBudget) {
		t.Errorf("expected ErrFrameBudget, got %v", err)
	}
	if _, err := os.Stat(cfg.WorkDir); !os.IsNotExist(err) {
		t.Error("working directory must not be created for invalid config")
	}
}

func TestRunDimensionMismatch(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, filepath.Join(dir, "run.csv"), 10)

	cfg := baseConfig(dir)
	cfg.Dim = 3
	if err := New(cfg).Run(); !errors.Is(err, render.ErrShapeMismatch) {
		t.Errorf("expected ErrShapeMismatch for 2D data in 3D run, got %v", err)
	}
}

func TestRunRepeatedIndicesLegal(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, filepath.Join(dir, "run.csv"), 3)

	cfg := baseConfig(dir)
	cfg.Frames = 6 // budget exceeds trajectory length
	if err := New(cfg).Run(); err != nil {
		t.Fatalf("run with repeated indices: %v", err)
	}

	f, err := os.Open(cfg.Output)
	if err != nil {
		t.Fatalf("open animation: %v", err)
	}
	defer f.Close()
	decoded, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatalf("decode animation: %v", err)
	}
	if len(decoded.Image) != 6 {
		t.Errorf("expected 6 frames, got %d", len(decoded.Image))
	}
}
