// Package frames drives the renderer across a sample plan and persists one
// still image per plan entry under sequence-numbered filenames.
package frames

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/lkleijn/mdmovie/internal/render"
	"github.com/lkleijn/mdmovie/internal/trajectory"
)

// Defaults for the frame working directory and filename prefix. The 5-digit
// sequence number supports up to 100000 frames.
const (
	DefaultWorkDir = "tmp-plot"
	DefaultPrefix  = "pair_int_"
)

// Sequencer owns the working directory and every frame file it writes.
// Frames are named prefix + dimensionality tag + zero-padded sequence index,
// so write order is reconstructible purely from filename ordering.
type Sequencer struct {
	WorkDir  string
	Prefix   string
	Renderer *render.Renderer

	// Progress receives informational per-frame lines; nil silences them.
	Progress io.Writer
}

// New returns a sequencer writing into the default working directory.
func New(r *render.Renderer) *Sequencer {
	return &Sequencer{
		WorkDir:  DefaultWorkDir,
		Prefix:   DefaultPrefix,
		Renderer: r,
	}
}

// FramePath returns the path of the frame with the given sequence index.
func FramePath(workDir, prefix string, dim, seq int) string {
	return filepath.Join(workDir, fmt.Sprintf("%s%dD%05d.png", prefix, dim, seq))
}

// Write renders one frame per plan entry, in order, labeling each with the
// dimensionless time of its timestep. The sequence index in the filename
// increases by exactly 1 per frame starting at 0, independent of which
// timestep indices were sampled. Any render or write failure aborts the
// whole run.
func (s *Sequencer) Write(traj *trajectory.Trajectory, plan []int) error {
	if err := traj.Validate(); err != nil {
		return err
	}
	for _, tstep := range plan {
		if tstep < 0 || tstep >= traj.Timesteps() {
			return fmt.Errorf("frames: plan index %d outside trajectory of %d timesteps", tstep, traj.Timesteps())
		}
	}

	if err := os.MkdirAll(s.WorkDir, 0755); err != nil {
		return fmt.Errorf("failed to create working directory: %w", err)
	}

	for seq, tstep := range plan {
		if s.Progress != nil {
			fmt.Fprintf(s.Progress, "rendering frame %d/%d\n", seq+1, len(plan))
		}

		canvas, err := s.Renderer.Frame(traj.Positions[tstep], traj.Times[tstep])
		if err != nil {
			return fmt.Errorf("frame %d (timestep %d): %w", seq, tstep, err)
		}

		if err := s.writeFrame(canvas, seq); err != nil {
			return fmt.Errorf("frame %d: %w", seq, err)
		}
	}
	return nil
}

func (s *Sequencer) writeFrame(canvas *render.Canvas, seq int) error {
	path := FramePath(s.WorkDir, s.Prefix, s.Renderer.Dim, seq)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := canvas.EncodePNG(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
