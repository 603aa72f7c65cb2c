// Package movie ties the sampler, sequencer and assembler into the single
// end-to-end operation: trajectory in, animation artifact out.
package movie

import (
	"fmt"
	"io"

	"github.com/lkleijn/mdmovie/internal/anim"
	"github.com/lkleijn/mdmovie/internal/frames"
	"github.com/lkleijn/mdmovie/internal/render"
	"github.com/lkleijn/mdmovie/internal/sample"
	"github.com/lkleijn/mdmovie/internal/trajectory"
)

// Animation output formats.
const (
	FormatGIF = "gif"
	FormatAVI = "avi"
)

// Config holds everything one run needs. All values come from direct call
// arguments (CLI flags or a config file); there is no hidden state.
type Config struct {
	Dataset   string
	Output    string
	Format    string
	Frames    int
	BoxLength float64
	Dim       int
	Duration  float64
	WorkDir   string
	Width     int
	Height    int

	CentralBoxOnly bool
	PairLines      bool
	NeighborBoxes  bool
}

// Validate rejects invalid configuration before any rendering or file I/O
// begins.
func (c Config) Validate() error {
	if c.Frames < 2 {
		return fmt.Errorf("%w, got %d", sample.ErrFrameBudget, c.Frames)
	}
	if c.BoxLength <= 0 {
		return fmt.Errorf("%w, got %f", render.ErrBoxLength, c.BoxLength)
	}
	if c.Dim != 2 && c.Dim != 3 {
		return fmt.Errorf("%w, got %d", render.ErrDimension, c.Dim)
	}
	switch c.Format {
	case FormatGIF, FormatAVI:
	default:
		return fmt.Errorf("movie: unknown output format %q", c.Format)
	}
	return nil
}

// Maker runs the strictly sequential pipeline: sample, render-and-persist,
// read-and-encode. No step overlaps another.
type Maker struct {
	cfg Config

	// Progress receives informational status lines; nil silences them.
	Progress io.Writer
}

// New returns a Maker for one run.
func New(cfg Config) *Maker {
	return &Maker{cfg: cfg}
}

// Run executes the whole pipeline. A failure at any stage aborts the run;
// there is no partial-success mode.
func (m *Maker) Run() error {
	if err := m.cfg.Validate(); err != nil {
		return err
	}

	traj, err := trajectory.Load(m.cfg.Dataset)
	if err != nil {
		return err
	}
	if traj.Dim != m.cfg.Dim {
		return fmt.Errorf("%w: dataset is %dD, requested %dD rendering",
			render.ErrShapeMismatch, traj.Dim, m.cfg.Dim)
	}

	plan, err := sample.Plan(traj.Timesteps(), m.cfg.Frames)
	if err != nil {
		return err
	}

	r, err := render.New(m.cfg.BoxLength, m.cfg.Dim)
	if err != nil {
		return err
	}
	if m.cfg.Width > 0 {
		r.Width = m.cfg.Width
	}
	if m.cfg.Height > 0 {
		r.Height = m.cfg.Height
	}
	r.CentralBoxOnly = m.cfg.CentralBoxOnly
	r.PairLines = m.cfg.PairLines
	r.NeighborBoxes = m.cfg.NeighborBoxes
	r.MinImage = trajectory.MinimumImage

	seq := frames.New(r)
	if m.cfg.WorkDir != "" {
		seq.WorkDir = m.cfg.WorkDir
	}
	seq.Progress = m.Progress
	if err := seq.Write(traj, plan); err != nil {
		return err
	}

	a := anim.New(seq.WorkDir, m.cfg.Dim, len(plan))
	if m.cfg.Duration > 0 {
		a.Duration = m.cfg.Duration
	}

	if m.Progress != nil {
		fmt.Fprintf(m.Progress, "assembling %s animation from %d frames\n", m.cfg.Format, len(plan))
	}
	switch m.cfg.Format {
	case FormatAVI:
		return a.WriteAVI(m.cfg.Output)
	default:
		return a.WriteGIF(m.cfg.Output)
	}
}
