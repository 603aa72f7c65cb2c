// Package anim assembles persisted frame sequences into a single timed
// animation artifact.
//
// Frames are read strictly in ascending sequence order; a missing frame is
// a distinct [ErrSequenceGap] error because the working directory is
// inconsistent, not because a write transiently failed. Supported outputs
// are animated GIF and MJPEG AVI.
package anim

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/lkleijn/mdmovie/internal/frames"
)

// ErrSequenceGap indicates a frame referenced by its expected sequence
// index is missing from the working directory.
var ErrSequenceGap = errors.New("anim: frame sequence has a gap")

// DefaultDuration is the total animation display budget in seconds; each
// frame is shown for DefaultDuration / frame count.
const DefaultDuration = 3.0

// Assembler encodes the frames of one sequencer run. It only reads the
// working directory and assumes no other writer.
type Assembler struct {
	WorkDir string
	Prefix  string
	Dim     int
	Frames  int
	// Duration is the total display budget in seconds; zero means
	// DefaultDuration.
	Duration float64
}

// New returns an assembler for a run of n frames in workDir.
func New(workDir string, dim, n int) *Assembler {
	return &Assembler{
		WorkDir:  workDir,
		Prefix:   frames.DefaultPrefix,
		Dim:      dim,
		Frames:   n,
		Duration: DefaultDuration,
	}
}

func (a *Assembler) duration() float64 {
	if a.Duration > 0 {
		return a.Duration
	}
	return DefaultDuration
}

// loadFrame decodes the frame with the given sequence index, reporting a
// sequence gap if the file is absent.
func (a *Assembler) loadFrame(seq int) (image.Image, error) {
	path := frames.FramePath(a.WorkDir, a.Prefix, a.Dim, seq)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: missing frame %05d at %s", ErrSequenceGap, seq, path)
		}
		return nil, err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode frame %05d: %w", seq, err)
	}
	return img, nil
}

func (a *Assembler) validate() error {
	if a.Frames < 1 {
		return fmt.Errorf("anim: frame count must be at least 1, got %d", a.Frames)
	}
	return nil
}
