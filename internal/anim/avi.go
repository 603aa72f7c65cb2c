package anim

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"math"

	"github.com/icza/mjpeg"
)

// WriteAVI encodes the frame sequence as an MJPEG AVI at path. The frame
// rate is chosen so the whole sequence plays in the duration budget.
func (a *Assembler) WriteAVI(path string) error {
	if err := a.validate(); err != nil {
		return err
	}

	first, err := a.loadFrame(0)
	if err != nil {
		return err
	}
	bounds := first.Bounds()

	fps := int32(math.Max(1, math.Round(float64(a.Frames)/a.duration())))
	w, err := mjpeg.New(path, int32(bounds.Dx()), int32(bounds.Dy()), fps)
	if err != nil {
		return fmt.Errorf("failed to create AVI writer: %w", err)
	}

	var buf bytes.Buffer
	opts := &jpeg.Options{Quality: 90}
	for seq := 0; seq < a.Frames; seq++ {
		img := first
		if seq > 0 {
			if img, err = a.loadFrame(seq); err != nil {
				w.Close()
				return err
			}
		}
		buf.Reset()
		if err := jpeg.Encode(&buf, img, opts); err != nil {
			w.Close()
			return fmt.Errorf("failed to encode frame %05d: %w", seq, err)
		}
		if err := w.AddFrame(buf.Bytes()); err != nil {
			w.Close()
			return fmt.Errorf("failed to add frame %05d: %w", seq, err)
		}
	}
	return w.Close()
}
