package anim

import (
	"image"
	"image/color/palette"
	"image/gif"
	"os"
)

// WriteGIF encodes the frame sequence as an endlessly looping animated GIF
// at path. Every frame is held for duration / frame count; with the
// default 3-second budget a 10-frame run shows each frame for 0.3 s.
func (a *Assembler) WriteGIF(path string) error {
	if err := a.validate(); err != nil {
		return err
	}

	out := &gif.GIF{LoopCount: 0}
	delay := a.frameDelay()

	for seq := 0; seq < a.Frames; seq++ {
		img, err := a.loadFrame(seq)
		if err != nil {
			return err
		}
		out.Image = append(out.Image, palettize(img))
		out.Delay = append(out.Delay, delay)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := gif.EncodeAll(f, out); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// frameDelay returns the per-frame display time in GIF 10ms units.
func (a *Assembler) frameDelay() int {
	return int(a.duration()/float64(a.Frames)*100 + 0.5)
}

// palettize converts a decoded frame to a paletted image for GIF encoding.
func palettize(img image.Image) *image.Paletted {
	bounds := img.Bounds()
	out := image.NewPaletted(bounds, palette.Plan9)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			out.Set(x, y, img.At(x, y))
		}
	}
	return out
}
