package render

import (
	"fmt"
	"image/color"
)

// Default frame raster size.
const (
	DefaultWidth  = 640
	DefaultHeight = 480
)

var (
	colorTrue    = color.RGBA{0, 0, 0, 255}       // true particle position
	colorReplica = color.RGBA{220, 40, 40, 255}   // periodic images
	colorBox     = color.RGBA{30, 140, 30, 255}   // central cell outline
	colorPair    = color.RGBA{40, 60, 220, 255}   // minimum-image pair lines
)

// MinImageFunc computes minimum-image displacements and distances for every
// ordered particle pair. It is supplied by the trajectory provider; the
// renderer has no periodic-distance computation of its own.
type MinImageFunc func(pos [][]float64, L float64) (rel [][][]float64, dist [][]float64)

// Renderer draws one timestep's particle set, including periodic replicas,
// onto a fresh Canvas. The zero value is not usable; construct with New.
type Renderer struct {
	BoxLength float64
	Dim       int
	Width     int
	Height    int

	// CentralBoxOnly restricts drawing to true positions and outlines the
	// central simulation cell.
	CentralBoxOnly bool
	// PairLines draws a segment from each particle to the nearest periodic
	// image of every other particle.
	PairLines bool
	// NeighborBoxes enables the 26 replica images in 3D.
	NeighborBoxes bool

	// MinImage is required when PairLines is set.
	MinImage MinImageFunc

	proj *projection
}

// New validates the box geometry and dimensionality and returns a renderer
// with default raster size and camera.
func New(boxLength float64, dim int) (*Renderer, error) {
	if boxLength <= 0 {
		return nil, fmt.Errorf("%w, got %f", ErrBoxLength, boxLength)
	}
	if dim != 2 && dim != 3 {
		return nil, fmt.Errorf("%w, got %d", ErrDimension, dim)
	}

	r := &Renderer{
		BoxLength: boxLength,
		Dim:       dim,
		Width:     DefaultWidth,
		Height:    DefaultHeight,
	}
	if dim == 3 {
		r.proj = newProjection(defaultAzimuth, defaultElevation)
	}
	return r, nil
}

// Limits returns the axis limits of the frame. In 2D the window spans half
// a box length beyond the cell on each side so the neighbor replicas stay
// visible; in 3D it widens from [0, L] to [-L, 2L] when neighbor boxes are
// drawn.
func (r *Renderer) Limits() (lo, hi float64) {
	L := r.BoxLength
	if r.Dim == 2 {
		return -L / 2, 3 * L / 2
	}
	if r.neighbors() {
		return -L, 2 * L
	}
	return 0, L
}

// neighbors reports whether replica images are drawn.
func (r *Renderer) neighbors() bool {
	if r.CentralBoxOnly {
		return false
	}
	return r.Dim == 2 || r.NeighborBoxes
}

// Frame renders one timestep's particle positions at dimensionless time t
// and returns the finished canvas. The canvas is fully specified (title,
// axis labels, limits, ticks) and ready to persist; Frame itself writes no
// files.
func (r *Renderer) Frame(pos [][]float64, t float64) (*Canvas, error) {
	for i, p := range pos {
		if len(p) != r.Dim {
			return nil, fmt.Errorf("%w: particle %d has %d coordinates, renderer is %dD",
				ErrShapeMismatch, i, len(p), r.Dim)
		}
	}

	canvas := r.newFrameCanvas()
	canvas.Title(fmt.Sprintf("dimensionless t=%.3f", t))
	if r.Dim == 2 {
		canvas.XLabel("dimensionless x coordinate")
		canvas.YLabel("dimensionless y coordinate")
	} else {
		canvas.XLabel("x/sigma")
		canvas.YLabel("y/sigma")
	}

	if r.CentralBoxOnly {
		r.drawBoxOutline(canvas)
	}

	offsets, err := Offsets(r.Dim, r.BoxLength, r.neighbors())
	if err != nil {
		return nil, err
	}
	for _, p := range pos {
		for _, off := range offsets {
			x, y := r.view(shifted(p, off.Shift))
			if off.Center {
				canvas.DrawPoint(x, y, 3, colorTrue)
			} else {
				canvas.DrawPoint(x, y, 2, colorReplica)
			}
		}
	}

	if r.PairLines && len(pos) > 1 {
		if r.MinImage == nil {
			return nil, fmt.Errorf("render: pair lines requested without a minimum-image function")
		}
		rel, _ := r.MinImage(pos, r.BoxLength)
		for i := range pos {
			for j := range pos {
				if i == j {
					continue
				}
				// Raw unwrapped segment to the nearest image; it may exit
				// the central box, matching the reference behavior.
				x0, y0 := r.view(pos[i])
				x1, y1 := r.view(shifted(pos[i], rel[i][j]))
				canvas.DrawDashedLine(x0, y0, x1, y1, colorPair)
			}
		}
	}

	canvas.Ticks()
	return canvas, nil
}

// newFrameCanvas builds the per-frame canvas with the world window implied
// by the axis limits. In 3D the window bounds the projected limit cube.
func (r *Renderer) newFrameCanvas() *Canvas {
	lo, hi := r.Limits()
	if r.Dim == 2 {
		return NewCanvas(r.Width, r.Height, lo, hi, lo, hi)
	}

	first := true
	var umin, umax, vmin, vmax float64
	for _, cx := range []float64{lo, hi} {
		for _, cy := range []float64{lo, hi} {
			for _, cz := range []float64{lo, hi} {
				u, v := r.proj.point([]float64{cx, cy, cz})
				if first {
					umin, umax, vmin, vmax = u, u, v, v
					first = false
					continue
				}
				umin = min(umin, u)
				umax = max(umax, u)
				vmin = min(vmin, v)
				vmax = max(vmax, v)
			}
		}
	}
	padU := 0.05 * (umax - umin)
	padV := 0.05 * (vmax - vmin)
	return NewCanvas(r.Width, r.Height, umin-padU, umax+padU, vmin-padV, vmax+padV)
}

// view maps a world coordinate to 2D canvas coordinates.
func (r *Renderer) view(p []float64) (float64, float64) {
	if r.Dim == 2 {
		return p[0], p[1]
	}
	return r.proj.point(p)
}

// drawBoxOutline outlines the central simulation cell: a square in 2D, the
// full 12-edge cube in 3D.
func (r *Renderer) drawBoxOutline(c *Canvas) {
	L := r.BoxLength
	if r.Dim == 2 {
		c.DrawLine(0, 0, L, 0, colorBox)
		c.DrawLine(L, 0, L, L, colorBox)
		c.DrawLine(L, L, 0, L, colorBox)
		c.DrawLine(0, L, 0, 0, colorBox)
		return
	}

	corner := func(i int) []float64 {
		return []float64{
			L * float64(i&1),
			L * float64(i>>1&1),
			L * float64(i>>2&1),
		}
	}
	for i := 0; i < 8; i++ {
		for _, bit := range []int{1, 2, 4} {
			j := i | bit
			if j == i {
				continue
			}
			x0, y0 := r.view(corner(i))
			x1, y1 := r.view(corner(j))
			c.DrawLine(x0, y0, x1, y1, colorBox)
		}
	}
}

func shifted(p, off []float64) []float64 {
	out := make([]float64, len(p))
	for d := range p {
		out[d] = p[d] + off[d]
	}
	return out
}
