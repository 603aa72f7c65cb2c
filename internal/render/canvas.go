package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Margins around the plot area, leaving room for the title, tick labels
// and axis labels.
const (
	marginLeft   = 56
	marginRight  = 16
	marginTop    = 28
	marginBottom = 44

	tickCount  = 5
	tickLength = 5
)

var (
	colorBackground = color.RGBA{255, 255, 255, 255}
	colorFrame      = color.RGBA{0, 0, 0, 255}
	colorText       = color.RGBA{0, 0, 0, 255}
)

// Canvas is a single frame's drawing surface: an RGBA raster with a world
// coordinate window mapped onto its plot area. Each frame gets its own
// Canvas; nothing is shared between frames.
type Canvas struct {
	img                    *image.RGBA
	width, height          int
	xmin, xmax, ymin, ymax float64
}

// NewCanvas creates a white canvas of the given pixel size whose plot area
// spans the world window [xmin,xmax] x [ymin,ymax].
func NewCanvas(width, height int, xmin, xmax, ymin, ymax float64) *Canvas {
	c := &Canvas{
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
		width:  width,
		height: height,
		xmin:   xmin,
		xmax:   xmax,
		ymin:   ymin,
		ymax:   ymax,
	}
	draw.Draw(c.img, c.img.Bounds(), &image.Uniform{colorBackground}, image.Point{}, draw.Src)
	c.drawFrame()
	return c
}

// Image returns the underlying raster.
func (c *Canvas) Image() *image.RGBA { return c.img }

// EncodePNG writes the canvas as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return png.Encode(w, c.img)
}

// plotArea returns the pixel rectangle inside the margins.
func (c *Canvas) plotArea() image.Rectangle {
	return image.Rect(marginLeft, marginTop, c.width-marginRight, c.height-marginBottom)
}

// toPixel maps world coordinates into the plot area. The y axis points up
// in world space and down in raster space.
func (c *Canvas) toPixel(x, y float64) (int, int) {
	area := c.plotArea()
	px := area.Min.X + int(float64(area.Dx()-1)*(x-c.xmin)/(c.xmax-c.xmin)+0.5)
	py := area.Max.Y - 1 - int(float64(area.Dy()-1)*(y-c.ymin)/(c.ymax-c.ymin)+0.5)
	return px, py
}

func (c *Canvas) setPixel(px, py int, col color.RGBA) {
	area := c.plotArea()
	if px < area.Min.X || px >= area.Max.X || py < area.Min.Y || py >= area.Max.Y {
		return
	}
	c.img.SetRGBA(px, py, col)
}

// DrawPoint draws a filled disc of pixel radius r at a world coordinate.
func (c *Canvas) DrawPoint(x, y float64, r int, col color.RGBA) {
	px, py := c.toPixel(x, y)
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				c.setPixel(px+dx, py+dy, col)
			}
		}
	}
}

// DrawLine draws a solid segment between two world coordinates using
// Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 float64, col color.RGBA) {
	c.drawSegment(x0, y0, x1, y1, col, 0)
}

// DrawDashedLine draws a dashed segment between two world coordinates.
func (c *Canvas) DrawDashedLine(x0, y0, x1, y1 float64, col color.RGBA) {
	c.drawSegment(x0, y0, x1, y1, col, 4)
}

// drawSegment rasterizes a line; dash > 0 alternates dash pixels on and off.
func (c *Canvas) drawSegment(wx0, wy0, wx1, wy1 float64, col color.RGBA, dash int) {
	x0, y0 := c.toPixel(wx0, wy0)
	x1, y1 := c.toPixel(wx1, wy1)

	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	step := 0
	for {
		if dash == 0 || (step/dash)%2 == 0 {
			c.setPixel(x0, y0, col)
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
		step++
	}
}

// Title draws a centered title above the plot area.
func (c *Canvas) Title(s string) {
	w := textWidth(s)
	c.drawText((c.width-w)/2, marginTop-10, s)
}

// XLabel draws the horizontal axis label centered below the plot area.
func (c *Canvas) XLabel(s string) {
	w := textWidth(s)
	c.drawText((c.width-w)/2, c.height-8, s)
}

// YLabel draws the vertical axis label, one character per line, along the
// left margin. basicfont has no rotated rendering, so stacking is the
// pragmatic equivalent.
func (c *Canvas) YLabel(s string) {
	face := basicfont.Face7x13
	total := len(s) * face.Height
	y := (c.height-total)/2 + face.Ascent
	for _, r := range s {
		c.drawText(6, y, string(r))
		y += face.Height
	}
}

// Ticks draws inward-facing tick marks on all four sides of the plot area
// and numeric labels along the bottom and left edges.
func (c *Canvas) Ticks() {
	area := c.plotArea()
	for i := 0; i < tickCount; i++ {
		frac := float64(i) / float64(tickCount-1)

		px := area.Min.X + int(frac*float64(area.Dx()-1))
		for t := 0; t < tickLength; t++ {
			c.img.SetRGBA(px, area.Max.Y-1-t, colorFrame)
			c.img.SetRGBA(px, area.Min.Y+t, colorFrame)
		}
		xv := c.xmin + frac*(c.xmax-c.xmin)
		label := fmt.Sprintf("%.1f", xv)
		c.drawText(px-textWidth(label)/2, area.Max.Y+14, label)

		py := area.Max.Y - 1 - int(frac*float64(area.Dy()-1))
		for t := 0; t < tickLength; t++ {
			c.img.SetRGBA(area.Min.X+t, py, colorFrame)
			c.img.SetRGBA(area.Max.X-1-t, py, colorFrame)
		}
		yv := c.ymin + frac*(c.ymax-c.ymin)
		label = fmt.Sprintf("%.1f", yv)
		c.drawText(area.Min.X-textWidth(label)-6, py+4, label)
	}
}

// drawFrame outlines the plot area.
func (c *Canvas) drawFrame() {
	area := c.plotArea()
	for px := area.Min.X; px < area.Max.X; px++ {
		c.img.SetRGBA(px, area.Min.Y, colorFrame)
		c.img.SetRGBA(px, area.Max.Y-1, colorFrame)
	}
	for py := area.Min.Y; py < area.Max.Y; py++ {
		c.img.SetRGBA(area.Min.X, py, colorFrame)
		c.img.SetRGBA(area.Max.X-1, py, colorFrame)
	}
}

func (c *Canvas) drawText(x, y int, s string) {
	d := font.Drawer{
		Dst:  c.img,
		Src:  &image.Uniform{colorText},
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func textWidth(s string) int {
	return len(s) * basicfont.Face7x13.Advance
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
