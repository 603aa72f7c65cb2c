package viz

import "strings"

// Braille patterns pack a 2x4 dot grid into one rune:
//
//	1 4
//	2 5
//	3 6
//	7 8
//
// Unicode offset 0x2800.
var dotMask = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille dot raster with an attached world-coordinate window.
// A canvas of Cols x Rows cells has Cols*2 x Rows*4 addressable dots.
type Canvas struct {
	Cols, Rows int
	grid       [][]rune

	// world window, world y points up
	x0, y0, x1, y1 float64
}

func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{
		Cols: cols,
		Rows: rows,
		grid: make([][]rune, rows),
		x1:   1,
		y1:   1,
	}
	for i := range c.grid {
		c.grid[i] = make([]rune, cols)
	}
	c.Clear()
	return c
}

// SetWindow fixes the world rectangle the dot raster maps onto.
func (c *Canvas) SetWindow(x0, y0, x1, y1 float64) {
	c.x0, c.y0, c.x1, c.y1 = x0, y0, x1, y1
}

// Clear resets every cell to the empty braille character.
func (c *Canvas) Clear() {
	for i := range c.grid {
		for j := range c.grid[i] {
			c.grid[i][j] = 0x2800
		}
	}
}

// Set turns on the dot at raster coordinates (x, y). Out-of-range dots are
// dropped silently.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Cols || row >= c.Rows {
		return
	}
	c.grid[row][col] |= dotMask[y%4][x%2]
}

// toDot maps a world point into dot coordinates, flipping y so that larger
// world y is drawn higher on screen.
func (c *Canvas) toDot(wx, wy float64) (int, int) {
	w, h := float64(c.Cols*2-1), float64(c.Rows*4-1)
	fx := (wx - c.x0) / (c.x1 - c.x0)
	fy := (wy - c.y0) / (c.y1 - c.y0)
	return int(fx*w + 0.5), int((1-fy)*h + 0.5)
}

// Plot turns on the dot nearest to the world point.
func (c *Canvas) Plot(wx, wy float64) {
	x, y := c.toDot(wx, wy)
	c.Set(x, y)
}

// PlotMark draws a 3x3 dot block around the world point, used for the
// primary particle images so they read heavier than replicas.
func (c *Canvas) PlotMark(wx, wy float64) {
	x, y := c.toDot(wx, wy)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			c.Set(x+dx, y+dy)
		}
	}
}

// PlotLine draws a straight segment between two world points.
func (c *Canvas) PlotLine(ax, ay, bx, by float64) {
	x0, y0 := c.toDot(ax, ay)
	x1, y1 := c.toDot(bx, by)
	c.line(x0, y0, x1, y1)
}

// line is Bresenham over dot coordinates.
func (c *Canvas) line(x0, y0, x1, y1 int) {
	dx, dy := absInt(x1-x0), absInt(y1-y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
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
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
