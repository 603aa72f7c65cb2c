package render

import "math"

// Default camera orientation for 3D frames, matching the usual
// azimuth/elevation view of trajectory plots.
const (
	defaultAzimuth   = -60.0 // degrees
	defaultElevation = 30.0  // degrees
)

// projection is an orthographic camera defined by azimuth and elevation.
type projection struct {
	right [3]float64
	up    [3]float64
}

func newProjection(azimuthDeg, elevationDeg float64) *projection {
	az := azimuthDeg * math.Pi / 180
	el := elevationDeg * math.Pi / 180

	return &projection{
		right: [3]float64{-math.Sin(az), math.Cos(az), 0},
		up:    [3]float64{-math.Sin(el) * math.Cos(az), -math.Sin(el) * math.Sin(az), math.Cos(el)},
	}
}

// point maps a 3D world coordinate to 2D view coordinates.
func (p *projection) point(v []float64) (u, w float64) {
	u = v[0]*p.right[0] + v[1]*p.right[1] + v[2]*p.right[2]
	w = v[0]*p.up[0] + v[1]*p.up[1] + v[2]*p.up[2]
	return u, w
}
