// Package charts renders scalar time-series views of a trajectory: total
// energy, energy-conservation drift and pair separation over time.
package charts

import (
	"fmt"
	"math"
	"os"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/lkleijn/mdmovie/internal/trajectory"
)

const (
	chartWidth  = 800
	chartHeight = 400
)

// EnergyVsTime renders total energy against time as a PNG. With
// kineticPotential set, the kinetic and potential contributions are drawn
// as separate series.
func EnergyVsTime(traj *trajectory.Trajectory, L float64, kineticPotential bool, path string) error {
	if err := traj.Validate(); err != nil {
		return err
	}

	kinetic := make([]float64, traj.Timesteps())
	potential := make([]float64, traj.Timesteps())
	total := make([]float64, traj.Timesteps())
	for k := range traj.Times {
		kinetic[k] = trajectory.KineticEnergy(traj.Velocities[k])
		potential[k] = trajectory.PotentialEnergy(traj.Positions[k], L)
		total[k] = kinetic[k] + potential[k]
	}

	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    "total E",
			XValues: traj.Times,
			YValues: total,
			Style:   chart.Style{StrokeColor: chart.ColorBlack, StrokeWidth: 2},
		},
	}
	if kineticPotential {
		series = append(series,
			chart.ContinuousSeries{
				Name:    "kinetic E",
				XValues: traj.Times,
				YValues: kinetic,
				Style:   chart.Style{StrokeColor: chart.ColorRed, StrokeWidth: 2},
			},
			chart.ContinuousSeries{
				Name:    "potential E",
				XValues: traj.Times,
				YValues: potential,
				Style:   chart.Style{StrokeColor: chart.ColorBlue, StrokeWidth: 2},
			},
		)
	}

	graph := chart.Chart{
		Width:  chartWidth,
		Height: chartHeight,
		XAxis:  chart.XAxis{Name: "dimensionless time"},
		YAxis:  chart.YAxis{Name: "dimensionless energy"},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return renderPNG(graph, path)
}

// EnergyConservation renders the relative drift (E - mean(E)) / E against
// time as a PNG.
func EnergyConservation(traj *trajectory.Trajectory, L float64, path string) error {
	if err := traj.Validate(); err != nil {
		return err
	}

	total := make([]float64, traj.Timesteps())
	mean := 0.0
	for k := range traj.Times {
		total[k] = trajectory.TotalEnergy(traj.Positions[k], traj.Velocities[k], L)
		mean += total[k]
	}
	mean /= float64(len(total))

	drift := make([]float64, len(total))
	for k, e := range total {
		if e != 0 {
			drift[k] = (e - mean) / e
		}
	}

	graph := chart.Chart{
		Width:  chartWidth,
		Height: chartHeight,
		XAxis:  chart.XAxis{Name: "dimensionless time"},
		YAxis:  chart.YAxis{Name: "relative energy difference"},
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: traj.Times,
				YValues: drift,
				Style:   chart.Style{StrokeColor: chart.ColorBlack, StrokeWidth: 2},
			},
		},
	}
	return renderPNG(graph, path)
}

// PairDistance renders the raw (unwrapped) separation between particles i
// and j against time as a PNG.
func PairDistance(traj *trajectory.Trajectory, i, j int, path string) error {
	if err := traj.Validate(); err != nil {
		return err
	}
	n := traj.Particles()
	if i < 0 || i >= n || j < 0 || j >= n {
		return fmt.Errorf("charts: particle pair (%d, %d) outside 0..%d", i, j, n-1)
	}

	dist := make([]float64, traj.Timesteps())
	for k := range traj.Times {
		sum := 0.0
		for d := 0; d < traj.Dim; d++ {
			delta := traj.Positions[k][i][d] - traj.Positions[k][j][d]
			sum += delta * delta
		}
		dist[k] = math.Sqrt(sum)
	}

	graph := chart.Chart{
		Width:  chartWidth,
		Height: chartHeight,
		XAxis:  chart.XAxis{Name: "dimensionless time"},
		YAxis:  chart.YAxis{Name: fmt.Sprintf("relative distance(i=%d, j=%d)", i, j)},
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: traj.Times,
				YValues: dist,
				Style:   chart.Style{StrokeColor: chart.ColorBlack, StrokeWidth: 2},
			},
		},
	}
	return renderPNG(graph, path)
}

func renderPNG(graph chart.Chart, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := graph.Render(chart.PNG, f); err != nil {
		f.Close()
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return f.Close()
}
