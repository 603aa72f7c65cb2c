package viz

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/lkleijn/mdmovie/internal/render"
	"github.com/lkleijn/mdmovie/internal/trajectory"
)

const (
	canvasCols = 56
	canvasRows = 22
)

var (
	ErrEmptyPlan = errors.New("playback plan is empty")
	ErrBadPlan   = errors.New("playback plan index out of range")
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2).Width(44)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type tickMsg time.Time

// Options configures terminal playback of a sampled trajectory.
type Options struct {
	BoxLength float64
	Neighbors bool // draw periodic replicas around the central box
	FPS       int  // playback rate, defaults to 12
}

// Model plays a sampled trajectory frame by frame in the terminal.
type Model struct {
	traj   *trajectory.Trajectory
	plan   []int
	opts   Options
	canvas *Canvas

	cursor  int
	playing bool

	// one entry per plan index, precomputed so playback never stalls
	kinetic []float64
	total   []float64

	proj projector
}

// NewModel validates the sample plan against the trajectory and precomputes
// the per-frame energies shown in the side panel.
func NewModel(traj *trajectory.Trajectory, plan []int, opts Options) (Model, error) {
	if err := traj.Validate(); err != nil {
		return Model{}, err
	}
	if len(plan) == 0 {
		return Model{}, ErrEmptyPlan
	}
	for _, idx := range plan {
		if idx < 0 || idx >= traj.Timesteps() {
			return Model{}, fmt.Errorf("%w: %d of %d timesteps", ErrBadPlan, idx, traj.Timesteps())
		}
	}
	if opts.BoxLength <= 0 {
		return Model{}, render.ErrBoxLength
	}
	if opts.FPS <= 0 {
		opts.FPS = 12
	}

	m := Model{
		traj:    traj,
		plan:    plan,
		opts:    opts,
		canvas:  NewCanvas(canvasCols, canvasRows),
		playing: true,
		kinetic: make([]float64, len(plan)),
		total:   make([]float64, len(plan)),
		proj:    newProjector(-60, 30),
	}
	for i, idx := range plan {
		m.kinetic[i] = trajectory.KineticEnergy(traj.Velocities[idx])
		m.total[i] = m.kinetic[i] + trajectory.PotentialEnergy(traj.Positions[idx], opts.BoxLength)
	}
	m.setWindow()
	return m, nil
}

// Run starts the playback program and blocks until the user quits.
func Run(traj *trajectory.Trajectory, plan []int, opts Options) error {
	m, err := NewModel(traj, plan, opts)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.playing = !m.playing
		case "r":
			m.cursor = 0
			m.playing = true
		case "left", "h":
			m.playing = false
			if m.cursor > 0 {
				m.cursor--
			}
		case "right", "l":
			m.playing = false
			if m.cursor < len(m.plan)-1 {
				m.cursor++
			}
		case "+", "=":
			if m.opts.FPS < 60 {
				m.opts.FPS++
			}
		case "-", "_":
			if m.opts.FPS > 1 {
				m.opts.FPS--
			}
		}
	case tickMsg:
		if m.playing {
			m.cursor = (m.cursor + 1) % len(m.plan)
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) View() string {
	m.draw()

	idx := m.plan[m.cursor]
	status := "PLAYING"
	if !m.playing {
		status = "PAUSED"
	}

	var s strings.Builder
	s.WriteString(headerStyle.Render(fmt.Sprintf("TRAJECTORY %dD", m.traj.Dim)) + "\n")
	s.WriteString(status + "\n\n")
	if len(m.total) > 1 {
		hist := m.total[:m.cursor+1]
		chart := asciigraph.Plot(hist, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("E total"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}
	s.WriteString(labelStyle.Render("Frame") + valueStyle.Render(fmt.Sprintf("%d/%d", m.cursor+1, len(m.plan))) + "\n")
	s.WriteString(labelStyle.Render("Timestep") + valueStyle.Render(fmt.Sprintf("%d", idx)) + "\n")
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.3f", m.traj.Times[idx])) + "\n")
	s.WriteString(labelStyle.Render("Particles") + valueStyle.Render(fmt.Sprintf("%d", m.traj.Particles())) + "\n")
	s.WriteString(labelStyle.Render("E kinetic") + valueStyle.Render(fmt.Sprintf("%.4f", m.kinetic[m.cursor])) + "\n")
	s.WriteString(labelStyle.Render("E total") + valueStyle.Render(fmt.Sprintf("%.4f", m.total[m.cursor])) + "\n")
	s.WriteString(labelStyle.Render("Rate") + valueStyle.Render(fmt.Sprintf("%d fps", m.opts.FPS)) + "\n")
	s.WriteString(helpStyle.Render("\nSP:Pause R:Restart Q:Quit\n←→:Step  +/-:Speed"))

	return lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(m.canvas.String()),
		statsStyle.Render(s.String()))
}

// setWindow fits the world window to the central box, or to all replica
// boxes when neighbors are drawn.
func (m *Model) setWindow() {
	L := m.opts.BoxLength
	lo, hi := -0.1*L, 1.1*L
	if m.opts.Neighbors {
		lo, hi = -1.1*L, 2.1*L
	}
	if m.traj.Dim == 3 {
		// bound the projection of the drawable cube
		cLo, cHi := 0.0, L
		if m.opts.Neighbors {
			cLo, cHi = -L, 2*L
		}
		uMin, uMax := math.Inf(1), math.Inf(-1)
		wMin, wMax := math.Inf(1), math.Inf(-1)
		for _, x := range []float64{cLo, cHi} {
			for _, y := range []float64{cLo, cHi} {
				for _, z := range []float64{cLo, cHi} {
					u, w := m.proj.point([]float64{x, y, z})
					uMin, uMax = math.Min(uMin, u), math.Max(uMax, u)
					wMin, wMax = math.Min(wMin, w), math.Max(wMax, w)
				}
			}
		}
		pad := 0.05 * (uMax - uMin)
		m.canvas.SetWindow(uMin-pad, wMin-pad, uMax+pad, wMax+pad)
		return
	}
	m.canvas.SetWindow(lo, lo, hi, hi)
}

// flatten maps a world position to the 2D plane the canvas shows.
func (m *Model) flatten(p []float64) (float64, float64) {
	if m.traj.Dim == 3 {
		return m.proj.point(p)
	}
	return p[0], p[1]
}

func (m *Model) draw() {
	m.canvas.Clear()
	m.drawBox()

	pos := m.traj.Positions[m.plan[m.cursor]]
	for _, p := range pos {
		images, err := render.ImagePositions(p, m.opts.BoxLength, m.opts.Neighbors)
		if err != nil {
			continue
		}
		for _, img := range images {
			u, w := m.flatten(img.Pos)
			if img.Center {
				m.canvas.PlotMark(u, w)
			} else {
				m.canvas.Plot(u, w)
			}
		}
	}
}

// drawBox outlines the central simulation box.
func (m *Model) drawBox() {
	L := m.opts.BoxLength
	if m.traj.Dim == 2 {
		m.canvas.PlotLine(0, 0, L, 0)
		m.canvas.PlotLine(L, 0, L, L)
		m.canvas.PlotLine(L, L, 0, L)
		m.canvas.PlotLine(0, L, 0, 0)
		return
	}
	// 12 cube edges, projected
	for _, e := range cubeEdges(L) {
		au, aw := m.proj.point(e[0])
		bu, bw := m.proj.point(e[1])
		m.canvas.PlotLine(au, aw, bu, bw)
	}
}

func cubeEdges(L float64) [][2][]float64 {
	corner := func(i int) []float64 {
		return []float64{L * float64(i&1), L * float64(i>>1&1), L * float64(i>>2&1)}
	}
	var edges [][2][]float64
	for i := 0; i < 8; i++ {
		for _, bit := range []int{1, 2, 4} {
			if i&bit == 0 {
				edges = append(edges, [2][]float64{corner(i), corner(i | bit)})
			}
		}
	}
	return edges
}

// projector is an orthographic azimuth/elevation camera matching the frame
// renderer's viewpoint, so the terminal preview and the PNG frames agree.
type projector struct {
	right, up [3]float64
}

func newProjector(azDeg, elDeg float64) projector {
	az := azDeg * math.Pi / 180
	el := elDeg * math.Pi / 180
	return projector{
		right: [3]float64{-math.Sin(az), math.Cos(az), 0},
		up: [3]float64{
			-math.Cos(az) * math.Sin(el),
			-math.Sin(az) * math.Sin(el),
			math.Cos(el),
		},
	}
}

func (p projector) point(v []float64) (u, w float64) {
	u = p.right[0]*v[0] + p.right[1]*v[1] + p.right[2]*v[2]
	w = p.up[0]*v[0] + p.up[1]*v[1] + p.up[2]*v[2]
	return u, w
}
