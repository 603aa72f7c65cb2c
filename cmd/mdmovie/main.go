package main

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/lkleijn/mdmovie/internal/anim"
	"github.com/lkleijn/mdmovie/internal/charts"
	"github.com/lkleijn/mdmovie/internal/config"
	"github.com/lkleijn/mdmovie/internal/frames"
	"github.com/lkleijn/mdmovie/internal/movie"
	"github.com/lkleijn/mdmovie/internal/render"
	"github.com/lkleijn/mdmovie/internal/sample"
	"github.com/lkleijn/mdmovie/internal/trajectory"
	"github.com/lkleijn/mdmovie/internal/viz"
	"github.com/spf13/cobra"
)

var (
	output         string
	format         string
	numFrames      int
	box            float64
	dim            int
	duration       float64
	workDir        string
	width          int
	height         int
	centralBoxOnly bool
	pairLines      bool
	neighborBoxes  bool
	cleanFrames    bool
	// Config file and preset
	configFile string
	preset     string
	// Playback rate for live view
	frameRate int
	// Chart options
	outDir string
	pairI  int
	pairJ  int
	split  bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "mdmovie",
		Short: "trajectory animation toolkit",
	}

	animateCmd := &cobra.Command{
		Use:   "animate [data.csv]",
		Short: "render a trajectory into an animation",
		Args:  cobra.ExactArgs(1),
		RunE:  runAnimate,
	}
	addRenderFlags(animateCmd)
	animateCmd.Flags().StringVar(&output, "out", config.DefaultOutput, "output file")
	animateCmd.Flags().StringVar(&format, "format", "gif", "animation format (gif|avi)")
	animateCmd.Flags().Float64Var(&duration, "duration", config.DefaultDuration, "animation duration in seconds")
	animateCmd.Flags().BoolVar(&cleanFrames, "clean-frames", false, "remove the intermediate PNG frames after assembly")

	framesCmd := &cobra.Command{
		Use:   "frames [data.csv]",
		Short: "render PNG stills without assembling an animation",
		Args:  cobra.ExactArgs(1),
		RunE:  runFrames,
	}
	addRenderFlags(framesCmd)

	assembleCmd := &cobra.Command{
		Use:   "assemble",
		Short: "build an animation from an existing frame directory",
		RunE:  runAssemble,
	}
	assembleCmd.Flags().StringVar(&workDir, "workdir", config.DefaultWorkDir, "frame directory")
	assembleCmd.Flags().IntVar(&numFrames, "frames", 0, "number of frames to assemble (required)")
	assembleCmd.Flags().IntVar(&dim, "dim", config.DefaultDim, "dimensionality tag in the frame filenames")
	assembleCmd.Flags().StringVar(&output, "out", config.DefaultOutput, "output file")
	assembleCmd.Flags().StringVar(&format, "format", "gif", "animation format (gif|avi)")
	assembleCmd.Flags().Float64Var(&duration, "duration", config.DefaultDuration, "animation duration in seconds")

	chartsCmd := &cobra.Command{
		Use:   "charts [data.csv]",
		Short: "write energy and pair-distance charts",
		Args:  cobra.ExactArgs(1),
		RunE:  runCharts,
	}
	chartsCmd.Flags().Float64Var(&box, "box", config.DefaultBox, "box edge length")
	chartsCmd.Flags().StringVar(&outDir, "out-dir", ".", "chart output directory")
	chartsCmd.Flags().IntVar(&pairI, "pair-i", 0, "first particle of the tracked pair")
	chartsCmd.Flags().IntVar(&pairJ, "pair-j", 1, "second particle of the tracked pair")
	chartsCmd.Flags().BoolVar(&split, "split", false, "plot kinetic and potential energy separately")

	plotCmd := &cobra.Command{
		Use:   "plot [data.csv]",
		Short: "terminal energy plot",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlot,
	}
	plotCmd.Flags().Float64Var(&box, "box", config.DefaultBox, "box edge length")

	liveCmd := &cobra.Command{
		Use:   "live [data.csv]",
		Short: "play the sampled trajectory in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().IntVar(&numFrames, "frames", config.DefaultFrames, "number of frames to sample")
	liveCmd.Flags().Float64Var(&box, "box", config.DefaultBox, "box edge length")
	liveCmd.Flags().BoolVar(&neighborBoxes, "neighbor-boxes", false, "draw periodic replicas")
	liveCmd.Flags().IntVar(&frameRate, "fps", 12, "playback rate")

	infoCmd := &cobra.Command{
		Use:   "info [data.csv]",
		Short: "summarize a trajectory dataset",
		Args:  cobra.ExactArgs(1),
		RunE:  runInfo,
	}
	infoCmd.Flags().Float64Var(&box, "box", config.DefaultBox, "box edge length")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list rendering presets",
		RunE:  listPresets,
	}

	rootCmd.AddCommand(animateCmd, framesCmd, assembleCmd, chartsCmd, plotCmd, liveCmd, infoCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// addRenderFlags registers the flags shared by every command that renders
// frames from a dataset.
func addRenderFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&numFrames, "frames", config.DefaultFrames, "number of frames to sample")
	cmd.Flags().Float64Var(&box, "box", config.DefaultBox, "box edge length")
	cmd.Flags().IntVar(&dim, "dim", config.DefaultDim, "dimensionality (2 or 3)")
	cmd.Flags().StringVar(&workDir, "workdir", config.DefaultWorkDir, "frame working directory")
	cmd.Flags().IntVar(&width, "width", config.DefaultWidth, "frame width in pixels")
	cmd.Flags().IntVar(&height, "height", config.DefaultHeight, "frame height in pixels")
	cmd.Flags().BoolVar(&centralBoxOnly, "central-box", false, "draw only the central box, with its outline")
	cmd.Flags().BoolVar(&pairLines, "pair-lines", false, "draw minimum-image pair lines")
	cmd.Flags().BoolVar(&neighborBoxes, "neighbor-boxes", false, "draw neighbor replicas in 3D")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveOptions merges preset, config file and explicit flags into the
// package-level option variables. Precedence: preset < config file < flags.
func resolveOptions(cmd *cobra.Command) error {
	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		format = p.Format
		numFrames = p.Frames
		box = p.Box
		dim = p.Dim
		duration = p.Duration
		width = p.Width
		height = p.Height
		centralBoxOnly = p.CentralBoxOnly
		pairLines = p.PairLines
		neighborBoxes = p.NeighborBoxes
	}

	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if !cmd.Flags().Changed("out") && cfg.Output != "" {
			output = cfg.Output
		}
		if !cmd.Flags().Changed("format") && cfg.Format != "" {
			format = cfg.Format
		}
		if !cmd.Flags().Changed("frames") {
			numFrames = cfg.Frames
		}
		if !cmd.Flags().Changed("box") {
			box = cfg.Box
		}
		if !cmd.Flags().Changed("dim") {
			dim = cfg.Dim
		}
		if !cmd.Flags().Changed("duration") {
			duration = cfg.Duration
		}
		if !cmd.Flags().Changed("workdir") && cfg.WorkDir != "" {
			workDir = cfg.WorkDir
		}
		if !cmd.Flags().Changed("width") {
			width = cfg.Width
		}
		if !cmd.Flags().Changed("height") {
			height = cfg.Height
		}
		if !cmd.Flags().Changed("central-box") {
			centralBoxOnly = cfg.CentralBoxOnly
		}
		if !cmd.Flags().Changed("pair-lines") {
			pairLines = cfg.PairLines
		}
		if !cmd.Flags().Changed("neighbor-boxes") {
			neighborBoxes = cfg.NeighborBoxes
		}
	}
	return nil
}

func runAnimate(cmd *cobra.Command, args []string) error {
	if err := resolveOptions(cmd); err != nil {
		return err
	}

	cfg := movie.Config{
		Dataset:        args[0],
		Output:         output,
		Format:         format,
		Frames:         numFrames,
		BoxLength:      box,
		Dim:            dim,
		Duration:       duration,
		WorkDir:        workDir,
		Width:          width,
		Height:         height,
		CentralBoxOnly: centralBoxOnly,
		PairLines:      pairLines,
		NeighborBoxes:  neighborBoxes,
	}

	maker := movie.New(cfg)
	maker.Progress = os.Stdout
	if err := maker.Run(); err != nil {
		return err
	}
	if cleanFrames {
		if err := os.RemoveAll(workDir); err != nil {
			return err
		}
	}
	fmt.Printf("wrote %s\n", output)
	return nil
}

func runFrames(cmd *cobra.Command, args []string) error {
	if err := resolveOptions(cmd); err != nil {
		return err
	}

	traj, err := trajectory.Load(args[0])
	if err != nil {
		return err
	}
	if traj.Dim != dim {
		return fmt.Errorf("%w: dataset is %dD, requested %dD rendering",
			render.ErrShapeMismatch, traj.Dim, dim)
	}

	plan, err := sample.Plan(traj.Timesteps(), numFrames)
	if err != nil {
		return err
	}

	r, err := render.New(box, dim)
	if err != nil {
		return err
	}
	r.Width = width
	r.Height = height
	r.CentralBoxOnly = centralBoxOnly
	r.PairLines = pairLines
	r.NeighborBoxes = neighborBoxes
	r.MinImage = trajectory.MinimumImage

	seq := frames.New(r)
	seq.WorkDir = workDir
	seq.Progress = os.Stdout
	if err := seq.Write(traj, plan); err != nil {
		return err
	}

	fmt.Printf("wrote %d frames to %s\n", len(plan), workDir)
	return nil
}

func runAssemble(cmd *cobra.Command, args []string) error {
	if numFrames < 1 {
		return fmt.Errorf("--frames is required and must be at least 1")
	}

	a := anim.New(workDir, dim, numFrames)
	a.Duration = duration

	var err error
	switch format {
	case movie.FormatAVI:
		err = a.WriteAVI(output)
	case movie.FormatGIF:
		err = a.WriteGIF(output)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	if err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", output)
	return nil
}

func runCharts(cmd *cobra.Command, args []string) error {
	traj, err := trajectory.Load(args[0])
	if err != nil {
		return err
	}

	targets := []struct {
		name string
		fn   func(path string) error
	}{
		{"E_vs_t.png", func(p string) error { return charts.EnergyVsTime(traj, box, split, p) }},
		{"E_conservation.png", func(p string) error { return charts.EnergyConservation(traj, box, p) }},
		{fmt.Sprintf("reldist_%d_%d.png", pairI, pairJ), func(p string) error {
			return charts.PairDistance(traj, pairI, pairJ, p)
		}},
	}

	for _, t := range targets {
		path := filepath.Join(outDir, t.name)
		if err := t.fn(path); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", path)
	}
	return nil
}

func runPlot(cmd *cobra.Command, args []string) error {
	traj, err := trajectory.Load(args[0])
	if err != nil {
		return err
	}
	if err := traj.Validate(); err != nil {
		return err
	}

	kinetic := make([]float64, traj.Timesteps())
	total := make([]float64, traj.Timesteps())
	for i := 0; i < traj.Timesteps(); i++ {
		kinetic[i] = trajectory.KineticEnergy(traj.Velocities[i])
		total[i] = kinetic[i] + trajectory.PotentialEnergy(traj.Positions[i], box)
	}

	fmt.Printf("dataset: %s\n", args[0])
	fmt.Printf("samples: %d\n\n", traj.Timesteps())

	for _, series := range []struct {
		caption string
		data    []float64
	}{
		{"kinetic energy", kinetic},
		{"total energy", total},
	} {
		graph := asciigraph.Plot(series.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(series.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	traj, err := trajectory.Load(args[0])
	if err != nil {
		return err
	}

	plan, err := sample.Plan(traj.Timesteps(), numFrames)
	if err != nil {
		return err
	}

	return viz.Run(traj, plan, viz.Options{
		BoxLength: box,
		Neighbors: neighborBoxes,
		FPS:       frameRate,
	})
}

func runInfo(cmd *cobra.Command, args []string) error {
	traj, err := trajectory.Load(args[0])
	if err != nil {
		return err
	}
	if err := traj.Validate(); err != nil {
		return err
	}

	n := traj.Timesteps()
	first, last := traj.Times[0], traj.Times[n-1]

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "dataset\t%s\n", args[0])
	fmt.Fprintf(w, "dimensions\t%d\n", traj.Dim)
	fmt.Fprintf(w, "particles\t%d\n", traj.Particles())
	fmt.Fprintf(w, "timesteps\t%d\n", n)
	fmt.Fprintf(w, "time range\t%.3f .. %.3f\n", first, last)
	fmt.Fprintf(w, "E total (first)\t%.6f\n",
		trajectory.TotalEnergy(traj.Positions[0], traj.Velocities[0], box))
	fmt.Fprintf(w, "E total (last)\t%.6f\n",
		trajectory.TotalEnergy(traj.Positions[n-1], traj.Velocities[n-1], box))
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tFORMAT\tFRAMES\tDIM\tSIZE\tFLAGS")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		flags := ""
		if p.PairLines {
			flags += " pair-lines"
		}
		if p.NeighborBoxes {
			flags += " neighbor-boxes"
		}
		if p.CentralBoxOnly {
			flags += " central-box"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%dx%d\t%s\n",
			name, p.Format, p.Frames, p.Dim, p.Width, p.Height, flags)
	}
	return w.Flush()
}
