package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/metaballs/internal/automation"
	"github.com/san-kum/metaballs/internal/config"
	"github.com/san-kum/metaballs/internal/export"
	"github.com/san-kum/metaballs/internal/logging"
	"github.com/san-kum/metaballs/internal/render"
	"github.com/san-kum/metaballs/internal/sim"
	"github.com/san-kum/metaballs/internal/viz"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultLogFile = "metaballs.log"

type options struct {
	configFile string
	preset     string
	mode       string
	threshold  float64
	blobs      int
	seed       int64
	fps        int
	dt         float64
	width      int
	height     int
	motion     string
	cycle      bool
	edge       string
	workers    int
	theme      string
	logLevel   string

	frames       int
	status       bool
	benchFrames  int
	svg          string
	exportFrames int

	sweepParam    string
	sweepMin      float64
	sweepMax      float64
	sweepSteps    int
	sweepFrames   int
	sweepParallel int
	maxCoverage   float64
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	o := &options{}

	rootCmd := &cobra.Command{
		Use:          "metaballs",
		Short:        "animated metaballs in the terminal",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd, o)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&o.configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&o.preset, "preset", "", "use preset configuration")
	pf.StringVar(&o.mode, "mode", config.DefaultMode, "render mode: "+strings.Join(modeNames(), ", "))
	pf.Float64Var(&o.threshold, "threshold", config.DefaultThreshold, "isosurface threshold")
	pf.IntVar(&o.blobs, "blobs", config.DefaultBlobs, "number of blobs")
	pf.Int64Var(&o.seed, "seed", 0, "random seed (0 picks one from the clock)")
	pf.IntVar(&o.fps, "fps", config.DefaultFPS, "frame rate")
	pf.Float64Var(&o.dt, "dt", config.DefaultDt, "simulated seconds per frame")
	pf.IntVar(&o.width, "width", config.DefaultWidth, "scene width in columns")
	pf.IntVar(&o.height, "height", config.DefaultHeight, "scene height in rows")
	pf.StringVar(&o.motion, "motion", config.DefaultMotion, "blob motion: bounce or orbit")
	pf.BoolVar(&o.cycle, "cycle", false, "cycle render modes automatically")
	pf.StringVar(&o.edge, "edge", config.DefaultEdgePolicy, "contour grid edge policy: ignore or outside")
	pf.IntVar(&o.workers, "workers", 0, "sampling workers (0 uses every CPU)")
	pf.StringVar(&o.theme, "theme", config.DefaultTheme, "colour theme: "+strings.Join(viz.ThemeNames(), ", "))
	pf.StringVar(&o.logLevel, "log-level", "info", "log level")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the interactive animation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd, o)
		},
	}

	frameCmd := &cobra.Command{
		Use:   "frame",
		Short: "print frames as plain text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printFrames(cmd, o)
		},
	}
	frameCmd.Flags().IntVar(&o.frames, "frames", 1, "number of frames to print")
	frameCmd.Flags().BoolVar(&o.status, "status", false, "print a status line after each frame")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "time every render mode headless",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return benchModes(cmd, o)
		},
	}
	benchCmd.Flags().IntVar(&o.benchFrames, "frames", 200, "frames per mode")
	benchCmd.Flags().StringVar(&o.svg, "svg", "", "write the coverage history of the first mode as svg")

	exportCmd := &cobra.Command{
		Use:   "export [file.txt|file.svg]",
		Short: "render one frame to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return exportFrame(cmd, o, args[0])
		},
	}
	exportCmd.Flags().IntVar(&o.exportFrames, "frames", 1, "frames to advance before exporting")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tMODE\tMOTION\tBLOBS\tTHRESHOLD")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2f\n", name, p.Mode, p.Motion, p.Blobs, p.Threshold)
			}
			return w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "write the effective configuration as yaml",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(cmd, o)
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
			return nil
		},
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file.yaml]",
		Short: "run a scripted batch of headless animations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(cmd, o, args[0])
		},
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "measure coverage across a range of one parameter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSweep(cmd, o)
		},
	}
	sweepCmd.Flags().StringVar(&o.sweepParam, "param", "threshold", "parameter to vary: "+strings.Join(automation.SweepParams(), ", "))
	sweepCmd.Flags().Float64Var(&o.sweepMin, "min", 0.5, "first value")
	sweepCmd.Flags().Float64Var(&o.sweepMax, "max", 2.5, "last value")
	sweepCmd.Flags().IntVar(&o.sweepSteps, "steps", 9, "number of values")
	sweepCmd.Flags().IntVar(&o.sweepFrames, "frames", 100, "frames per value")
	sweepCmd.Flags().IntVar(&o.sweepParallel, "parallel", 4, "concurrent runs")
	sweepCmd.Flags().Float64Var(&o.maxCoverage, "max-coverage", 0, "report the value with the most coverage at or below this percentage (0 = off)")

	rootCmd.AddCommand(runCmd, frameCmd, benchCmd, exportCmd, presetsCmd, configCmd, scenarioCmd, sweepCmd)
	return rootCmd
}

func modeNames() []string {
	modes := render.Modes()
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = m.String()
	}
	return names
}

// buildConfig layers defaults, preset, config file and explicitly set flags,
// in that order.
func buildConfig(cmd *cobra.Command, o *options) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if o.preset != "" {
		cfg = config.GetPreset(o.preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", o.preset, config.ListPresets())
		}
	}

	if o.configFile != "" {
		loaded, err := config.LoadOver(o.configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("mode") {
		cfg.Mode = o.mode
	}
	if flags.Changed("threshold") {
		cfg.Threshold = o.threshold
	}
	if flags.Changed("blobs") {
		cfg.Blobs = o.blobs
	}
	if flags.Changed("seed") {
		cfg.Seed = o.seed
	}
	if flags.Changed("fps") {
		cfg.FPS = o.fps
	}
	if flags.Changed("dt") {
		cfg.Dt = o.dt
	}
	if flags.Changed("width") {
		cfg.Width = o.width
	}
	if flags.Changed("height") {
		cfg.Height = o.height
	}
	if flags.Changed("motion") {
		cfg.Motion = o.motion
	}
	if flags.Changed("cycle") {
		cfg.CycleModes = o.cycle
	}
	if flags.Changed("edge") {
		cfg.EdgePolicy = o.edge
	}
	if flags.Changed("workers") {
		cfg.Workers = o.workers
	}
	if flags.Changed("theme") {
		cfg.Theme = o.theme
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = o.logLevel
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setup(cmd *cobra.Command, o *options, interactive bool) (*config.Config, *sim.Animator, error) {
	cfg, err := buildConfig(cmd, o)
	if err != nil {
		return nil, nil, err
	}
	if interactive {
		logging.InitializeFile(cfg.Log, defaultLogFile)
	} else {
		logging.InitializeConsole(cfg.Log)
	}
	log := logging.Get()
	log.Debug("starting",
		zap.String("command", cmd.Name()),
		zap.String("mode", cfg.Mode),
		zap.String("motion", cfg.Motion),
		zap.Int("blobs", cfg.Blobs),
		zap.Float64("threshold", cfg.Threshold),
		zap.Int64("seed", cfg.Seed),
	)

	anim, err := sim.FromConfig(cfg)
	if err != nil {
		return nil, nil, err
	}
	anim.SetLogger(log.Named("sim"))
	return cfg, anim, nil
}

func runInteractive(cmd *cobra.Command, o *options) error {
	cfg, anim, err := setup(cmd, o, true)
	if err != nil {
		return err
	}
	defer logging.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	return viz.Run(ctx, anim, cfg, logging.Get().Named("viz"))
}

// framePrinter writes every frame as text, optionally followed by a status
// line.
type framePrinter struct {
	w      io.Writer
	start  time.Time
	mode   func() render.Mode
	status bool
	err    error
}

func (p *framePrinter) OnFrame(n int, _ float64, f *render.Frame) {
	if p.err != nil {
		return
	}
	if n > 1 {
		fmt.Fprintln(p.w)
	}
	if p.err = export.WriteText(p.w, f); p.err != nil || !p.status {
		return
	}
	fps := 0.0
	if el := time.Since(p.start).Seconds(); el > 0 {
		fps = float64(n) / el
	}
	_, p.err = fmt.Fprintf(p.w, "%s | frame %d | %.1f fps\n", p.mode().Title(), n, fps)
}

func printFrames(cmd *cobra.Command, o *options) error {
	cfg, anim, err := setup(cmd, o, false)
	if err != nil {
		return err
	}
	defer logging.Sync()

	printer := &framePrinter{w: cmd.OutOrStdout(), start: time.Now(), mode: anim.Mode, status: o.status}
	anim.AddObserver(printer)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	for i := 0; i < o.frames; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		anim.Step(cfg.Dt, cfg.Height, cfg.Width)
		if printer.err != nil {
			return printer.err
		}
	}
	return nil
}

func benchModes(cmd *cobra.Command, o *options) error {
	cfg, _, err := setup(cmd, o, false)
	if err != nil {
		return err
	}
	defer logging.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "benchmarking %dx%d, %d blobs, %d frames per mode\n\n", cfg.Width, cfg.Height, cfg.Blobs, o.benchFrames)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MODE\tFRAMES\tTIME\tFPS\tFRAME_MS\tCOVERAGE\tPEAK")

	var firstCoverage []float64
	means := make([]float64, 0, len(render.Modes()))
	for _, mode := range render.Modes() {
		runCfg := *cfg
		runCfg.Mode = mode.String()
		runCfg.CycleModes = false
		anim, err := sim.FromConfig(&runCfg)
		if err != nil {
			return err
		}
		for _, m := range sim.DefaultMetrics() {
			anim.AddMetric(m)
		}

		result, err := anim.Run(ctx, sim.RunConfig{Rows: cfg.Height, Cols: cfg.Width, Dt: cfg.Dt, Frames: o.benchFrames})
		if err != nil {
			return err
		}
		if firstCoverage == nil {
			firstCoverage = result.Coverage
		}
		means = append(means, result.Metrics["frame_ms"])

		fmt.Fprintf(w, "%s\t%d\t%v\t%.0f\t%.3f\t%.1f%%\t%.1f\n",
			mode, result.Frames, result.Elapsed.Round(time.Microsecond), result.FPS(),
			result.Metrics["frame_ms"], result.Metrics["coverage"]*100, result.Metrics["peak_field"])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(firstCoverage) > 1 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, asciigraph.Plot(firstCoverage, asciigraph.Height(8), asciigraph.Width(60),
			asciigraph.Caption("inside fraction per frame ("+render.Modes()[0].String()+")")))
	}
	if len(means) > 1 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, asciigraph.Plot(means, asciigraph.Height(6), asciigraph.Caption("mean frame ms by mode")))
	}

	if o.svg != "" {
		svg := export.SeriesToSVG(firstCoverage, 600, 200, "#00ff88")
		if err := os.WriteFile(o.svg, []byte(svg), 0644); err != nil {
			return fmt.Errorf("write svg: %w", err)
		}
		logging.Get().Info("coverage chart saved", zap.String("path", o.svg))
	}
	return nil
}

func exportFrame(cmd *cobra.Command, o *options, path string) error {
	cfg, anim, err := setup(cmd, o, false)
	if err != nil {
		return err
	}
	defer logging.Sync()

	var f *render.Frame
	for i := 0; i < o.exportFrames; i++ {
		f = anim.Step(cfg.Dt, cfg.Height, cfg.Width)
	}
	if f == nil {
		f = anim.Render(cfg.Height, cfg.Width)
	}
	if err := export.SaveFrame(path, f, viz.GetTheme(cfg.Theme).Ramp); err != nil {
		return err
	}
	logging.Get().Info("frame exported", zap.String("path", path), zap.String("mode", anim.Mode().String()))
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}

func runScenario(cmd *cobra.Command, o *options, path string) error {
	cfg, _, err := setup(cmd, o, false)
	if err != nil {
		return err
	}
	defer logging.Sync()

	scenario, err := automation.LoadScenario(path)
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	results, err := automation.RunScenario(ctx, scenario, cfg, logging.Get().Named("scenario"))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if scenario.Name != "" {
		fmt.Fprintf(out, "scenario %s\n\n", scenario.Name)
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tFRAMES\tFPS\tFRAME_MS\tCOVERAGE\tPEAK")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%d\t%.0f\t%.3f\t%.1f%%\t%.1f\n", r.Name, r.Frames, r.FPS, r.FrameMs, r.Coverage*100, r.Peak)
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, o *options) error {
	cfg, _, err := setup(cmd, o, false)
	if err != nil {
		return err
	}
	defer logging.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	results, err := automation.RunSweep(ctx, &automation.ParameterSweep{
		Param:    o.sweepParam,
		Min:      o.sweepMin,
		Max:      o.sweepMax,
		NumSteps: o.sweepSteps,
		Frames:   o.sweepFrames,
		Parallel: o.sweepParallel,
	}, cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tFRAME_MS\tCOVERAGE\tPEAK\n", strings.ToUpper(o.sweepParam))
	coverage := make([]float64, len(results))
	for i, r := range results {
		coverage[i] = r.Coverage * 100
		fmt.Fprintf(w, "%.3g\t%.3f\t%.1f%%\t%.1f\n", r.Value, r.FrameMs, r.Coverage*100, r.Peak)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if len(coverage) > 1 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, asciigraph.Plot(coverage, asciigraph.Height(8), asciigraph.Caption("coverage % by "+o.sweepParam)))
	}
	if o.maxCoverage > 0 {
		fmt.Fprintln(out)
		if best, ok := automation.Best(results, o.maxCoverage/100); ok {
			fmt.Fprintf(out, "best %s: %.3g (coverage %.1f%%)\n", o.sweepParam, best.Value, best.Coverage*100)
		} else {
			fmt.Fprintf(out, "best %s: none at or below %.1f%% coverage\n", o.sweepParam, o.maxCoverage)
		}
	}
	return nil
}
