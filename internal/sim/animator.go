package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/metaballs/internal/config"
	"github.com/san-kum/metaballs/internal/grid"
	"github.com/san-kum/metaballs/internal/metaball"
	"github.com/san-kum/metaballs/internal/metrics"
	"github.com/san-kum/metaballs/internal/render"
	"go.uber.org/zap"
)

// Animator advances a scene and renders it once per tick. It is not safe for
// concurrent use.
type Animator struct {
	scene     *metaball.Scene
	sampler   *grid.Sampler
	renderer  render.Renderer
	opts      render.Options
	cycler    *render.Cycler
	metrics   []Metric
	observers []Observer
	frames    int
	lastGrid  *grid.Grid
	log       *zap.Logger
}

func New(scene *metaball.Scene, sampler *grid.Sampler, r render.Renderer, opts render.Options, cycler *render.Cycler) *Animator {
	if cycler == nil {
		cycler = render.NewCycler(r.Mode(), 0, false)
	}
	return &Animator{
		scene:     scene,
		sampler:   sampler,
		renderer:  r,
		opts:      opts,
		cycler:    cycler,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		log:       zap.NewNop(),
	}
}

// FromConfig validates cfg and wires scene, sampler, renderer and cycler.
func FromConfig(cfg *config.Config) (*Animator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	mode, err := render.ParseMode(cfg.Mode)
	if err != nil {
		return nil, err
	}
	opts := render.Options{EdgePolicy: render.ParseEdgePolicy(cfg.EdgePolicy)}
	r, err := render.New(mode, opts)
	if err != nil {
		return nil, err
	}

	scene, err := BuildScene(cfg)
	if err != nil {
		return nil, err
	}

	sampler := grid.NewSampler(grid.Identity(), cfg.Workers)
	cycler := render.NewCycler(mode, cfg.CycleInterval, cfg.CycleModes)
	return New(scene, sampler, r, opts, cycler), nil
}

// BuildScene creates the scene described by cfg. Orbit motion uses the
// classic choreography when the blob count matches it.
func BuildScene(cfg *config.Config) (*metaball.Scene, error) {
	bounds := metaball.Bounds{Width: float64(cfg.Width), Height: float64(cfg.Height)}
	if cfg.Motion == "orbit" && cfg.Blobs == len(metaball.ClassicRadii) {
		return metaball.Classic(bounds, cfg.Threshold)
	}

	scene, err := metaball.Random(metaball.Options{
		Bounds:    bounds,
		Threshold: cfg.Threshold,
		Count:     cfg.Blobs,
		MinRadius: cfg.Radius.Min,
		MaxRadius: cfg.Radius.Max,
		MinSpeed:  cfg.Speed.Min,
		MaxSpeed:  cfg.Speed.Max,
	}, cfg.Seed)
	if err != nil {
		return nil, fmt.Errorf("build scene: %w", err)
	}
	scene.SetMotion(metaball.MotionByName(cfg.Motion))
	return scene, nil
}

// DefaultMetrics returns the metrics recorded by headless runs.
func DefaultMetrics() []Metric {
	return []Metric{
		metrics.NewFrameTime(),
		metrics.NewCoverage(),
		metrics.NewPeakField(),
	}
}

func (a *Animator) AddMetric(m Metric)     { a.metrics = append(a.metrics, m) }
func (a *Animator) AddObserver(o Observer) { a.observers = append(a.observers, o) }

// SetLogger attaches a logger for mode changes. nil is ignored.
func (a *Animator) SetLogger(l *zap.Logger) {
	if l != nil {
		a.log = l
	}
}

func (a *Animator) Scene() *metaball.Scene    { return a.scene }
func (a *Animator) Mode() render.Mode         { return a.renderer.Mode() }
func (a *Animator) Cycler() *render.Cycler    { return a.cycler }
func (a *Animator) Frames() int               { return a.frames }
func (a *Animator) LastGrid() *grid.Grid      { return a.lastGrid }
func (a *Animator) Renderer() render.Renderer { return a.renderer }

// SetMode swaps the renderer and restarts the cycle period.
func (a *Animator) SetMode(m render.Mode) error {
	r, err := render.New(m, a.opts)
	if err != nil {
		return err
	}
	a.renderer = r
	a.cycler.Set(m)
	a.log.Info("render mode changed", zap.String("mode", m.String()), zap.Int("frame", a.frames))
	return nil
}

// NextMode switches to the following mode.
func (a *Animator) NextMode() render.Mode {
	next := a.renderer.Mode().Next()
	_ = a.SetMode(next)
	return next
}

// Reset restores the scene and the frame counter.
func (a *Animator) Reset() {
	a.scene.Reset()
	a.frames = 0
	for _, m := range a.metrics {
		m.Reset()
	}
}

// Step advances the scene by dt and renders a rows×cols frame. The grid is
// stretched over the scene bounds.
func (a *Animator) Step(dt float64, rows, cols int) *render.Frame {
	a.scene.Advance(dt)
	if m, changed := a.cycler.Tick(dt); changed {
		if r, err := render.New(m, a.opts); err == nil {
			a.renderer = r
			a.log.Debug("render mode cycled", zap.String("mode", m.String()))
		}
	}
	return a.Render(rows, cols)
}

// Render draws the current scene without advancing it.
func (a *Animator) Render(rows, cols int) *render.Frame {
	start := time.Now()
	threshold := a.scene.Threshold()
	a.sampler.Mapping = grid.FitMapping(rows, cols, a.scene.Bounds())
	g := render.SampleFor(a.renderer, a.scene, a.sampler, rows, cols, threshold)
	f := a.renderer.Render(g, threshold)
	took := time.Since(start)

	a.lastGrid = g
	for _, m := range a.metrics {
		m.Observe(g, threshold, took)
	}
	a.frames++
	for _, o := range a.observers {
		o.OnFrame(a.frames, a.scene.Time(), f)
	}
	return f
}

func (a *Animator) validateRun(cfg RunConfig) error {
	if cfg.Rows <= 0 || cfg.Cols <= 0 {
		return fmt.Errorf("grid must be positive, got %dx%d", cfg.Rows, cfg.Cols)
	}
	if cfg.Frames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", cfg.Frames)
	}
	if !(cfg.Dt >= 0) {
		return fmt.Errorf("dt must be non-negative, got %f", cfg.Dt)
	}
	return nil
}

// Run renders cfg.Frames frames as fast as possible, stopping early when ctx
// is cancelled.
func (a *Animator) Run(ctx context.Context, cfg RunConfig) (*Result, error) {
	if err := a.validateRun(cfg); err != nil {
		return nil, err
	}

	for _, m := range a.metrics {
		m.Reset()
	}
	result := &Result{
		FrameTimes: make([]float64, 0, cfg.Frames),
		Coverage:   make([]float64, 0, cfg.Frames),
		Metrics:    make(map[string]float64),
	}

	start := time.Now()
	for i := 0; i < cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			result.Elapsed = time.Since(start)
			return result, ctx.Err()
		default:
		}

		t0 := time.Now()
		result.Last = a.Step(cfg.Dt, cfg.Rows, cfg.Cols)
		result.FrameTimes = append(result.FrameTimes, float64(time.Since(t0))/float64(time.Millisecond))
		result.Coverage = append(result.Coverage, a.lastGrid.InsideFraction(a.scene.Threshold()))
		result.Frames++
	}
	result.Elapsed = time.Since(start)

	for _, m := range a.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}
