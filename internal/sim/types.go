package sim

import (
	"time"

	"github.com/san-kum/metaballs/internal/grid"
	"github.com/san-kum/metaballs/internal/render"
)

// Observer sees every rendered frame.
type Observer interface {
	OnFrame(n int, t float64, f *render.Frame)
}

// Metric accumulates a statistic over the sampled grids of a run.
type Metric interface {
	Name() string
	Observe(g *grid.Grid, threshold float64, took time.Duration)
	Value() float64
	Reset()
}

// RunConfig drives a headless run.
type RunConfig struct {
	Rows, Cols int
	Dt         float64
	Frames     int
}

// Result summarizes a headless run.
type Result struct {
	Frames     int
	Elapsed    time.Duration
	FrameTimes []float64
	Coverage   []float64
	Last       *render.Frame
	Metrics    map[string]float64
}

// FPS is the mean frames per second over the run.
func (r *Result) FPS() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Frames) / r.Elapsed.Seconds()
}
