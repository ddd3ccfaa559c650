package metrics

import (
	"time"

	"github.com/san-kum/metaballs/internal/grid"
)

// FrameTime is the mean sample+render time per frame in milliseconds.
type FrameTime struct {
	total   time.Duration
	samples int
}

func NewFrameTime() *FrameTime { return &FrameTime{} }

func (f *FrameTime) Name() string { return "frame_ms" }

func (f *FrameTime) Observe(_ *grid.Grid, _ float64, took time.Duration) {
	f.total += took
	f.samples++
}

func (f *FrameTime) Value() float64 {
	if f.samples == 0 {
		return 0
	}
	return float64(f.total) / float64(f.samples) / float64(time.Millisecond)
}

func (f *FrameTime) Reset() {
	f.total = 0
	f.samples = 0
}
