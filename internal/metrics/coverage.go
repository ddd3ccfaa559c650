package metrics

import (
	"time"

	"github.com/san-kum/metaballs/internal/grid"
)

// Coverage is the mean share of cells inside the isosurface.
type Coverage struct {
	sum     float64
	samples int
}

func NewCoverage() *Coverage { return &Coverage{} }

func (c *Coverage) Name() string { return "coverage" }

func (c *Coverage) Observe(g *grid.Grid, threshold float64, _ time.Duration) {
	c.sum += g.InsideFraction(threshold)
	c.samples++
}

func (c *Coverage) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *Coverage) Reset() {
	c.sum = 0
	c.samples = 0
}

// PeakField tracks the strongest sample seen, in multiples of τ.
type PeakField struct {
	peak float64
}

func NewPeakField() *PeakField { return &PeakField{} }

func (p *PeakField) Name() string { return "peak_field" }

func (p *PeakField) Observe(g *grid.Grid, threshold float64, _ time.Duration) {
	if v := g.Max() / threshold; v > p.peak {
		p.peak = v
	}
}

func (p *PeakField) Value() float64 { return p.peak }

func (p *PeakField) Reset() { p.peak = 0 }
