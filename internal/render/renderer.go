// Package render turns a sampled field grid into a character frame.
//
// Five interchangeable policies implement [Renderer]:
//
//   - [Gradient]: density ramp over the field value
//   - [Contour]: isosurface outline from 4-neighbour inside/outside changes
//   - [Solid]: filled shapes with coarse interior shading
//   - [Blocks]: 2×2 supersampled coverage shown as shade blocks
//   - [Gooey]: banded glyphs that emphasize the skin and merge necks
//
// Renderers are pure: the same grid and threshold always give the same frame.
package render

import (
	"fmt"

	"github.com/san-kum/metaballs/internal/grid"
	"github.com/san-kum/metaballs/internal/metaball"
)

// Renderer maps a sampled grid to glyphs.
type Renderer interface {
	Mode() Mode
	// Supersampled reports whether Render needs grid coverage counts.
	Supersampled() bool
	Render(g *grid.Grid, threshold float64) *Frame
}

// Options carries the per-mode knobs.
type Options struct {
	EdgePolicy EdgePolicy
}

// New returns the renderer for mode.
func New(mode Mode, opts Options) (Renderer, error) {
	switch mode {
	case ModeGradient:
		return Gradient{}, nil
	case ModeContour:
		return Contour{Policy: opts.EdgePolicy}, nil
	case ModeSolid:
		return Solid{}, nil
	case ModeBlocks:
		return Blocks{}, nil
	case ModeGooey:
		return Gooey{}, nil
	}
	return nil, fmt.Errorf("no renderer for %s", mode)
}

// SampleFor samples src with the grid layout r needs.
func SampleFor(r Renderer, src metaball.Source, s *grid.Sampler, rows, cols int, threshold float64) *grid.Grid {
	if r.Supersampled() {
		return s.Supersample(src, rows, cols, threshold)
	}
	return s.Sample(src, rows, cols)
}

// Draw samples src and renders the result.
func Draw(src metaball.Source, s *grid.Sampler, r Renderer, rows, cols int, threshold float64) *Frame {
	return r.Render(SampleFor(r, src, s, rows, cols, threshold), threshold)
}

// intensity maps a field value to [0,1], saturating at 3τ.
func intensity(field, threshold float64) float64 {
	v := field / (3 * threshold)
	switch {
	case v < 0 || v != v:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// cellwise renders every cell with a function of its field value alone.
func cellwise(g *grid.Grid, threshold float64, glyph func(field, threshold float64) rune) *Frame {
	f := NewFrame(g.Rows, g.Cols)
	for i, v := range g.Values {
		f.Cells[i] = Cell{Glyph: glyph(v, threshold), Intensity: intensity(v, threshold)}
	}
	return f
}
