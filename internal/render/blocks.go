package render

import "github.com/san-kum/metaballs/internal/grid"

// BlockGlyphs index by 2×2 coverage: 0%, 25%, 50%, 75%, 100%.
var BlockGlyphs = [5]rune{' ', '░', '▒', '▓', '█'}

// Blocks renders supersampled coverage as shade blocks.
type Blocks struct{}

func (Blocks) Mode() Mode         { return ModeBlocks }
func (Blocks) Supersampled() bool { return true }

// Render needs a supersampled grid. A plain grid falls back to counting the
// cell's own sample four times.
func (Blocks) Render(g *grid.Grid, threshold float64) *Frame {
	f := NewFrame(g.Rows, g.Cols)
	for i, v := range g.Values {
		n := 0
		if g.Coverage != nil {
			n = int(g.Coverage[i])
		} else if v >= threshold {
			n = 4
		}
		if n > 4 {
			n = 4
		}
		f.Cells[i] = Cell{Glyph: BlockGlyphs[n], Intensity: float64(n) / 4}
	}
	return f
}
