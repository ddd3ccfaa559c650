package render

import "github.com/san-kum/metaballs/internal/grid"

// Gooey bands glyphs around τ so the skin and the merge necks between blobs
// stand out. Selection depends on the field value alone.
type Gooey struct{}

func (Gooey) Mode() Mode         { return ModeGooey }
func (Gooey) Supersampled() bool { return false }

func (Gooey) Render(g *grid.Grid, threshold float64) *Frame {
	return cellwise(g, threshold, GooeyGlyph)
}

// gooeyBands are upper bounds as multiples of τ.
var gooeyBands = []struct {
	below float64
	glyph rune
}{
	{0.3, ' '},
	{0.6, '·'},
	{0.9, '○'},
	{1.0, '◯'},
	{1.3, '●'},
	{2.0, '◉'},
}

// GooeyMerge is the glyph for the deep core where blobs overlap.
const GooeyMerge = '◈'

func GooeyGlyph(field, threshold float64) rune {
	if field != field {
		return ' '
	}
	for _, b := range gooeyBands {
		if field < threshold*b.below {
			return b.glyph
		}
	}
	return GooeyMerge
}
