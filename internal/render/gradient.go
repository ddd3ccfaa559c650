package render

import "github.com/san-kum/metaballs/internal/grid"

// GradientPalette runs sparse to dense. The lower five glyphs cover the halo
// below τ, the upper five the interior.
var GradientPalette = []rune(" .:-=+*#%@")

// Gradient shades every cell by field strength.
type Gradient struct{}

func (Gradient) Mode() Mode         { return ModeGradient }
func (Gradient) Supersampled() bool { return false }

func (Gradient) Render(g *grid.Grid, threshold float64) *Frame {
	return cellwise(g, threshold, GradientGlyph)
}

// GradientGlyph is monotone non-decreasing in field and saturates at 4τ.
func GradientGlyph(field, threshold float64) rune {
	switch {
	case !(field >= threshold*0.1):
		return GradientPalette[0]
	case field < threshold:
		idx := int(field / threshold * 5)
		if idx > 4 {
			idx = 4
		}
		return GradientPalette[idx]
	}
	over := field - threshold
	if over > 3*threshold {
		over = 3 * threshold
	}
	idx := 5 + int(over/(3*threshold)*4)
	if idx >= len(GradientPalette) {
		idx = len(GradientPalette) - 1
	}
	return GradientPalette[idx]
}
