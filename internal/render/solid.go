package render

import "github.com/san-kum/metaballs/internal/grid"

const (
	SolidOutside = ' '
	SolidSkin    = '*'
	SolidBody    = '#'
	SolidCore    = '@'
)

// Solid fills the isosurface and bands the interior by depth.
type Solid struct{}

func (Solid) Mode() Mode         { return ModeSolid }
func (Solid) Supersampled() bool { return false }

func (Solid) Render(g *grid.Grid, threshold float64) *Frame {
	return cellwise(g, threshold, SolidGlyph)
}

func SolidGlyph(field, threshold float64) rune {
	switch {
	case !(field >= threshold):
		return SolidOutside
	case field > threshold*3:
		return SolidCore
	case field > threshold*2:
		return SolidBody
	}
	return SolidSkin
}
