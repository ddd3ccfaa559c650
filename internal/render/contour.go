package render

import "github.com/san-kum/metaballs/internal/grid"

// EdgePolicy decides how neighbours beyond the grid border are treated.
type EdgePolicy int

const (
	// EdgeIgnore skips missing neighbours, so the border never creates edges.
	EdgeIgnore EdgePolicy = iota
	// EdgeOutside treats missing neighbours as outside the surface, so a
	// shape clipped by the border gets an outline along it.
	EdgeOutside
)

func (p EdgePolicy) String() string {
	if p == EdgeOutside {
		return "outside"
	}
	return "ignore"
}

// ParseEdgePolicy accepts "ignore" or "outside"; anything else is ignore.
func ParseEdgePolicy(s string) EdgePolicy {
	if s == "outside" {
		return EdgeOutside
	}
	return EdgeIgnore
}

const (
	ContourFill  = '.'
	ContourEmpty = ' '
)

// Contour outlines the isosurface by comparing each cell with its four
// neighbours. No sub-cell interpolation.
type Contour struct {
	Policy EdgePolicy
}

func (Contour) Mode() Mode         { return ModeContour }
func (Contour) Supersampled() bool { return false }

var neighbours = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Edges marks every cell whose inside/outside status differs from at least
// one 4-neighbour.
func (c Contour) Edges(g *grid.Grid, threshold float64) []bool {
	edges := make([]bool, g.Rows*g.Cols)
	for r := 0; r < g.Rows; r++ {
		for col := 0; col < g.Cols; col++ {
			in := g.Inside(r, col, threshold)
			for _, d := range neighbours {
				nr, nc := r+d[0], col+d[1]
				var nin bool
				if g.In(nr, nc) {
					nin = g.Inside(nr, nc, threshold)
				} else if c.Policy == EdgeOutside {
					nin = false
				} else {
					continue
				}
				if nin != in {
					edges[r*g.Cols+col] = true
					break
				}
			}
		}
	}
	return edges
}

func (c Contour) Render(g *grid.Grid, threshold float64) *Frame {
	edges := c.Edges(g, threshold)
	f := NewFrame(g.Rows, g.Cols)
	for i, v := range g.Values {
		var glyph rune
		switch {
		case edges[i]:
			glyph = edgeGlyph(v, threshold)
		case v >= threshold:
			glyph = ContourFill
		default:
			glyph = ContourEmpty
		}
		f.Cells[i] = Cell{Glyph: glyph, Intensity: intensity(v, threshold)}
	}
	return f
}

// edgeGlyph thickens the outline where blobs merge and the field is strong.
func edgeGlyph(field, threshold float64) rune {
	switch {
	case field > threshold*1.5:
		return '@'
	case field > threshold*1.2:
		return '#'
	}
	return 'O'
}
