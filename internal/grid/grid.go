// Package grid discretizes a scalar field onto a rows×cols character grid.
package grid

import "github.com/san-kum/metaballs/internal/metaball"

// Grid holds one field sample per cell in row-major order. Coverage is only
// populated by Supersample and counts how many of the four sub-cell samples
// met the threshold.
type Grid struct {
	Rows, Cols int
	Values     []float64
	Coverage   []uint8
}

// New allocates an empty grid. Non-positive dimensions yield an empty grid.
func New(rows, cols int) *Grid {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	return &Grid{Rows: rows, Cols: cols, Values: make([]float64, rows*cols)}
}

// FromRows builds a grid from literal values. Used for synthetic fields.
func FromRows(rows [][]float64) *Grid {
	if len(rows) == 0 {
		return New(0, 0)
	}
	g := New(len(rows), len(rows[0]))
	for r, row := range rows {
		copy(g.Values[r*g.Cols:(r+1)*g.Cols], row)
	}
	return g
}

func (g *Grid) index(row, col int) int { return row*g.Cols + col }

// In reports whether (row, col) addresses a cell.
func (g *Grid) In(row, col int) bool {
	return row >= 0 && row < g.Rows && col >= 0 && col < g.Cols
}

// At returns the field value at (row, col).
func (g *Grid) At(row, col int) float64 { return g.Values[g.index(row, col)] }

// Set stores a field value.
func (g *Grid) Set(row, col int, v float64) { g.Values[g.index(row, col)] = v }

// CoverageAt returns the supersampled count for a cell, 0 if the grid was not
// supersampled.
func (g *Grid) CoverageAt(row, col int) int {
	if g.Coverage == nil {
		return 0
	}
	return int(g.Coverage[g.index(row, col)])
}

// Inside reports field ≥ threshold at (row, col).
func (g *Grid) Inside(row, col int, threshold float64) bool {
	return g.At(row, col) >= threshold
}

// Max returns the largest sample, 0 for an empty grid.
func (g *Grid) Max() float64 {
	m := 0.0
	for _, v := range g.Values {
		if v > m {
			m = v
		}
	}
	return m
}

// InsideFraction is the share of cells at or above threshold.
func (g *Grid) InsideFraction(threshold float64) float64 {
	if len(g.Values) == 0 {
		return 0
	}
	n := 0
	for _, v := range g.Values {
		if v >= threshold {
			n++
		}
	}
	return float64(n) / float64(len(g.Values))
}

// Mapping converts a cell address into logical plane coordinates.
type Mapping struct {
	OriginX, OriginY float64
	ScaleX, ScaleY   float64
}

// Identity maps column c to x=c and row r to y=r.
func Identity() Mapping {
	return Mapping{ScaleX: 1, ScaleY: 1}
}

// FitMapping stretches a rows×cols grid over the whole plane.
func FitMapping(rows, cols int, b metaball.Bounds) Mapping {
	m := Identity()
	if cols > 0 {
		m.ScaleX = b.Width / float64(cols)
	}
	if rows > 0 {
		m.ScaleY = b.Height / float64(rows)
	}
	return m
}

// Point maps a fractional cell position to plane coordinates.
func (m Mapping) Point(row, col float64) (float64, float64) {
	return m.OriginX + col*m.ScaleX, m.OriginY + row*m.ScaleY
}
