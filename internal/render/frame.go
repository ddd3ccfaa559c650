package render

import "strings"

// Cell is one output glyph plus an intensity hint in [0,1].
type Cell struct {
	Glyph     rune
	Intensity float64
}

// Frame is a rows×cols character buffer, row-major.
type Frame struct {
	Rows, Cols int
	Cells      []Cell
}

// NewFrame returns a blank frame.
func NewFrame(rows, cols int) *Frame {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	cells := make([]Cell, rows*cols)
	for i := range cells {
		cells[i].Glyph = ' '
	}
	return &Frame{Rows: rows, Cols: cols, Cells: cells}
}

func (f *Frame) At(row, col int) Cell { return f.Cells[row*f.Cols+col] }

func (f *Frame) Set(row, col int, c Cell) { f.Cells[row*f.Cols+col] = c }

// Row returns the glyphs of one row.
func (f *Frame) Row(row int) []rune {
	out := make([]rune, f.Cols)
	for c := range out {
		out[c] = f.Cells[row*f.Cols+c].Glyph
	}
	return out
}

// Lines returns one string per row.
func (f *Frame) Lines() []string {
	lines := make([]string, f.Rows)
	for r := range lines {
		lines[r] = string(f.Row(r))
	}
	return lines
}

// String joins the rows with newlines, without a trailing newline.
func (f *Frame) String() string {
	return strings.Join(f.Lines(), "\n")
}

// Count returns how many cells hold glyph g.
func (f *Frame) Count(g rune) int {
	n := 0
	for _, c := range f.Cells {
		if c.Glyph == g {
			n++
		}
	}
	return n
}
