package grid

import (
	"runtime"

	"github.com/san-kum/metaballs/internal/metaball"
	"golang.org/x/sync/errgroup"
)

// SubOffsets are the 2×2 supersampling positions in cell units.
var SubOffsets = [4][2]float64{{0, 0}, {0.5, 0}, {0, 0.5}, {0.5, 0.5}}

// minParallelCells keeps tiny grids on the calling goroutine.
const minParallelCells = 1024

// Sampler evaluates a field source over a grid using one mapping per frame.
type Sampler struct {
	Mapping Mapping
	Workers int
}

// NewSampler returns a sampler using all CPUs. workers <= 0 picks NumCPU.
func NewSampler(m Mapping, workers int) *Sampler {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Sampler{Mapping: m, Workers: workers}
}

// Sample fills one field value per cell.
func (s *Sampler) Sample(src metaball.Source, rows, cols int) *Grid {
	g := New(rows, cols)
	s.forRows(g, func(r int) {
		for c := 0; c < g.Cols; c++ {
			x, y := s.Mapping.Point(float64(r), float64(c))
			g.Values[g.index(r, c)] = src.FieldAt(x, y)
		}
	})
	return g
}

// Supersample fills field values and the 2×2 coverage count against
// threshold. The (0,0) sub-sample doubles as the cell's field value.
func (s *Sampler) Supersample(src metaball.Source, rows, cols int, threshold float64) *Grid {
	g := New(rows, cols)
	g.Coverage = make([]uint8, len(g.Values))
	s.forRows(g, func(r int) {
		for c := 0; c < g.Cols; c++ {
			i := g.index(r, c)
			var count uint8
			for k, off := range SubOffsets {
				x, y := s.Mapping.Point(float64(r)+off[1], float64(c)+off[0])
				v := src.FieldAt(x, y)
				if k == 0 {
					g.Values[i] = v
				}
				if v >= threshold {
					count++
				}
			}
			g.Coverage[i] = count
		}
	})
	return g
}

// forRows runs fn once per row. Each row writes a disjoint slice of the
// grid, so rows may run concurrently while src is only read. At most
// Workers rows are in flight.
func (s *Sampler) forRows(g *Grid, fn func(row int)) {
	if s.Workers <= 1 || g.Rows*g.Cols < minParallelCells {
		for r := 0; r < g.Rows; r++ {
			fn(r)
		}
		return
	}

	var eg errgroup.Group
	eg.SetLimit(s.Workers)
	for r := 0; r < g.Rows; r++ {
		r := r
		eg.Go(func() error {
			fn(r)
			return nil
		})
	}
	// row functions cannot fail, Wait only joins them
	eg.Wait()
}
