package render

import (
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/san-kum/metaballs/internal/grid"
	"github.com/san-kum/metaballs/internal/metaball"
)

func TestContourFlatFieldHasNoEdges(t *testing.T) {
	tests := []struct {
		name  string
		value float64
	}{
		{"all inside", 5},
		{"all outside", 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := grid.FromRows([][]float64{
				{tt.value, tt.value, tt.value, tt.value},
				{tt.value, tt.value, tt.value, tt.value},
				{tt.value, tt.value, tt.value, tt.value},
			})
			for _, e := range (Contour{}).Edges(g, 1) {
				if e {
					t.Fatal("flat field produced an edge")
				}
			}
		})
	}
}

func TestContourStepMarksBothSides(t *testing.T) {
	g := grid.FromRows([][]float64{
		{2, 0, 0},
		{2, 0, 0},
		{2, 0, 0},
	})
	want := []bool{
		true, true, false,
		true, true, false,
		true, true, false,
	}
	if diff := cmp.Diff(want, (Contour{}).Edges(g, 1)); diff != "" {
		t.Errorf("edge mask mismatch (-want +got):\n%s", diff)
	}
}

func TestContourStepExactlyAtThreshold(t *testing.T) {
	// 1.0 counts as inside at τ=1.
	g := grid.FromRows([][]float64{
		{0, 0, 0},
		{0, 1, 0},
		{0, 0, 0},
	})
	want := []bool{
		false, true, false,
		true, true, true,
		false, true, false,
	}
	if diff := cmp.Diff(want, (Contour{}).Edges(g, 1)); diff != "" {
		t.Errorf("edge mask mismatch (-want +got):\n%s", diff)
	}
}

func TestContourEdgePolicy(t *testing.T) {
	g := grid.FromRows([][]float64{
		{3, 3, 3},
		{3, 3, 3},
		{3, 3, 3},
	})

	ignore := (Contour{Policy: EdgeIgnore}).Render(g, 1)
	if got := ignore.Count(ContourFill); got != 9 {
		t.Errorf("ignore policy: %d fill cells, want 9", got)
	}

	outside := (Contour{Policy: EdgeOutside}).Render(g, 1)
	wantLines := []string{"@@@", "@.@", "@@@"}
	if diff := cmp.Diff(wantLines, outside.Lines()); diff != "" {
		t.Errorf("outside policy mismatch (-want +got):\n%s", diff)
	}
}

func TestContourEdgeGlyphs(t *testing.T) {
	// 1.3 sits between two inside cells, so it is interior fill.
	g := grid.FromRows([][]float64{{0.5, 1.1, 1.3, 1.6, 0.5}})
	f := (Contour{}).Render(g, 1)
	if got, want := f.String(), "OO.@O"; got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestSolidScenario(t *testing.T) {
	bounds := metaball.Bounds{Width: 20, Height: 10}
	scene, err := metaball.New(bounds, 1, []metaball.Blob{{X: 10, Y: 5, Radius: 5}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	rows, cols := 10, 20
	s := grid.NewSampler(grid.Identity(), 1)
	f := Draw(scene, s, Solid{}, rows, cols, scene.Threshold())

	if f.Rows != rows || f.Cols != cols {
		t.Fatalf("frame shape %dx%d, want %dx%d", f.Rows, f.Cols, rows, cols)
	}
	if f.At(5, 10).Glyph == SolidOutside {
		t.Error("center cell should be inside")
	}
	for _, p := range [][2]int{{0, 0}, {0, 19}, {9, 0}, {9, 19}} {
		if g := f.At(p[0], p[1]).Glyph; g != SolidOutside {
			t.Errorf("corner %v = %q, want blank", p, g)
		}
	}

	across, down := 0, 0
	for c := 0; c < cols; c++ {
		if f.At(5, c).Glyph != SolidOutside {
			across++
		}
	}
	for r := 0; r < rows; r++ {
		if f.At(r, 10).Glyph != SolidOutside {
			down++
		}
	}
	if across <= down {
		t.Errorf("shape should be wider than tall: %d cells across, %d down", across, down)
	}
}

func TestSolidGlyph(t *testing.T) {
	tests := []struct {
		field float64
		want  rune
	}{
		{0, SolidOutside},
		{0.99, SolidOutside},
		{1.0, SolidSkin},
		{2.0, SolidSkin},
		{2.5, SolidBody},
		{3.5, SolidCore},
		{1e6, SolidCore},
	}
	for _, tt := range tests {
		if got := SolidGlyph(tt.field, 1); got != tt.want {
			t.Errorf("SolidGlyph(%v) = %q, want %q", tt.field, got, tt.want)
		}
	}
}

func TestGradientMonotoneAndSaturating(t *testing.T) {
	rank := func(r rune) int {
		for i, p := range GradientPalette {
			if p == r {
				return i
			}
		}
		t.Fatalf("glyph %q not in palette", r)
		return -1
	}

	for _, tau := range []float64{0.5, 1, 2} {
		prev := 0
		for f := 0.0; f < 6*tau; f += 0.01 {
			idx := rank(GradientGlyph(f, tau))
			if idx < prev {
				t.Fatalf("τ=%v: glyph index dropped at field %v (%d < %d)", tau, f, idx, prev)
			}
			prev = idx
		}
		if got := GradientGlyph(1e9, tau); got != '@' {
			t.Errorf("τ=%v: saturated glyph = %q, want '@'", tau, got)
		}
		if got := GradientGlyph(-3, tau); got != ' ' {
			t.Errorf("τ=%v: negative field = %q, want ' '", tau, got)
		}
	}
}

func TestBlocksCoverageGlyphs(t *testing.T) {
	g := grid.FromRows([][]float64{{0, 0, 0, 0, 0}})
	g.Coverage = []uint8{0, 1, 2, 3, 4}
	f := (Blocks{}).Render(g, 1)
	if got, want := f.String(), " ░▒▓█"; got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
	if f.At(0, 2).Intensity != 0.5 {
		t.Errorf("intensity = %v, want 0.5", f.At(0, 2).Intensity)
	}
}

func TestGooeyBands(t *testing.T) {
	tests := []struct {
		field float64
		want  rune
	}{
		{0.1, ' '},
		{0.4, '·'},
		{0.7, '○'},
		{0.95, '◯'},
		{1.0, '●'},
		{1.5, '◉'},
		{2.0, GooeyMerge},
		{50, GooeyMerge},
	}
	for _, tt := range tests {
		if got := GooeyGlyph(tt.field, 1); got != tt.want {
			t.Errorf("GooeyGlyph(%v) = %q, want %q", tt.field, got, tt.want)
		}
	}
}

func TestDeterministicFrames(t *testing.T) {
	dts := []float64{0.05, 0.033, 0.05, 0.016, 0.1, 0.05}

	run := func(mode Mode) string {
		scene, err := metaball.Random(metaball.DefaultOptions(), 42)
		if err != nil {
			t.Fatal(err)
		}
		r, err := New(mode, Options{})
		if err != nil {
			t.Fatal(err)
		}
		s := grid.NewSampler(grid.Identity(), 4)
		var out strings.Builder
		for _, dt := range dts {
			scene.Advance(dt)
			out.WriteString(Draw(scene, s, r, 35, 80, scene.Threshold()).String())
		}
		return out.String()
	}

	for _, m := range Modes() {
		t.Run(m.String(), func(t *testing.T) {
			if a, b := run(m), run(m); a != b {
				t.Error("two identical runs produced different frames")
			}
		})
	}
}

func TestDrawSupersamplesOnlyForBlocks(t *testing.T) {
	scene, err := metaball.New(metaball.Bounds{Width: 20, Height: 10}, 1, []metaball.Blob{{X: 10, Y: 5, Radius: 3}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	s := grid.NewSampler(grid.Identity(), 1)
	f := Draw(scene, s, Blocks{}, 10, 20, 1)
	if f.At(5, 10).Glyph != '█' {
		t.Errorf("center block = %q, want full block", f.At(5, 10).Glyph)
	}
	if f.At(0, 0).Glyph != ' ' {
		t.Errorf("corner block = %q, want blank", f.At(0, 0).Glyph)
	}
}

func TestModeParseAndCycle(t *testing.T) {
	for _, m := range Modes() {
		got, err := ParseMode(strings.ToUpper(m.String()))
		if err != nil || got != m {
			t.Errorf("ParseMode(%q) = %v, %v", m.String(), got, err)
		}
	}
	if _, err := ParseMode("wireframe"); err == nil {
		t.Error("expected error for unknown mode")
	}
	if ModeGooey.Next() != ModeGradient {
		t.Error("Gooey should wrap to Gradient")
	}
	if ModeBlocks.Title() != "Blocks" {
		t.Errorf("Title = %q", ModeBlocks.Title())
	}
}

func TestCycler(t *testing.T) {
	c := NewCycler(ModeGradient, 5, true)
	if _, changed := c.Tick(4.9); changed {
		t.Fatal("changed before interval elapsed")
	}
	m, changed := c.Tick(0.2)
	if !changed || m != ModeContour {
		t.Fatalf("Tick = %v, %v; want contour, true", m, changed)
	}

	c.Enabled = false
	if _, changed := c.Tick(100); changed {
		t.Error("disabled cycler changed mode")
	}
}

func TestHueRampHex(t *testing.T) {
	hex := regexp.MustCompile(`^#[0-9a-f]{6}$`)
	for _, v := range []float64{-1, 0, 0.25, 0.5, 1, 7} {
		if got := DefaultRamp.Hex(v); !hex.MatchString(got) {
			t.Errorf("Hex(%v) = %q, not a colour", v, got)
		}
	}
	if DefaultRamp.Hex(0) == DefaultRamp.Hex(1) {
		t.Error("ramp endpoints should differ")
	}
}

func TestHueRampColorMatchesHex(t *testing.T) {
	for _, v := range []float64{0, 0.3, 0.8, 1} {
		var wr, wg, wb uint8
		if _, err := fmt.Sscanf(DefaultRamp.Hex(v), "#%02x%02x%02x", &wr, &wg, &wb); err != nil {
			t.Fatalf("Hex(%v): %v", v, err)
		}
		r, g, b, _ := DefaultRamp.Color(v).RGBA()
		if uint8(r>>8) != wr || uint8(g>>8) != wg || uint8(b>>8) != wb {
			t.Errorf("Color(%v) = %02x%02x%02x, Hex = %s", v, r>>8, g>>8, b>>8, DefaultRamp.Hex(v))
		}
	}
}
