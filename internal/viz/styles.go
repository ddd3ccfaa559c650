package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/metaballs/internal/render"
)

var (
	StatusRunning = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ff88"))

	StatusPaused = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffaa00"))

	StatusRecording = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff4444")).
			Blink(true)

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899")).
			Width(10)

	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688")).
		Italic(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	SparkHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	SparkMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	SparkLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

// ProgressBar renders a fraction in [0,1] as a filled bar.
func ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	if percent > 0.5 {
		return SparkHigh.Render(bar)
	} else if percent > 0.2 {
		return SparkMid.Render(bar)
	}
	return SparkLow.Render(bar)
}

const colourLevels = 16

// Painter colours frames with a hue ramp. Styles are built once per level.
type Painter struct {
	styles [colourLevels]lipgloss.Style
}

func NewPainter(ramp render.HueRamp) *Painter {
	p := &Painter{}
	for i := range p.styles {
		hex := ramp.Hex(float64(i) / float64(colourLevels-1))
		p.styles[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
	}
	return p
}

func level(intensity float64) int {
	l := int(intensity*float64(colourLevels-1) + 0.5)
	if l < 0 {
		return 0
	}
	if l >= colourLevels {
		return colourLevels - 1
	}
	return l
}

// Paint renders f row by row, styling runs of same-level glyphs together.
// Blank cells are left unstyled.
func (p *Painter) Paint(f *render.Frame) string {
	var sb strings.Builder
	var run strings.Builder
	for row := 0; row < f.Rows; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		cur := -1
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if cur < 0 {
				sb.WriteString(run.String())
			} else {
				sb.WriteString(p.styles[cur].Render(run.String()))
			}
			run.Reset()
		}
		for col := 0; col < f.Cols; col++ {
			c := f.At(row, col)
			l := -1
			if c.Glyph != ' ' {
				l = level(c.Intensity)
			}
			if l != cur {
				flush()
				cur = l
			}
			run.WriteRune(c.Glyph)
		}
		flush()
	}
	return sb.String()
}
