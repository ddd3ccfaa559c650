package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/san-kum/metaballs/internal/render"
)

// FrameToSVG lays the frame out as monospace text, one <text> per visible
// cell, coloured from ramp by the cell intensity. scale is the cell height
// in pixels; cells are half as wide as they are tall.
func FrameToSVG(f *render.Frame, ramp render.HueRamp, scale float64) string {
	if f == nil {
		return ""
	}
	if scale <= 0 {
		scale = 16
	}

	cellW, cellH := scale/2, scale
	width := float64(f.Cols) * cellW
	height := float64(f.Rows) * cellH

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g font-family="monospace" font-size="%.1f" text-anchor="middle">
`, width, height, width, height, cellH))

	for row := 0; row < f.Rows; row++ {
		for col := 0; col < f.Cols; col++ {
			c := f.At(row, col)
			if c.Glyph == ' ' {
				continue
			}
			x := float64(col)*cellW + cellW/2
			y := float64(row+1)*cellH - cellH/5
			sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" fill="%s">%s</text>
`, x, y, ramp.Hex(c.Intensity), html.EscapeString(string(c.Glyph))))
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// SeriesToSVG plots values left to right as a polyline, padded by 10% of the
// value range.
func SeriesToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	minY, maxY := values[0], values[0]
	for _, v := range values {
		if v < minY {
			minY = v
		}
		if v > maxY {
			maxY = v
		}
	}
	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	last := float64(len(values) - 1)
	for i, v := range values {
		x := float64(i) / last * float64(width)
		y := float64(height) - (v-minY)/rangeY*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
