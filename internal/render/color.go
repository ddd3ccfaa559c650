package render

import (
	"image/color"
	"strings"

	"github.com/crazy3lf/colorconv"
)

// HueRamp converts an intensity hint into a colour by sweeping hue between
// two angles in degrees.
type HueRamp struct {
	From, To   float64
	Saturation float64
	MinValue   float64
}

// DefaultRamp runs from deep blue at the halo to magenta in the core.
var DefaultRamp = HueRamp{From: 220, To: 320, Saturation: 0.85, MinValue: 0.35}

// hsv maps intensity to hue, saturation and value. Out-of-range input is
// clamped.
func (h HueRamp) hsv(intensity float64) (float64, float64, float64) {
	if !(intensity > 0) {
		intensity = 0
	} else if intensity > 1 {
		intensity = 1
	}
	hue := h.From + (h.To-h.From)*intensity
	for hue < 0 {
		hue += 360
	}
	for hue >= 360 {
		hue -= 360
	}
	return hue, h.Saturation, h.MinValue + (1-h.MinValue)*intensity
}

// Color returns the ramp colour for intensity in [0,1].
func (h HueRamp) Color(intensity float64) color.Color {
	c, err := colorconv.HSVToColor(h.hsv(intensity))
	if err != nil {
		return color.White
	}
	return c
}

// Hex returns "#rrggbb" for intensity in [0,1].
func (h HueRamp) Hex(intensity float64) string {
	r, g, b, err := colorconv.HSVToRGB(h.hsv(intensity))
	if err != nil {
		return "#ffffff"
	}
	hex := strings.TrimPrefix(strings.TrimPrefix(colorconv.RGBToHex(r, g, b), "0x"), "#")
	return "#" + strings.ToLower(hex)
}
