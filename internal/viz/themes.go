package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/metaballs/internal/render"
)

// Theme pairs a field colour ramp with the panel colours.
type Theme struct {
	Name    string
	Ramp    render.HueRamp
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
}

var (
	ThemeOcean = Theme{
		Name:    "ocean",
		Ramp:    render.DefaultRamp,
		Primary: lipgloss.Color("#0077be"),
		Accent:  lipgloss.Color("#ffd700"),
		Text:    lipgloss.Color("#e0f0ff"),
		Muted:   lipgloss.Color("#4488aa"),
	}

	ThemeCyberpunk = Theme{
		Name:    "cyberpunk",
		Ramp:    render.HueRamp{From: 300, To: 180, Saturation: 1, MinValue: 0.4},
		Primary: lipgloss.Color("#ff00ff"),
		Accent:  lipgloss.Color("#ffff00"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#666666"),
	}

	ThemeRetroGreen = Theme{
		Name:    "retro",
		Ramp:    render.HueRamp{From: 120, To: 120, Saturation: 1, MinValue: 0.25},
		Primary: lipgloss.Color("#00ff00"),
		Accent:  lipgloss.Color("#88ff88"),
		Text:    lipgloss.Color("#00ff00"),
		Muted:   lipgloss.Color("#005500"),
	}

	ThemeLava = Theme{
		Name:    "lava",
		Ramp:    render.HueRamp{From: 0, To: 55, Saturation: 0.95, MinValue: 0.35},
		Primary: lipgloss.Color("#ff6b6b"),
		Accent:  lipgloss.Color("#feca57"),
		Text:    lipgloss.Color("#fff5f5"),
		Muted:   lipgloss.Color("#8b6b8c"),
	}

	ThemeMinimal = Theme{
		Name:    "minimal",
		Ramp:    render.HueRamp{From: 0, To: 0, Saturation: 0, MinValue: 0.3},
		Primary: lipgloss.Color("#ffffff"),
		Accent:  lipgloss.Color("#0088ff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#888888"),
	}

	Themes = []Theme{
		ThemeOcean,
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeLava,
		ThemeMinimal,
	}
)

// GetTheme returns a theme by name, or ocean.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeOcean
}

// NextTheme returns the theme after name, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
