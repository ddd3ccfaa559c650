package config

import "sort"

// Presets override the defaults for a named look.
var Presets = map[string]*Config{
	"classic": {
		Mode: "gradient", Motion: "orbit", Blobs: 5, Threshold: 1.0,
		CycleModes: true, CycleInterval: 5.0, Dt: 0.05,
	},
	"lava": {
		Mode: "solid", Motion: "bounce", Blobs: 6, Threshold: 1.0, Dt: 0.03,
		Radius: RangeConfig{Min: 3.0, Max: 5.0}, Speed: RangeConfig{Min: 2.0, Max: 5.0},
	},
	"swarm": {
		Mode: "gooey", Motion: "bounce", Blobs: 14, Threshold: 1.4, Dt: 0.05,
		Radius: RangeConfig{Min: 1.5, Max: 2.5}, Speed: RangeConfig{Min: 8.0, Max: 18.0},
	},
	"duo": {
		Mode: "contour", Motion: "bounce", Blobs: 2, Threshold: 1.0, Dt: 0.05,
		Radius: RangeConfig{Min: 4.0, Max: 5.0}, Speed: RangeConfig{Min: 6.0, Max: 10.0},
	},
}

// GetPreset returns a full config with the preset applied over the defaults,
// or nil when the name is unknown.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Mode = p.Mode
	cfg.Motion = p.Motion
	cfg.Blobs = p.Blobs
	cfg.Threshold = p.Threshold
	cfg.Dt = p.Dt
	cfg.CycleModes = p.CycleModes
	if p.CycleInterval > 0 {
		cfg.CycleInterval = p.CycleInterval
	}
	if p.Radius.Max > 0 {
		cfg.Radius = p.Radius
	}
	if p.Speed.Max > 0 {
		cfg.Speed = p.Speed
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
