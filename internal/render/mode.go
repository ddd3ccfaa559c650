package render

import (
	"fmt"
	"strings"
)

// Mode selects a glyph policy.
type Mode int

const (
	ModeGradient Mode = iota
	ModeContour
	ModeSolid
	ModeBlocks
	ModeGooey
)

var modeNames = [...]string{"gradient", "contour", "solid", "blocks", "gooey"}

// Modes lists every mode in cycling order.
func Modes() []Mode {
	return []Mode{ModeGradient, ModeContour, ModeSolid, ModeBlocks, ModeGooey}
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("mode(%d)", int(m))
	}
	return modeNames[m]
}

// Title is the display name used in status lines.
func (m Mode) Title() string {
	s := m.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

// Next returns the following mode, wrapping from Gooey to Gradient.
func (m Mode) Next() Mode {
	return Mode((int(m) + 1) % len(modeNames))
}

// ParseMode resolves a case-insensitive mode name.
func ParseMode(name string) (Mode, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, s := range modeNames {
		if s == n {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown render mode %q (available: %s)", name, strings.Join(modeNames[:], ", "))
}

// Cycler advances through the modes on a fixed period.
type Cycler struct {
	Interval float64
	Enabled  bool
	mode     Mode
	elapsed  float64
}

func NewCycler(start Mode, interval float64, enabled bool) *Cycler {
	return &Cycler{Interval: interval, Enabled: enabled, mode: start}
}

// Tick accumulates dt and reports the current mode and whether it changed.
func (c *Cycler) Tick(dt float64) (Mode, bool) {
	if !c.Enabled || c.Interval <= 0 || !(dt > 0) {
		return c.mode, false
	}
	c.elapsed += dt
	if c.elapsed <= c.Interval {
		return c.mode, false
	}
	c.elapsed = 0
	c.mode = c.mode.Next()
	return c.mode, true
}

// Set jumps to m and restarts the period.
func (c *Cycler) Set(m Mode) {
	c.mode = m
	c.elapsed = 0
}

func (c *Cycler) Mode() Mode { return c.mode }
