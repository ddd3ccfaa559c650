// Package viz is the interactive terminal driver for the metaball animation.
//
// [Model] is a Bubble Tea model that advances a [sim.Animator] on every tick,
// colours the frame with the active [Theme] and shows a status panel with a
// coverage history chart.
//
// # Key Bindings
//
//	m     - Next render mode
//	c     - Toggle automatic mode cycling
//	+/-   - Raise/lower the threshold (spring eased)
//	Space - Pause/Resume
//	R     - Reset the scene
//	T     - Cycle colour themes
//	G     - Toggle GIF recording
//	?     - Show help
//	Q     - Quit
//
// # Recording
//
// Recordings are written to [DefaultRecordPath] in the current directory
// when G is pressed again or the program quits.
package viz

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/metaballs/internal/config"
	"github.com/san-kum/metaballs/internal/sim"
	"go.uber.org/zap"
)

// Run takes over the terminal until the user quits or ctx is cancelled.
func Run(ctx context.Context, anim *sim.Animator, cfg *config.Config, log *zap.Logger) error {
	p := tea.NewProgram(NewModel(anim, cfg, log), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
