package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/metaballs/internal/config"
	"github.com/san-kum/metaballs/internal/export"
	"github.com/san-kum/metaballs/internal/render"
	"github.com/san-kum/metaballs/internal/sim"
	"go.uber.org/zap"
)

const (
	historyCapacity = 120
	panelWidth      = 34
	footerLines     = 1
	thresholdStep   = 0.1
	minThreshold    = 0.1
)

// DefaultRecordPath is where the g key saves recordings.
const DefaultRecordPath = "metaballs.gif"

type TickMsg time.Time

// Model drives an Animator from bubbletea ticks.
type Model struct {
	anim     *sim.Animator
	cfg      *config.Config
	log      *zap.Logger
	theme    Theme
	painter  *Painter
	width    int
	height   int
	frame    *render.Frame
	running  bool
	showHelp bool

	spring    harmonica.Spring
	tau       float64
	tauVel    float64
	tauTarget float64

	coverage []float64
	lastTick time.Time
	fps      float64

	recorder   *export.Recorder
	recording  bool
	RecordPath string
	notice     string
}

// NewModel prepares a model sized to the configured grid until the first
// window size message arrives.
func NewModel(anim *sim.Animator, cfg *config.Config, log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}
	theme := GetTheme(cfg.Theme)
	tau := anim.Scene().Threshold()
	return Model{
		anim:       anim,
		cfg:        cfg,
		log:        log,
		theme:      theme,
		painter:    NewPainter(theme.Ramp),
		width:      cfg.Width + panelWidth,
		height:     cfg.Height + footerLines,
		running:    true,
		spring:     harmonica.NewSpring(harmonica.FPS(cfg.FPS), 6.0, 1.0),
		tau:        tau,
		tauTarget:  tau,
		coverage:   make([]float64, 0, historyCapacity),
		recorder:   export.NewRecorder(theme.Ramp, 100/cfg.FPS),
		RecordPath: DefaultRecordPath,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.cfg.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input and advances the animation on each tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.stopRecording()
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.anim.Reset()
			m.tauTarget = m.cfg.Threshold
			m.coverage = m.coverage[:0]
		case "m":
			mode := m.anim.NextMode()
			m.notice = "mode " + mode.Title()
		case "c":
			cy := m.anim.Cycler()
			cy.Enabled = !cy.Enabled
			if cy.Interval <= 0 {
				cy.Interval = config.DefaultCycleInterval
			}
			m.notice = fmt.Sprintf("cycling %v", onOff(cy.Enabled))
		case "+", "=":
			m.setTarget(m.tauTarget + thresholdStep)
		case "-", "_":
			m.setTarget(m.tauTarget - thresholdStep)
		case "t":
			m.theme = NextTheme(m.theme.Name)
			m.painter = NewPainter(m.theme.Ramp)
			m.notice = "theme " + m.theme.Name
		case "g":
			if m.recording {
				m.stopRecording()
			} else {
				m.recording = true
				m.recorder = export.NewRecorder(m.theme.Ramp, 100/m.cfg.FPS)
				m.notice = "recording"
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case TickMsg:
		now := time.Time(msg)
		if !m.lastTick.IsZero() {
			if el := now.Sub(m.lastTick).Seconds(); el > 0 {
				m.fps = 0.9*m.fps + 0.1/el
			}
		}
		m.lastTick = now
		m.advance()
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) setTarget(tau float64) {
	if tau < minThreshold {
		tau = minThreshold
	}
	m.tauTarget = tau
	m.log.Info("threshold changed", zap.Float64("threshold", tau))
}

// advance eases τ toward its target, then steps or re-renders the scene.
func (m *Model) advance() {
	m.tau, m.tauVel = m.spring.Update(m.tau, m.tauVel, m.tauTarget)
	if m.tau < minThreshold {
		m.tau, m.tauVel = minThreshold, 0
	}
	m.anim.Scene().SetThreshold(m.tau)

	rows, cols := m.gridSize()
	if m.running {
		m.frame = m.anim.Step(m.cfg.Dt, rows, cols)
	} else {
		m.frame = m.anim.Render(rows, cols)
	}

	if g := m.anim.LastGrid(); g != nil {
		if len(m.coverage) == historyCapacity {
			copy(m.coverage, m.coverage[1:])
			m.coverage = m.coverage[:historyCapacity-1]
		}
		m.coverage = append(m.coverage, g.InsideFraction(m.anim.Scene().Threshold()))
	}
	if m.recording {
		m.recorder.Capture(m.frame)
	}
}

func (m *Model) stopRecording() {
	if !m.recording {
		return
	}
	m.recording = false
	if err := m.recorder.Save(m.RecordPath); err != nil {
		m.log.Error("save recording", zap.Error(err))
		m.notice = "recording failed: " + err.Error()
		return
	}
	m.log.Info("recording saved", zap.String("path", m.RecordPath), zap.Int("frames", m.recorder.Len()))
	m.notice = "saved " + m.RecordPath
	m.recorder.Reset()
}

// gridSize is the frame area left after the panel and footer.
func (m Model) gridSize() (rows, cols int) {
	rows = m.height - footerLines
	cols = m.width - panelWidth
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	return rows, cols
}

// StatusLine summarizes the animation in one line.
func (m Model) StatusLine() string {
	return fmt.Sprintf("%s | frame %d | %.1f fps | τ %.2f | %d blobs",
		m.anim.Mode().Title(), m.anim.Frames(), m.fps, m.anim.Scene().Threshold(), m.anim.Scene().Len())
}

func (m Model) panel() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Primary)
	value := lipgloss.NewStyle().Foreground(m.theme.Text)

	var s strings.Builder
	s.WriteString(title.Render(strings.ToUpper(m.anim.Mode().String())) + "\n")
	switch {
	case m.recording:
		s.WriteString(StatusRecording.Render(fmt.Sprintf("● REC %d", m.recorder.Len())) + "\n\n")
	case m.running:
		s.WriteString(StatusRunning.Render("RUNNING") + "\n\n")
	default:
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	}

	cy := m.anim.Cycler()
	s.WriteString(MetricLabel.Render("Time") + value.Render(fmt.Sprintf("%.2fs", m.anim.Scene().Time())) + "\n")
	s.WriteString(MetricLabel.Render("Threshold") + value.Render(fmt.Sprintf("%.2f → %.2f", m.tau, m.tauTarget)) + "\n")
	s.WriteString(MetricLabel.Render("Motion") + value.Render(m.anim.Scene().Motion().Name()) + "\n")
	s.WriteString(MetricLabel.Render("Cycle") + value.Render(onOff(cy.Enabled)) + "\n")
	s.WriteString(MetricLabel.Render("Theme") + value.Render(m.theme.Name) + "\n")

	cov := 0.0
	if n := len(m.coverage); n > 0 {
		cov = m.coverage[n-1]
	}
	s.WriteString(MetricLabel.Render("Coverage") + ProgressBar(cov, 12) + value.Render(fmt.Sprintf(" %3.0f%%", cov*100)) + "\n")
	if len(m.coverage) > 1 {
		chart := asciigraph.Plot(m.coverage, asciigraph.Height(4), asciigraph.Width(panelWidth-10), asciigraph.Caption("inside"))
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(m.theme.Accent).Render(chart) + "\n")
	}

	if m.notice != "" {
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(m.theme.Muted).Render(m.notice) + "\n")
	}
	if m.showHelp {
		s.WriteString(KeyHint.Render("\nm mode    c cycle\n+/- τ     space pause\nr reset   t theme\ng record  q quit"))
	} else {
		s.WriteString(KeyHint.Render("\n? help"))
	}
	return panelStyle.Width(panelWidth - 1).Render(s.String())
}

// View draws the coloured frame beside the panel, with the status line below.
func (m Model) View() string {
	canvas := ""
	if m.frame != nil {
		canvas = m.painter.Paint(m.frame)
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, canvas, m.panel())
	return body + "\n" + lipgloss.NewStyle().Foreground(m.theme.Muted).Render(m.StatusLine())
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
