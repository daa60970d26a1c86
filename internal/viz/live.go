package viz

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/gazesim/internal/heatmap"
	"github.com/san-kum/gazesim/internal/saccade"
)

const (
	viewWidth       = 80
	viewHeight      = 24
	historyCapacity = 240
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(40)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	errorStyle  = lipgloss.NewStyle().Bold(true)
)

type TickMsg time.Time

type keyMap struct {
	Pause key.Binding
	Step  key.Binding
	Goals key.Binding
	Theme key.Binding
	Quit  key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Step, k.Goals, k.Theme, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var keys = keyMap{
	Pause: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pause")),
	Step:  key.NewBinding(key.WithKeys("."), key.WithHelp(".", "step")),
	Goals: key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "goals")),
	Theme: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
	Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// Model steps a gaze engine at a fixed frame rate and draws the field
// with the tracked points on top.
type Model struct {
	engine    *saccade.Engine
	provider  heatmap.Provider
	clock     *saccade.ManualClock
	frame     time.Duration
	title     string
	tick      int
	field     *heatmap.Field
	points    []saccade.Point
	goals     []saccade.Point
	salience  []float64
	running   bool
	showGoals bool
	help      help.Model
	err       error
}

// NewModel wires an engine to a provider. clock must be the clock the
// engine was built with; the model advances it one frame per step.
func NewModel(engine *saccade.Engine, provider heatmap.Provider, clock *saccade.ManualClock, fps int, title string) Model {
	if fps <= 0 {
		fps = 30
	}
	return Model{
		engine:    engine,
		provider:  provider,
		clock:     clock,
		frame:     time.Second / time.Duration(fps),
		title:     title,
		salience:  make([]float64, 0, historyCapacity),
		running:   true,
		showGoals: true,
		help:      help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return m.nextTick()
}

func (m Model) nextTick() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Pause):
			m.running = !m.running
		case key.Matches(msg, keys.Step):
			if !m.running {
				m.step()
			}
		case key.Matches(msg, keys.Goals):
			m.showGoals = !m.showGoals
		case key.Matches(msg, keys.Theme):
			NextTheme()
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.nextTick()
	}
	return m, nil
}

// step advances the engine by one frame.
func (m *Model) step() {
	if m.err != nil {
		return
	}

	field := m.provider.Next(m.tick)
	points, err := m.engine.Update(field)
	if err != nil {
		m.err = err
		m.running = false
		return
	}

	m.field = field
	m.points = points
	m.goals = m.engine.Goals()
	m.tick++
	m.clock.Advance(m.frame)

	m.salience = append(m.salience, meanSalience(field, points))
	if len(m.salience) > historyCapacity {
		m.salience = m.salience[1:]
	}
}

func meanSalience(f *heatmap.Field, points []saccade.Point) float64 {
	lo, hi := f.Range()
	if hi == lo || len(points) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range points {
		sum += (f.At(p.Row, p.Col) - lo) / (hi - lo)
	}
	return sum / float64(len(points))
}

// View renders the TUI interface.
func (m Model) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.title)) + "\n")

	status := "RUNNING"
	if m.err != nil {
		status = errorStyle.Foreground(CurrentTheme.Error).Render("STOPPED: " + m.err.Error())
	} else if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n")

	if m.field == nil {
		s.WriteString("waiting for first frame...\n")
		return s.String()
	}

	frame := Frame{Field: m.field, Points: m.points, Width: viewWidth - 44, Height: viewHeight - 6}
	if m.showGoals {
		frame.Goals = m.goals
	}
	canvas := canvasStyle.Render(frame.Render())

	var stats strings.Builder
	stats.WriteString(row("policy", m.engine.Policy().String()))
	stats.WriteString(row("tick", fmt.Sprintf("%d", m.tick)))
	stats.WriteString(row("time", fmt.Sprintf("%.2fs", m.clock.Now().Seconds())))
	stats.WriteString(row("field", fmt.Sprintf("%dx%d", m.field.Rows(), m.field.Cols())))
	for i, p := range m.points {
		if i >= 6 {
			stats.WriteString(row("", fmt.Sprintf("... %d more", len(m.points)-i)))
			break
		}
		dot := lipgloss.NewStyle().Foreground(CurrentTheme.PointColor(i)).Render(string(pointRune))
		stats.WriteString(row(fmt.Sprintf("%s p%d", dot, i), p.String()))
	}
	if len(m.salience) > 1 {
		stats.WriteString("\n" + PlotSeries(m.salience, "salience under points", 30, 5))
	}

	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, canvas, statsStyle.Render(stats.String())))
	s.WriteString(helpStyle.Render(m.help.View(keys)))
	return s.String()
}

func row(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value) + "\n"
}
