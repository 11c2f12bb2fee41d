// Package tui provides the interactive terminal session that drives an
// engine: stepping, pausing, resetting, and toggling the attraction
// and repulsion terms while rendering the cloud and the induced field.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/steinlab/internal/metrics"
	"github.com/san-kum/steinlab/internal/stein"
	"github.com/san-kum/steinlab/internal/viz"
)

const (
	canvasWidth     = 64
	canvasHeight    = 20
	historyCapacity = 600
	fieldGridSide   = 12
)

type TickMsg time.Time

type Model struct {
	eng     *stein.Engine
	sampler *stein.FieldSampler
	spread  *metrics.Spread

	running   bool
	showField bool
	err       error

	canvas  *viz.Canvas
	history []float64
	width   int
}

func NewModel(eng *stein.Engine) Model {
	return Model{
		eng:     eng,
		sampler: stein.NewFieldSampler(eng),
		spread:  metrics.NewSpread(),
		canvas:  viz.NewCanvas(canvasWidth, canvasHeight),
		history: make([]float64, 0, historyCapacity),
		width:   100,
	}
}

// Run starts the live session and blocks until the user quits.
func Run(eng *stein.Engine) error {
	p := tea.NewProgram(NewModel(eng), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case TickMsg:
		if !m.running {
			return m, nil
		}
		m.step()
		return m, tick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) step() {
	if err := m.eng.Step(); err != nil {
		m.err = err
		m.running = false
		return
	}
	m.err = nil
	m.observe()
}

func (m *Model) observe() {
	positions := m.eng.Positions()
	m.spread.Observe(positions, m.eng.Steps())
	if len(m.history) >= historyCapacity {
		m.history = m.history[1:]
	}
	m.history = append(m.history, m.spread.Value())
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cfg := m.eng.Config()

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.running = !m.running
		if m.running {
			return m, tick()
		}
	case "s":
		m.step()
	case "r":
		m.eng.Reset()
		m.err = nil
		m.history = m.history[:0]
		m.spread.Reset()
	case "a":
		cfg.Attraction = !cfg.Attraction
		m.configure(cfg)
	case "p":
		cfg.Repulsion = !cfg.Repulsion
		m.configure(cfg)
	case "f":
		m.showField = !m.showField
	case "v":
		if cfg.FieldScale == stein.FieldVelocity {
			cfg.FieldScale = stein.FieldDisplacement
		} else {
			cfg.FieldScale = stein.FieldVelocity
		}
		m.configure(cfg)
	case "+", "=":
		cfg.StepSize *= 1.25
		m.configure(cfg)
	case "-":
		cfg.StepSize /= 1.25
		m.configure(cfg)
	}
	return m, nil
}

func (m *Model) configure(cfg stein.Config) {
	if err := m.eng.Configure(cfg); err != nil {
		m.err = err
	}
}

func (m Model) View() string {
	positions := m.eng.Positions()
	bounds := viz.FitBounds(positions, 0.15)

	m.canvas.Clear()
	if m.showField {
		grid := stein.Grid(bounds.X0, bounds.X1, bounds.Y0, bounds.Y1, fieldGridSide, fieldGridSide)
		if m.eng.Dim() == 2 && grid != nil {
			if field, err := m.sampler.Field(grid); err == nil {
				m.canvas.Quiver(grid, field, bounds)
			}
		}
	}
	m.canvas.Scatter(positions, bounds)

	left := viz.CanvasStyle.Render(m.canvas.String())
	right := viz.StatsStyle.Render(m.statsView())

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	var graph string
	if len(m.history) > 2 {
		graph = viz.GraphStyle.Render(viz.History(m.history, 6, "particle spread"))
	}

	help := viz.HelpStyle.Render(
		"space run/pause · s step · r reset · a attraction · p repulsion · f field · v field scale · +/- step size · q quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		viz.HeaderStyle.Render("steinlab · particle transport"),
		body, graph, help)
}

func (m Model) statsView() string {
	cfg := m.eng.Config()

	status := viz.StatusPaused.Render("paused")
	if m.running {
		status = viz.StatusRunning.Render("running")
	}

	row := func(label, value string) string {
		return viz.LabelStyle.Render(label) + viz.ValueStyle.Render(value)
	}
	onOff := func(b bool) string {
		if b {
			return viz.ActiveStyle.Render("on")
		}
		return "off"
	}

	lines := []string{
		row("status", status),
		row("steps", fmt.Sprintf("%d", m.eng.Steps())),
		row("particles", fmt.Sprintf("%d × %dd", m.eng.Len(), m.eng.Dim())),
		row("step size", fmt.Sprintf("%.4f", cfg.StepSize)),
		row("attraction", onOff(cfg.Attraction)),
		row("repulsion", onOff(cfg.Repulsion)),
		row("field scale", cfg.FieldScale.String()),
		row("spread", fmt.Sprintf("%.4f", m.spread.Value())),
	}
	if m.err != nil {
		lines = append(lines, viz.StatusError.Render(m.err.Error()))
	}
	return strings.Join(lines, "\n")
}
