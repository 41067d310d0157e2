// Package viewer provides the Bubble Tea log viewer with a synchronized cursor.
package viewer

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/jb4plot/internal/channels"
	"github.com/verte-zerg/jb4plot/internal/chart"
	"github.com/verte-zerg/jb4plot/internal/cursor"
)

const (
	defaultWidth       = 80
	defaultPanelHeight = 6
	minPanelHeight     = 2
	maxPanelHeight     = 16
	chromeLines        = 4
	zoomStep           = 0.8
	panStep            = 0.25
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
)

// Options configures the viewer.
type Options struct {
	// FileName is shown in the title.
	FileName string

	// PanelHeight is the number of plot rows per panel. Zero sizes panels
	// to the terminal.
	PanelHeight int

	// Mouse enables all-motion mouse reporting.
	Mouse bool

	// Color enables lipgloss styling of plots and readouts.
	Color bool
}

// Model implements the Bubble Tea viewer UI.
type Model struct {
	times  []float64
	panels []channels.PanelData
	opts   Options

	bounds  chart.Window
	win     chart.Window
	minSpan float64
	ctrl    *cursor.Controller

	// last pointer position inside a plot, for re-snapping after zoom
	pointerCol int
	pointerIn  bool

	width  int
	height int
	help   help.Model
}

// NewModel constructs a viewer over an ascending time column and its panels.
func NewModel(times []float64, panels []channels.PanelData, opts Options) *Model {
	bounds := chart.FullWindow(times)
	return &Model{
		times:   times,
		panels:  panels,
		opts:    opts,
		bounds:  bounds,
		win:     bounds,
		minSpan: chart.MinSpan(times),
		ctrl:    cursor.NewController(times),
		help:    help.New(),
	}
}

// Cursor exposes the cursor controller.
func (m *Model) Cursor() *cursor.Controller {
	return m.ctrl
}

// Window returns the visible time range.
func (m *Model) Window() chart.Window {
	return m.win
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.BlurMsg:
		m.pointerIn = false
		m.ctrl.Leave()
		return m, nil
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	col, ok := m.hitTest(msg.X, msg.Y)
	if ok {
		anchor := m.win.TimeAt(col, m.plotWidth())
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.win = m.win.Zoom(zoomStep, anchor, m.bounds, m.minSpan)
		case tea.MouseButtonWheelDown:
			m.win = m.win.Zoom(1/zoomStep, anchor, m.bounds, m.minSpan)
		}
	}
	m.pointerCol, m.pointerIn = col, ok
	m.syncPointer()
}

// syncPointer maps the last pointer position to time and updates the cursor.
func (m *Model) syncPointer() {
	if !m.pointerIn {
		m.ctrl.Move(0, false)
		return
	}
	m.ctrl.Move(m.win.TimeAt(m.pointerCol, m.plotWidth()), true)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Hide):
		m.pointerIn = false
		m.ctrl.Leave()
	case key.Matches(msg, keys.Prev):
		m.step(-1)
	case key.Matches(msg, keys.Next):
		m.step(1)
	case key.Matches(msg, keys.ZoomIn):
		m.win = m.win.Zoom(zoomStep, m.focusTime(), m.bounds, m.minSpan)
	case key.Matches(msg, keys.ZoomOut):
		m.win = m.win.Zoom(1/zoomStep, m.focusTime(), m.bounds, m.minSpan)
	case key.Matches(msg, keys.PanLeft):
		m.win = m.win.Pan(-panStep, m.bounds)
	case key.Matches(msg, keys.PanRight):
		m.win = m.win.Pan(panStep, m.bounds)
	case key.Matches(msg, keys.Reset):
		m.win = m.bounds
	}
	return m, nil
}

func (m *Model) step(delta int) {
	if m.ctrl.State() != cursor.Shown {
		m.ctrl.Move(m.win.Start+m.win.Span()/2, true)
	} else {
		m.ctrl.Step(delta)
	}
	t, ok := m.ctrl.Time()
	if !ok || m.win.Contains(t) {
		return
	}
	center := m.win.Start + m.win.Span()/2
	if span := m.win.Span(); span > 0 {
		m.win = m.win.Pan((t-center)/span, m.bounds)
	}
}

// focusTime is the zoom anchor for keyboard zoom: the cursor when shown,
// otherwise the window centre.
func (m *Model) focusTime() float64 {
	if t, ok := m.ctrl.Time(); ok && m.win.Contains(t) {
		return t
	}
	return m.win.Start + m.win.Span()/2
}

func (m *Model) totalWidth() int {
	if m.width <= 0 {
		return defaultWidth
	}
	return m.width
}

func (m *Model) plotWidth() int {
	return chart.PlotWidthFor(m.totalWidth())
}

func (m *Model) panelHeight() int {
	if m.opts.PanelHeight > 0 {
		return m.opts.PanelHeight
	}
	n := len(m.panels)
	if m.height <= 0 || n == 0 {
		return defaultPanelHeight
	}
	h := (m.height-chromeLines)/n - 1
	return max(minPanelHeight, min(h, maxPanelHeight))
}

// hitTest maps a terminal cell to a plot column. ok is false outside every
// panel's plot rows.
func (m *Model) hitTest(x, y int) (int, bool) {
	gutter := chart.GutterWidth()
	width := m.plotWidth()
	if x < gutter || x >= gutter+width {
		return 0, false
	}
	ph := m.panelHeight()
	for i := range m.panels {
		top := 1 + i*(ph+1) + 1
		if y >= top && y < top+ph {
			return x - gutter, true
		}
	}
	return 0, false
}

// View implements tea.Model.
func (m *Model) View() string {
	width := m.totalWidth()
	plotWidth := m.plotWidth()
	ph := m.panelHeight()

	var cur *chart.Cursor
	if t, ok := m.ctrl.Time(); ok {
		cur = &chart.Cursor{Index: m.ctrl.Index(), Time: t}
	}

	lines := make([]string, 0, len(m.panels)*(ph+1)+chromeLines)
	lines = append(lines, titleStyle.Render("JB4 Log: "+m.opts.FileName))
	for _, p := range m.panels {
		lines = append(lines, chart.RenderPanel(p, m.times, m.win, cur, chart.Options{
			Width:  plotWidth,
			Height: ph,
			Color:  m.opts.Color,
		})...)
	}
	lines = append(lines, chart.RenderAxis(m.win, plotWidth))
	lines = append(lines, m.renderStatus())
	lines = append(lines, m.help.View(keys))

	return frame(lines, width, m.height)
}

func (m *Model) renderStatus() string {
	if t, ok := m.ctrl.Time(); ok {
		return statusStyle.Render(fmt.Sprintf("t = %.2f s   (index %d)", t, m.ctrl.Index()))
	}
	return hintStyle.Render(fmt.Sprintf("view %.2f-%.2f s  (%d samples)", m.win.Start, m.win.End, len(m.times)))
}

// Run starts the viewer and blocks until it exits.
func Run(m *Model) error {
	progOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithReportFocus()}
	if m.opts.Mouse {
		progOpts = append(progOpts, tea.WithMouseAllMotion())
	}
	if _, err := tea.NewProgram(m, progOpts...).Run(); err != nil {
		return fmt.Errorf("failed to run viewer: %w", err)
	}
	return nil
}
