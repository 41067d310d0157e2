// Package picker provides the terminal file picker used when no log path is given.
package picker

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrCancelled is returned when the user closes the picker without choosing a file.
var ErrCancelled = errors.New("no file selected")

// AllowedTypes lists the extensions the picker offers.
var AllowedTypes = []string{".csv", ".CSV"}

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	dirStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

var cancelKey = key.NewBinding(
	key.WithKeys("esc", "q", "ctrl+c"),
	key.WithHelp("esc/q", "cancel"),
)

// Model wraps bubbles/filepicker with cancel handling.
type Model struct {
	fp        filepicker.Model
	selected  string
	cancelled bool
	notice    string
}

// New builds a picker rooted at dir.
func New(dir string) Model {
	fp := filepicker.New()
	fp.AllowedTypes = AllowedTypes
	fp.CurrentDirectory = dir
	fp.AutoHeight = true
	fp.ShowPermissions = false
	return Model{fp: fp}
}

// Selected returns the chosen path, or "" if none was chosen.
func (m Model) Selected() string {
	return m.selected
}

// Cancelled reports whether the user dismissed the picker.
func (m Model) Cancelled() bool {
	return m.cancelled
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.fp.Init()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, cancelKey) {
		m.cancelled = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.fp, cmd = m.fp.Update(msg)

	if ok, path := m.fp.DidSelectFile(msg); ok {
		m.selected = path
		return m, tea.Quit
	}
	if ok, path := m.fp.DidSelectDisabledFile(msg); ok {
		m.notice = fmt.Sprintf("%s is not a CSV log", filepath.Base(path))
		return m, cmd
	}
	if _, ok := msg.(tea.KeyMsg); ok {
		m.notice = ""
	}
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	var b []string
	b = append(b, titleStyle.Render("Select JB4 Log CSV"))
	b = append(b, dirStyle.Render(m.fp.CurrentDirectory))
	b = append(b, m.fp.View())
	if m.notice != "" {
		b = append(b, noticeStyle.Render(m.notice))
	}
	b = append(b, helpStyle.Render("enter: open  h/backspace: up  esc/q: cancel"))
	return lipgloss.JoinVertical(lipgloss.Left, b...)
}

// Run shows the picker and returns the chosen path or ErrCancelled.
func Run(dir string) (string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("failed to open directory: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("failed to open directory: %s is not a directory", dir)
	}
	final, err := tea.NewProgram(New(dir), tea.WithAltScreen()).Run()
	if err != nil {
		return "", fmt.Errorf("failed to run file picker: %w", err)
	}
	m, ok := final.(Model)
	if !ok || m.selected == "" {
		return "", ErrCancelled
	}
	return m.selected, nil
}
