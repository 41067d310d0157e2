package viewer

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit     key.Binding
	Hide     key.Binding
	Prev     key.Binding
	Next     key.Binding
	ZoomIn   key.Binding
	ZoomOut  key.Binding
	PanLeft  key.Binding
	PanRight key.Binding
	Reset    key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Hide: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "hide cursor"),
	),
	Prev: key.NewBinding(
		key.WithKeys("left"),
		key.WithHelp("←", "prev sample"),
	),
	Next: key.NewBinding(
		key.WithKeys("right"),
		key.WithHelp("→", "next sample"),
	),
	ZoomIn: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "zoom in"),
	),
	ZoomOut: key.NewBinding(
		key.WithKeys("-", "_"),
		key.WithHelp("-", "zoom out"),
	),
	PanLeft: key.NewBinding(
		key.WithKeys("h"),
		key.WithHelp("h", "pan left"),
	),
	PanRight: key.NewBinding(
		key.WithKeys("l"),
		key.WithHelp("l", "pan right"),
	),
	Reset: key.NewBinding(
		key.WithKeys("0"),
		key.WithHelp("0", "reset zoom"),
	),
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.ZoomIn, k.ZoomOut, k.PanLeft, k.PanRight, k.Reset, k.Hide, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Hide},
		{k.ZoomIn, k.ZoomOut, k.Reset},
		{k.PanLeft, k.PanRight, k.Quit},
	}
}
