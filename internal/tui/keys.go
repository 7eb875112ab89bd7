package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
	Open   key.Binding
	Back   key.Binding

	Search     key.Binding
	SearchNext key.Binding // cursor moves while an input has focus
	SearchPrev key.Binding
	Filter     key.Binding
	Cancel     key.Binding
	Confirm    key.Binding

	White      key.Binding
	Blue       key.Binding
	Black      key.Binding
	Red        key.Binding
	Green      key.Binding
	Colorless  key.Binding
	ClearColor key.Binding

	Home       key.Binding
	Commanders key.Binding
	Cards      key.Binding

	Flip    key.Binding
	Yank    key.Binding
	Export  key.Binding
	Browser key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default vim-style key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("home", "go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "go to bottom"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter", "l", "right"),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("backspace", "h", "left"),
			key.WithHelp("h", "back"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		SearchNext: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓", "next result"),
		),
		SearchPrev: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "previous result"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "filter"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		White: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "white"),
		),
		Blue: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "blue"),
		),
		Black: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "black"),
		),
		Red: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "red"),
		),
		Green: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "green"),
		),
		Colorless: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "colorless"),
		),
		ClearColor: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear colors"),
		),
		Home: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "home"),
		),
		Commanders: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "commanders"),
		),
		Cards: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "all cards"),
		),
		Flip: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "flip"),
		),
		Yank: key.NewBinding(
			key.WithKeys("Y"),
			key.WithHelp("Y", "yank"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export"),
		),
		Browser: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open in browser"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
