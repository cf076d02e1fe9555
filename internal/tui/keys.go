package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/michaelscutari/dutop/internal/navigator"
)

// KeyMap binds keys to navigator commands. It implements help.KeyMap.
type KeyMap struct {
	Next     key.Binding
	Previous key.Binding
	First    key.Binding
	Last     key.Binding
	Enter    key.Binding
	Up       key.Binding
	Refresh  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next"),
		),
		Previous: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "previous"),
		),
		First: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g/home", "largest"),
		),
		Last: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G/end", "smallest"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter", "l", "right"),
			key.WithHelp("enter/l", "open"),
		),
		Up: key.NewBinding(
			key.WithKeys("backspace", "h", "left"),
			key.WithHelp("backspace/h", "parent"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rescan"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/esc", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Previous, k.Enter, k.Up, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Previous, k.First, k.Last},
		{k.Enter, k.Up, k.Refresh},
		{k.Help, k.Quit},
	}
}

// command resolves a key press to a navigator command.
func (k KeyMap) command(msg tea.KeyMsg) (navigator.Command, bool) {
	switch {
	case key.Matches(msg, k.Quit):
		return navigator.CmdQuit, true
	case key.Matches(msg, k.Next):
		return navigator.CmdNext, true
	case key.Matches(msg, k.Previous):
		return navigator.CmdPrevious, true
	case key.Matches(msg, k.First):
		return navigator.CmdFirst, true
	case key.Matches(msg, k.Last):
		return navigator.CmdLast, true
	case key.Matches(msg, k.Enter):
		return navigator.CmdEnter, true
	case key.Matches(msg, k.Up):
		return navigator.CmdUp, true
	case key.Matches(msg, k.Refresh):
		return navigator.CmdRefresh, true
	}
	return "", false
}
