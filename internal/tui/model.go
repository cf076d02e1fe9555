package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/go-logr/logr"

	"github.com/michaelscutari/dutop/internal/navigator"

	tea "github.com/charmbracelet/bubbletea"
)

// Model holds the TUI state. The navigator is only touched by one
// command at a time; View reads the last State it produced.
type Model struct {
	scanner  navigator.Scanner
	rootPath string
	log      logr.Logger

	nav     *navigator.Navigator
	state   navigator.State
	busy    bool
	pending string

	keys    KeyMap
	help    help.Model
	spinner spinner.Model

	width  int
	height int
}

// NewModel creates a browser that starts at path.
func NewModel(scanner navigator.Scanner, path string, log logr.Logger) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	return &Model{
		scanner:  scanner,
		rootPath: path,
		log:      log.WithName("tui"),
		busy:     true,
		pending:  path,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		spinner:  sp,
		state:    navigator.State{Path: path, Cursor: navigator.NoCursor},
	}
}

// State returns the last navigator snapshot shown.
func (m *Model) State() navigator.State {
	return m.state
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.start)
}

type navigatorReadyMsg struct {
	nav   *navigator.Navigator
	state navigator.State
}

type transitionDoneMsg struct {
	state navigator.State
}

func (m *Model) start() tea.Msg {
	nav := navigator.New(m.scanner, m.rootPath, navigator.WithLogger(m.log))
	return navigatorReadyMsg{nav: nav, state: nav.State()}
}

// transition applies a loading command off the UI goroutine.
func (m *Model) transition(cmd navigator.Command) tea.Cmd {
	nav := m.nav
	return func() tea.Msg {
		return transitionDoneMsg{state: nav.Apply(cmd)}
	}
}
