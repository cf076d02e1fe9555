package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"

	"github.com/michaelscutari/dutop/internal/navigator"
	"github.com/michaelscutari/dutop/internal/pathutil"

	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case navigatorReadyMsg:
		m.nav = msg.nav
		m.state = msg.state
		m.busy = false
		return m, nil

	case transitionDoneMsg:
		m.state = msg.state
		m.busy = false
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	cmd, ok := m.keys.command(msg)
	if !ok {
		return m, nil
	}

	if cmd == navigator.CmdQuit {
		// A running scan still owns the navigator; just leave.
		if !m.busy && m.nav != nil {
			m.state = m.nav.Apply(cmd)
		}
		m.state.Terminated = true
		return m, tea.Quit
	}

	if m.busy || m.nav == nil {
		return m, nil
	}

	if !cmd.Loads() {
		m.state = m.nav.Apply(cmd)
		return m, nil
	}

	target, loads := m.loadTarget(cmd)
	if !loads {
		return m, nil
	}
	m.busy = true
	m.pending = target
	return m, tea.Batch(m.spinner.Tick, m.transition(cmd))
}

// loadTarget reports which directory a loading command would scan, and
// false when the command is a no-op for the current state.
func (m *Model) loadTarget(cmd navigator.Command) (string, bool) {
	switch cmd {
	case navigator.CmdEnter:
		sel, ok := m.state.Selected()
		if !ok || !sel.IsDir {
			return "", false
		}
		return sel.Path, true
	case navigator.CmdUp:
		return pathutil.Parent(m.state.Path)
	default:
		return m.state.Path, true
	}
}
