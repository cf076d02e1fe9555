package navigator

import (
	"fmt"
	"strings"
)

// Command is a user request mapped 1:1 onto a transition.
type Command string

const (
	CmdNext     Command = "next"
	CmdPrevious Command = "previous"
	CmdFirst    Command = "first"
	CmdLast     Command = "last"
	CmdEnter    Command = "enter"
	CmdUp       Command = "up"
	CmdRefresh  Command = "refresh"
	CmdQuit     Command = "quit"
)

// ParseCommand maps a command name to a Command.
func ParseCommand(name string) (Command, error) {
	cmd := Command(strings.ToLower(strings.TrimSpace(name)))
	switch cmd {
	case CmdNext, CmdPrevious, CmdFirst, CmdLast, CmdEnter, CmdUp, CmdRefresh, CmdQuit:
		return cmd, nil
	default:
		return "", fmt.Errorf("unknown command %q", name)
	}
}

// Loads reports whether the command triggers a scan when it applies.
func (c Command) Loads() bool {
	switch c {
	case CmdEnter, CmdUp, CmdRefresh:
		return true
	default:
		return false
	}
}

// Apply runs the transition for cmd and returns the resulting state.
// Unknown commands leave the state unchanged.
func (n *Navigator) Apply(cmd Command) State {
	switch cmd {
	case CmdNext:
		n.MoveNext()
	case CmdPrevious:
		n.MovePrevious()
	case CmdFirst:
		n.MoveFirst()
	case CmdLast:
		n.MoveLast()
	case CmdEnter:
		n.Descend()
	case CmdUp:
		n.Ascend()
	case CmdRefresh:
		n.Reload()
	case CmdQuit:
		n.Quit()
	}
	return n.State()
}
