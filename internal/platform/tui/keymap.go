package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/cam-crush/internal/core"
)

// KeyMap defines the game's key bindings.
type KeyMap struct {
	Forward  key.Binding
	Backward key.Binding
	Jump     key.Binding
	Up       key.Binding
	Down     key.Binding
	Confirm  key.Binding
	Back     key.Binding
	Pause    key.Binding
	Quit     key.Binding
	Exit     key.Binding
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Forward: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "push"),
		),
		Backward: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "back off"),
		),
		Jump: key.NewBinding(
			key.WithKeys(" ", "w", "up"),
			key.WithHelp("space/w", "jump"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "next year"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "prev year"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit run"),
		),
		Exit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "exit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Forward, k.Jump, k.Pause, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Forward, k.Backward, k.Jump},
		{k.Pause, k.Quit, k.Exit},
	}
}

// homeHelp is the help for the home screen.
type homeHelp struct{ k KeyMap }

func (h homeHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.k.Up, h.k.Down, h.k.Confirm, h.k.Quit}
}

func (h homeHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}

// MapKey translates a key message to a game action.
// Up doubles as jump: the session only reads the action meaningful in the
// current scene, so both are reported.
func (k KeyMap) MapKey(msg tea.KeyMsg) []core.Action {
	var actions []core.Action
	switch {
	case key.Matches(msg, k.Forward):
		actions = append(actions, core.ActionForward)
	case key.Matches(msg, k.Backward):
		actions = append(actions, core.ActionBackward)
	case key.Matches(msg, k.Confirm):
		actions = append(actions, core.ActionConfirm)
	case key.Matches(msg, k.Back):
		actions = append(actions, core.ActionBack)
	case key.Matches(msg, k.Pause):
		actions = append(actions, core.ActionPause)
	case key.Matches(msg, k.Quit):
		actions = append(actions, core.ActionQuit)
	}
	if key.Matches(msg, k.Jump) {
		actions = append(actions, core.ActionJump)
	}
	if key.Matches(msg, k.Up) {
		actions = append(actions, core.ActionUp)
	}
	if key.Matches(msg, k.Down) {
		actions = append(actions, core.ActionDown)
	}
	return actions
}
