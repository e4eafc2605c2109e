package tui

import (
	"slices"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/cam-crush/internal/core"
)

func TestMapKey(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want []core.Action
	}{
		{"right", keyMsg(tea.KeyRight), []core.Action{core.ActionForward}},
		{"d", runes("d"), []core.Action{core.ActionForward}},
		{"left", keyMsg(tea.KeyLeft), []core.Action{core.ActionBackward}},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, []core.Action{core.ActionJump}},
		{"w", runes("w"), []core.Action{core.ActionJump}},
		{"up", keyMsg(tea.KeyUp), []core.Action{core.ActionJump, core.ActionUp}},
		{"down", keyMsg(tea.KeyDown), []core.Action{core.ActionDown}},
		{"enter", keyMsg(tea.KeyEnter), []core.Action{core.ActionConfirm}},
		{"esc", keyMsg(tea.KeyEsc), []core.Action{core.ActionBack}},
		{"p", runes("p"), []core.Action{core.ActionPause}},
		{"q", runes("q"), []core.Action{core.ActionQuit}},
		{"unbound", runes("z"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := keys.MapKey(tt.msg)
			if !slices.Equal(got, tt.want) {
				t.Errorf("MapKey(%q) = %v, expected %v", tt.msg.String(), got, tt.want)
			}
		})
	}
}

func TestTickCmd(t *testing.T) {
	if tickCmd(0) == nil || tickCmd(30) == nil {
		t.Error("tickCmd should always return a command")
	}
}
