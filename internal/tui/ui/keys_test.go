package ui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func TestDefaultKeyMap(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name    string
		binding key.Binding
	}{
		{"Up", keys.Up},
		{"Down", keys.Down},
		{"Left", keys.Left},
		{"Right", keys.Right},
		{"NextTab", keys.NextTab},
		{"PrevTab", keys.PrevTab},
		{"Tab1", keys.Tab1},
		{"Tab2", keys.Tab2},
		{"Select", keys.Select},
		{"Back", keys.Back},
		{"Quit", keys.Quit},
		{"Help", keys.Help},
		{"New", keys.New},
		{"Edit", keys.Edit},
		{"Delete", keys.Delete},
		{"Search", keys.Search},
		{"Sort", keys.Sort},
		{"Bookmark", keys.Bookmark},
		{"Record", keys.Record},
		{"Save", keys.Save},
		{"SwitchField", keys.SwitchField},
		{"Confirm", keys.Confirm},
		{"Decline", keys.Decline},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if len(tt.binding.Keys()) == 0 {
				t.Errorf("expected %s binding to have keys", tt.name)
			}
			if tt.binding.Help().Key == "" {
				t.Errorf("expected %s binding to have help key", tt.name)
			}
			if tt.binding.Help().Desc == "" {
				t.Errorf("expected %s binding to have help description", tt.name)
			}
		})
	}
}

func TestKeyMatches(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name    string
		msg     tea.KeyMsg
		binding key.Binding
	}{
		{"k moves up", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")}, keys.Up},
		{"arrow moves down", tea.KeyMsg{Type: tea.KeyDown}, keys.Down},
		{"plus creates", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("+")}, keys.New},
		{"ctrl+s saves", tea.KeyMsg{Type: tea.KeyCtrlS}, keys.Save},
		{"esc declines", tea.KeyMsg{Type: tea.KeyEsc}, keys.Decline},
		{"Y confirms", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Y")}, keys.Confirm},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, keys.Quit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !key.Matches(tt.msg, tt.binding) {
				t.Errorf("expected %q to match binding %v", tt.msg.String(), tt.binding.Keys())
			}
		})
	}
}
