package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/journali/internal/blobstore"
	"github.com/xolan/journali/internal/config"
	"github.com/xolan/journali/internal/service"
	"github.com/xolan/journali/internal/tui/ui"
	"github.com/xolan/journali/internal/view"
)

type fakeRecorder struct{}

func (fakeRecorder) Start() error         { return nil }
func (fakeRecorder) Stop() (string, bool) { return "/tmp/rec_00000001.m4a", true }

func setupTestServices(t *testing.T) *service.Services {
	t.Helper()
	s, err := service.NewServicesWithBackend(context.Background(), blobstore.NewMemory(),
		filepath.Join(t.TempDir(), "config.toml"), config.DefaultConfig(),
		service.WithRecorder(fakeRecorder{}),
	)
	if err != nil {
		t.Fatalf("NewServicesWithBackend() error = %v", err)
	}
	return s
}

func newModel(t *testing.T) Model {
	t.Helper()
	m, _ := New(context.Background(), setupTestServices(t)).Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m.(Model)
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNew(t *testing.T) {
	model := New(context.Background(), setupTestServices(t))

	if model.activeTab != TabJournal {
		t.Errorf("expected initial tab to be Journal, got %d", model.activeTab)
	}
	if model.services == nil {
		t.Error("expected services to be set")
	}
	if model.showHelp {
		t.Error("expected showHelp to be false initially")
	}
	if model.themeProvider.CurrentName() != ui.DefaultTheme {
		t.Errorf("expected default theme, got %q", model.themeProvider.CurrentName())
	}
}

func TestView_Loading(t *testing.T) {
	model := New(context.Background(), setupTestServices(t))
	if model.View() != "Loading..." {
		t.Errorf("expected loading view before the first resize, got %q", model.View())
	}
}

func TestUpdate_WindowSizeMsg(t *testing.T) {
	m := newModel(t)

	if m.width != 100 || m.height != 40 {
		t.Errorf("expected 100x40, got %dx%d", m.width, m.height)
	}
	view := m.View()
	for _, want := range []string{"Journal", "Settings", "Begin Your Journal", "quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view:\n%s", want, view)
		}
	}
}

func TestUpdate_QuitKey(t *testing.T) {
	m := newModel(t)

	_, cmd := update(m, runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestUpdate_TabSwitching(t *testing.T) {
	m := newModel(t)

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.activeTab != TabSettings {
		t.Errorf("expected Settings tab after Tab, got %d", m.activeTab)
	}
	if !strings.Contains(m.View(), "Config file:") {
		t.Errorf("expected settings view:\n%s", m.View())
	}

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.activeTab != TabJournal {
		t.Errorf("expected Journal tab after Shift+Tab, got %d", m.activeTab)
	}

	m, _ = update(m, runes("2"))
	if m.activeTab != TabSettings {
		t.Errorf("expected Settings tab after 2, got %d", m.activeTab)
	}
	m, _ = update(m, runes("1"))
	if m.activeTab != TabJournal {
		t.Errorf("expected Journal tab after 1, got %d", m.activeTab)
	}
}

func TestUpdate_HelpToggle(t *testing.T) {
	m := newModel(t)

	m, _ = update(m, runes("?"))
	if !m.showHelp {
		t.Fatal("expected help to be shown")
	}
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Errorf("expected help overlay:\n%s", m.View())
	}
	m, _ = update(m, runes("?"))
	if m.showHelp {
		t.Error("expected help to be hidden")
	}
}

func TestUpdate_GlobalKeysBlockedWhileEditing(t *testing.T) {
	m := newModel(t)

	m, _ = update(m, runes("+"))
	if !m.journalView.IsInputMode() {
		t.Fatal("expected editor to open")
	}

	m, cmd := update(m, runes("q"))
	if cmd != nil {
		if _, ok := cmd().(tea.QuitMsg); ok {
			t.Fatal("q should be typed into the editor, not quit")
		}
	}
	m, _ = update(m, runes("2"))
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.activeTab != TabJournal {
		t.Error("tab keys should not switch views while editing")
	}
	if !strings.Contains(m.View(), "switch field") {
		t.Errorf("expected editor hints in status bar:\n%s", m.View())
	}
}

func TestUpdate_ThemeChangeRequest(t *testing.T) {
	m := newModel(t)
	next := m.themeProvider.Step(1)

	m, cmd := update(m, ui.ThemeChangeRequestMsg{ThemeName: next})
	if m.themeProvider.CurrentName() != next {
		t.Errorf("expected theme %q, got %q", next, m.themeProvider.CurrentName())
	}
	if cmd == nil {
		t.Fatal("expected a command to save the theme")
	}
	m, _ = update(m, cmd())
	if m.err != nil {
		t.Fatalf("saving theme failed: %v", m.err)
	}
	if m.services.Config.Get().Theme != next {
		t.Errorf("expected theme persisted, got %q", m.services.Config.Get().Theme)
	}
}

func TestUpdate_SettingsThemeRoundTrip(t *testing.T) {
	m := newModel(t)
	next := m.themeProvider.Step(1)

	m, _ = update(m, runes("2"))
	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyRight})
	if cmd == nil {
		t.Fatal("expected theme change request")
	}
	m, _ = update(m, cmd())

	if m.themeProvider.CurrentName() != next {
		t.Errorf("expected theme %q, got %q", next, m.themeProvider.CurrentName())
	}
}

func TestUpdate_SortChangeReachesBothViews(t *testing.T) {
	m := newModel(t)

	m, cmd := update(m, runes("s"))
	if m.journalView.SortMode() != view.ByBookmark {
		t.Fatalf("expected journal sorted by bookmark, got %v", m.journalView.SortMode())
	}
	m, _ = update(m, cmd())

	m, _ = update(m, runes("2"))
	if !strings.Contains(m.View(), "bookmarked first") {
		t.Errorf("settings should show the new sort order:\n%s", m.View())
	}
}

func TestUpdate_CommandResultRoutedAfterTabSwitch(t *testing.T) {
	m := newModel(t)

	m, _ = update(m, runes("+"))
	m, _ = update(m, runes("Morning Walk"))
	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd == nil {
		t.Fatal("expected save command")
	}
	msg := cmd()

	// The save result arrives while another message is being processed
	// on the settings tab.
	m.activeTab = TabSettings
	m, _ = update(m, msg)
	m.activeTab = TabJournal

	if m.journalView.IsInputMode() {
		t.Error("editor should close once the save result is delivered")
	}
	if !strings.Contains(m.View(), "Morning Walk") {
		t.Errorf("expected saved entry in list:\n%s", m.View())
	}
}

func TestUpdate_RecordingMarkerInTabBar(t *testing.T) {
	m := newModel(t)

	m, cmd := update(m, runes("r"))
	m, _ = update(m, cmd())
	m, _ = update(m, runes("2"))

	if !strings.Contains(m.renderTabs(), "REC") {
		t.Errorf("expected recording marker in tab bar:\n%s", m.renderTabs())
	}
	if !m.services.Audio.Recording() {
		t.Error("expected recorder to be running")
	}
}
