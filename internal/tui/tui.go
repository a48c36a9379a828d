// Package tui provides the Terminal User Interface for the journali application.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xolan/journali/internal/service"
	"github.com/xolan/journali/internal/tui/ui"
	"github.com/xolan/journali/internal/tui/views"
)

// Tab represents a view tab
type Tab int

const (
	TabJournal Tab = iota
	TabSettings
)

var tabNames = []string{"Journal", "Settings"}

// themeSavedMsg reports a failed attempt to persist the theme
type themeSavedMsg struct {
	err error
}

// Model is the root TUI model
type Model struct {
	ctx      context.Context
	services *service.Services

	// UI state
	activeTab Tab
	width     int
	height    int
	showHelp  bool
	err       error

	// View models
	journalView  views.JournalModel
	settingsView views.SettingsModel

	// Theme and styles
	themeProvider *ui.ThemeProvider
	styles        ui.Styles
	keys          ui.KeyMap
}

// New creates a new TUI model
func New(ctx context.Context, services *service.Services) Model {
	themeProvider := ui.NewThemeProvider(services.Config.Get().Theme)
	styles := themeProvider.Styles()
	keys := ui.DefaultKeyMap()

	return Model{
		ctx:           ctx,
		services:      services,
		activeTab:     TabJournal,
		themeProvider: themeProvider,
		styles:        styles,
		keys:          keys,
		journalView:   views.NewJournalModel(ctx, services, styles, keys),
		settingsView:  views.NewSettingsModel(services, themeProvider, styles, keys),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return m.journalView.Init()
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// While the journal view owns the keyboard (editor, search, delete
		// prompt) no global key applies.
		if m.activeTab != TabJournal || !m.journalView.IsInputMode() {
			switch {
			case key.Matches(msg, m.keys.Quit):
				return m, tea.Quit

			case key.Matches(msg, m.keys.Help):
				m.showHelp = !m.showHelp
				return m, nil

			case key.Matches(msg, m.keys.NextTab), key.Matches(msg, m.keys.PrevTab):
				m.activeTab = Tab((int(m.activeTab) + 1) % len(tabNames))
				return m, nil

			case key.Matches(msg, m.keys.Tab1):
				m.activeTab = TabJournal
				return m, nil

			case key.Matches(msg, m.keys.Tab2):
				m.activeTab = TabSettings
				return m, nil
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		contentHeight := m.height - 4 // tabs and status bar
		m.journalView.SetSize(m.width, contentHeight)
		m.settingsView.SetSize(m.width, contentHeight)
		return m, nil

	case ui.ThemeChangeRequestMsg:
		m.themeProvider.SetTheme(msg.ThemeName)
		newTheme := m.themeProvider.CurrentName()
		m.styles = m.themeProvider.Styles()

		themeMsg := ui.ThemeChangedMsg{
			ThemeName: newTheme,
			Styles:    m.styles,
		}
		m.journalView, _ = m.journalView.Update(themeMsg)
		m.settingsView, _ = m.settingsView.Update(themeMsg)

		return m, m.saveThemeConfig(newTheme)

	case themeSavedMsg:
		m.err = msg.err
		return m, nil

	case ui.SortModeChangedMsg:
		var journalCmd, settingsCmd tea.Cmd
		m.journalView, journalCmd = m.journalView.Update(msg)
		m.settingsView, settingsCmd = m.settingsView.Update(msg)
		return m, tea.Batch(journalCmd, settingsCmd)

	case tea.MouseMsg:
	default:
		// Results of commands started by a view go back to that view even
		// when the user has switched tabs in the meantime.
		var journalCmd, settingsCmd tea.Cmd
		m.journalView, journalCmd = m.journalView.Update(msg)
		m.settingsView, settingsCmd = m.settingsView.Update(msg)
		return m, tea.Batch(journalCmd, settingsCmd)
	}

	switch m.activeTab {
	case TabJournal:
		m.journalView, cmd = m.journalView.Update(msg)
	case TabSettings:
		m.settingsView, cmd = m.settingsView.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	switch m.activeTab {
	case TabJournal:
		b.WriteString(m.journalView.View())
	case TabSettings:
		b.WriteString(m.settingsView.View())
	}

	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(m.styles.Error.Render("Theme not saved: " + m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(m.renderStatusBar())

	if m.showHelp {
		return m.renderHelpOverlay()
	}

	return m.styles.App.Render(b.String())
}

func (m Model) renderTabs() string {
	var tabs []string
	for i, name := range tabNames {
		if Tab(i) == m.activeTab {
			tabs = append(tabs, m.styles.TabActive.Render(name))
		} else {
			tabs = append(tabs, m.styles.TabInactive.Render(name))
		}
	}
	if m.journalView.IsRecording() {
		tabs = append(tabs, m.styles.Recording.Render("● REC"))
	}
	return m.styles.TabBar.Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

// renderStatusBar renders the key hints for the current mode
func (m Model) renderStatusBar() string {
	var parts []string

	if m.activeTab == TabJournal && m.journalView.IsInputMode() {
		parts = append(parts, m.renderKeyHelp("Tab", "switch field"))
		parts = append(parts, m.renderKeyHelp("Ctrl+S", "save"))
		parts = append(parts, m.renderKeyHelp("Esc", "cancel"))
	} else {
		switch m.activeTab {
		case TabJournal:
			parts = append(parts, m.renderKeyHelp("+", "new"))
			parts = append(parts, m.renderKeyHelp("e", "edit"))
			parts = append(parts, m.renderKeyHelp("d", "delete"))
			parts = append(parts, m.renderKeyHelp("b", "bookmark"))
			parts = append(parts, m.renderKeyHelp("/", "search"))
			parts = append(parts, m.renderKeyHelp("s", "sort"))
			parts = append(parts, m.renderKeyHelp("r", "record"))
		case TabSettings:
			parts = append(parts, m.renderKeyHelp("←/→", "change"))
		}

		parts = append(parts, m.renderKeyHelp("1-2", "views"))
		parts = append(parts, m.renderKeyHelp("?", "help"))
		parts = append(parts, m.renderKeyHelp("q", "quit"))
	}

	content := strings.Join(parts, "  ")
	if padding := m.width - lipgloss.Width(content); padding > 0 {
		content += strings.Repeat(" ", padding)
	}
	return m.styles.StatusBar.Render(content)
}

func (m Model) renderKeyHelp(key, desc string) string {
	return fmt.Sprintf("%s %s",
		m.styles.StatusKey.Render(key),
		m.styles.StatusHelp.Render(desc))
}

// saveThemeConfig persists the theme name
func (m Model) saveThemeConfig(themeName string) tea.Cmd {
	services := m.services
	return func() tea.Msg {
		if err := services.Config.SetTheme(themeName); err != nil {
			return themeSavedMsg{err: err}
		}
		return themeSavedMsg{}
	}
}

func (m Model) renderHelpOverlay() string {
	var help strings.Builder

	help.WriteString(m.styles.ViewTitle.Render("Keyboard Shortcuts"))
	help.WriteString("\n\n")

	help.WriteString(m.styles.Label.Render("Global:"))
	help.WriteString("\n")
	help.WriteString("  Tab/1-2    Switch views\n")
	help.WriteString("  ?          Toggle help\n")
	help.WriteString("  q          Quit\n")
	help.WriteString("\n")

	switch m.activeTab {
	case TabJournal:
		help.WriteString(m.styles.Label.Render("Journal:"))
		help.WriteString("\n")
		help.WriteString("  j/k        Navigate up/down\n")
		help.WriteString("  +/n        New entry\n")
		help.WriteString("  Enter/e    Open entry\n")
		help.WriteString("  d          Delete entry\n")
		help.WriteString("  b          Toggle bookmark\n")
		help.WriteString("  /          Search, Esc clears\n")
		help.WriteString("  s          Switch sort order\n")
		help.WriteString("  r          Start/stop voice note\n")
		help.WriteString("\n")
		help.WriteString(m.styles.Label.Render("Editor:"))
		help.WriteString("\n")
		help.WriteString("  Tab        Switch field\n")
		help.WriteString("  Ctrl+S     Save\n")
		help.WriteString("  Esc        Close\n")
	case TabSettings:
		help.WriteString(m.styles.Label.Render("Settings:"))
		help.WriteString("\n")
		help.WriteString("  j/k        Select setting\n")
		help.WriteString("  h/l        Change value\n")
	}

	help.WriteString("\n")
	help.WriteString(m.styles.EmptyHint.Render("Press ? to close"))

	return m.styles.App.Render(m.styles.Dialog.Render(help.String()))
}

// Run starts the TUI application. A voice note still being captured when
// the program exits is saved.
func Run(ctx context.Context, services *service.Services) error {
	p := tea.NewProgram(New(ctx, services), tea.WithAltScreen(), tea.WithContext(ctx))
	_, runErr := p.Run()

	if services.Audio.Recording() {
		_, err := services.Audio.Stop(context.WithoutCancel(ctx))
		if err != nil && !errors.Is(err, service.ErrNothingRecorded) && runErr == nil {
			return err
		}
	}
	return runErr
}
