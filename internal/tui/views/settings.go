package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xolan/journali/internal/service"
	"github.com/xolan/journali/internal/tui/ui"
	"github.com/xolan/journali/internal/view"
)

type setting int

const (
	settingTheme setting = iota
	settingSort
	settingConfirm
	settingCount
)

// SettingsModel shows the effective configuration and lets the user change
// the theme, the sort order and the discard confirmation policy.
type SettingsModel struct {
	services      *service.Services
	themeProvider *ui.ThemeProvider
	styles        ui.Styles
	keys          ui.KeyMap

	width  int
	height int
	cursor setting
	err    error
}

// settingsSavedMsg reports the result of writing the config file
type settingsSavedMsg struct {
	err error
}

// NewSettingsModel creates a new settings view model
func NewSettingsModel(services *service.Services, themeProvider *ui.ThemeProvider, styles ui.Styles, keys ui.KeyMap) SettingsModel {
	return SettingsModel{
		services:      services,
		themeProvider: themeProvider,
		styles:        styles,
		keys:          keys,
	}
}

// Init implements tea.Model
func (m SettingsModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m SettingsModel) Update(msg tea.Msg) (SettingsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < settingCount-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Select):
			return m, m.change(1)
		case key.Matches(msg, m.keys.Left):
			return m, m.change(-1)
		}

	case settingsSavedMsg:
		m.err = msg.err

	case ui.ThemeChangedMsg:
		m.styles = msg.Styles
	}
	return m, nil
}

// change moves the selected setting step values along.
func (m SettingsModel) change(step int) tea.Cmd {
	switch m.cursor {
	case settingTheme:
		name := m.themeProvider.Step(step)
		return func() tea.Msg { return ui.ThemeChangeRequestMsg{ThemeName: name} }

	case settingSort:
		mode := m.services.Config.SortMode().Next()
		services := m.services
		return func() tea.Msg {
			if err := services.Config.SetSortMode(mode); err != nil {
				return settingsSavedMsg{err: err}
			}
			return ui.SortModeChangedMsg{Mode: mode.String()}
		}

	case settingConfirm:
		services := m.services
		return func() tea.Msg {
			cfg := services.Config.Get()
			cfg.AlwaysConfirmDiscard = !cfg.AlwaysConfirmDiscard
			return settingsSavedMsg{err: services.Config.Update(cfg)}
		}
	}
	return nil
}

// View implements tea.Model
func (m SettingsModel) View() string {
	var b strings.Builder
	cfg := m.services.Config.Get()

	b.WriteString(m.styles.ViewTitle.Render("Settings"))
	b.WriteString("\n")

	b.WriteString(m.renderLine("Config file:", m.services.Config.GetPath()))
	status := m.styles.Warning.Render("Using defaults (no config file)")
	if m.services.Config.Exists() {
		status = m.styles.Success.Render("File exists")
	}
	b.WriteString(m.styles.Label.Render("Status:") + status + "\n")
	b.WriteString(m.renderLine("Storage:", m.services.Journal.Location()))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", min(50, max(m.width, 1))))
	b.WriteString("\n\n")

	confirm := "only with unsaved changes"
	if cfg.AlwaysConfirmDiscard {
		confirm = "always"
	}
	rows := []struct {
		label string
		value string
	}{
		settingTheme:   {"Theme", m.themeProvider.CurrentName()},
		settingSort:    {"Sort order", sortLabel(m.services.Config.SortMode())},
		settingConfirm: {"Confirm discard", confirm},
	}
	for i, row := range rows {
		line := m.styles.Label.Render(row.label) + "‹ " + m.styles.Value.Render(row.value) + " ›"
		if setting(i) == m.cursor {
			b.WriteString(m.styles.EntrySelected.Render("▸ " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(m.styles.Error.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.EmptyHint.Render("↑/↓ select  ←/→ change"))
	return b.String()
}

func sortLabel(mode view.SortMode) string {
	if mode == view.ByBookmark {
		return "bookmarked first"
	}
	return "newest first"
}

func (m SettingsModel) renderLine(label, value string) string {
	return m.styles.Label.Render(label) + m.styles.Value.Render(value) + "\n"
}

// SetSize sets the view dimensions
func (m *SettingsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}
