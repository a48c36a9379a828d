package ui

import (
	"github.com/charmbracelet/lipgloss"
	tint "github.com/lrstanley/bubbletint"
)

// Styles contains all the styles used in the TUI
type Styles struct {
	// Base styles
	App lipgloss.Style

	// Tab bar
	TabBar      lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style

	ViewTitle lipgloss.Style

	// Status bar
	StatusBar  lipgloss.Style
	StatusKey  lipgloss.Style
	StatusHelp lipgloss.Style

	// Entry list
	EntrySelected lipgloss.Style
	EntryNormal   lipgloss.Style
	EntryIndex    lipgloss.Style
	EntryDate     lipgloss.Style
	EntryTitle    lipgloss.Style
	EntryPreview  lipgloss.Style
	Bookmark      lipgloss.Style
	Audio         lipgloss.Style
	Recording     lipgloss.Style

	// Empty journal
	EmptyTitle lipgloss.Style
	EmptyHint  lipgloss.Style

	// Key/value rows
	Label lipgloss.Style
	Value lipgloss.Style

	// Editor
	Input        lipgloss.Style
	InputFocused lipgloss.Style

	// Dialog
	Dialog      lipgloss.Style
	DialogTitle lipgloss.Style

	// Errors and warnings
	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style
}

// palette is the set of colors a Styles is derived from.
type palette struct {
	primary   lipgloss.TerminalColor
	secondary lipgloss.TerminalColor
	accent    lipgloss.TerminalColor
	muted     lipgloss.TerminalColor
	success   lipgloss.TerminalColor
	warning   lipgloss.TerminalColor
	err       lipgloss.TerminalColor
	fg        lipgloss.TerminalColor
	bg        lipgloss.TerminalColor
}

// DefaultStyles returns the TUI styles for a plain 256-color terminal.
func DefaultStyles() Styles {
	return newStyles(palette{
		primary:   lipgloss.Color("99"),  // Purple
		secondary: lipgloss.Color("39"),  // Cyan
		accent:    lipgloss.Color("220"), // Gold, for bookmarks
		muted:     lipgloss.Color("240"), // Gray
		success:   lipgloss.Color("82"),
		warning:   lipgloss.Color("214"),
		err:       lipgloss.Color("196"),
		fg:        lipgloss.Color("252"),
		bg:        lipgloss.Color("236"),
	})
}

// NewStylesFromRegistry creates styles from the registry's current tint.
// Color mapping:
// - Primary: Purple (titles, active tab, focused input)
// - Secondary: Cyan (dates, keys)
// - Accent: BrightYellow (bookmark stars)
// - Muted: BrightBlack (labels, previews, inactive elements)
// - Success/Warning/Error: Green/Yellow/Red
func NewStylesFromRegistry(r *tint.Registry) Styles {
	return newStyles(palette{
		primary:   r.Purple(),
		secondary: r.Cyan(),
		accent:    r.BrightYellow(),
		muted:     r.BrightBlack(),
		success:   r.Green(),
		warning:   r.Yellow(),
		err:       r.Red(),
		fg:        r.Fg(),
		bg:        r.Bg(),
	})
}

func newStyles(p palette) Styles {
	return Styles{
		App: lipgloss.NewStyle().Padding(1, 2),

		TabBar: lipgloss.NewStyle().
			MarginBottom(1).
			BorderBottom(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(p.muted),
		TabActive: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true).
			Padding(0, 2),
		TabInactive: lipgloss.NewStyle().
			Foreground(p.muted).
			Padding(0, 2),

		ViewTitle: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true).
			MarginBottom(1),

		StatusBar: lipgloss.NewStyle().
			Foreground(p.fg).
			Background(p.bg).
			Padding(0, 1),
		StatusKey: lipgloss.NewStyle().
			Foreground(p.secondary).
			Bold(true),
		StatusHelp: lipgloss.NewStyle().
			Foreground(p.muted),

		EntrySelected: lipgloss.NewStyle().
			Background(p.muted).
			Bold(true),
		EntryNormal: lipgloss.NewStyle(),
		EntryIndex: lipgloss.NewStyle().
			Foreground(p.muted),
		EntryDate: lipgloss.NewStyle().
			Foreground(p.secondary),
		EntryTitle: lipgloss.NewStyle().
			Foreground(p.fg).
			Bold(true),
		EntryPreview: lipgloss.NewStyle().
			Foreground(p.muted),
		Bookmark: lipgloss.NewStyle().
			Foreground(p.accent),
		Audio: lipgloss.NewStyle().
			Foreground(p.secondary),
		Recording: lipgloss.NewStyle().
			Foreground(p.err).
			Bold(true),

		EmptyTitle: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true).
			MarginTop(1),
		EmptyHint: lipgloss.NewStyle().
			Foreground(p.muted),

		Label: lipgloss.NewStyle().
			Foreground(p.muted).
			Width(18),
		Value: lipgloss.NewStyle().
			Foreground(p.fg).
			Bold(true),

		Input: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.muted).
			Padding(0, 1),
		InputFocused: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.primary).
			Padding(0, 1),

		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.primary).
			Padding(1, 2).
			Width(50),
		DialogTitle: lipgloss.NewStyle().
			Foreground(p.primary).
			Bold(true).
			MarginBottom(1),

		Error: lipgloss.NewStyle().
			Foreground(p.err),
		Warning: lipgloss.NewStyle().
			Foreground(p.warning),
		Success: lipgloss.NewStyle().
			Foreground(p.success),
	}
}
