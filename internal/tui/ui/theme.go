package ui

import (
	"sort"

	tint "github.com/lrstanley/bubbletint"
)

// DefaultTheme is the theme used when none is configured or the configured
// one is unknown.
const DefaultTheme = "dracula"

// ThemeProvider manages TUI themes using bubbletint
type ThemeProvider struct {
	registry *tint.Registry
	names    []string
}

// NewThemeProvider creates a ThemeProvider starting on initialTheme, or on
// DefaultTheme if initialTheme is empty or unknown.
func NewThemeProvider(initialTheme string) *ThemeProvider {
	allTints := tint.DefaultTints()

	var defaultTint tint.Tint
	for _, t := range allTints {
		if t.ID() == DefaultTheme {
			defaultTint = t
			break
		}
	}
	if defaultTint == nil && len(allTints) > 0 {
		defaultTint = allTints[0]
	}

	registry := tint.NewRegistry(defaultTint, allTints...)
	if initialTheme != "" {
		registry.SetTintID(initialTheme)
	}

	names := registry.TintIDs()
	sort.Strings(names)

	return &ThemeProvider{registry: registry, names: names}
}

// SetTheme sets the current theme by name.
// Returns true if the theme was found and set, false otherwise.
func (tp *ThemeProvider) SetTheme(name string) bool {
	return tp.registry.SetTintID(name)
}

// CurrentName returns the name of the current theme.
func (tp *ThemeProvider) CurrentName() string {
	return tp.registry.ID()
}

// CurrentDisplayName returns the display name of the current theme.
func (tp *ThemeProvider) CurrentDisplayName() string {
	return tp.registry.DisplayName()
}

// AvailableThemes returns a sorted list of all available theme names.
func (tp *ThemeProvider) AvailableThemes() []string {
	out := make([]string, len(tp.names))
	copy(out, tp.names)
	return out
}

// Step returns the theme step places away from the current one in the
// sorted list, wrapping at both ends. The current theme is not changed.
func (tp *ThemeProvider) Step(step int) string {
	if len(tp.names) == 0 {
		return tp.CurrentName()
	}
	i := sort.SearchStrings(tp.names, tp.CurrentName())
	n := len(tp.names)
	return tp.names[((i+step)%n+n)%n]
}

// Styles returns a Styles struct configured for the current theme.
func (tp *ThemeProvider) Styles() Styles {
	return NewStylesFromRegistry(tp.registry)
}
