package ui

// ThemeChangeRequestMsg is sent when a theme change is requested.
type ThemeChangeRequestMsg struct {
	ThemeName string
}

// ThemeChangedMsg is broadcast to all views when the theme changes.
type ThemeChangedMsg struct {
	ThemeName string
	Styles    Styles
}

// SortModeChangedMsg is broadcast when the list order changes, from either
// the journal view or the settings view.
type SortModeChangedMsg struct {
	Mode string
}
