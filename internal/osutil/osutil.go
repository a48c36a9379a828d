// Package osutil wraps the OS lookups the app depends on so tests can swap
// them out.
package osutil

import (
	"os"

	"golang.org/x/term"
)

// PathProvider resolves and creates the per-user config directory.
type PathProvider interface {
	UserConfigDir() (string, error)
	MkdirAll(path string, perm os.FileMode) error
}

// DefaultPathProvider uses real OS functions.
type DefaultPathProvider struct{}

func (DefaultPathProvider) UserConfigDir() (string, error) {
	return os.UserConfigDir()
}

func (DefaultPathProvider) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// Provider is the package-level path provider instance.
// In production, this is DefaultPathProvider. Tests can replace it.
var Provider PathProvider = DefaultPathProvider{}

// SetProvider sets a custom provider (for testing).
func SetProvider(p PathProvider) {
	Provider = p
}

// ResetProvider resets to the default provider.
func ResetProvider() {
	Provider = DefaultPathProvider{}
}

type fdHolder interface {
	Fd() uintptr
}

// IsTerminal reports whether v is a file descriptor attached to a terminal.
// Buffers and pipes report false.
func IsTerminal(v any) bool {
	f, ok := v.(fdHolder)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// DefaultWidth is used when the terminal width cannot be determined.
const DefaultWidth = 80

// TerminalWidth returns the column count of the terminal behind v, or
// DefaultWidth if v is not a terminal.
func TerminalWidth(v any) int {
	f, ok := v.(fdHolder)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return DefaultWidth
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return DefaultWidth
	}
	return w
}
