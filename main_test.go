package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/xolan/journali/internal/osutil"
)

// MockPathProvider for testing config validation failure
type MockPathProvider struct {
	UserConfigDirFn func() (string, error)
	MkdirAllFn      func(path string, perm os.FileMode) error
}

func (m *MockPathProvider) UserConfigDir() (string, error) {
	if m.UserConfigDirFn != nil {
		return m.UserConfigDirFn()
	}
	return "", nil
}

func (m *MockPathProvider) MkdirAll(path string, perm os.FileMode) error {
	if m.MkdirAllFn != nil {
		return m.MkdirAllFn(path, perm)
	}
	return nil
}

// useTempConfigDir points the config lookup at a fresh directory.
func useTempConfigDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	osutil.SetProvider(&MockPathProvider{
		UserConfigDirFn: func() (string, error) { return dir, nil },
		MkdirAllFn:      os.MkdirAll,
	})
	t.Cleanup(osutil.ResetProvider)
	return dir
}

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	original := os.Args
	os.Args = append([]string{"journali"}, args...)
	t.Cleanup(func() { os.Args = original })
}

func TestRun_Success(t *testing.T) {
	useTempConfigDir(t)
	withArgs(t, "--version")

	if code := run(); code != 0 {
		t.Errorf("Expected exit code 0, got %d", code)
	}
}

func TestRun_ConfigPathFailure(t *testing.T) {
	osutil.SetProvider(&MockPathProvider{
		UserConfigDirFn: func() (string, error) {
			return "", errors.New("permission denied")
		},
	})
	defer osutil.ResetProvider()

	if code := run(); code != 1 {
		t.Errorf("Expected exit code 1 for config path failure, got %d", code)
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	dir := useTempConfigDir(t)
	path := filepath.Join(dir, "journali", "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(`sort_mode = "alphabetical"`), 0644); err != nil {
		t.Fatal(err)
	}
	withArgs(t, "--version")

	if code := run(); code != 1 {
		t.Errorf("Expected exit code 1 for invalid config, got %d", code)
	}
}

func TestRun_ExecuteError(t *testing.T) {
	useTempConfigDir(t)
	withArgs(t, "--unknownflag")

	if code := run(); code != 1 {
		t.Errorf("Expected exit code 1 for Execute error, got %d", code)
	}
}

func TestMain_CallsExitWithRunResult(t *testing.T) {
	useTempConfigDir(t)
	withArgs(t, "--version")

	originalExit := exitFunc
	defer func() { exitFunc = originalExit }()

	capturedCode := -1
	exitFunc = func(code int) {
		capturedCode = code
	}

	main()

	if capturedCode != 0 {
		t.Errorf("Expected exit code 0, got %d", capturedCode)
	}
}
