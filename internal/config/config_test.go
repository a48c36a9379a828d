package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mitchellh/go-homedir"

	"github.com/xolan/journali/internal/osutil"
)

// Helper to create a temporary config file
func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "config.toml")
	// Always write the file, even if content is empty
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create temp config file: %v", err)
	}
	return tmpFile
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.SortMode != "date" {
		t.Errorf("DefaultConfig().SortMode = %q, expected %q", cfg.SortMode, "date")
	}
	if cfg.Storage.Backend != "file" {
		t.Errorf("DefaultConfig().Storage.Backend = %q, expected %q", cfg.Storage.Backend, "file")
	}
	if cfg.Storage.Backups != 3 {
		t.Errorf("DefaultConfig().Storage.Backups = %d, expected 3", cfg.Storage.Backups)
	}
	if cfg.AlwaysConfirmDiscard {
		t.Error("DefaultConfig().AlwaysConfirmDiscard should be false")
	}
	if len(cfg.Audio.Command) == 0 {
		t.Error("DefaultConfig().Audio.Command should not be empty")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig() should validate, got: %v", err)
	}
}

func TestLoad_ValidConfig(t *testing.T) {
	tests := []struct {
		name            string
		configContent   string
		expectedSort    string
		expectedBackend string
		expectedConfirm bool
	}{
		{
			name: "all top level fields set",
			configContent: `sort_mode = "bookmark"
theme = "nord"
always_confirm_discard = true`,
			expectedSort:    "bookmark",
			expectedBackend: "file",
			expectedConfirm: true,
		},
		{
			name: "sqlite backend",
			configContent: `[storage]
backend = "sqlite"
path = "/tmp/journal.db"`,
			expectedSort:    "date",
			expectedBackend: "sqlite",
		},
		{
			name: "mixed case normalized",
			configContent: `sort_mode = "Bookmark"
[storage]
backend = "DISKV"`,
			expectedSort:    "bookmark",
			expectedBackend: "diskv",
		},
		{
			name: "s3 backend with bucket",
			configContent: `[storage]
backend = "s3"
[storage.s3]
bucket = "journals"
endpoint = "http://localhost:9000"`,
			expectedSort:    "date",
			expectedBackend: "s3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpFile := createTempConfigFile(t, tt.configContent)

			cfg, err := Load(tmpFile)
			if err != nil {
				t.Fatalf("Load() returned unexpected error: %v", err)
			}

			if cfg.SortMode != tt.expectedSort {
				t.Errorf("SortMode = %q, expected %q", cfg.SortMode, tt.expectedSort)
			}
			if cfg.Storage.Backend != tt.expectedBackend {
				t.Errorf("Storage.Backend = %q, expected %q", cfg.Storage.Backend, tt.expectedBackend)
			}
			if cfg.AlwaysConfirmDiscard != tt.expectedConfirm {
				t.Errorf("AlwaysConfirmDiscard = %v, expected %v", cfg.AlwaysConfirmDiscard, tt.expectedConfirm)
			}
		})
	}
}

func TestLoad_PartialConfigKeepsDefaults(t *testing.T) {
	tmpFile := createTempConfigFile(t, `[log]
level = "debug"`)

	cfg, err := Load(tmpFile)
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, expected %q", cfg.Log.Level, "debug")
	}
	if cfg.Storage.Backups != 3 {
		t.Errorf("Storage.Backups = %d, expected default 3", cfg.Storage.Backups)
	}
	if cfg.Storage.S3.Key != "journali/entries.json" {
		t.Errorf("Storage.S3.Key = %q, expected default", cfg.Storage.S3.Key)
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := Load(createTempConfigFile(t, ""))
	if err != nil {
		t.Fatalf("Load() returned unexpected error for empty file: %v", err)
	}
	if cfg.SortMode != "date" {
		t.Errorf("SortMode = %q, expected default", cfg.SortMode)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		errContains string
	}{
		{"bad toml", `sort_mode = `, "failed to parse config file"},
		{"bad sort mode", `sort_mode = "title"`, "invalid sort_mode"},
		{"bad backend", "[storage]\nbackend = \"floppy\"", "invalid storage.backend"},
		{"negative backups", "[storage]\nbackups = -1", "invalid storage.backups"},
		{"s3 without bucket", "[storage]\nbackend = \"s3\"", "storage.s3.bucket is required"},
		{"bad log level", "[log]\nlevel = \"loud\"", "invalid log.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(createTempConfigFile(t, tt.content))
			if err == nil {
				t.Fatal("Load() should return error")
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("error should contain %q, got: %v", tt.errContains, err)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Error("Load() should return error for missing file")
	}
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadOrDefault() returned unexpected error: %v", err)
	}
	if cfg.SortMode != "date" || cfg.Storage.Backend != "file" {
		t.Errorf("LoadOrDefault() should return defaults, got %+v", cfg)
	}
}

func TestLoadOrDefault_ExistingInvalidFile(t *testing.T) {
	_, err := LoadOrDefault(createTempConfigFile(t, `sort_mode = "sideways"`))
	if err == nil {
		t.Error("LoadOrDefault() should return error for invalid config file")
	}
}

func TestLoadOrDefault_StatError(t *testing.T) {
	tmpDir := t.TempDir()
	parentDir := filepath.Join(tmpDir, "parent")
	if err := os.Mkdir(parentDir, 0755); err != nil {
		t.Fatalf("Failed to create parent directory: %v", err)
	}
	configPath := filepath.Join(parentDir, "config.toml")

	if err := os.Chmod(parentDir, 0000); err != nil {
		t.Skipf("Cannot change directory permissions: %v", err)
	}
	defer func() { _ = os.Chmod(parentDir, 0755) }()

	if _, err := os.Stat(configPath); err == nil || os.IsNotExist(err) {
		t.Skip("running with permissions that bypass directory mode")
	}

	if _, err := LoadOrDefault(configPath); err == nil {
		t.Error("LoadOrDefault() should return error when os.Stat fails with permission error")
	}
}

func TestNormalize_ExpandsHome(t *testing.T) {
	home, err := homedir.Dir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	cfg := DefaultConfig()
	cfg.Storage.Path = "~/journal/entries.json"
	cfg.Audio.Dir = " ~/journal/rec "
	cfg.Log.File = "/var/log/journali.log"
	cfg.Normalize()

	if cfg.Storage.Path != filepath.Join(home, "journal", "entries.json") {
		t.Errorf("Storage.Path = %q, expected expansion under %q", cfg.Storage.Path, home)
	}
	if cfg.Audio.Dir != filepath.Join(home, "journal", "rec") {
		t.Errorf("Audio.Dir = %q, expected expansion under %q", cfg.Audio.Dir, home)
	}
	if cfg.Log.File != "/var/log/journali.log" {
		t.Errorf("absolute path should be untouched, got %q", cfg.Log.File)
	}
}

func TestNormalize_EmptyEnums(t *testing.T) {
	cfg := Config{}
	cfg.Normalize()
	if cfg.SortMode != "date" || cfg.Storage.Backend != "file" {
		t.Errorf("empty enums should normalize to defaults, got %q / %q", cfg.SortMode, cfg.Storage.Backend)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("normalized zero config should validate: %v", err)
	}
}

func TestResolvePaths(t *testing.T) {
	tests := []struct {
		backend string
		want    string
	}{
		{"file", "entries.json"},
		{"diskv", "entries.d"},
		{"sqlite", "journali.db"},
		{"memory", "entries.json"},
	}
	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Storage.Backend = tt.backend
			cfg.ResolvePaths("/cfg")

			if cfg.Storage.Path != filepath.Join("/cfg", tt.want) {
				t.Errorf("Storage.Path = %q, expected %q", cfg.Storage.Path, filepath.Join("/cfg", tt.want))
			}
			if cfg.Audio.Dir != filepath.Join("/cfg", "recordings") {
				t.Errorf("Audio.Dir = %q", cfg.Audio.Dir)
			}
			if cfg.Log.File != filepath.Join("/cfg", LogFile) {
				t.Errorf("Log.File = %q", cfg.Log.File)
			}
		})
	}

	cfg := DefaultConfig()
	cfg.Storage.Path = "/elsewhere/j.json"
	cfg.ResolvePaths("/cfg")
	if cfg.Storage.Path != "/elsewhere/j.json" {
		t.Errorf("explicit path should be kept, got %q", cfg.Storage.Path)
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", ConfigFile)

	cfg := DefaultConfig()
	cfg.SortMode = "bookmark"
	cfg.Theme = "nord"
	cfg.Storage.Backend = "sqlite"
	cfg.Storage.Path = "/data/j.db"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save() returned unexpected error: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("Save() should not leave a temp file behind")
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() after Save() returned error: %v", err)
	}
	if loaded.SortMode != "bookmark" || loaded.Theme != "nord" || loaded.Storage.Path != "/data/j.db" {
		t.Errorf("round trip mismatch: %+v", loaded)
	}
}

func TestGenerateSampleConfig(t *testing.T) {
	sample := GenerateSampleConfig()

	for _, want := range []string{"sort_mode", "[storage]", "[storage.s3]", "[audio]", "[log]", "{file}"} {
		if !strings.Contains(sample, want) {
			t.Errorf("sample config should contain %q", want)
		}
	}

	cfg, err := Load(createTempConfigFile(t, sample))
	if err != nil {
		t.Fatalf("sample config should load cleanly: %v", err)
	}
	if cfg.SortMode != "date" {
		t.Errorf("sample SortMode = %q, expected %q", cfg.SortMode, "date")
	}
}

func TestGetConfigPath(t *testing.T) {
	tmpDir := t.TempDir()
	osutil.SetProvider(&mockPathProvider{
		userConfigDirFn: func() (string, error) { return tmpDir, nil },
		mkdirAllFn:      os.MkdirAll,
	})
	defer osutil.ResetProvider()

	path, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() returned error: %v", err)
	}
	if path != filepath.Join(tmpDir, AppName, ConfigFile) {
		t.Errorf("GetConfigPath() = %q", path)
	}
	if info, err := os.Stat(filepath.Join(tmpDir, AppName)); err != nil || !info.IsDir() {
		t.Error("GetConfigPath() should create the app directory")
	}
}

func TestGetConfigPath_UserConfigDirError(t *testing.T) {
	defer osutil.ResetProvider()
	osutil.SetProvider(&mockPathProvider{
		userConfigDirFn: func() (string, error) { return "", os.ErrNotExist },
	})

	if _, err := GetConfigPath(); err == nil {
		t.Error("GetConfigPath() should return error when UserConfigDir fails")
	}
}

func TestGetConfigPath_MkdirAllError(t *testing.T) {
	defer osutil.ResetProvider()
	tmpDir := t.TempDir()
	osutil.SetProvider(&mockPathProvider{
		userConfigDirFn: func() (string, error) { return tmpDir, nil },
		mkdirAllFn: func(path string, perm os.FileMode) error {
			return os.ErrPermission
		},
	})

	if _, err := GetConfigPath(); err == nil {
		t.Error("GetConfigPath() should return error when MkdirAll fails")
	}
}

func TestConstants(t *testing.T) {
	if AppName != "journali" {
		t.Errorf("AppName = %q, expected %q", AppName, "journali")
	}
	if ConfigFile != "config.toml" {
		t.Errorf("ConfigFile = %q, expected %q", ConfigFile, "config.toml")
	}
}

// mockPathProvider is a test helper for mocking osutil.PathProvider
type mockPathProvider struct {
	userConfigDirFn func() (string, error)
	mkdirAllFn      func(path string, perm os.FileMode) error
}

func (m *mockPathProvider) UserConfigDir() (string, error) {
	if m.userConfigDirFn != nil {
		return m.userConfigDirFn()
	}
	return "", nil
}

func (m *mockPathProvider) MkdirAll(path string, perm os.FileMode) error {
	if m.mkdirAllFn != nil {
		return m.mkdirAllFn(path, perm)
	}
	return nil
}
