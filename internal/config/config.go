package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/go-homedir"

	"github.com/xolan/journali/internal/logging"
	"github.com/xolan/journali/internal/osutil"
)

const (
	// AppName is the application name used for config directory
	AppName = "journali"
	// ConfigFile is the name of the TOML configuration file
	ConfigFile = "config.toml"
	// LogFile is the default log file name inside the config directory
	LogFile = "journali.log"
)

// Storage backends understood by the storage section.
var validBackends = []string{"file", "diskv", "sqlite", "s3", "memory"}

var validSortModes = []string{"date", "bookmark"}

// Config represents the application configuration
type Config struct {
	// SortMode is the stored list ordering: "date" or "bookmark"
	SortMode string `toml:"sort_mode"`
	// Theme is the bubbletint id used by the TUI
	Theme string `toml:"theme"`
	// AlwaysConfirmDiscard asks before leaving the editor even with no changes
	AlwaysConfirmDiscard bool `toml:"always_confirm_discard"`

	Storage StorageConfig `toml:"storage"`
	Audio   AudioConfig   `toml:"audio"`
	Log     LogConfig     `toml:"log"`
}

// StorageConfig selects where the journal blob lives.
// Backend determines which of the other fields are relevant.
type StorageConfig struct {
	Backend string   `toml:"backend"` // file, diskv, sqlite, s3 or memory
	Path    string   `toml:"path"`    // file path, diskv directory or sqlite database
	Backups int      `toml:"backups"` // rotated backups kept by the file backend
	S3      S3Config `toml:"s3"`
}

// S3Config holds the object store location, used when Backend == "s3".
type S3Config struct {
	Bucket    string `toml:"bucket"`
	Key       string `toml:"key"`
	Region    string `toml:"region"`
	Endpoint  string `toml:"endpoint"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
}

// AudioConfig configures voice note capture.
type AudioConfig struct {
	Dir     string   `toml:"dir"`
	Command []string `toml:"command"`
}

// LogConfig configures the log file.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// DefaultConfig returns a Config with sensible defaults.
// Empty paths are filled in by ResolvePaths relative to the config directory.
func DefaultConfig() Config {
	return Config{
		SortMode: "date",
		Theme:    "dracula",
		Storage: StorageConfig{
			Backend: "file",
			Backups: 3,
			S3: S3Config{
				Key: "journali/entries.json",
			},
		},
		Audio: AudioConfig{
			Command: []string{"ffmpeg", "-loglevel", "error", "-f", "alsa", "-i", "default", "{file}"},
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// GetConfigDir returns the application config directory, creating it if
// needed. Uses os.UserConfigDir() via osutil for an XDG-compliant location.
func GetConfigDir() (string, error) {
	configDir, err := osutil.Provider.UserConfigDir()
	if err != nil {
		return "", err
	}

	appDir := filepath.Join(configDir, AppName)
	if err := osutil.Provider.MkdirAll(appDir, 0755); err != nil {
		return "", err
	}
	return appDir, nil
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	appDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(appDir, ConfigFile), nil
}

// Load reads, normalizes and validates the config at path.
// Fields missing from the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadOrDefault loads the config at path, or returns DefaultConfig if the
// file does not exist.
func LoadOrDefault(path string) (Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			cfg.Normalize()
			return cfg, nil
		}
		return Config{}, err
	}
	return Load(path)
}

// Normalize lowercases enum fields, trims whitespace and expands a leading
// ~ in paths.
func (c *Config) Normalize() {
	c.SortMode = strings.ToLower(strings.TrimSpace(c.SortMode))
	if c.SortMode == "" {
		c.SortMode = "date"
	}
	c.Theme = strings.TrimSpace(c.Theme)

	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	if c.Storage.Backend == "" {
		c.Storage.Backend = "file"
	}
	c.Storage.Path = expand(c.Storage.Path)

	c.Audio.Dir = expand(c.Audio.Dir)

	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.File = expand(c.Log.File)
}

// Validate checks the configuration values. Call Normalize first.
func (c *Config) Validate() error {
	if !contains(validSortModes, c.SortMode) {
		return fmt.Errorf("invalid sort_mode %q: must be one of %s", c.SortMode, strings.Join(validSortModes, ", "))
	}
	if !contains(validBackends, c.Storage.Backend) {
		return fmt.Errorf("invalid storage.backend %q: must be one of %s", c.Storage.Backend, strings.Join(validBackends, ", "))
	}
	if c.Storage.Backups < 0 {
		return fmt.Errorf("invalid storage.backups %d: must not be negative", c.Storage.Backups)
	}
	if c.Storage.Backend == "s3" {
		if c.Storage.S3.Bucket == "" {
			return fmt.Errorf("storage.s3.bucket is required when storage.backend is \"s3\"")
		}
		if c.Storage.S3.Key == "" {
			return fmt.Errorf("storage.s3.key is required when storage.backend is \"s3\"")
		}
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log.level: %w", err)
	}
	return nil
}

// ResolvePaths fills empty paths with locations under dir.
func (c *Config) ResolvePaths(dir string) {
	if c.Storage.Path == "" {
		switch c.Storage.Backend {
		case "diskv":
			c.Storage.Path = filepath.Join(dir, "entries.d")
		case "sqlite":
			c.Storage.Path = filepath.Join(dir, "journali.db")
		default:
			c.Storage.Path = filepath.Join(dir, "entries.json")
		}
	}
	if c.Audio.Dir == "" {
		c.Audio.Dir = filepath.Join(dir, "recordings")
	}
	if c.Log.File == "" {
		c.Log.File = filepath.Join(dir, LogFile)
	}
}

// Write encodes cfg as TOML.
func Write(w io.Writer, cfg Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// Save writes cfg to path, replacing the file atomically.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	if err := Write(f, cfg); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

// GenerateSampleConfig returns a commented sample configuration file.
func GenerateSampleConfig() string {
	return `# journali configuration file

# List ordering: "date" (newest first) or "bookmark" (bookmarked first)
sort_mode = "date"

# TUI colour theme (any bubbletint id, e.g. "dracula", "nord")
theme = "dracula"

# Ask before leaving the editor even when nothing changed
always_confirm_discard = false

[storage]
# Backend: "file", "diskv", "sqlite", "s3" or "memory"
backend = "file"
# File path (file), directory (diskv) or database (sqlite).
# Defaults to a location in the config directory.
# path = "~/journal/entries.json"
# Rotated backups kept by the file backend
backups = 3

[storage.s3]
# Used when backend = "s3"
bucket = ""
key = "journali/entries.json"
region = ""
# Custom endpoint for S3-compatible stores such as MinIO
endpoint = ""
access_key = ""
secret_key = ""

[audio]
# Where voice notes are written. Defaults to <config dir>/recordings.
# dir = "~/journal/recordings"
# Recording command; {file} is replaced with the output path.
# The command is interrupted when recording stops.
command = ["ffmpeg", "-loglevel", "error", "-f", "alsa", "-i", "default", "{file}"]

[log]
# Level: "debug", "info", "warn" or "error"
level = "info"
# Defaults to <config dir>/journali.log
# file = "~/journal/journali.log"
`
}

func expand(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return path
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return path
	}
	return expanded
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
