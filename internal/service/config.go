package service

import (
	"fmt"
	"os"

	"github.com/xolan/journali/internal/config"
	"github.com/xolan/journali/internal/view"
)

// ConfigService provides operations for managing configuration
type ConfigService struct {
	configPath string
	config     config.Config
}

// NewConfigService creates a new ConfigService
func NewConfigService(configPath string, cfg config.Config) *ConfigService {
	return &ConfigService{
		configPath: configPath,
		config:     cfg,
	}
}

// Get returns the current configuration
func (s *ConfigService) Get() config.Config {
	return s.config
}

// GetPath returns the path to the config file
func (s *ConfigService) GetPath() string {
	return s.configPath
}

// Exists checks if the config file exists
func (s *ConfigService) Exists() bool {
	_, err := os.Stat(s.configPath)
	return err == nil
}

// SortMode returns the stored sort preference.
func (s *ConfigService) SortMode() view.SortMode {
	mode, err := view.ParseSortMode(s.config.SortMode)
	if err != nil {
		return view.DefaultSortMode
	}
	return mode
}

// SetSortMode stores a new sort preference in the config file.
func (s *ConfigService) SetSortMode(mode view.SortMode) error {
	cfg := s.config
	cfg.SortMode = mode.String()
	return s.Update(cfg)
}

// SetTheme stores the TUI theme in the config file.
func (s *ConfigService) SetTheme(theme string) error {
	cfg := s.config
	cfg.Theme = theme
	return s.Update(cfg)
}

// Update validates cfg, writes it to the config file and makes it current.
func (s *ConfigService) Update(cfg config.Config) error {
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := config.Save(s.configPath, s.persistable(cfg)); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	s.config = cfg
	return nil
}

// Init creates a sample config file
func (s *ConfigService) Init() error {
	if s.Exists() {
		return fmt.Errorf("config file already exists at %s", s.configPath)
	}

	sample := config.GenerateSampleConfig()
	if err := os.WriteFile(s.configPath, []byte(sample), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Reload reloads the configuration from disk
func (s *ConfigService) Reload() error {
	cfg, err := config.LoadOrDefault(s.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	s.config = cfg
	return nil
}

// persistable drops paths that were filled in at startup rather than set by
// the user, so saving a preference does not pin them in the file.
func (s *ConfigService) persistable(cfg config.Config) config.Config {
	onDisk, err := config.LoadOrDefault(s.configPath)
	if err != nil {
		return cfg
	}
	cfg.Storage.Path = onDisk.Storage.Path
	cfg.Audio.Dir = onDisk.Audio.Dir
	cfg.Log.File = onDisk.Log.File
	return cfg
}
