package service

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/xolan/journali/internal/audio"
	"github.com/xolan/journali/internal/blobstore"
	"github.com/xolan/journali/internal/config"
	"github.com/xolan/journali/internal/entry"
	"github.com/xolan/journali/internal/journal"
	"github.com/xolan/journali/internal/logging"
)

// Services holds all service instances used by the application
type Services struct {
	Journal *JournalService
	Audio   *AudioService
	Backups *BackupService
	Config  *ConfigService

	backend blobstore.Backend
	logFile *os.File
}

// Option customises NewServicesWithBackend.
type Option func(*options)

type options struct {
	logger   logging.Logger
	clock    entry.Clock
	ids      entry.IDGenerator
	recorder audio.Recorder
}

// WithLogger sets the logger shared by the services and the store.
func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithClock sets the clock used to stamp new entries.
func WithClock(c entry.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithIDGenerator sets the id source for new entries.
func WithIDGenerator(g entry.IDGenerator) Option {
	return func(o *options) { o.ids = g }
}

// WithRecorder sets the audio recorder.
func WithRecorder(r audio.Recorder) Option {
	return func(o *options) { o.recorder = r }
}

// NewServices creates a new Services instance from the user's config file.
func NewServices(ctx context.Context) (*Services, error) {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config path: %w", err)
	}
	configDir, err := config.GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w", err)
	}

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, err
	}
	cfg.ResolvePaths(configDir)

	return NewServicesFromConfig(ctx, configPath, cfg)
}

// NewServicesFromConfig opens the log file, the storage backend and the
// recorder described by cfg. Paths in cfg must already be resolved.
func NewServicesFromConfig(ctx context.Context, configPath string, cfg config.Config) (*Services, error) {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	var (
		logger  logging.Logger = logging.NewNopLogger()
		logFile *os.File
	)
	if cfg.Log.File != "" {
		l, f, err := logging.Open(cfg.Log.File, level)
		if err != nil {
			return nil, err
		}
		logger, logFile = l, f
	}

	backend, err := blobstore.Open(ctx, StorageOptions(cfg.Storage))
	if err != nil {
		if logFile != nil {
			_ = logFile.Close()
		}
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Storage.Backend, err)
	}

	recorder := audio.NewCommandRecorder(cfg.Audio.Dir, cfg.Audio.Command, logger)
	s, err := NewServicesWithBackend(ctx, backend, configPath, cfg,
		WithLogger(logger),
		WithRecorder(recorder),
	)
	if err != nil {
		_ = blobstore.Close(backend)
		if logFile != nil {
			_ = logFile.Close()
		}
		return nil, err
	}
	s.logFile = logFile
	return s, nil
}

// NewServicesWithBackend builds the services on an already opened backend
// and loads the journal from it (useful for testing).
func NewServicesWithBackend(ctx context.Context, backend blobstore.Backend, configPath string, cfg config.Config, opts ...Option) (*Services, error) {
	o := options{
		logger: logging.NewNopLogger(),
		clock:  entry.RealClock{},
		ids:    entry.UUIDGenerator{},
	}
	for _, opt := range opts {
		opt(&o)
	}

	store := journal.New(backend, journal.WithLogger(o.logger))
	if err := store.Load(ctx); err != nil {
		return nil, err
	}

	configService := NewConfigService(configPath, cfg)
	journalService := NewJournalService(store, backend, configService, o.clock, o.ids, o.logger)

	return &Services{
		Journal: journalService,
		Audio:   NewAudioService(o.recorder, journalService, o.logger),
		Backups: NewBackupService(backend, store),
		Config:  configService,
		backend: backend,
	}, nil
}

// Close stops any recording in progress and releases the backend and the
// log file.
func (s *Services) Close() error {
	var errs []error
	if s.Audio != nil && s.Audio.Recording() {
		if _, err := s.Audio.Stop(context.Background()); err != nil && !errors.Is(err, ErrNothingRecorded) {
			errs = append(errs, err)
		}
	}
	if err := blobstore.Close(s.backend); err != nil {
		errs = append(errs, err)
	}
	if s.logFile != nil {
		if err := s.logFile.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// StorageOptions maps the storage config section onto backend options.
func StorageOptions(c config.StorageConfig) blobstore.Options {
	return blobstore.Options{
		Type:    c.Backend,
		Path:    c.Path,
		Backups: c.Backups,
		S3: blobstore.S3Options{
			Bucket:    c.S3.Bucket,
			Key:       c.S3.Key,
			Region:    c.S3.Region,
			Endpoint:  c.S3.Endpoint,
			AccessKey: c.S3.AccessKey,
			SecretKey: c.S3.SecretKey,
		},
	}
}
