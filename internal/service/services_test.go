package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/xolan/journali/internal/blobstore"
	"github.com/xolan/journali/internal/config"
)

func TestNewServicesWithBackend(t *testing.T) {
	services := newTestServices(t, nil)

	if services.Journal == nil {
		t.Error("expected non-nil Journal service")
	}
	if services.Audio == nil {
		t.Error("expected non-nil Audio service")
	}
	if services.Backups == nil {
		t.Error("expected non-nil Backups service")
	}
	if services.Config == nil {
		t.Error("expected non-nil Config service")
	}
	if err := services.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestNewServicesWithBackend_LoadsExistingJournal(t *testing.T) {
	mem := blobstore.NewMemory()
	first := newTestServices(t, mem)
	seed(t, first, "Morning Walk")

	second := newTestServices(t, mem)
	if second.Journal.Count() != 1 {
		t.Errorf("expected the journal to be loaded on start, got %d entries", second.Journal.Count())
	}
}

func TestNewServicesFromConfig(t *testing.T) {
	tmpDir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Storage.Backend = "sqlite"
	cfg.ResolvePaths(tmpDir)

	services, err := NewServicesFromConfig(context.Background(), filepath.Join(tmpDir, config.ConfigFile), cfg)
	if err != nil {
		t.Fatalf("NewServicesFromConfig() error = %v", err)
	}

	if _, err := services.Journal.Create(context.Background(), "persisted", ""); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := services.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := NewServicesFromConfig(context.Background(), filepath.Join(tmpDir, config.ConfigFile), cfg)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer func() { _ = reopened.Close() }()

	if reopened.Journal.Count() != 1 {
		t.Errorf("expected 1 entry after reopen, got %d", reopened.Journal.Count())
	}
	if reopened.Backups.Supported() {
		t.Error("sqlite backend should not report backup support")
	}
}

func TestNewServicesFromConfig_BadBackend(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Storage.Backend = "s3"
	cfg.Log.File = ""

	if _, err := NewServicesFromConfig(context.Background(), "", cfg); err == nil {
		t.Error("expected error for s3 backend without bucket")
	}
}

func TestStorageOptions(t *testing.T) {
	c := config.StorageConfig{
		Backend: "s3",
		Path:    "/p",
		Backups: 2,
		S3:      config.S3Config{Bucket: "b", Key: "k", Region: "r", Endpoint: "e", AccessKey: "a", SecretKey: "s"},
	}

	opts := StorageOptions(c)
	if opts.Type != "s3" || opts.Path != "/p" || opts.Backups != 2 {
		t.Errorf("unexpected options: %+v", opts)
	}
	if opts.S3.Bucket != "b" || opts.S3.Key != "k" || opts.S3.Region != "r" || opts.S3.Endpoint != "e" ||
		opts.S3.AccessKey != "a" || opts.S3.SecretKey != "s" {
		t.Errorf("unexpected s3 options: %+v", opts.S3)
	}
}
