package service

import (
	"context"

	"github.com/xolan/journali/internal/blobstore"
	"github.com/xolan/journali/internal/journal"
)

// BackupService exposes the rotated backups kept by the file backend.
type BackupService struct {
	file  *blobstore.File
	store *journal.Store
}

// NewBackupService creates a new BackupService. Backups are only available
// when backend is a file backend.
func NewBackupService(backend blobstore.Backend, store *journal.Store) *BackupService {
	f, _ := backend.(*blobstore.File)
	return &BackupService{file: f, store: store}
}

// Supported reports whether the active backend keeps backups.
func (s *BackupService) Supported() bool {
	return s.file != nil
}

// List returns the existing backups, most recent first.
func (s *BackupService) List() ([]blobstore.BackupInfo, error) {
	if s.file == nil {
		return nil, ErrBackupsUnsupported
	}
	return s.file.ListBackups()
}

// Restore replaces the journal with backup n and reloads the store.
func (s *BackupService) Restore(ctx context.Context, n int) error {
	if s.file == nil {
		return ErrBackupsUnsupported
	}
	if err := s.file.RestoreBackup(n); err != nil {
		return err
	}
	return s.store.Load(ctx)
}
