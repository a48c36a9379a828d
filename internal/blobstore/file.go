package blobstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const (
	// BackupSuffix is the file extension for backup files
	BackupSuffix = ".bak"
	// DefaultBackupCount is the number of rotated backups kept when unset
	DefaultBackupCount = 3
)

// File stores the blob in a single file on disk. Writes go to a temp file
// that is renamed over the target, so a crash leaves either the old or the
// new blob in place, never a torn one. Before each overwrite the current
// file is rotated into numbered backups: path.bak.1 is the most recent.
type File struct {
	path    string
	backups int
}

// NewFile returns a file backend at path keeping up to backups rotated
// copies. The parent directory is created if needed.
func NewFile(path string, backups int) (*File, error) {
	if path == "" {
		return nil, fmt.Errorf("file backend requires a path")
	}
	if backups < 0 {
		backups = 0
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &File{path: path, backups: backups}, nil
}

func (f *File) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

func (f *File) Write(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if f.backups > 0 {
		if err := f.createBackup(); err != nil {
			return fmt.Errorf("failed to back up storage file: %w", err)
		}
	}
	return writeAtomic(f.path, data)
}

func (f *File) Location() string { return f.path }

// BackupPath returns the path of backup number n (1 is the most recent).
func (f *File) BackupPath(n int) string {
	return fmt.Sprintf("%s%s.%d", f.path, BackupSuffix, n)
}

// BackupInfo contains information about a backup file
type BackupInfo struct {
	Number int    // The backup number (1 is most recent)
	Path   string // The full path to the backup file
	Size   int64
}

// ListBackups returns existing backups sorted by recency.
func (f *File) ListBackups() ([]BackupInfo, error) {
	var backups []BackupInfo
	for i := 1; i <= f.backups; i++ {
		p := f.BackupPath(i)
		info, err := os.Stat(p)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		backups = append(backups, BackupInfo{Number: i, Path: p, Size: info.Size()})
	}
	return backups, nil
}

// RestoreBackup copies backup n over the live blob. The current blob is
// backed up first, so a restore can itself be undone.
func (f *File) RestoreBackup(n int) error {
	if n < 1 || n > f.backups {
		return fmt.Errorf("invalid backup number %d, must be between 1 and %d", n, f.backups)
	}

	data, err := os.ReadFile(f.BackupPath(n))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("backup %d does not exist", n)
		}
		return err
	}

	return f.Write(context.Background(), data)
}

// rotateBackups shifts .bak.1 -> .bak.2 and so on, dropping the oldest.
// Missing files are skipped.
func (f *File) rotateBackups() error {
	if err := os.Remove(f.BackupPath(f.backups)); err != nil && !os.IsNotExist(err) {
		return err
	}
	for i := f.backups - 1; i >= 1; i-- {
		if err := os.Rename(f.BackupPath(i), f.BackupPath(i+1)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

// createBackup copies the live file to .bak.1 after rotating. No live file
// means nothing to back up.
func (f *File) createBackup() error {
	src, err := os.Open(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer func() { _ = src.Close() }()

	if err := f.rotateBackups(); err != nil {
		return err
	}

	dst, err := os.Create(f.BackupPath(1))
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return err
	}
	return dst.Close()
}

// writeAtomic writes data to a temp file next to path and renames it into place.
func writeAtomic(path string, data []byte) error {
	tmpFile := path + ".tmp"
	file, err := os.OpenFile(tmpFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	if _, err := file.Write(data); err != nil {
		_ = file.Close()
		_ = os.Remove(tmpFile)
		return err
	}
	if err := file.Sync(); err != nil {
		_ = file.Close()
		_ = os.Remove(tmpFile)
		return err
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, path)
}
