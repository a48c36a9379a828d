package blobstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/peterbourgon/diskv/v3"
)

// DiskvKey is the key the journal blob is stored under.
const DiskvKey = "entries"

// Diskv stores the blob as a single key in a diskv directory store. diskv
// writes through a temp directory and renames, so overwrites are atomic.
type Diskv struct {
	d        *diskv.Diskv
	basePath string
}

// NewDiskv opens (creating if needed) a diskv store rooted at basePath.
func NewDiskv(basePath string) (*Diskv, error) {
	if basePath == "" {
		return nil, fmt.Errorf("diskv backend requires a directory path")
	}
	tmp := filepath.Join(basePath, ".tmp")
	if err := os.MkdirAll(tmp, 0755); err != nil {
		return nil, fmt.Errorf("failed to create diskv directory: %w", err)
	}

	return &Diskv{
		d: diskv.New(diskv.Options{
			BasePath:     basePath,
			TempDir:      tmp,
			Transform:    func(string) []string { return []string{} },
			CacheSizeMax: 1024 * 1024, // 1MB
		}),
		basePath: basePath,
	}, nil
}

func (s *Diskv) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !s.d.Has(DiskvKey) {
		return nil, ErrNotFound
	}
	val, err := s.d.Read(DiskvKey)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return val, nil
}

func (s *Diskv) Write(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.d.Write(DiskvKey, data); err != nil {
		return fmt.Errorf("diskv write: %w", err)
	}
	return nil
}

func (s *Diskv) Location() string {
	return filepath.Join(s.basePath, DiskvKey)
}
