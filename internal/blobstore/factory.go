package blobstore

import (
	"context"
	"fmt"
	"strings"
)

// Backend type names accepted by Open.
const (
	TypeFile   = "file"
	TypeDiskv  = "diskv"
	TypeSQLite = "sqlite"
	TypeS3     = "s3"
	TypeMemory = "memory"
)

// Types lists every backend type Open understands.
var Types = []string{TypeFile, TypeDiskv, TypeSQLite, TypeS3, TypeMemory}

// Options selects and configures a backend.
type Options struct {
	Type    string
	Path    string // File path, diskv directory or sqlite database
	Backups int    // Rotated backups kept by the file backend
	S3      S3Options
}

// Open creates the backend described by opts.
func Open(ctx context.Context, opts Options) (Backend, error) {
	switch strings.ToLower(opts.Type) {
	case TypeFile, "":
		return NewFile(opts.Path, opts.Backups)
	case TypeDiskv:
		return NewDiskv(opts.Path)
	case TypeSQLite:
		return NewSQLite(opts.Path)
	case TypeS3:
		return NewS3(ctx, opts.S3)
	case TypeMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q (valid: %s)", opts.Type, strings.Join(Types, ", "))
	}
}
