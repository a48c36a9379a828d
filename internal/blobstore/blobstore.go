// Package blobstore provides the byte-storage backends that hold the single
// persisted journal blob. Every backend overwrites the whole blob in one
// atomic step; none of them understands the blob's contents.
package blobstore

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned by Read when nothing has been written yet.
var ErrNotFound = errors.New("blob not found")

// Backend reads and writes the last saved blob.
type Backend interface {
	// Read returns the last written blob, or ErrNotFound on first run.
	Read(ctx context.Context) ([]byte, error)
	// Write replaces the stored blob with data.
	Write(ctx context.Context, data []byte) error
	// Location describes where the blob lives, for display.
	Location() string
}

// Close releases resources held by b if it holds any.
func Close(b Backend) error {
	if c, ok := b.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
