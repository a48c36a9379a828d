// Package service provides the business logic layer for the journali
// application. It wraps the entry store, the storage backend, the recorder
// and the config, providing one API for both CLI and TUI frontends.
package service

import (
	"errors"

	"github.com/xolan/journali/internal/codec"
	"github.com/xolan/journali/internal/entry"
)

// Common errors for the services
var (
	ErrNotFound           = errors.New("no entry matches")
	ErrAmbiguousRef       = errors.New("reference matches more than one entry")
	ErrEmptyRef           = errors.New("entry reference cannot be empty")
	ErrNoChangesSpecified = errors.New("at least one change must be specified")
	ErrBackupsUnsupported = errors.New("backups are only kept by the file storage backend")
	ErrNotRecording       = errors.New("no recording in progress")
	ErrNothingRecorded    = errors.New("recording produced no audio")
)

// IndexedEntry is an entry together with its stable display index: its
// 1-based position in the newest-first listing of all entries. The index
// does not change with search or sort, so it can be used as a reference.
type IndexedEntry struct {
	Entry entry.Entry
	Index int
}

// ListResult contains the entries to display, in display order.
type ListResult struct {
	Entries  []IndexedEntry
	Total    int // Number of entries in the journal, before filtering
	Search   string
	SortMode string
}

// HealthReport describes the persisted blob as read from the backend.
type HealthReport struct {
	Location string
	Exists   bool
	Bytes    int
	Version  int
	Legacy   bool
	Valid    int
	Warnings []codec.Warning
}

// Healthy reports whether every entry in the blob decoded.
func (h HealthReport) Healthy() bool {
	return len(h.Warnings) == 0
}
