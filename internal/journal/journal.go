// Package journal holds the canonical, ordered collection of journal entries
// and persists it as a single blob after every mutation.
package journal

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/xolan/journali/internal/blobstore"
	"github.com/xolan/journali/internal/codec"
	"github.com/xolan/journali/internal/entry"
	"github.com/xolan/journali/internal/logging"
)

var (
	// ErrMissingID is returned by Upsert for an entry without an id.
	ErrMissingID = errors.New("entry has no id")
	// ErrInvalidText is returned by Upsert when the title or content is not
	// valid UTF-8. Such text would not survive encoding unchanged.
	ErrInvalidText = errors.New("entry text is not valid UTF-8")
)

// Store is the entry store. New entries go to the front; replacing an entry
// keeps its position. Every mutation writes the full sequence to the backend.
type Store struct {
	mu       sync.Mutex
	backend  blobstore.Backend
	logger   logging.Logger
	entries  []entry.Entry
	warnings []codec.Warning
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for load and persist failures.
func WithLogger(l logging.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates an empty store on top of backend. Call Load to read the
// persisted entries.
func New(backend blobstore.Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		logger:  logging.NewNopLogger(),
		entries: []entry.Entry{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory state with whatever the backend holds. A
// missing, unreadable or malformed blob leaves the store empty; Load only
// fails if ctx is done.
func (s *Store) Load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = []entry.Entry{}
	s.warnings = nil

	blob, err := s.backend.Read(ctx)
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			s.logger.Debug("no saved journal, starting empty", "location", s.backend.Location())
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		s.logger.Warn("failed to read journal, starting empty", "location", s.backend.Location(), "error", err)
		return nil
	}

	result := codec.DecodeWithWarnings(blob)
	s.entries = result.Entries
	s.warnings = result.Warnings
	for _, w := range result.Warnings {
		s.logger.Warn("skipped journal entry", "index", w.Index, "error", w.Error)
	}
	s.logger.Debug("journal loaded", "entries", len(s.entries), "legacy", result.Legacy)
	return nil
}

// Warnings returns the decode warnings from the last Load.
func (s *Store) Warnings() []codec.Warning {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]codec.Warning(nil), s.warnings...)
}

// Upsert replaces the entry with the same id in place, or inserts e at the
// front. The sequence is then persisted.
func (s *Store) Upsert(ctx context.Context, e entry.Entry) error {
	if e.ID == "" {
		return ErrMissingID
	}
	if !utf8.ValidString(e.Title) || !utf8.ValidString(e.Content) {
		return ErrInvalidText
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(e.ID); i >= 0 {
		s.entries[i] = e
	} else {
		s.entries = append([]entry.Entry{e}, s.entries...)
	}
	return s.persist(ctx, "upsert")
}

// Delete removes the entry with id if present and persists. Deleting an
// unknown id is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.Remove(ctx, id)
	return err
}

// Remove is Delete that also reports whether an entry was removed.
func (s *Store) Remove(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := false
	if i := s.indexOf(id); i >= 0 {
		s.entries = append(s.entries[:i:i], s.entries[i+1:]...)
		removed = true
	}
	return removed, s.persist(ctx, "delete")
}

// ToggleBookmark flips the bookmark flag of the entry with id if present,
// then persists.
func (s *Store) ToggleBookmark(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(id); i >= 0 {
		s.entries[i].IsBookmarked = !s.entries[i].IsBookmarked
	}
	return s.persist(ctx, "toggle bookmark")
}

// Snapshot returns a copy of the canonical sequence.
func (s *Store) Snapshot() []entry.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entry.Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Get returns the entry with id.
func (s *Store) Get(id string) (entry.Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(id); i >= 0 {
		return s.entries[i], true
	}
	return entry.Entry{}, false
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Location describes where the store persists.
func (s *Store) Location() string {
	return s.backend.Location()
}

func (s *Store) indexOf(id string) int {
	for i := range s.entries {
		if s.entries[i].ID == id {
			return i
		}
	}
	return -1
}

// persist must be called with mu held. The in-memory mutation stands even
// when the write fails.
func (s *Store) persist(ctx context.Context, op string) error {
	blob, err := codec.Encode(s.entries)
	if err != nil {
		s.logger.Error("failed to encode journal", "op", op, "error", err)
		return err
	}
	if err := s.backend.Write(ctx, blob); err != nil {
		s.logger.Error("failed to save journal", "op", op, "location", s.backend.Location(), "error", err)
		return fmt.Errorf("failed to save journal: %w", err)
	}
	return nil
}
