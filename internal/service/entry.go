package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xolan/journali/internal/blobstore"
	"github.com/xolan/journali/internal/codec"
	"github.com/xolan/journali/internal/editor"
	"github.com/xolan/journali/internal/entry"
	"github.com/xolan/journali/internal/journal"
	"github.com/xolan/journali/internal/logging"
	"github.com/xolan/journali/internal/view"
)

// JournalService provides operations on journal entries
type JournalService struct {
	store   *journal.Store
	backend blobstore.Backend
	config  *ConfigService
	clock   entry.Clock
	ids     entry.IDGenerator
	logger  logging.Logger
}

// NewJournalService creates a new JournalService
func NewJournalService(store *journal.Store, backend blobstore.Backend, cfg *ConfigService, clock entry.Clock, ids entry.IDGenerator, logger logging.Logger) *JournalService {
	return &JournalService{
		store:   store,
		backend: backend,
		config:  cfg,
		clock:   clock,
		ids:     ids,
		logger:  logger,
	}
}

// Store returns the underlying entry store.
func (s *JournalService) Store() *journal.Store { return s.store }

// Location describes where the journal is persisted.
func (s *JournalService) Location() string { return s.store.Location() }

// Count returns the number of entries.
func (s *JournalService) Count() int { return s.store.Len() }

// Warnings returns the entries skipped when the journal was loaded.
func (s *JournalService) Warnings() []codec.Warning { return s.store.Warnings() }

// List returns the entries matching search, ordered by mode, each tagged
// with its stable display index.
func (s *JournalService) List(search string, mode view.SortMode) *ListResult {
	snapshot := s.store.Snapshot()
	indexes := displayIndexes(snapshot)

	projected := view.Project(snapshot, search, mode)
	out := make([]IndexedEntry, len(projected))
	for i, e := range projected {
		out[i] = IndexedEntry{Entry: e, Index: indexes[e.ID]}
	}

	return &ListResult{
		Entries:  out,
		Total:    len(snapshot),
		Search:   search,
		SortMode: mode.String(),
	}
}

// Resolve finds the entry a user reference points at. A reference is a
// display index, a full id, or an unambiguous id prefix.
func (s *JournalService) Resolve(ref string) (IndexedEntry, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return IndexedEntry{}, ErrEmptyRef
	}

	snapshot := s.store.Snapshot()
	byDate := view.Project(snapshot, "", view.ByDate)

	// A number in range is an index; anything else is tried as an id.
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(byDate) {
		return IndexedEntry{Entry: byDate[n-1], Index: n}, nil
	}

	needle := strings.ToLower(ref)
	var matches []IndexedEntry
	for i, e := range byDate {
		id := strings.ToLower(e.ID)
		if id == needle {
			return IndexedEntry{Entry: e, Index: i + 1}, nil
		}
		if strings.HasPrefix(id, needle) {
			matches = append(matches, IndexedEntry{Entry: e, Index: i + 1})
		}
	}

	switch len(matches) {
	case 0:
		return IndexedEntry{}, fmt.Errorf("%w: %q (have %d entries)", ErrNotFound, ref, len(byDate))
	case 1:
		return matches[0], nil
	default:
		return IndexedEntry{}, fmt.Errorf("%w: %q matches %d entries", ErrAmbiguousRef, ref, len(matches))
	}
}

// NewDraft starts an editor session for a new entry.
func (s *JournalService) NewDraft() *editor.Session {
	return editor.NewDraft(s.clock, s.ids, s.store, s.editorOptions()...)
}

// OpenEditor starts an editor session on an existing entry.
func (s *JournalService) OpenEditor(e entry.Entry) *editor.Session {
	return editor.Open(e, s.store, s.editorOptions()...)
}

func (s *JournalService) editorOptions() []editor.Option {
	return []editor.Option{editor.WithAlwaysConfirm(s.config.Get().AlwaysConfirmDiscard)}
}

// Create adds a new entry. The title must be non-empty after trimming.
func (s *JournalService) Create(ctx context.Context, title, content string) (entry.Entry, error) {
	session := s.NewDraft()
	session.SetTitle(title)
	session.SetContent(content)

	saved, err := session.Save(ctx)
	if err != nil {
		return entry.Entry{}, err
	}
	s.logger.Info("entry created", "id", saved.ID)
	return saved, nil
}

// Update changes the title and/or content of the referenced entry. A nil
// field is left as is.
func (s *JournalService) Update(ctx context.Context, ref string, title, content *string) (entry.Entry, error) {
	if title == nil && content == nil {
		return entry.Entry{}, ErrNoChangesSpecified
	}

	target, err := s.Resolve(ref)
	if err != nil {
		return entry.Entry{}, err
	}

	session := s.OpenEditor(target.Entry)
	if title != nil {
		session.SetTitle(*title)
	}
	if content != nil {
		session.SetContent(*content)
	}

	saved, err := session.Save(ctx)
	if err != nil {
		return entry.Entry{}, err
	}
	s.logger.Info("entry updated", "id", saved.ID)
	return saved, nil
}

// Delete removes the referenced entry and returns it.
func (s *JournalService) Delete(ctx context.Context, ref string) (entry.Entry, error) {
	target, err := s.Resolve(ref)
	if err != nil {
		return entry.Entry{}, err
	}
	if err := s.store.Delete(ctx, target.Entry.ID); err != nil {
		return target.Entry, err
	}
	s.logger.Info("entry deleted", "id", target.Entry.ID)
	return target.Entry, nil
}

// ToggleBookmark flips the bookmark on the referenced entry and returns the
// updated entry.
func (s *JournalService) ToggleBookmark(ctx context.Context, ref string) (entry.Entry, error) {
	target, err := s.Resolve(ref)
	if err != nil {
		return entry.Entry{}, err
	}
	if err := s.store.ToggleBookmark(ctx, target.Entry.ID); err != nil {
		return entry.Entry{}, err
	}
	updated, _ := s.store.Get(target.Entry.ID)
	return updated, nil
}

// AddVoiceNote stores a finished recording as a new entry.
func (s *JournalService) AddVoiceNote(ctx context.Context, audioRef string) (entry.Entry, error) {
	e := entry.NewVoiceNote(s.clock, s.ids, audioRef)
	if err := s.store.Upsert(ctx, e); err != nil {
		return e, err
	}
	s.logger.Info("voice note saved", "id", e.ID, "audio", audioRef)
	return e, nil
}

// Health reads the blob straight from the backend and reports how much of
// it decodes, without touching the in-memory store.
func (s *JournalService) Health(ctx context.Context) (*HealthReport, error) {
	report := &HealthReport{Location: s.backend.Location()}

	blob, err := s.backend.Read(ctx)
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			return report, nil
		}
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}

	result := codec.DecodeWithWarnings(blob)
	report.Exists = true
	report.Bytes = len(blob)
	report.Version = result.Version
	report.Legacy = result.Legacy
	report.Valid = len(result.Entries)
	report.Warnings = result.Warnings
	return report, nil
}

// Reload re-reads the journal from the backend.
func (s *JournalService) Reload(ctx context.Context) error {
	return s.store.Load(ctx)
}

// displayIndexes maps each id to its 1-based position in the newest-first
// ordering of all entries.
func displayIndexes(entries []entry.Entry) map[string]int {
	byDate := view.Project(entries, "", view.ByDate)
	indexes := make(map[string]int, len(byDate))
	for i, e := range byDate {
		indexes[e.ID] = i + 1
	}
	return indexes
}
