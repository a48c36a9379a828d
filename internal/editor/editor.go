// Package editor implements the create/edit flow for a single entry: a draft
// that only reaches the store on an explicit save, and a discard gate that
// asks before throwing away changes.
package editor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/xolan/journali/internal/entry"
)

var (
	// ErrEmptyTitle is returned by Save when the trimmed title is empty.
	ErrEmptyTitle = errors.New("title must not be empty")
	// ErrClosed is returned when acting on a session that has ended.
	ErrClosed = errors.New("editor session is closed")
	// ErrConfirmingDiscard is returned by Save while the discard prompt is open.
	ErrConfirmingDiscard = errors.New("editor is waiting for a discard decision")
)

// State is the lifecycle state of a Session.
type State int

const (
	Editing State = iota
	ConfirmingDiscard
	Closed
)

func (s State) String() string {
	switch s {
	case Editing:
		return "editing"
	case ConfirmingDiscard:
		return "confirming discard"
	case Closed:
		return "closed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Upserter is the part of the store a session writes to.
type Upserter interface {
	Upsert(ctx context.Context, e entry.Entry) error
}

// Option configures a Session.
type Option func(*Session)

// WithAlwaysConfirm makes RequestCancel ask for confirmation even when the
// draft is unchanged.
func WithAlwaysConfirm(always bool) Option {
	return func(s *Session) { s.alwaysConfirm = always }
}

// Session holds one draft. Edits stay in the draft until Save.
type Session struct {
	store         Upserter
	original      entry.Entry
	draft         entry.Entry
	isNew         bool
	state         State
	alwaysConfirm bool
}

// NewDraft starts a session for a new entry. Its id and creation time are
// fixed now, not at save time.
func NewDraft(clock entry.Clock, ids entry.IDGenerator, store Upserter, opts ...Option) *Session {
	e := entry.New(clock, ids)
	return newSession(e, true, store, opts)
}

// Open starts a session editing a copy of e.
func Open(e entry.Entry, store Upserter, opts ...Option) *Session {
	return newSession(e, false, store, opts)
}

func newSession(e entry.Entry, isNew bool, store Upserter, opts []Option) *Session {
	s := &Session{
		store:    store,
		original: e,
		draft:    e,
		isNew:    isNew,
		state:    Editing,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Draft returns the current draft.
func (s *Session) Draft() entry.Entry { return s.draft }

// State returns the session state.
func (s *Session) State() State { return s.state }

// IsNew reports whether the session creates an entry rather than editing one.
func (s *Session) IsNew() bool { return s.isNew }

// SetTitle updates the draft title. It has no effect once closed.
func (s *Session) SetTitle(title string) {
	if s.state == Closed {
		return
	}
	s.draft.Title = title
}

// SetContent updates the draft content. It has no effect once closed.
func (s *Session) SetContent(content string) {
	if s.state == Closed {
		return
	}
	s.draft.Content = content
}

// Dirty reports whether the draft differs from what the session started with.
func (s *Session) Dirty() bool {
	return s.draft.Title != s.original.Title || s.draft.Content != s.original.Content
}

// CanSave reports whether the draft title is non-empty after trimming.
func (s *Session) CanSave() bool {
	return strings.TrimSpace(s.draft.Title) != ""
}

// Save trims the title, upserts the draft and closes the session. It only
// acts while editing; the discard prompt must be answered first. If the title
// is empty nothing changes. If the store write fails the session stays open
// so the save can be retried.
func (s *Session) Save(ctx context.Context) (entry.Entry, error) {
	switch s.state {
	case Closed:
		return entry.Entry{}, ErrClosed
	case ConfirmingDiscard:
		return entry.Entry{}, ErrConfirmingDiscard
	}
	if !s.CanSave() {
		return entry.Entry{}, ErrEmptyTitle
	}

	s.draft.Title = strings.TrimSpace(s.draft.Title)
	if err := s.store.Upsert(ctx, s.draft); err != nil {
		return s.draft, err
	}
	s.state = Closed
	return s.draft, nil
}

// RequestCancel asks to leave the editor. A dirty draft (or any draft when
// always-confirm is set) moves to ConfirmingDiscard; otherwise the session
// closes. It returns the new state.
func (s *Session) RequestCancel() State {
	if s.state != Editing {
		return s.state
	}
	if s.alwaysConfirm || s.Dirty() {
		s.state = ConfirmingDiscard
	} else {
		s.state = Closed
	}
	return s.state
}

// KeepEditing dismisses the discard prompt.
func (s *Session) KeepEditing() {
	if s.state == ConfirmingDiscard {
		s.state = Editing
	}
}

// Discard answers the discard prompt: the session closes without touching
// the store. It has no effect unless the prompt is open.
func (s *Session) Discard() {
	if s.state == ConfirmingDiscard {
		s.state = Closed
	}
}
