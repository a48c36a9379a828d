// Package entry defines the journal entry record and the seams used to
// construct one deterministically.
package entry

import (
	"time"

	"github.com/google/uuid"
)

// VoiceNoteTitle is the default title given to entries created from a recording.
const VoiceNoteTitle = "Voice Note"

// Entry represents a single journal record
type Entry struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"created_at"`
	IsBookmarked bool      `json:"bookmarked"`
	AudioRef     string    `json:"audio_ref,omitempty"` // path to an externally stored recording
}

// Clock abstracts time retrieval so construction is deterministic in tests.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual current time.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// IDGenerator abstracts unique ID generation so tests are deterministic.
type IDGenerator interface {
	New() string
}

// UUIDGenerator produces random UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) New() string { return uuid.New().String() }

// New returns an empty entry with a fresh id. CreatedAt is fixed here, at
// construction, not when the entry is first saved.
func New(clock Clock, ids IDGenerator) Entry {
	return Entry{
		ID:        ids.New(),
		CreatedAt: clock.Now(),
	}
}

// NewVoiceNote returns an entry wrapping a finished recording.
func NewVoiceNote(clock Clock, ids IDGenerator, audioRef string) Entry {
	e := New(clock, ids)
	e.Title = VoiceNoteTitle
	e.AudioRef = audioRef
	return e
}

// HasAudio reports whether a recording is attached.
func (e Entry) HasAudio() bool {
	return e.AudioRef != ""
}

// Equal compares two entries field by field. Timestamps are compared at
// second precision, which is the precision the persisted form guarantees.
func (e Entry) Equal(other Entry) bool {
	return e.ID == other.ID &&
		e.Title == other.Title &&
		e.Content == other.Content &&
		e.IsBookmarked == other.IsBookmarked &&
		e.AudioRef == other.AudioRef &&
		e.CreatedAt.Truncate(time.Second).Equal(other.CreatedAt.Truncate(time.Second))
}
