package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/xolan/journali/internal/audio"
	"github.com/xolan/journali/internal/entry"
	"github.com/xolan/journali/internal/logging"
)

// AudioService records voice notes and stores them as entries.
type AudioService struct {
	mu        sync.Mutex
	recorder  audio.Recorder
	journal   *JournalService
	logger    logging.Logger
	recording bool
}

// NewAudioService creates a new AudioService. recorder may be nil, in which
// case Start always fails.
func NewAudioService(recorder audio.Recorder, journal *JournalService, logger logging.Logger) *AudioService {
	return &AudioService{recorder: recorder, journal: journal, logger: logger}
}

// Start begins a recording. Failures wrap audio.ErrStart.
func (s *AudioService) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.recorder == nil {
		return fmt.Errorf("%w: no recorder configured", audio.ErrStart)
	}
	if s.recording {
		return audio.ErrAlreadyRecording
	}
	if err := s.recorder.Start(); err != nil {
		s.logger.Warn("audio capture failed to start", "error", err)
		return err
	}
	s.recording = true
	return nil
}

// Stop ends the recording and, if audio was captured, saves a voice note.
func (s *AudioService) Stop(ctx context.Context) (entry.Entry, error) {
	s.mu.Lock()
	if !s.recording {
		s.mu.Unlock()
		return entry.Entry{}, ErrNotRecording
	}
	s.recording = false
	path, ok := s.recorder.Stop()
	s.mu.Unlock()

	if !ok {
		return entry.Entry{}, ErrNothingRecorded
	}
	return s.journal.AddVoiceNote(ctx, path)
}

// Recording reports whether a recording is in progress.
func (s *AudioService) Recording() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recording
}
