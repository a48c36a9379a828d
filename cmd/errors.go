package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/xolan/journali/internal/audio"
	"github.com/xolan/journali/internal/editor"
	"github.com/xolan/journali/internal/journal"
	"github.com/xolan/journali/internal/service"
)

// openServices builds the services or reports why it could not. The caller
// must return when ok is false.
func openServices(ctx context.Context) (s *service.Services, ok bool) {
	s, err := deps.Services(ctx)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to open journal")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Run 'journali config' to check the storage settings")
		deps.Exit(1)
		return nil, false
	}
	return s, true
}

func closeServices(s *service.Services) {
	if err := s.Close(); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Warning: %v\n", err)
	}
}

// reportRefError prints a lookup failure for ref with a hint that fits it.
func reportRefError(ref string, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyRef):
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Entry reference cannot be empty")
	case errors.Is(err, service.ErrAmbiguousRef):
		_, _ = fmt.Fprintf(deps.Stderr, "Error: '%s' matches more than one entry\n", ref)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Use a longer id prefix or the index shown by 'journali'")
	default:
		_, _ = fmt.Fprintf(deps.Stderr, "Error: No entry matches '%s'\n", ref)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Use 'journali' to list entries with their indices")
	}
	deps.Exit(1)
}

// reportSaveError prints a failed mutation. The change is still visible
// for the rest of this run but was not persisted.
func reportSaveError(err error) {
	switch {
	case errors.Is(err, editor.ErrEmptyTitle):
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Title cannot be empty")
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Every entry needs a title, content is optional")
	case errors.Is(err, journal.ErrInvalidText):
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Entry text is not valid UTF-8")
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Check the encoding of your terminal or input")
	default:
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to save journal")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Check that the storage location is writable")
	}
	deps.Exit(1)
}

func reportRecordError(err error) {
	switch {
	case errors.Is(err, audio.ErrStart):
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Could not start recording")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Check the [audio] command in your config file")
	case errors.Is(err, service.ErrNothingRecorded):
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Nothing was recorded, no entry created")
	default:
		reportSaveError(err)
		return
	}
	deps.Exit(1)
}
