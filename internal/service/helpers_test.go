package service

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/xolan/journali/internal/blobstore"
	"github.com/xolan/journali/internal/config"
)

type stepClock struct{ now time.Time }

// Now returns the current time and advances it by a minute, so entries
// created in sequence have increasing timestamps.
func (c *stepClock) Now() time.Time {
	t := c.now
	c.now = c.now.Add(time.Minute)
	return t
}

type seqIDs struct{ n int }

func (g *seqIDs) New() string {
	g.n++
	return fmt.Sprintf("e%07x-0000-4000-8000-000000000000", g.n)
}

type fakeRecorder struct {
	startErr error
	path     string
	ok       bool
	starts   int
	stops    int
}

func (f *fakeRecorder) Start() error {
	f.starts++
	return f.startErr
}

func (f *fakeRecorder) Stop() (string, bool) {
	f.stops++
	return f.path, f.ok
}

var testStart = time.Date(2024, time.March, 1, 8, 0, 0, 0, time.UTC)

func newTestServices(t *testing.T, backend blobstore.Backend, opts ...Option) *Services {
	t.Helper()
	if backend == nil {
		backend = blobstore.NewMemory()
	}
	defaults := []Option{
		WithClock(&stepClock{now: testStart}),
		WithIDGenerator(&seqIDs{}),
	}
	s, err := NewServicesWithBackend(context.Background(), backend,
		filepath.Join(t.TempDir(), "config.toml"), config.DefaultConfig(), append(defaults, opts...)...)
	if err != nil {
		t.Fatalf("NewServicesWithBackend() error = %v", err)
	}
	return s
}

// seed creates entries with the given titles, oldest first.
func seed(t *testing.T, s *Services, titles ...string) {
	t.Helper()
	for _, title := range titles {
		if _, err := s.Journal.Create(context.Background(), title, "content of "+title); err != nil {
			t.Fatalf("Create(%q) error = %v", title, err)
		}
	}
}
