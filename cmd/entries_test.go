package cmd

import (
	"context"
	"strings"
	"testing"

	"github.com/xolan/journali/internal/blobstore"
)

func strPtr(s string) *string { return &s }

func TestCreateEntry(t *testing.T) {
	env := newTestEnv(t, nil)
	stdout, _ := env.run(t, "", func() { createEntry(context.Background(), "  Morning Walk ", "Frost.") })

	if env.exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", env.exitCode)
	}
	if !strings.Contains(stdout, "Saved: Morning Walk") {
		t.Errorf("unexpected output: %s", stdout)
	}

	show, _ := env.run(t, "", func() { showEntry(context.Background(), "1") })
	if !strings.Contains(show, "Frost.") {
		t.Errorf("content was not stored:\n%s", show)
	}
}

func TestCreateEntry_EmptyTitle(t *testing.T) {
	env := newTestEnv(t, nil)
	_, stderr := env.run(t, "", func() { createEntry(context.Background(), "   ", "body") })

	if env.exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", env.exitCode)
	}
	if !strings.Contains(stderr, "Title cannot be empty") {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	if env.backend.(*blobstore.Memory).Writes() != 0 {
		t.Error("nothing should be written for an empty title")
	}
}

func TestCreateEntry_InvalidUTF8(t *testing.T) {
	env := newTestEnv(t, nil)
	_, stderr := env.run(t, "", func() { createEntry(context.Background(), "bad\xffx", "") })

	if env.exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", env.exitCode)
	}
	if !strings.Contains(stderr, "not valid UTF-8") {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	if env.backend.(*blobstore.Memory).Writes() != 0 {
		t.Error("nothing should be written for invalid text")
	}
}

func TestCreateEntry_SaveFailure(t *testing.T) {
	backend := blobstore.NewMemory()
	backend.FailWrites(blobstore.ErrInjected)
	env := newTestEnv(t, backend)

	_, stderr := env.run(t, "", func() { createEntry(context.Background(), "Title", "") })

	if env.exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", env.exitCode)
	}
	if !strings.Contains(stderr, "Failed to save journal") {
		t.Errorf("unexpected stderr: %s", stderr)
	}
}

func TestEditEntry(t *testing.T) {
	tests := []struct {
		name        string
		title       *string
		content     *string
		wantTitle   string
		wantContent string
	}{
		{"title only", strPtr("Long Walk"), nil, "Long Walk", "about Walk"},
		{"content only", nil, strPtr("rewritten"), "Walk", "rewritten"},
		{"clear content", nil, strPtr(""), "Walk", ""},
		{"both", strPtr("Run"), strPtr("fast"), "Run", "fast"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, nil)
			env.seed(t, "Walk")

			stdout, stderr := env.run(t, "", func() { editEntry(context.Background(), "1", tt.title, tt.content) })
			if env.exitCode != 0 {
				t.Fatalf("expected exit code 0, got %d: %s", env.exitCode, stderr)
			}
			if !strings.Contains(stdout, "Updated: "+tt.wantTitle) {
				t.Errorf("unexpected output: %s", stdout)
			}

			s, err := env.services(context.Background())
			if err != nil {
				t.Fatal(err)
			}
			got, err := s.Journal.Resolve("1")
			if err != nil {
				t.Fatal(err)
			}
			if got.Entry.Title != tt.wantTitle || got.Entry.Content != tt.wantContent {
				t.Errorf("entry = %q / %q, want %q / %q", got.Entry.Title, got.Entry.Content, tt.wantTitle, tt.wantContent)
			}
		})
	}
}

func TestEditEntry_Errors(t *testing.T) {
	tests := []struct {
		name    string
		ref     string
		title   *string
		content *string
		want    string
	}{
		{"no flags", "1", nil, nil, "At least one flag"},
		{"unknown ref", "9", strPtr("x"), nil, "No entry matches '9'"},
		{"empty title", "1", strPtr("  "), nil, "Title cannot be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, nil)
			env.seed(t, "Walk")

			_, stderr := env.run(t, "", func() { editEntry(context.Background(), tt.ref, tt.title, tt.content) })
			if env.exitCode != 1 {
				t.Errorf("expected exit code 1, got %d", env.exitCode)
			}
			if !strings.Contains(stderr, tt.want) {
				t.Errorf("stderr missing %q: %s", tt.want, stderr)
			}
		})
	}
}

func TestShowEntry_ByIDPrefix(t *testing.T) {
	env := newTestEnv(t, nil)
	env.seed(t, "Walk", "Swim")

	stdout, _ := env.run(t, "", func() { showEntry(context.Background(), "e0000001") })

	if !strings.Contains(stdout, "Walk") || strings.Contains(stdout, "Swim") {
		t.Errorf("expected the first entry, got:\n%s", stdout)
	}
	if !strings.Contains(stdout, "Index:") {
		t.Errorf("expected metadata table:\n%s", stdout)
	}
}

func TestShowEntry_Ambiguous(t *testing.T) {
	env := newTestEnv(t, nil)
	env.seed(t, "Walk", "Swim")

	_, stderr := env.run(t, "", func() { showEntry(context.Background(), "e000") })

	if env.exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", env.exitCode)
	}
	if !strings.Contains(stderr, "matches more than one entry") {
		t.Errorf("unexpected stderr: %s", stderr)
	}
}

func TestToggleBookmark(t *testing.T) {
	env := newTestEnv(t, nil)
	env.seed(t, "Walk")

	stdout, _ := env.run(t, "", func() { toggleBookmark(context.Background(), "1") })
	if !strings.Contains(stdout, "Bookmarked: Walk") {
		t.Errorf("unexpected output: %s", stdout)
	}

	stdout, _ = env.run(t, "", func() { toggleBookmark(context.Background(), "1") })
	if !strings.Contains(stdout, "Bookmark removed: Walk") {
		t.Errorf("unexpected output: %s", stdout)
	}
}

func TestDeleteEntry(t *testing.T) {
	tests := []struct {
		name        string
		stdin       string
		skipConfirm bool
		wantDeleted bool
	}{
		{"confirmed with y", "y\n", false, true},
		{"confirmed with Y", "Y\n", false, true},
		{"declined", "n\n", false, false},
		{"no answer", "", false, false},
		{"skip confirmation", "", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, nil)
			env.seed(t, "Walk", "Swim")

			stdout, _ := env.run(t, tt.stdin, func() { deleteEntry(context.Background(), "2", tt.skipConfirm) })

			if !strings.Contains(stdout, "Entry to delete:") || !strings.Contains(stdout, "2. ") {
				t.Errorf("expected entry preview, got: %s", stdout)
			}
			if prompted := strings.Contains(stdout, "Delete Journal?"); prompted == tt.skipConfirm {
				t.Errorf("prompt shown = %v with skipConfirm = %v", prompted, tt.skipConfirm)
			}

			list, _ := env.run(t, "", func() { listEntries(context.Background(), "", "") })
			if gone := !strings.Contains(list, "Walk"); gone != tt.wantDeleted {
				t.Errorf("deleted = %v, want %v\n%s", gone, tt.wantDeleted, list)
			}
			if tt.wantDeleted && !strings.Contains(stdout, "Deleted: Walk") {
				t.Errorf("expected confirmation message, got: %s", stdout)
			}
			if !tt.wantDeleted && !strings.Contains(stdout, "Deletion cancelled") {
				t.Errorf("expected cancellation message, got: %s", stdout)
			}
		})
	}
}

func TestDeleteEntry_KeepsRecording(t *testing.T) {
	env := newTestEnv(t, nil)
	env.recorder.path, env.recorder.ok = "/tmp/rec_1.m4a", true
	env.run(t, "\n", func() { recordVoiceNote(context.Background()) })

	stdout, _ := env.run(t, "", func() { deleteEntry(context.Background(), "1", true) })

	if !strings.Contains(stdout, "recording was kept at /tmp/rec_1.m4a") {
		t.Errorf("unexpected output: %s", stdout)
	}
}

func TestRecordVoiceNote(t *testing.T) {
	env := newTestEnv(t, nil)
	env.recorder.path, env.recorder.ok = "/tmp/rec_abcd1234.m4a", true

	stdout, stderr := env.run(t, "\n", func() { recordVoiceNote(context.Background()) })

	if env.exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", env.exitCode, stderr)
	}
	if !strings.Contains(stdout, "Recording...") || !strings.Contains(stdout, "Saved: Voice Note (/tmp/rec_abcd1234.m4a)") {
		t.Errorf("unexpected output: %s", stdout)
	}
}

func TestRecordVoiceNote_StopsOnCancel(t *testing.T) {
	env := newTestEnv(t, nil)
	env.recorder.path, env.recorder.ok = "/tmp/rec_1.m4a", true

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d, stdout, _ := testDeps(env, "")
	d.Stdin = blockingReader{}
	SetDeps(d)
	defer ResetDeps()

	recordVoiceNote(ctx)

	if !strings.Contains(stdout.String(), "Saved: Voice Note") {
		t.Errorf("cancelled recording should still be saved, got: %s", stdout.String())
	}
}

type blockingReader struct{}

func (blockingReader) Read([]byte) (int, error) { select {} }

func TestRecordVoiceNote_NothingCaptured(t *testing.T) {
	env := newTestEnv(t, nil)
	_, stderr := env.run(t, "\n", func() { recordVoiceNote(context.Background()) })

	if env.exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", env.exitCode)
	}
	if !strings.Contains(stderr, "Nothing was recorded") {
		t.Errorf("unexpected stderr: %s", stderr)
	}
}

func TestSetSortMode(t *testing.T) {
	env := newTestEnv(t, nil)

	stdout, _ := env.run(t, "", func() { setSortMode(context.Background(), nil) })
	if !strings.Contains(stdout, "Sort order: date") {
		t.Errorf("unexpected output: %s", stdout)
	}

	stdout, stderr := env.run(t, "", func() { setSortMode(context.Background(), []string{"bookmark"}) })
	if env.exitCode != 0 || !strings.Contains(stdout, "Sort order set to bookmark") {
		t.Fatalf("unexpected result %d: %s %s", env.exitCode, stdout, stderr)
	}

	_, stderr = env.run(t, "", func() { setSortMode(context.Background(), []string{"title"}) })
	if env.exitCode != 1 || !strings.Contains(stderr, "Invalid sort order 'title'") {
		t.Errorf("unexpected result %d: %s", env.exitCode, stderr)
	}
}

func TestExportEntries(t *testing.T) {
	env := newTestEnv(t, nil)
	env.seed(t, "Walk", "Swim")

	tests := []struct {
		format string
		search string
		want   []string
		reject []string
	}{
		{"json", "", []string{`"title": "Swim"`, `"title": "Walk"`}, nil},
		{"YAML", "swim", []string{"title: Swim"}, []string{"Walk"}},
		{"markdown", "", []string{"# Journal", "## Swim"}, nil},
		{"csv", "", []string{"id,created_at,title,content", "Walk"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			stdout, stderr := env.run(t, "", func() { exportEntries(context.Background(), tt.format, tt.search, "", rangeFlags{}) })
			if env.exitCode != 0 {
				t.Fatalf("exit code %d: %s", env.exitCode, stderr)
			}
			for _, want := range tt.want {
				if !strings.Contains(stdout, want) {
					t.Errorf("output missing %q:\n%s", want, stdout)
				}
			}
			for _, reject := range tt.reject {
				if strings.Contains(stdout, reject) {
					t.Errorf("output should not contain %q:\n%s", reject, stdout)
				}
			}
		})
	}
}

func TestExportEntries_UnknownFormat(t *testing.T) {
	env := newTestEnv(t, nil)
	_, stderr := env.run(t, "", func() { exportEntries(context.Background(), "xml", "", "", rangeFlags{}) })

	if env.exitCode != 1 || !strings.Contains(stderr, "Unsupported export format 'xml'") {
		t.Errorf("unexpected result %d: %s", env.exitCode, stderr)
	}
}

func TestExportEntries_DateRange(t *testing.T) {
	env := newTestEnv(t, nil)
	env.seed(t, "Walk")

	stdout, stderr := env.run(t, "", func() {
		exportEntries(context.Background(), "csv", "", "", rangeFlags{to: "2024-02-01"})
	})
	if env.exitCode != 0 {
		t.Fatalf("exit code %d: %s", env.exitCode, stderr)
	}
	if strings.Contains(stdout, "Walk") {
		t.Errorf("entries after --to should be excluded:\n%s", stdout)
	}

	_, stderr = env.run(t, "", func() {
		exportEntries(context.Background(), "csv", "", "", rangeFlags{from: "March 1st"})
	})
	if env.exitCode != 1 || !strings.Contains(stderr, "Invalid date range") {
		t.Errorf("unexpected result %d: %s", env.exitCode, stderr)
	}
}
