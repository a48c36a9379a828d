package cmd

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xolan/journali/internal/blobstore"
)

func newFileEnv(t *testing.T) *testEnv {
	t.Helper()
	backend, err := blobstore.NewFile(filepath.Join(t.TempDir(), "entries.json"), 3)
	if err != nil {
		t.Fatal(err)
	}
	return newTestEnv(t, backend)
}

func TestListBackups(t *testing.T) {
	env := newFileEnv(t)

	stdout, _ := env.run(t, "", func() { listBackups(context.Background()) })
	if !strings.Contains(stdout, "No backups available") {
		t.Errorf("unexpected output: %s", stdout)
	}

	env.seed(t, "Walk", "Swim")
	stdout, _ = env.run(t, "", func() { listBackups(context.Background()) })
	if !strings.Contains(stdout, "1: ") || !strings.Contains(stdout, "most recent") {
		t.Errorf("expected backup 1 listed, got: %s", stdout)
	}
}

func TestListBackups_Unsupported(t *testing.T) {
	env := newTestEnv(t, nil)
	_, stderr := env.run(t, "", func() { listBackups(context.Background()) })

	if env.exitCode != 1 || !strings.Contains(stderr, "only kept by the file storage backend") {
		t.Errorf("unexpected result %d: %s", env.exitCode, stderr)
	}
}

func TestRestoreFromBackup(t *testing.T) {
	env := newFileEnv(t)
	env.seed(t, "Walk", "Swim")

	stdout, stderr := env.run(t, "", func() { restoreFromBackup(context.Background(), nil) })
	if env.exitCode != 0 {
		t.Fatalf("exit code %d: %s", env.exitCode, stderr)
	}
	if !strings.Contains(stdout, "Successfully restored from backup 1 (1 entry)") {
		t.Errorf("unexpected output: %s", stdout)
	}

	list, _ := env.run(t, "", func() { listEntries(context.Background(), "", "") })
	if strings.Contains(list, "Swim") || !strings.Contains(list, "Walk") {
		t.Errorf("journal should be back to one entry:\n%s", list)
	}
}

func TestRestoreFromBackup_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"not a number", []string{"two"}, "Invalid backup number 'two'"},
		{"missing backup", []string{"3"}, "Backup 3 does not exist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newFileEnv(t)
			env.seed(t, "Walk", "Swim")

			_, stderr := env.run(t, "", func() { restoreFromBackup(context.Background(), tt.args) })
			if env.exitCode != 1 || !strings.Contains(stderr, tt.want) {
				t.Errorf("unexpected result %d: %s", env.exitCode, stderr)
			}
		})
	}
}

func TestRestoreFromBackup_NoBackups(t *testing.T) {
	env := newFileEnv(t)
	stdout, _ := env.run(t, "", func() { restoreFromBackup(context.Background(), nil) })

	if env.exitCode != 1 || !strings.Contains(stdout, "No backups available") {
		t.Errorf("unexpected result %d: %s", env.exitCode, stdout)
	}
}
