// Package audio captures voice notes by running an external recording
// command that writes to a file until it is interrupted.
package audio

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/xolan/journali/internal/logging"
)

// FilePlaceholder in a command argument is replaced by the output path.
const FilePlaceholder = "{file}"

var (
	// ErrStart is returned when capture cannot begin.
	ErrStart = errors.New("failed to start audio capture")
	// ErrAlreadyRecording is returned by Start while a capture is running.
	ErrAlreadyRecording = errors.New("already recording")
)

// Recorder captures one recording at a time.
type Recorder interface {
	// Start begins capture into a new file.
	Start() error
	// Stop ends capture. ok is false if nothing usable was recorded.
	Stop() (path string, ok bool)
}

var _ Recorder = (*CommandRecorder)(nil)

// stopTimeout is how long Stop waits after interrupting before it kills.
var stopTimeout = 5 * time.Second

// CommandRecorder runs Command with the placeholder replaced by a fresh
// rec_<id>.m4a path under Dir.
type CommandRecorder struct {
	Dir     string
	Command []string
	Logger  logging.Logger

	mu   sync.Mutex
	cmd  *exec.Cmd
	done chan error
	path string
}

// NewCommandRecorder returns a recorder writing into dir.
func NewCommandRecorder(dir string, command []string, logger logging.Logger) *CommandRecorder {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &CommandRecorder{Dir: dir, Command: command, Logger: logger}
}

// FileName returns a new recording file name.
func FileName() string {
	return "rec_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:8] + ".m4a"
}

func (r *CommandRecorder) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cmd != nil {
		return ErrAlreadyRecording
	}
	if len(r.Command) == 0 {
		return fmt.Errorf("%w: no recording command configured", ErrStart)
	}
	if err := os.MkdirAll(r.Dir, 0755); err != nil {
		return fmt.Errorf("%w: %v", ErrStart, err)
	}

	path := filepath.Join(r.Dir, FileName())
	args := make([]string, len(r.Command))
	for i, a := range r.Command {
		args[i] = strings.ReplaceAll(a, FilePlaceholder, path)
	}

	cmd := exec.Command(args[0], args[1:]...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %v", ErrStart, err)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	r.cmd = cmd
	r.done = done
	r.path = path
	r.Logger.Info("recording started", "path", path, "pid", cmd.Process.Pid)
	return nil
}

func (r *CommandRecorder) Stop() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cmd == nil {
		return "", false
	}
	cmd, done, path := r.cmd, r.done, r.path
	r.cmd, r.done, r.path = nil, nil, ""

	select {
	case err := <-done:
		// The command ended on its own before Stop.
		if err != nil {
			r.Logger.Warn("recording command exited early", "error", err)
		}
	default:
		if err := cmd.Process.Signal(os.Interrupt); err != nil {
			r.Logger.Warn("failed to interrupt recorder", "error", err)
		}
		select {
		case <-done:
		case <-time.After(stopTimeout):
			r.Logger.Warn("recorder did not stop, killing it", "pid", cmd.Process.Pid)
			_ = cmd.Process.Kill()
			<-done
		}
	}

	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		r.Logger.Warn("recording produced no audio", "path", path)
		_ = os.Remove(path)
		return "", false
	}
	r.Logger.Info("recording stopped", "path", path, "bytes", info.Size())
	return path, true
}

// Recording reports whether a capture is in progress.
func (r *CommandRecorder) Recording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cmd != nil
}
