package blobstore

import (
	"context"
	"errors"
	"sync"
)

// Memory is an in-memory Backend, useful for tests and throwaway sessions.
// It is safe for concurrent use.
type Memory struct {
	mu      sync.Mutex
	data    []byte
	written bool
	writes  int
	failErr error
}

// NewMemory returns an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{}
}

// NewMemoryWith returns an in-memory backend pre-loaded with data.
func NewMemoryWith(data []byte) *Memory {
	m := &Memory{}
	m.data = append([]byte(nil), data...)
	m.written = true
	return m
}

func (m *Memory) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.written {
		return nil, ErrNotFound
	}
	return append([]byte(nil), m.data...), nil
}

func (m *Memory) Write(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failErr != nil {
		return m.failErr
	}
	m.data = append([]byte(nil), data...)
	m.written = true
	m.writes++
	return nil
}

func (m *Memory) Location() string { return "memory" }

// Writes returns how many successful writes have happened.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// Bytes returns a copy of the current blob.
func (m *Memory) Bytes() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.data...)
}

// FailWrites makes every subsequent Write return err. Pass nil to recover.
func (m *Memory) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failErr = err
}

// ErrInjected is a convenience error for FailWrites in tests.
var ErrInjected = errors.New("injected write failure")
