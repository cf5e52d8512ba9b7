// Package persistence stores the application document as one blob under a key.
package persistence

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned by Load when nothing has been saved under the key.
var ErrNotFound = errors.New("persistence: not found")

// Backend holds a single JSON document.
type Backend interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Clear(ctx context.Context) error
}

// Memory is an in-process Backend.
type Memory struct {
	mu   sync.Mutex
	data []byte
}

var _ Backend = (*Memory)(nil)

func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Load(ctx context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, ErrNotFound
	}
	return append([]byte(nil), m.data...), nil
}

func (m *Memory) Save(ctx context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
	return nil
}

func (m *Memory) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
	return nil
}
