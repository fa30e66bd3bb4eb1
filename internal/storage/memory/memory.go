// Package memory is an in-process implementation of storage interface.
package memory

import (
	"context"
	"sync"

	"github.com/Decentr-net/notos/internal/storage"
)

type memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// New creates new instance of memory storage. Contents are lost with the process.
func New() storage.Storage {
	return &memory{
		data: map[string][]byte{},
	}
}

func (m *memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	if !ok {
		return nil, storage.ErrNotFound
	}

	return append([]byte(nil), v...), nil
}

func (m *memory) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = append([]byte(nil), value...)

	return nil
}

func (m *memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)

	return nil
}

func (m *memory) Ping(_ context.Context) error {
	return nil
}
