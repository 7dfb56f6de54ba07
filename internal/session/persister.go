// Package session persists the serialized active user so that it survives a
// process restart. The payload is opaque to this package.
package session

import (
	"context"
	"errors"
	"sync"
)

// ErrNoSession is returned by Load when nothing is stored
var ErrNoSession = errors.New("session: none stored")

// Persister stores a single serialized session
type Persister interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Clear(ctx context.Context) error
}

// Pinger is implemented by persisters backed by a remote store
type Pinger interface {
	Ping(ctx context.Context) error
}

// MemoryPersister keeps the session in process memory
type MemoryPersister struct {
	mu   sync.Mutex
	data []byte
}

// NewMemoryPersister creates an empty MemoryPersister
func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{}
}

func (m *MemoryPersister) Load(ctx context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, ErrNoSession
	}
	return append([]byte(nil), m.data...), nil
}

func (m *MemoryPersister) Save(ctx context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
	return nil
}

func (m *MemoryPersister) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
	return nil
}
