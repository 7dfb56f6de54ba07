package mocks

import (
	"context"
	"sync"

	"github.com/simple-lms-api/internal/session"
)

// MockPersister is a mock implementation of session.Persister
type MockPersister struct {
	mu         sync.Mutex
	Data       []byte
	LoadError  error
	SaveError  error
	ClearError error
	SaveCalls  int
	ClearCalls int
}

// Verify interface compliance
var _ session.Persister = (*MockPersister)(nil)

func NewMockPersister() *MockPersister {
	return &MockPersister{}
}

func (m *MockPersister) Load(ctx context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadError != nil {
		return nil, m.LoadError
	}
	if m.Data == nil {
		return nil, session.ErrNoSession
	}
	return m.Data, nil
}

func (m *MockPersister) Save(ctx context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls++
	if m.SaveError != nil {
		return m.SaveError
	}
	m.Data = append([]byte(nil), data...)
	return nil
}

func (m *MockPersister) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearCalls++
	if m.ClearError != nil {
		return m.ClearError
	}
	m.Data = nil
	return nil
}

// Stored returns a copy of the persisted payload
func (m *MockPersister) Stored() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Data == nil {
		return nil
	}
	return append([]byte(nil), m.Data...)
}

// MockRemotePersister is a MockPersister that also reports connection health
type MockRemotePersister struct {
	*MockPersister
	PingError error
}

// Verify interface compliance
var _ session.Pinger = (*MockRemotePersister)(nil)

func NewMockRemotePersister() *MockRemotePersister {
	return &MockRemotePersister{MockPersister: NewMockPersister()}
}

func (m *MockRemotePersister) Ping(ctx context.Context) error {
	return m.PingError
}
