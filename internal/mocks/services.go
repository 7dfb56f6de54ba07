package mocks

import (
	"context"
	"sync"

	"github.com/simple-lms-api/internal/ai"
	"github.com/simple-lms-api/internal/metrics"
	"github.com/simple-lms-api/internal/models"
)

// MockGenerator is a mock implementation of ai.Generator
type MockGenerator struct {
	GenerateFunc func(ctx context.Context, title string) string
	Titles       []string
}

// Verify interface compliance
var _ ai.Generator = (*MockGenerator)(nil)

func NewMockGenerator() *MockGenerator {
	return &MockGenerator{Titles: make([]string, 0)}
}

func (m *MockGenerator) GenerateLessonDescription(ctx context.Context, title string) string {
	m.Titles = append(m.Titles, title)
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, title)
	}
	return "Generated description for " + title
}

// MockRecorder is a mock implementation of metrics.Recorder
type MockRecorder struct {
	mu          sync.Mutex
	Activities  map[models.ActivityType]int
	Logins      map[bool]int
	Generations map[string]int
}

// Verify interface compliance
var _ metrics.Recorder = (*MockRecorder)(nil)

func NewMockRecorder() *MockRecorder {
	return &MockRecorder{
		Activities:  make(map[models.ActivityType]int),
		Logins:      make(map[bool]int),
		Generations: make(map[string]int),
	}
}

func (m *MockRecorder) RecordActivity(activity models.ActivityType) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Activities[activity]++
}

func (m *MockRecorder) RecordLogin(success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logins[success]++
}

func (m *MockRecorder) RecordGeneration(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Generations[outcome]++
}
