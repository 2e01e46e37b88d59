package gateway

import (
	"context"
	"sync"

	natspkg "github.com/piresc/fleetwatch/internal/pkg/nats"
)

// MockEventPublisher records published events and can be told to fail
type MockEventPublisher struct {
	mu     sync.Mutex
	events []natspkg.Event
	errs   []error
	calls  int
}

func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

// SetPublishErrors makes the next calls fail with errs, in order
func (m *MockEventPublisher) SetPublishErrors(errs ...error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs = errs
}

func (m *MockEventPublisher) Publish(_ context.Context, event natspkg.Event) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	if len(m.errs) > 0 {
		err := m.errs[0]
		m.errs = m.errs[1:]
		if err != nil {
			return 0, err
		}
	}
	m.events = append(m.events, event)
	return uint64(len(m.events)), nil
}

func (m *MockEventPublisher) GetPublishedEvents() []natspkg.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]natspkg.Event(nil), m.events...)
}

func (m *MockEventPublisher) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
