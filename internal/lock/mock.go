package lock

import (
	"context"
	"sync"
)

// Mock is a mock implementation of the Locker interface for testing.
type Mock struct {
	mu sync.Mutex

	AcquireFunc func(ctx context.Context) error
	ReleaseFunc func(ctx context.Context) error

	AcquireCalls int
	ReleaseCalls int
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Acquire(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AcquireCalls++
	if m.AcquireFunc != nil {
		return m.AcquireFunc(ctx)
	}
	return nil
}

func (m *Mock) Release(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReleaseCalls++
	if m.ReleaseFunc != nil {
		return m.ReleaseFunc(ctx)
	}
	return nil
}
