package notifier

import (
	"sync"

	"github.com/lborup/dinkhouse/internal/snapshot"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	SendRankingsUpdateFunc func(doc *snapshot.Document, dryRun bool) error

	SendRankingsUpdateCalls []*snapshot.Document
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) SendRankingsUpdate(doc *snapshot.Document, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendRankingsUpdateCalls = append(m.SendRankingsUpdateCalls, doc)
	if m.SendRankingsUpdateFunc != nil {
		return m.SendRankingsUpdateFunc(doc, dryRun)
	}
	return nil
}
