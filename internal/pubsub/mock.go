package pubsub

import (
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// Mock is a mock implementation of Client for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	PublishFunc func(topic EventType, data any) error

	PublishCalls []PublishCall
}

// PublishCall holds the arguments for a call to Publish.
type PublishCall struct {
	Topic EventType
	Data  any
}

// NewMock creates a new mock Client.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Publish(topic EventType, data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PublishCalls = append(m.PublishCalls, PublishCall{Topic: topic, Data: data})
	if m.PublishFunc != nil {
		return m.PublishFunc(topic, data)
	}
	return nil
}

func (m *Mock) Decode(data []byte, into any) error {
	return msgpack.Unmarshal(data, into)
}

func (m *Mock) Close() {}
