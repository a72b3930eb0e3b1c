package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Mock is an in-memory Backend for testing. It is safe for concurrent use.
// Individual operations can be overridden with the *Func spies, in the same
// style as the other mocks in this codebase.
type Mock struct {
	mu      sync.Mutex
	objects map[string]mockObject

	ListFunc            func(ctx context.Context, prefix string) ([]ObjectInfo, error)
	ReadFunc            func(ctx context.Context, key string) ([]byte, error)
	WriteFunc           func(ctx context.Context, key string, data []byte) error
	CreateExclusiveFunc func(ctx context.Context, key string, data []byte) error
	DeleteFunc          func(ctx context.Context, key string) error

	WriteCalls  []string
	DeleteCalls []string
}

type mockObject struct {
	data    []byte
	modTime time.Time
}

// NewMock creates an empty in-memory backend.
func NewMock() *Mock {
	return &Mock{objects: make(map[string]mockObject)}
}

// Seed stores an object with an explicit modification time, bypassing spies.
func (m *Mock) Seed(key string, data []byte, modTime time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = mockObject{data: data, modTime: modTime}
}

func (m *Mock) List(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListFunc != nil {
		return m.ListFunc(ctx, prefix)
	}
	var objects []ObjectInfo
	for key, obj := range m.objects {
		if strings.HasPrefix(key, prefix) {
			objects = append(objects, ObjectInfo{Key: key, ModTime: obj.modTime})
		}
	}
	sort.Slice(objects, func(i, j int) bool { return objects[i].Key < objects[j].Key })
	return objects, nil
}

func (m *Mock) Read(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReadFunc != nil {
		return m.ReadFunc(ctx, key)
	}
	obj, ok := m.objects[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return obj.data, nil
}

func (m *Mock) Write(ctx context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WriteCalls = append(m.WriteCalls, key)
	if m.WriteFunc != nil {
		return m.WriteFunc(ctx, key, data)
	}
	m.objects[key] = mockObject{data: data, modTime: time.Now()}
	return nil
}

func (m *Mock) CreateExclusive(ctx context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateExclusiveFunc != nil {
		return m.CreateExclusiveFunc(ctx, key, data)
	}
	if _, ok := m.objects[key]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, key)
	}
	m.objects[key] = mockObject{data: data, modTime: time.Now()}
	return nil
}

func (m *Mock) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls = append(m.DeleteCalls, key)
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	delete(m.objects, key)
	return nil
}

// Exists reports whether a key is present, for test assertions.
func (m *Mock) Exists(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[key]
	return ok
}
