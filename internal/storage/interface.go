package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when the requested key does not exist.
	ErrNotFound = errors.New("storage: key not found")
	// ErrAlreadyExists is returned by CreateExclusive when the key is taken.
	ErrAlreadyExists = errors.New("storage: key already exists")
)

// ObjectInfo describes a stored object without its contents.
type ObjectInfo struct {
	Key     string
	ModTime time.Time
}

// Backend abstracts the document store that holds match records, the
// rankings snapshot, the generation timestamp and the lock token. Callers
// never branch on which implementation is active.
//
// Write must be effectively atomic: a concurrent reader sees either the old
// document or the new one, never a partial write.
type Backend interface {
	// List returns all objects whose key starts with prefix.
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)
	// Read returns the full contents of the object at key.
	Read(ctx context.Context, key string) ([]byte, error)
	// Write stores data at key, replacing any existing object atomically.
	Write(ctx context.Context, key string, data []byte) error
	// CreateExclusive stores data at key only if the key does not already
	// exist. Returns ErrAlreadyExists otherwise.
	CreateExclusive(ctx context.Context, key string, data []byte) error
	// Delete removes the object at key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
